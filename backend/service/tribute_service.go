// Package service orchestrates validation, the file store and the record
// store into the tribute submission workflow.
package service

import (
	"fmt"
	"mime/multipart"
	"strings"

	"tribute-wall/backend/common"
	"tribute-wall/backend/library/storage"
	"tribute-wall/backend/model"
)

// TributeService accepts new tributes and attaches rendered preview images to
// existing ones. The file store handle is injected at construction.
type TributeService struct {
	store *storage.Store
}

func NewTributeService(store *storage.Store) *TributeService {
	return &TributeService{store: store}
}

// Create validates the payload, persists the optional memory photo and
// inserts the tribute record. Validation runs before anything is written, and
// a failed insert cleans up the already-saved file so no record ever
// references a file that was not stored, and vice versa.
func (s *TributeService) Create(payload TributePayload, image *multipart.FileHeader) (*model.Tribute, error) {
	payload = payload.Trimmed()
	if fieldErrors := ValidateTributePayload(payload); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	var memoryImage string
	if image != nil {
		savedPath, err := s.store.Save(storage.NamespaceMemories, image)
		if err != nil {
			return nil, err
		}
		memoryImage = savedPath
	}

	tribute := &model.Tribute{
		Experience:  payload.Experience,
		Answer:      payload.Answer,
		FullName:    payload.FullName,
		Department:  payload.Department,
		MemoryImage: memoryImage,
	}
	if err := model.InsertTribute(tribute); err != nil {
		if memoryImage != "" {
			_ = s.store.Remove(memoryImage)
		}
		return nil, fmt.Errorf("save tribute record: %w", err)
	}
	return tribute, nil
}

// AttachPreview saves a rendered preview card and attaches it to the most
// recently created tribute with the exact same full name. Full names are not
// unique, so this is a documented best-effort lookup: two people submitting
// the same name around the same time can race, and no token ties the two
// requests together. When no tribute matches, the just-written preview file
// is removed again and ErrTributeNotFound is returned.
func (s *TributeService) AttachPreview(fullName string, image *multipart.FileHeader) (*model.Tribute, error) {
	fullName = strings.TrimSpace(fullName)
	fieldErrors := map[string]string{}
	if fullName == "" {
		fieldErrors["fullName"] = "Please provide the same full name you used in the form."
	}
	if image == nil {
		fieldErrors["image"] = "Please attach a preview image."
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	previewImage, err := s.store.Save(storage.NamespacePreviews, image)
	if err != nil {
		return nil, err
	}

	tribute, err := model.GetLatestTributeByName(fullName)
	if err != nil {
		_ = s.store.Remove(previewImage)
		return nil, err
	}

	tribute.PreviewImage = previewImage
	if err := tribute.Update(); err != nil {
		_ = s.store.Remove(previewImage)
		return nil, fmt.Errorf("update tribute record: %w", err)
	}
	return tribute, nil
}

// List returns every tribute, newest first.
func (s *TributeService) List() ([]*model.Tribute, error) {
	return model.GetAllTributes()
}

// Get returns the tribute with the given id.
func (s *TributeService) Get(id int64) (*model.Tribute, error) {
	return model.GetTributeById(id)
}

// Delete removes a tribute and both of its files. A file already missing on
// disk is tolerated; the record going away is what matters.
func (s *TributeService) Delete(id int64) error {
	tribute, err := model.GetTributeById(id)
	if err != nil {
		return err
	}
	if tribute.MemoryImage != "" {
		if err := s.store.Remove(tribute.MemoryImage); err != nil {
			common.SysError(fmt.Sprintf("failed to remove file %s for tribute %d: %s", tribute.MemoryImage, id, err.Error()))
		}
	}
	if tribute.PreviewImage != "" {
		if err := s.store.Remove(tribute.PreviewImage); err != nil {
			common.SysError(fmt.Sprintf("failed to remove file %s for tribute %d: %s", tribute.PreviewImage, id, err.Error()))
		}
	}
	return tribute.Delete()
}
