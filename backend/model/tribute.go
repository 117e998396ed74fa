package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"tribute-wall/backend/common"

	"github.com/burugo/thing"
)

// ErrTributeNotFound is returned when no tribute matches the given id or name.
var ErrTributeNotFound = errors.New("tribute not found")

// Tribute is one submitted reflection: the selected experience prompt, the
// free-text answer, who wrote it, and the optional uploaded images.
type Tribute struct {
	thing.BaseModel
	Experience   string `db:"experience"`
	Answer       string `db:"answer"`
	FullName     string `db:"full_name,index"`
	Department   string `db:"department"`
	MemoryImage  string `db:"memory_image"`
	PreviewImage string `db:"preview_image"`
}

func (t *Tribute) TableName() string {
	return "tributes"
}

// MarshalJSON renders the API shape the form client consumes: camelCase
// fields, image paths as null when absent, createdAt in RFC3339 milliseconds.
func (t *Tribute) MarshalJSON() ([]byte, error) {
	view := struct {
		ID           int64   `json:"id"`
		Experience   string  `json:"experience"`
		Answer       string  `json:"answer"`
		FullName     string  `json:"fullName"`
		Department   string  `json:"department"`
		MemoryImage  *string `json:"memoryImage"`
		PreviewImage *string `json:"previewImage"`
		CreatedAt    string  `json:"createdAt"`
	}{
		ID:         t.ID,
		Experience: t.Experience,
		Answer:     t.Answer,
		FullName:   t.FullName,
		Department: t.Department,
		CreatedAt:  common.FormatTime(t.CreatedAt),
	}
	if t.MemoryImage != "" {
		view.MemoryImage = &t.MemoryImage
	}
	if t.PreviewImage != "" {
		view.PreviewImage = &t.PreviewImage
	}
	return json.Marshal(view)
}

var TributeDB *thing.Thing[*Tribute]

// TributeInit initializes the TributeDB ORM instance during InitDB.
func TributeInit() error {
	var err error
	TributeDB, err = thing.Use[*Tribute]()
	if err != nil {
		return fmt.Errorf("failed to initialize TributeDB: %w", err)
	}
	return nil
}

func InsertTribute(t *Tribute) error {
	return TributeDB.Save(t)
}

func GetTributeById(id int64) (*Tribute, error) {
	tributes, err := TributeDB.Where("id = ?", id).Fetch(0, 1)
	if err != nil {
		return nil, fmt.Errorf("query tribute %d: %w", id, err)
	}
	if len(tributes) == 0 {
		return nil, ErrTributeNotFound
	}
	return tributes[0], nil
}

// GetLatestTributeByName returns the most recently created tribute whose full
// name matches exactly (case-sensitive). Names are not unique; ties on
// created_at fall back to the higher id.
func GetLatestTributeByName(fullName string) (*Tribute, error) {
	tributes, err := TributeDB.Where("full_name = ?", fullName).
		Order("created_at DESC, id DESC").Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(tributes) == 0 {
		return nil, ErrTributeNotFound
	}
	return tributes[0], nil
}

// GetAllTributes lists every tribute, newest first.
func GetAllTributes() ([]*Tribute, error) {
	return TributeDB.Order("created_at DESC, id DESC").All()
}

func (t *Tribute) Update() error {
	return TributeDB.Save(t)
}

func (t *Tribute) Delete() error {
	return TributeDB.Delete(t)
}
