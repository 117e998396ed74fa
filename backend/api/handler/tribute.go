package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"tribute-wall/backend/common"
	"tribute-wall/backend/library/storage"
	"tribute-wall/backend/model"
	"tribute-wall/backend/service"

	"github.com/gin-gonic/gin"
)

// TributeHandler exposes the submission workflow over HTTP. The service is
// injected so handlers carry no ambient state.
type TributeHandler struct {
	service *service.TributeService
}

func NewTributeHandler(s *service.TributeService) *TributeHandler {
	return &TributeHandler{service: s}
}

// SubmitTribute accepts the multipart tribute form: experience, answer,
// fullName, department and an optional image file.
func (h *TributeHandler) SubmitTribute(c *gin.Context) {
	payload := service.TributePayload{
		Experience: c.PostForm("experience"),
		Answer:     c.PostForm("answer"),
		FullName:   c.PostForm("fullName"),
		Department: c.PostForm("department"),
	}
	image, err := formImage(c)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "Invalid form data.")
		return
	}

	tribute, err := h.service.Create(payload, image)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			common.RespFieldErrors(c, http.StatusBadRequest, "Please review the highlighted fields.", validationErr.Errors)
		case errors.Is(err, storage.ErrUnsupportedType):
			common.RespErrorStr(c, http.StatusBadRequest, "Only image files are allowed!")
		case errors.Is(err, storage.ErrTooLarge):
			common.RespErrorStr(c, http.StatusBadRequest, "File size is too large. Maximum size is 10MB")
		default:
			common.SysError("error submitting tribute: " + err.Error())
			common.RespError(c, http.StatusInternalServerError, "Error submitting tribute", err)
		}
		return
	}
	common.RespCreated(c, "Tribute submitted successfully.", tribute)
}

// SavePreviewImage attaches a rendered preview card to the most recent
// tribute matching the submitted full name.
func (h *TributeHandler) SavePreviewImage(c *gin.Context) {
	fullName := c.PostForm("fullName")
	image, err := formImage(c)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "Invalid form data.")
		return
	}

	tribute, err := h.service.AttachPreview(fullName, image)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			common.RespFieldErrors(c, http.StatusBadRequest, previewValidationMessage(validationErr), validationErr.Errors)
		case errors.Is(err, model.ErrTributeNotFound):
			common.RespFieldErrors(c, http.StatusNotFound,
				"We could not find a tribute for that name. Please submit the form first.",
				map[string]string{"fullName": "No tribute found for the provided name."})
		case errors.Is(err, storage.ErrUnsupportedType):
			common.RespErrorStr(c, http.StatusBadRequest, "Only image files are allowed!")
		case errors.Is(err, storage.ErrTooLarge):
			common.RespErrorStr(c, http.StatusBadRequest, "File size is too large. Maximum size is 10MB")
		default:
			common.SysError("error saving preview image: " + err.Error())
			common.RespError(c, http.StatusInternalServerError, "Error saving preview image", err)
		}
		return
	}
	common.RespSuccess(c, "Preview image saved successfully.", tribute)
}

// GetTributes lists every tribute, newest first.
func (h *TributeHandler) GetTributes(c *gin.Context) {
	tributes, err := h.service.List()
	if err != nil {
		common.SysError("error fetching tributes: " + err.Error())
		common.RespError(c, http.StatusInternalServerError, "Error fetching tributes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(tributes),
		"data":    tributes,
	})
}

// GetTribute returns a single tribute by id.
func (h *TributeHandler) GetTribute(c *gin.Context) {
	id, ok := tributeID(c)
	if !ok {
		return
	}
	tribute, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, model.ErrTributeNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "Tribute not found")
			return
		}
		common.SysError(fmt.Sprintf("error fetching tribute %d: %s", id, err.Error()))
		common.RespError(c, http.StatusInternalServerError, "Error fetching tribute", err)
		return
	}
	common.RespSuccess(c, "", tribute)
}

// DeleteTribute removes a tribute record together with its uploaded files.
func (h *TributeHandler) DeleteTribute(c *gin.Context) {
	id, ok := tributeID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, model.ErrTributeNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "Tribute not found")
			return
		}
		common.SysError(fmt.Sprintf("error deleting tribute %d: %s", id, err.Error()))
		common.RespError(c, http.StatusInternalServerError, "Error deleting tribute", err)
		return
	}
	common.RespSuccessStr(c, "Tribute deleted successfully.")
}

// GetExperiences returns the prompt catalogue the form's dropdown offers.
func GetExperiences(c *gin.Context) {
	common.RespSuccess(c, "", service.ExperienceOptions)
}

// previewValidationMessage picks the top-level message for a failed
// save-preview request; the field map still carries the per-field details.
func previewValidationMessage(err *service.ValidationError) string {
	if _, ok := err.Errors["fullName"]; ok {
		return "Full name is required to match the tribute entry."
	}
	if _, ok := err.Errors["image"]; ok {
		return "No image provided"
	}
	return "Please review the highlighted fields."
}

func tributeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, "Tribute not found")
		return 0, false
	}
	return id, true
}

// formImage returns the optional uploaded image, nil when the field is absent.
func formImage(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}
