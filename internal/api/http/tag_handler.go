package http

import (
	"net/http"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/service"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagSvc.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

type createTagBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createTagBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	tag, err := h.tagSvc.CreateTag(r.Context(), body.Name, body.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}
