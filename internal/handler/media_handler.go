package handler

import (
	"fmt"
	"net/http"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
)

// MediaHandler はギャラリーメディアの HTTP ハンドラ
type MediaHandler struct {
	media service.MediaService
}

// NewMediaHandler は MediaHandler を生成する
func NewMediaHandler(media service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// mediaRequest is the body of POST /api/media.
type mediaRequest struct {
	URL          string              `json:"url"`
	Type         string              `json:"type"`
	Category     string              `json:"category"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Filename     string              `json:"filename"`
	Size         int64               `json:"size"`
	MimeType     string              `json:"mimeType"`
	ThumbnailURL *string             `json:"thumbnailUrl"`
	Metadata     model.MediaMetadata `json:"metadata"`
}

func (req mediaRequest) media() *model.Media {
	return &model.Media{
		URL:          req.URL,
		Type:         req.Type,
		Category:     req.Category,
		Title:        req.Title,
		Description:  req.Description,
		Filename:     req.Filename,
		Size:         req.Size,
		MimeType:     req.MimeType,
		ThumbnailURL: req.ThumbnailURL,
		Metadata:     req.Metadata,
	}
}

// bulkRequest is the body of POST and DELETE /api/media/bulk.
type bulkRequest struct {
	IDs      []string `json:"ids"`
	Category string   `json:"category"`
}

// List は GET /api/media を処理する。category と type で絞り込める
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	f := model.MediaFilter{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
	}
	items, err := h.media.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, err, "list_media")
		return
	}
	if items == nil {
		items = []*model.Media{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create は POST /api/media を処理する
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m := req.media()
	if err := h.media.Create(r.Context(), m); err != nil {
		writeServiceError(w, err, "create_media")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Get は GET /api/media/{id} を処理する
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	m, err := h.media.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get_media", "media_id", id)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Update は PUT /api/media/{id} を処理する。省略したフィールドは変更しない
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch model.MediaPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	m, err := h.media.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "update_media", "media_id", id)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete は DELETE /api/media/{id} を処理する
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.media.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete_media", "media_id", id)
		return
	}
	writeMessage(w, http.StatusOK, "Media deleted successfully")
}

// BulkCategorize は POST /api/media/bulk を処理する
func (h *MediaHandler) BulkCategorize(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.media.BulkCategorize(r.Context(), req.IDs, req.Category)
	if err != nil {
		writeServiceError(w, err, "bulk_categorize", "count", len(req.IDs))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       fmt.Sprintf("%d items updated successfully", n),
		"modifiedCount": n,
	})
}

// BulkDelete は DELETE /api/media/bulk を処理する
func (h *MediaHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.media.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, err, "bulk_delete", "count", len(req.IDs))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("%d items deleted successfully", n),
		"deletedCount": n,
	})
}
