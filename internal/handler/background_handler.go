package handler

import (
	"net/http"
	"strings"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
)

// BackgroundHandler はセクション背景設定の HTTP ハンドラ
type BackgroundHandler struct {
	backgrounds service.BackgroundService
}

// NewBackgroundHandler は BackgroundHandler を生成する
func NewBackgroundHandler(backgrounds service.BackgroundService) *BackgroundHandler {
	return &BackgroundHandler{backgrounds: backgrounds}
}

// backgroundRequest is the body of PUT /api/backgrounds. With an id it is a
// partial update by id; without one it upserts by section.
type backgroundRequest struct {
	ID string `json:"id"`
	model.BackgroundPatch
}

// List は GET /api/backgrounds を処理する
func (h *BackgroundHandler) List(w http.ResponseWriter, r *http.Request) {
	bgs, err := h.backgrounds.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list_backgrounds")
		return
	}
	if bgs == nil {
		bgs = []*model.Background{}
	}
	writeJSON(w, http.StatusOK, bgs)
}

// Upsert は POST /api/backgrounds を処理する。作成時 201、更新時 200
func (h *BackgroundHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var patch model.BackgroundPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	h.upsert(w, r, patch)
}

func (h *BackgroundHandler) upsert(w http.ResponseWriter, r *http.Request, patch model.BackgroundPatch) {
	bg, created, err := h.backgrounds.Upsert(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err, "upsert_background")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, bg)
}

// Update は PUT /api/backgrounds を処理する
func (h *BackgroundHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req backgroundRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		if req.Section == nil {
			writeError(w, http.StatusBadRequest, "id_required")
			return
		}
		h.upsert(w, r, req.BackgroundPatch)
		return
	}
	bg, err := h.backgrounds.Update(r.Context(), id, req.BackgroundPatch)
	if err != nil {
		writeServiceError(w, err, "update_background", "background_id", id)
		return
	}
	writeJSON(w, http.StatusOK, bg)
}

// Delete は DELETE /api/backgrounds?id= を処理する
func (h *BackgroundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	if err := h.backgrounds.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete_background", "background_id", id)
		return
	}
	writeMessage(w, http.StatusOK, "Background deleted successfully")
}

// Resolve は GET /api/backgrounds/section/{section} を処理する。
// 有効な設定がなければ既定の背景を返す
func (h *BackgroundHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	res, err := h.backgrounds.Resolve(r.Context(), section)
	if err != nil {
		writeServiceError(w, err, "resolve_background", "section", section)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
