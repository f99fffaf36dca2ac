package handler

import (
	"net/http"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
)

// PackageHandler は料金パッケージの HTTP ハンドラ
type PackageHandler struct {
	packages service.PackageService
}

// NewPackageHandler は PackageHandler を生成する
func NewPackageHandler(packages service.PackageService) *PackageHandler {
	return &PackageHandler{packages: packages}
}

// List は GET /api/packages を処理する。公開中のものだけを返す
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.PackageListOptions{})
}

// AdminList は GET /api/admin/packages を処理する。非公開も含む
func (h *PackageHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.PackageListOptions{IncludeInactive: true})
}

func (h *PackageHandler) list(w http.ResponseWriter, r *http.Request, opts model.PackageListOptions) {
	pkgs, err := h.packages.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err, "list_packages")
		return
	}
	if pkgs == nil {
		pkgs = []*model.Package{}
	}
	writeJSON(w, http.StatusOK, pkgs)
}

// Create は POST /api/packages を処理する
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.PackageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.packages.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "create_package")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Get は GET /api/packages/{id} を処理する
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.packages.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get_package", "package_id", id)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update は PUT /api/packages/{id} を処理する
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch model.PackagePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	p, err := h.packages.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "update_package", "package_id", id)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete は DELETE /api/packages/{id} を処理する
func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.packages.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete_package", "package_id", id)
		return
	}
	writeMessage(w, http.StatusOK, "Package deleted successfully")
}
