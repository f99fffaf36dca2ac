package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
)

// multipartMemory is how much of a multipart body ParseMultipartForm keeps in
// memory before spilling parts to temporary files.
const multipartMemory = 32 << 20

// UploadHandler はメディアファイルのアップロードを処理する
type UploadHandler struct {
	uploads         service.UploadService
	maxRequestBytes int64
}

// NewUploadHandler は UploadHandler を生成する。maxRequestBytes はリクエスト全体の上限
func NewUploadHandler(uploads service.UploadService, maxRequestBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxRequestBytes: maxRequestBytes}
}

type uploadResponse struct {
	Message string                `json:"message"`
	Files   []*model.UploadedFile `json:"files"`
}

// Upload は POST /api/upload を処理する。フィールド files は複数指定できる
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large")
			return
		}
		if errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_multipart")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("multipart cleanup failed", "error", err)
		}
	}()

	headers := r.MultipartForm.File["files"]
	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, service.FromFileHeader(fh))
	}

	uploaded, err := h.uploads.Upload(r.Context(), files)
	if err != nil {
		writeServiceError(w, err, "upload", "file_count", len(files))
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{
		Message: "Files uploaded successfully",
		Files:   uploaded,
	})
}

// Info は GET /api/upload を処理する。受け付ける形式とサイズ上限を返す
func (h *UploadHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.NewUploadInfo())
}
