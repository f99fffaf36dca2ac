package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/seekers/backend/internal/metrics"
	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/storage"
)

// UploadFile is one file of an upload request.
type UploadFile struct {
	Name        string // original file name as sent by the client
	Size        int64
	ContentType string // declared type; may be empty
	Open        func() (io.ReadCloser, error)
}

// FromFileHeader adapts a multipart part.
func FromFileHeader(fh *multipart.FileHeader) UploadFile {
	return UploadFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// UploadService validates uploaded files and writes them to storage.
type UploadService interface {
	// Upload validates every file before writing any of them. A write failure
	// part way through leaves the earlier files in place.
	Upload(ctx context.Context, files []UploadFile) ([]*model.UploadedFile, error)
}

// UploadServiceImpl は UploadService の実装
type UploadServiceImpl struct {
	files  storage.Storage
	now    func() time.Time
	suffix func() string
}

// NewUploadService は UploadServiceImpl を生成する
func NewUploadService(files storage.Storage) *UploadServiceImpl {
	return &UploadServiceImpl{files: files, now: time.Now, suffix: randomSuffix}
}

// accepted is a file that passed validation.
type accepted struct {
	file      UploadFile
	mimeType  string
	mediaType string
}

func (s *UploadServiceImpl) Upload(ctx context.Context, files []UploadFile) ([]*model.UploadedFile, error) {
	if len(files) == 0 {
		return nil, &model.ValidationError{Msg: "No files uploaded"}
	}

	plan := make([]accepted, 0, len(files))
	for _, f := range files {
		a, err := s.validate(f)
		if err != nil {
			metrics.ObserveUpload(a.mediaType, metrics.UploadRejected, f.Size)
			slog.Warn("upload rejected", "original_name", f.Name, "size", f.Size, "error", err)
			return nil, err
		}
		plan = append(plan, a)
	}

	out := make([]*model.UploadedFile, 0, len(plan))
	for _, a := range plan {
		uf, err := s.write(ctx, a)
		if err != nil {
			metrics.ObserveUpload(a.mediaType, metrics.UploadFailed, a.file.Size)
			slog.Error("upload write failed", "original_name", a.file.Name, "written", len(out), "error", err)
			return nil, err
		}
		metrics.ObserveUpload(a.mediaType, metrics.UploadOK, uf.Size)
		out = append(out, uf)
	}
	return out, nil
}

func (s *UploadServiceImpl) validate(f UploadFile) (accepted, error) {
	a := accepted{file: f}
	if f.Size > model.MaxUploadSize {
		return a, &model.ValidationError{Msg: fmt.Sprintf("File size exceeds %dMB limit", model.MaxUploadSize>>20)}
	}

	mt, err := declaredType(f)
	if err != nil {
		return a, err
	}
	a.mimeType = mt
	switch {
	case slices.Contains(model.SupportedImageTypes, mt):
		a.mediaType = model.MediaTypeImage
	case slices.Contains(model.SupportedVideoTypes, mt):
		a.mediaType = model.MediaTypeVideo
	default:
		supported := append(slices.Clone(model.SupportedImageTypes), model.SupportedVideoTypes...)
		return a, &model.ValidationError{Msg: "Unsupported file type. Supported types: " + strings.Join(supported, ", ")}
	}
	return a, nil
}

// declaredType returns the part's media type, sniffing the content when the
// client sent none or a generic binary type.
func declaredType(f UploadFile) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(f.ContentType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	if mt != "" && mt != "application/octet-stream" {
		return mt, nil
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	detected, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", fmt.Errorf("sniff %s: %w", f.Name, err)
	}
	parsed, _, _ := mime.ParseMediaType(detected.String())
	return parsed, nil
}

func (s *UploadServiceImpl) write(ctx context.Context, a accepted) (*model.UploadedFile, error) {
	rc, err := a.file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.file.Name, err)
	}
	defer rc.Close()

	now := s.now()
	name := uniqueFilename(a.file.Name, now, s.suffix())
	url, err := s.files.Save(ctx, name, rc, a.mimeType)
	if err != nil {
		return nil, err
	}
	return &model.UploadedFile{
		OriginalName: a.file.Name,
		Filename:     name,
		URL:          url,
		Type:         a.mediaType,
		Size:         a.file.Size,
		MimeType:     a.mimeType,
		UploadedAt:   now.UTC(),
	}, nil
}

// uniqueFilename builds "{base}_{unixMillis}_{suffix}{ext}" from the last path
// element of original.
func uniqueFilename(original string, now time.Time, suffix string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := filepath.Ext(base)
	stem := sanitizeStem(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "file"
	}
	if ext = sanitizeStem(strings.ToLower(ext)); ext != "" {
		ext = "." + ext
	}
	return fmt.Sprintf("%s_%d_%s%s", stem, now.UnixMilli(), suffix, ext)
}

// sanitizeStem keeps letters, digits, dot, dash and underscore.
func sanitizeStem(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), ".")
}

func randomSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
