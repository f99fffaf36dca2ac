package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
	"github.com/seekers/backend/internal/storage"
)

type mockUploadService struct {
	uploadFunc func(ctx context.Context, files []service.UploadFile) ([]*model.UploadedFile, error)
}

func (m *mockUploadService) Upload(ctx context.Context, files []service.UploadFile) ([]*model.UploadedFile, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, files)
	}
	return nil, nil
}

type part struct {
	name, contentType string
	data              []byte
}

func multipartRequest(t *testing.T, field string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+p.name+`"`)
		hdr.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = w.Write(p.data)
	}
	_ = mw.Close()
	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	var got []service.UploadFile
	h := NewUploadHandler(&mockUploadService{
		uploadFunc: func(ctx context.Context, files []service.UploadFile) ([]*model.UploadedFile, error) {
			got = files
			out := make([]*model.UploadedFile, 0, len(files))
			for _, f := range files {
				rc, err := f.Open()
				if err != nil {
					return nil, err
				}
				b, _ := io.ReadAll(rc)
				rc.Close()
				out = append(out, &model.UploadedFile{OriginalName: f.Name, Size: int64(len(b)), MimeType: f.ContentType})
			}
			return out, nil
		},
	}, 10<<20)

	req := multipartRequest(t, "files",
		part{"a.jpg", "image/jpeg", []byte("aaaa")},
		part{"a.jpg", "image/jpeg", []byte("bb")},
	)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if len(got) != 2 || got[0].ContentType != "image/jpeg" || got[0].Size != 4 {
		t.Errorf("unexpected files passed to service: %+v", got)
	}
	var resp uploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Files uploaded successfully" || len(resp.Files) != 2 || resp.Files[1].Size != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUploadHandler_Upload_NoFiles(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{
		uploadFunc: func(ctx context.Context, files []service.UploadFile) ([]*model.UploadedFile, error) {
			if len(files) != 0 {
				t.Errorf("expected no files, got %d", len(files))
			}
			return nil, &model.ValidationError{Msg: "No files uploaded"}
		},
	}, 10<<20)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "other", part{"a.jpg", "image/jpeg", []byte("x")}))

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "No files uploaded" {
		t.Errorf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestUploadHandler_Upload_NotMultipart(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{}, 10<<20)
	req := httptest.NewRequest("POST", "/api/upload", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUploadHandler_Upload_RequestTooLarge(t *testing.T) {
	called := false
	h := NewUploadHandler(&mockUploadService{
		uploadFunc: func(ctx context.Context, files []service.UploadFile) ([]*model.UploadedFile, error) {
			called = true
			return nil, nil
		},
	}, 1024)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "files", part{"big.mp4", "video/mp4", bytes.Repeat([]byte("x"), 4096)}))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be called for an oversized request")
	}
}

func TestUploadHandler_Info(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{}, 10<<20)
	rec := httptest.NewRecorder()
	h.Info(rec, httptest.NewRequest("GET", "/api/upload", nil))

	var info model.UploadInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.MaxFileSizeMB != 50 || len(info.SupportedTypes.Images) == 0 || len(info.SupportedTypes.Videos) == 0 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestUploadHandler_Upload_RejectedFile_MessageOmitsFilename(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewUploadService(storage.NewLocalStorage(dir, "/uploads"))
	h := NewUploadHandler(svc, 10<<20)

	req := multipartRequest(t, "files",
		part{name: "ok.jpg", contentType: "image/jpeg", data: []byte("jpeg")},
		part{name: "bad.txt", contentType: "text/plain", data: []byte("hello")},
	)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	msg := errorCode(t, rec)
	if !strings.HasPrefix(msg, "Unsupported file type. Supported types: ") || strings.Contains(msg, "bad.txt") {
		t.Errorf("error = %q, want bare message without filename", msg)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected zero files written, got %d", len(entries))
	}
}
