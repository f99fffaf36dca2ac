package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/seekers/backend/internal/model"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func memFile(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func newTestUploadService(files *mockStorage) *UploadServiceImpl {
	svc := NewUploadService(files)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	n := 0
	svc.suffix = func() string {
		n++
		return strings.Repeat(string(rune('a'+n-1)), 12)
	}
	return svc
}

func TestUploadService_Upload_WritesFiles(t *testing.T) {
	files := newMockStorage()
	svc := newTestUploadService(files)

	out, err := svc.Upload(context.Background(), []UploadFile{
		memFile("Stage Lights.JPG", "image/jpeg", []byte("jpeg-bytes")),
		memFile("intro.mp4", "video/mp4", []byte("mp4-bytes")),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}

	img := out[0]
	if img.Filename != "Stage_Lights_1700000000000_aaaaaaaaaaaa.jpg" {
		t.Errorf("filename = %q", img.Filename)
	}
	if img.URL != "/uploads/"+img.Filename || img.Type != model.MediaTypeImage || img.OriginalName != "Stage Lights.JPG" {
		t.Errorf("unexpected image result: %+v", img)
	}
	if out[1].Type != model.MediaTypeVideo || out[1].MimeType != "video/mp4" {
		t.Errorf("unexpected video result: %+v", out[1])
	}
	if string(files.saved[img.Filename]) != "jpeg-bytes" {
		t.Errorf("stored content = %q", files.saved[img.Filename])
	}
}

func TestUploadService_Upload_SameNameGetsDistinctFilenames(t *testing.T) {
	files := newMockStorage()
	svc := newTestUploadService(files)

	out, err := svc.Upload(context.Background(), []UploadFile{
		memFile("a.png", "image/png", pngHeader),
		memFile("a.png", "image/png", pngHeader),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if out[0].Filename == out[1].Filename {
		t.Errorf("expected distinct filenames, both %q", out[0].Filename)
	}
	if len(files.saved) != 2 {
		t.Errorf("expected 2 stored files, got %d", len(files.saved))
	}
}

func TestUploadService_Upload_ValidatesAllBeforeWriting(t *testing.T) {
	files := newMockStorage()
	svc := newTestUploadService(files)

	_, err := svc.Upload(context.Background(), []UploadFile{
		memFile("ok.jpg", "image/jpeg", []byte("x")),
		memFile("notes.txt", "text/plain", []byte("hello")),
	})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// クライアントにはファイル名を含めずメッセージのみ返す
	if ve.Field != "" || !strings.HasPrefix(ve.Error(), "Unsupported file type. Supported types: ") {
		t.Errorf("unexpected error: %+v", ve)
	}
	if len(files.saved) != 0 {
		t.Errorf("no file should be written, got %d", len(files.saved))
	}
}

func TestUploadService_Upload_TooLarge(t *testing.T) {
	files := newMockStorage()
	svc := newTestUploadService(files)

	big := memFile("huge.mp4", "video/mp4", nil)
	big.Size = model.MaxUploadSize + 1
	_, err := svc.Upload(context.Background(), []UploadFile{big})
	var ve *model.ValidationError
	if !errors.As(err, &ve) || ve.Error() != "File size exceeds 50MB limit" {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestUploadService_Upload_NoFiles(t *testing.T) {
	_, err := newTestUploadService(newMockStorage()).Upload(context.Background(), nil)
	var ve *model.ValidationError
	if !errors.As(err, &ve) || ve.Error() != "No files uploaded" {
		t.Fatalf("expected 'No files uploaded', got %v", err)
	}
}

func TestUploadService_Upload_SniffsOctetStream(t *testing.T) {
	files := newMockStorage()
	svc := newTestUploadService(files)

	out, err := svc.Upload(context.Background(), []UploadFile{
		memFile("photo", "application/octet-stream", pngHeader),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if out[0].MimeType != "image/png" || out[0].Type != model.MediaTypeImage {
		t.Errorf("unexpected sniff result: %+v", out[0])
	}
	if stored := files.saved[out[0].Filename]; !bytes.Equal(stored, pngHeader) {
		t.Errorf("stored content should be the full file, got %d bytes", len(stored))
	}
}

func TestUploadService_Upload_StorageFailure(t *testing.T) {
	files := newMockStorage()
	files.saveErr = func(key string) error {
		if strings.HasPrefix(key, "second") {
			return errors.New("disk full")
		}
		return nil
	}
	svc := newTestUploadService(files)

	_, err := svc.Upload(context.Background(), []UploadFile{
		memFile("first.jpg", "image/jpeg", []byte("1")),
		memFile("second.jpg", "image/jpeg", []byte("2")),
	})
	if err == nil {
		t.Fatal("expected storage error")
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		t.Errorf("storage failure must not look like a validation error: %v", err)
	}
	if len(files.saved) != 1 {
		t.Errorf("earlier file stays written, got %d saved", len(files.saved))
	}
}

func TestUniqueFilename(t *testing.T) {
	now := time.UnixMilli(42)
	cases := []struct {
		original, want string
	}{
		{"party.jpg", "party_42_abc.jpg"},
		{"../../etc/passwd", "passwd_42_abc"},
		{`C:\Users\me\My Photo.PNG`, "My_Photo_42_abc.png"},
		{".hidden", "file_42_abc.hidden"},
		{"日本.mp4", "file_42_abc.mp4"},
	}
	for _, tc := range cases {
		if got := uniqueFilename(tc.original, now, "abc"); got != tc.want {
			t.Errorf("uniqueFilename(%q) = %q, want %q", tc.original, got, tc.want)
		}
	}
}
