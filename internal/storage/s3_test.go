package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockObjectAPI struct {
	putFunc    func(in *s3.PutObjectInput) error
	deleteFunc func(in *s3.DeleteObjectInput) error
}

func (m *mockObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putFunc != nil {
		if err := m.putFunc(in); err != nil {
			return nil, err
		}
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.deleteFunc != nil {
		if err := m.deleteFunc(in); err != nil {
			return nil, err
		}
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_Save(t *testing.T) {
	var gotKey, gotType, gotBody string
	api := &mockObjectAPI{putFunc: func(in *s3.PutObjectInput) error {
		gotKey, gotType = aws.ToString(in.Key), aws.ToString(in.ContentType)
		b, _ := io.ReadAll(in.Body)
		gotBody = string(b)
		return nil
	}}
	s := newS3Storage(api, "media", "https://cdn.example.com/media/")

	url, err := s.Save(context.Background(), "clip.mp4", strings.NewReader("video"), "video/mp4")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "https://cdn.example.com/media/clip.mp4" {
		t.Errorf("url = %q", url)
	}
	if gotKey != "clip.mp4" || gotType != "video/mp4" || gotBody != "video" {
		t.Errorf("put input = %q %q %q", gotKey, gotType, gotBody)
	}
}

func TestS3Storage_ErrorsWrapped(t *testing.T) {
	boom := errors.New("boom")
	api := &mockObjectAPI{
		putFunc:    func(*s3.PutObjectInput) error { return boom },
		deleteFunc: func(*s3.DeleteObjectInput) error { return boom },
	}
	s := newS3Storage(api, "media", "https://cdn.example.com")
	if _, err := s.Save(context.Background(), "a.jpg", strings.NewReader(""), ""); !errors.Is(err, boom) {
		t.Errorf("Save err = %v", err)
	}
	if err := s.Delete(context.Background(), "a.jpg"); !errors.Is(err, boom) {
		t.Errorf("Delete err = %v", err)
	}
	if err := s.Delete(context.Background(), "../a.jpg"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Delete traversal err = %v", err)
	}
}

func TestPublicBase(t *testing.T) {
	tests := []struct {
		opts S3Options
		want string
	}{
		{S3Options{PublicURL: "https://cdn.example.com"}, "https://cdn.example.com"},
		{S3Options{Endpoint: "http://minio:9000/"}, "http://minio:9000/uploads"},
		{S3Options{Region: "us-east-1"}, "https://uploads.s3.us-east-1.amazonaws.com"},
	}
	for _, tt := range tests {
		if got := publicBase(tt.opts, "uploads"); got != tt.want {
			t.Errorf("publicBase(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}
