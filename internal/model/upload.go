package model

import "time"

// MaxUploadSize is the per-file ceiling for uploads (50 MiB).
const MaxUploadSize int64 = 50 << 20

// SupportedImageTypes are the declared MIME types accepted as images.
var SupportedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/pjpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

// SupportedVideoTypes are the declared MIME types accepted as videos.
var SupportedVideoTypes = []string{
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"video/x-msvideo",
	"video/webm",
}

// UploadedFile describes a file written by the upload endpoint. Clients use it
// to create the matching Media record.
type UploadedFile struct {
	OriginalName string    `json:"originalName"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadInfo is returned by GET /api/upload.
type UploadInfo struct {
	SupportedTypes struct {
		Images []string `json:"images"`
		Videos []string `json:"videos"`
	} `json:"supportedTypes"`
	MaxFileSize   int64 `json:"maxFileSize"`
	MaxFileSizeMB int64 `json:"maxFileSizeMB"`
}

// NewUploadInfo reports the current upload limits.
func NewUploadInfo() UploadInfo {
	var info UploadInfo
	info.SupportedTypes.Images = SupportedImageTypes
	info.SupportedTypes.Videos = SupportedVideoTypes
	info.MaxFileSize = MaxUploadSize
	info.MaxFileSizeMB = MaxUploadSize >> 20
	return info
}
