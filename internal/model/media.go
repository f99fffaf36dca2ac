package model

import (
	"strings"
	"time"
)

// Media types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaTypes lists the accepted values of Media.Type and Background.MediaType.
var MediaTypes = []string{MediaTypeImage, MediaTypeVideo}

// MediaCategories lists the gallery categories a Media item can belong to.
var MediaCategories = []string{"Weddings", "Corporate", "Parties", "Concerts", "Festivals"}

// Media is an uploaded image or video shown in the gallery.
type Media struct {
	ID           string        `json:"id"`
	URL          string        `json:"url"`
	Type         string        `json:"type"`
	Category     string        `json:"category"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Filename     string        `json:"filename"`
	Size         int64         `json:"size"`
	MimeType     string        `json:"mimeType"`
	ThumbnailURL *string       `json:"thumbnailUrl"`
	Metadata     MediaMetadata `json:"metadata"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// MediaMetadata carries optional dimensions; Duration and FPS apply to videos.
type MediaMetadata struct {
	Width    *int     `json:"width,omitempty"`
	Height   *int     `json:"height,omitempty"`
	Duration string   `json:"duration,omitempty"`
	FPS      *float64 `json:"fps,omitempty"`
}

// IsPlaceholder reports whether the record points at a stand-in graphic
// that has no uploaded file behind it.
func (m *Media) IsPlaceholder() bool {
	return strings.Contains(m.Filename, "placeholder")
}

// Validate checks the required fields and enumerations.
func (m *Media) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return required("title")
	}
	if strings.TrimSpace(m.URL) == "" {
		return required("url")
	}
	if m.Type == "" {
		return required("type")
	}
	if !oneOf(m.Type, MediaTypes) {
		return Invalid("type", "must be one of %s", strings.Join(MediaTypes, ", "))
	}
	if m.Category == "" {
		return required("category")
	}
	if !ValidMediaCategory(m.Category) {
		return Invalid("category", "must be one of %s", strings.Join(MediaCategories, ", "))
	}
	if strings.TrimSpace(m.Filename) == "" {
		return required("filename")
	}
	if m.Size < 0 {
		return Invalid("size", "must not be negative")
	}
	if strings.TrimSpace(m.MimeType) == "" {
		return required("mimeType")
	}
	return nil
}

// ValidMediaCategory reports whether c is a known gallery category.
func ValidMediaCategory(c string) bool {
	return oneOf(c, MediaCategories)
}

// MediaFilter narrows a media listing. Empty fields match everything.
type MediaFilter struct {
	Category string
	Type     string
}

// MediaPatch holds the fields an edit may change. Nil means unchanged.
type MediaPatch struct {
	URL          *string        `json:"url"`
	Type         *string        `json:"type"`
	Category     *string        `json:"category"`
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Filename     *string        `json:"filename"`
	Size         *int64         `json:"size"`
	MimeType     *string        `json:"mimeType"`
	ThumbnailURL *string        `json:"thumbnailUrl"`
	Metadata     *MediaMetadata `json:"metadata"`
}

// Apply copies the non-nil fields of p onto m.
func (p MediaPatch) Apply(m *Media) {
	if p.URL != nil {
		m.URL = *p.URL
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Filename != nil {
		m.Filename = *p.Filename
	}
	if p.Size != nil {
		m.Size = *p.Size
	}
	if p.MimeType != nil {
		m.MimeType = *p.MimeType
	}
	if p.ThumbnailURL != nil {
		m.ThumbnailURL = p.ThumbnailURL
	}
	if p.Metadata != nil {
		m.Metadata = *p.Metadata
	}
}
