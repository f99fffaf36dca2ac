package model

import (
	"strings"
	"time"
)

// Background defaults applied when a section is configured for the first time.
const (
	DefaultOpacity      = 0.5
	DefaultOverlayColor = "#000000"
	DefaultPosition     = "center"
)

// DefaultBackgroundImage is what a section shows when it has no active configuration.
const DefaultBackgroundImage = "/placeholder.svg?height=1080&width=1920"

// Sections lists the page regions that can carry a background.
var Sections = []string{"hero", "services", "packages", "gallery", "testimonials", "contact"}

// Positions lists the accepted values of Background.Position.
var Positions = []string{
	"center", "top", "bottom", "left", "right",
	"top-left", "top-right", "bottom-left", "bottom-right",
}

// Background configures the media behind one page section.
// MediaID is a lookup-only reference; Media is filled in on reads when it resolves.
type Background struct {
	ID               string    `json:"id"`
	Section          string    `json:"section"`
	MediaType        string    `json:"mediaType"`
	MediaURL         string    `json:"mediaUrl"`
	MediaID          *string   `json:"mediaId"`
	Media            *Media    `json:"media,omitempty"`
	FallbackImageURL *string   `json:"fallbackImageUrl"`
	Opacity          float64   `json:"opacity"`
	OverlayColor     string    `json:"overlayColor"`
	Position         string    `json:"position"`
	IsActive         bool      `json:"isActive"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewBackground returns a Background for section carrying the documented defaults.
func NewBackground(section string) *Background {
	return &Background{
		Section:      section,
		Opacity:      DefaultOpacity,
		OverlayColor: DefaultOverlayColor,
		Position:     DefaultPosition,
		IsActive:     true,
	}
}

// Validate checks enumerations and the opacity range.
func (b *Background) Validate() error {
	if b.Section == "" {
		return required("section")
	}
	if !ValidSection(b.Section) {
		return Invalid("section", "must be one of %s", strings.Join(Sections, ", "))
	}
	if b.MediaType == "" {
		return required("mediaType")
	}
	if !oneOf(b.MediaType, MediaTypes) {
		return Invalid("mediaType", "must be one of %s", strings.Join(MediaTypes, ", "))
	}
	if strings.TrimSpace(b.MediaURL) == "" {
		return required("mediaUrl")
	}
	if b.Opacity < 0 || b.Opacity > 1 {
		return Invalid("opacity", "must be between 0 and 1")
	}
	if strings.TrimSpace(b.OverlayColor) == "" {
		return required("overlayColor")
	}
	if !oneOf(b.Position, Positions) {
		return Invalid("position", "must be one of %s", strings.Join(Positions, ", "))
	}
	return nil
}

// ValidSection reports whether s names a configurable page section.
func ValidSection(s string) bool {
	return oneOf(s, Sections)
}

// BackgroundPatch carries the fields of an upsert or partial update.
// Nil fields keep their previous value. An empty MediaID or FallbackImageURL clears it.
type BackgroundPatch struct {
	Section          *string  `json:"section"`
	MediaType        *string  `json:"mediaType"`
	MediaURL         *string  `json:"mediaUrl"`
	MediaID          *string  `json:"mediaId"`
	FallbackImageURL *string  `json:"fallbackImageUrl"`
	Opacity          *float64 `json:"opacity"`
	OverlayColor     *string  `json:"overlayColor"`
	Position         *string  `json:"position"`
	IsActive         *bool    `json:"isActive"`
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
}

// Apply copies the non-nil fields of p onto b.
func (p BackgroundPatch) Apply(b *Background) {
	if p.Section != nil {
		b.Section = *p.Section
	}
	if p.MediaType != nil {
		b.MediaType = *p.MediaType
	}
	if p.MediaURL != nil {
		b.MediaURL = *p.MediaURL
	}
	if p.MediaID != nil {
		b.MediaID = optional(*p.MediaID)
		b.Media = nil
	}
	if p.FallbackImageURL != nil {
		b.FallbackImageURL = optional(*p.FallbackImageURL)
	}
	if p.Opacity != nil {
		b.Opacity = *p.Opacity
	}
	if p.OverlayColor != nil {
		b.OverlayColor = *p.OverlayColor
	}
	if p.Position != nil {
		b.Position = *p.Position
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
}

// ResolvedBackground is what the site renders for a section.
type ResolvedBackground struct {
	Section          string  `json:"section"`
	MediaType        string  `json:"mediaType"`
	MediaURL         string  `json:"mediaUrl"`
	FallbackImageURL *string `json:"fallbackImageUrl,omitempty"`
	Opacity          float64 `json:"opacity"`
	OverlayColor     string  `json:"overlayColor"`
	Position         string  `json:"position"`
	IsDefault        bool    `json:"isDefault"`
}

// DefaultResolvedBackground is the fallback for a section without an active configuration.
func DefaultResolvedBackground(section string) *ResolvedBackground {
	return &ResolvedBackground{
		Section:      section,
		MediaType:    MediaTypeImage,
		MediaURL:     DefaultBackgroundImage,
		Opacity:      DefaultOpacity,
		OverlayColor: DefaultOverlayColor,
		Position:     DefaultPosition,
		IsDefault:    true,
	}
}

// Resolve returns the rendering view of an active configuration.
func (b *Background) Resolve() *ResolvedBackground {
	return &ResolvedBackground{
		Section:          b.Section,
		MediaType:        b.MediaType,
		MediaURL:         b.MediaURL,
		FallbackImageURL: b.FallbackImageURL,
		Opacity:          b.Opacity,
		OverlayColor:     b.OverlayColor,
		Position:         b.Position,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
