package model

import (
	"errors"
	"testing"
)

func TestNewBackground_Defaults(t *testing.T) {
	b := NewBackground("hero")
	if b.Opacity != 0.5 || b.OverlayColor != "#000000" || b.Position != "center" || !b.IsActive {
		t.Errorf("unexpected defaults: %+v", b)
	}
}

func TestBackground_Validate(t *testing.T) {
	valid := func() *Background {
		b := NewBackground("gallery")
		b.MediaType = MediaTypeImage
		b.MediaURL = "/uploads/g.jpg"
		return b
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid background rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Background)
		field  string
	}{
		{"unknown section", func(b *Background) { b.Section = "about" }, "section"},
		{"bad media type", func(b *Background) { b.MediaType = "audio" }, "mediaType"},
		{"blank url", func(b *Background) { b.MediaURL = "  " }, "mediaUrl"},
		{"negative opacity", func(b *Background) { b.Opacity = -0.1 }, "opacity"},
		{"opacity above one", func(b *Background) { b.Opacity = 1.01 }, "opacity"},
		{"blank overlay", func(b *Background) { b.OverlayColor = "" }, "overlayColor"},
		{"bad position", func(b *Background) { b.Position = "middle" }, "position"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid()
			tc.mutate(b)
			var ve *ValidationError
			if err := b.Validate(); !errors.As(err, &ve) || ve.Field != tc.field {
				t.Errorf("expected %s error, got %v", tc.field, err)
			}
		})
	}
}

func TestBackground_OpacityBoundsInclusive(t *testing.T) {
	for _, o := range []float64{0, 1} {
		b := NewBackground("hero")
		b.MediaType, b.MediaURL, b.Opacity = MediaTypeVideo, "/v.mp4", o
		if err := b.Validate(); err != nil {
			t.Errorf("opacity %v rejected: %v", o, err)
		}
	}
}

func TestBackgroundPatch_Apply(t *testing.T) {
	mediaID := "m1"
	b := NewBackground("hero")
	b.MediaID = &mediaID
	b.Media = &Media{ID: mediaID}
	b.Title = "Keep"

	empty := ""
	opacity := 0.9
	BackgroundPatch{MediaID: &empty, Opacity: &opacity}.Apply(b)
	if b.MediaID != nil || b.Media != nil {
		t.Errorf("empty mediaId should clear the reference: %+v", b)
	}
	if b.Opacity != 0.9 || b.Title != "Keep" {
		t.Errorf("unexpected patch result: %+v", b)
	}
}

func TestResolve(t *testing.T) {
	def := DefaultResolvedBackground("contact")
	if !def.IsDefault || def.MediaURL != DefaultBackgroundImage || def.Section != "contact" {
		t.Errorf("unexpected default: %+v", def)
	}

	b := NewBackground("hero")
	b.MediaType, b.MediaURL = MediaTypeVideo, "/v.mp4"
	r := b.Resolve()
	if r.IsDefault || r.MediaURL != "/v.mp4" || r.MediaType != MediaTypeVideo {
		t.Errorf("unexpected resolved: %+v", r)
	}
}
