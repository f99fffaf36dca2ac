package model

import (
	"strings"
	"time"
)

// DefaultPackageImage is used when a package is created without an image.
const DefaultPackageImage = "/placeholder.svg?height=300&width=400"

// Package is a bookable service bundle shown on the public pricing section.
type Package struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Features    []string  `json:"features"`
	Image       string    `json:"image"`
	Popular     bool      `json:"popular"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplyDefaults fills the image placeholder and normalises a nil feature list.
func (p *Package) ApplyDefaults() {
	if strings.TrimSpace(p.Image) == "" {
		p.Image = DefaultPackageImage
	}
	if p.Features == nil {
		p.Features = []string{}
	}
}

// Validate checks the required fields.
func (p *Package) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return required("title")
	}
	if strings.TrimSpace(p.Description) == "" {
		return required("description")
	}
	if p.Price < 0 {
		return Invalid("price", "must not be negative")
	}
	return nil
}

// PackageListOptions controls which packages a listing returns.
type PackageListOptions struct {
	// IncludeInactive returns packages with Active=false as well.
	IncludeInactive bool
}

// PackageInput is the create payload. Popular and Active are pointers so an
// omitted field falls back to its default.
type PackageInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
	Popular     *bool    `json:"popular"`
	Active      *bool    `json:"active"`
}

// NewPackage builds a Package from in with defaults applied.
func NewPackage(in PackageInput) *Package {
	p := &Package{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Features:    cleanFeatures(in.Features),
		Image:       in.Image,
		Active:      true,
	}
	if in.Popular != nil {
		p.Popular = *in.Popular
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.ApplyDefaults()
	return p
}

// PackagePatch holds the fields an edit may change.
type PackagePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Features    *[]string `json:"features"`
	Image       *string   `json:"image"`
	Popular     *bool     `json:"popular"`
	Active      *bool     `json:"active"`
}

// Apply copies the non-nil fields of p onto pkg.
func (p PackagePatch) Apply(pkg *Package) {
	if p.Title != nil {
		pkg.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		pkg.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		pkg.Price = *p.Price
	}
	if p.Features != nil {
		pkg.Features = cleanFeatures(*p.Features)
	}
	if p.Image != nil {
		pkg.Image = *p.Image
	}
	if p.Popular != nil {
		pkg.Popular = *p.Popular
	}
	if p.Active != nil {
		pkg.Active = *p.Active
	}
	pkg.ApplyDefaults()
}

// cleanFeatures drops blank entries while keeping order.
func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
