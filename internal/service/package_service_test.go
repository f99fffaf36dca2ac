package service

import (
	"context"
	"errors"
	"testing"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

func TestPackageService_Create_AppliesDefaults(t *testing.T) {
	svc := NewPackageService(&memPackageRepo{})

	p, err := svc.Create(context.Background(), model.PackageInput{
		Title:       "  Basic  ",
		Description: "DJ for four hours",
		Price:       25000,
		Features:    []string{"DJ", " ", "Speakers"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !p.Active || p.Popular {
		t.Errorf("expected active=true popular=false, got %+v", p)
	}
	if p.Title != "Basic" || p.Image != model.DefaultPackageImage {
		t.Errorf("unexpected title/image: %q %q", p.Title, p.Image)
	}
	if len(p.Features) != 2 {
		t.Errorf("expected blank feature dropped, got %v", p.Features)
	}
}

func TestPackageService_Create_Validation(t *testing.T) {
	svc := NewPackageService(&memPackageRepo{})
	cases := []struct {
		name  string
		in    model.PackageInput
		field string
	}{
		{"missing title", model.PackageInput{Description: "d", Price: 1}, "title"},
		{"missing description", model.PackageInput{Title: "t", Price: 1}, "description"},
		{"negative price", model.PackageInput{Title: "t", Description: "d", Price: -1}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			var ve *model.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Errorf("expected %s validation error, got %v", tc.field, err)
			}
		})
	}
}

func TestPackageService_List_OrderAndInactive(t *testing.T) {
	repo := &memPackageRepo{}
	svc := NewPackageService(repo)
	ctx := context.Background()

	no := false
	yes := true
	_, _ = svc.Create(ctx, model.PackageInput{Title: "Old", Description: "d", Price: 1})
	_, _ = svc.Create(ctx, model.PackageInput{Title: "Hidden", Description: "d", Price: 1, Active: &no})
	_, _ = svc.Create(ctx, model.PackageInput{Title: "Star", Description: "d", Price: 1, Popular: &yes})
	_, _ = svc.Create(ctx, model.PackageInput{Title: "New", Description: "d", Price: 1})

	public, err := svc.List(ctx, model.PackageListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var titles []string
	for _, p := range public {
		titles = append(titles, p.Title)
	}
	want := []string{"Star", "New", "Old"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles = %v, want %v", titles, want)
			break
		}
	}

	all, _ := svc.List(ctx, model.PackageListOptions{IncludeInactive: true})
	if len(all) != 4 {
		t.Errorf("expected 4 with inactive, got %d", len(all))
	}
}

func TestPackageService_Update(t *testing.T) {
	svc := NewPackageService(&memPackageRepo{})
	ctx := context.Background()
	p, _ := svc.Create(ctx, model.PackageInput{Title: "Basic", Description: "d", Price: 100})

	price := 120.0
	empty := ""
	got, err := svc.Update(ctx, p.ID, model.PackagePatch{Price: &price, Image: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Price != 120 || got.Title != "Basic" || got.Image != model.DefaultPackageImage {
		t.Errorf("unexpected result: %+v", got)
	}

	blank := " "
	if _, err := svc.Update(ctx, p.ID, model.PackagePatch{Title: &blank}); err == nil {
		t.Error("expected validation error for blank title")
	}
	if _, err := svc.Update(ctx, "missing", model.PackagePatch{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPackageService_Delete(t *testing.T) {
	svc := NewPackageService(&memPackageRepo{})
	ctx := context.Background()
	p, _ := svc.Create(ctx, model.PackageInput{Title: "Basic", Description: "d"})

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
