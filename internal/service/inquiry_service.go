package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// InquiryService defines the business logic for contact-form inquiries.
type InquiryService interface {
	// Submit validates a public submission and stores it with status "new".
	Submit(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error)
	// List returns inquiries newest first, optionally filtered by status.
	List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error)
	Get(ctx context.Context, id string) (*model.Inquiry, error)
	// Update changes status and notes. Other fields are immutable for admins.
	Update(ctx context.Context, id string, patch model.InquiryPatch) (*model.Inquiry, error)
	Delete(ctx context.Context, id string) error
}

// inquiryServiceImpl is the production implementation of InquiryService.
type inquiryServiceImpl struct {
	repo repository.InquiryRepository
}

// NewInquiryService creates an InquiryService backed by the given repository.
func NewInquiryService(repo repository.InquiryRepository) InquiryService {
	return &inquiryServiceImpl{repo: repo}
}

func (s *inquiryServiceImpl) Submit(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error) {
	q, err := model.NewInquiry(in)
	if err != nil {
		return nil, err
	}
	// Public submissions always start as new, whatever the client sent.
	q.Status = model.InquiryStatusNew
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	slog.Info("inquiry submitted", "inquiry_id", q.ID, "event_type", q.EventType)
	return q, nil
}

func (s *inquiryServiceImpl) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error) {
	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" && !model.ValidInquiryStatus(status) {
		return nil, model.Invalid("status", "must be one of %s", strings.Join(model.InquiryStatuses, ", "))
	}
	return s.repo.List(ctx, opts)
}

func (s *inquiryServiceImpl) Get(ctx context.Context, id string) (*model.Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *inquiryServiceImpl) Update(ctx context.Context, id string, patch model.InquiryPatch) (*model.Inquiry, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(q)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *inquiryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
