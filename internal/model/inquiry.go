package model

import (
	"net/mail"
	"strings"
	"time"
)

// MaxInquiryMessageLength caps the message body in characters.
const MaxInquiryMessageLength = 5000

// Inquiry statuses, in lifecycle order.
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusQuoted    = "quoted"
	InquiryStatusBooked    = "booked"
	InquiryStatusCompleted = "completed"
)

// InquiryStatuses lists the accepted values of Inquiry.Status.
var InquiryStatuses = []string{
	InquiryStatusNew,
	InquiryStatusContacted,
	InquiryStatusQuoted,
	InquiryStatusBooked,
	InquiryStatusCompleted,
}

// DefaultEventType is assigned when a submission names no event type.
const DefaultEventType = "Other"

// EventTypes lists the accepted values of Inquiry.EventType.
var EventTypes = []string{"Wedding", "Corporate", "Party", "Concert", "Festival", DefaultEventType}

// Inquiry is a contact-form submission from a prospective client.
type Inquiry struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	EventType string     `json:"eventType"`
	EventDate *time.Time `json:"eventDate"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ApplyDefaults fills eventType and status when they are empty.
func (q *Inquiry) ApplyDefaults() {
	if q.EventType == "" {
		q.EventType = DefaultEventType
	}
	if q.Status == "" {
		q.Status = InquiryStatusNew
	}
}

// Validate checks required fields and enumerations.
func (q *Inquiry) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return required("name")
	}
	if strings.TrimSpace(q.Email) == "" {
		return required("email")
	}
	if _, err := mail.ParseAddress(q.Email); err != nil {
		return Invalid("email", "is not a valid address")
	}
	if strings.TrimSpace(q.Phone) == "" {
		return required("phone")
	}
	if strings.TrimSpace(q.Message) == "" {
		return required("message")
	}
	if len([]rune(q.Message)) > MaxInquiryMessageLength {
		return Invalid("message", "must be at most %d characters", MaxInquiryMessageLength)
	}
	if !oneOf(q.EventType, EventTypes) {
		return Invalid("eventType", "must be one of %s", strings.Join(EventTypes, ", "))
	}
	if !ValidInquiryStatus(q.Status) {
		return Invalid("status", "must be one of %s", strings.Join(InquiryStatuses, ", "))
	}
	return nil
}

// ValidInquiryStatus reports whether s is a known status.
func ValidInquiryStatus(s string) bool {
	return oneOf(s, InquiryStatuses)
}

// InquiryInput is the public submission payload.
type InquiryInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventType string `json:"eventType"`
	EventDate string `json:"eventDate"`
	Message   string `json:"message"`
}

// NewInquiry builds an Inquiry from a submission. Status and notes are never
// taken from the submitter.
func NewInquiry(in InquiryInput) (*Inquiry, error) {
	q := &Inquiry{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		EventType: strings.TrimSpace(in.EventType),
		Message:   in.Message,
	}
	if in.EventDate != "" {
		d, err := ParseEventDate(in.EventDate)
		if err != nil {
			return nil, err
		}
		q.EventDate = d
	}
	q.ApplyDefaults()
	return q, nil
}

// ParseEventDate accepts RFC3339 or YYYY-MM-DD.
func ParseEventDate(s string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, Invalid("eventDate", "must be RFC3339 or YYYY-MM-DD")
}

// InquiryPatch holds the admin-editable fields.
type InquiryPatch struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Apply copies the non-nil fields of p onto q.
func (p InquiryPatch) Apply(q *Inquiry) {
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.Notes != nil {
		q.Notes = *p.Notes
	}
}

// InquiryListOptions filters an admin listing. Empty Status or "all" matches every inquiry.
type InquiryListOptions struct {
	Status string
}
