package handler

import (
	"net/http"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/service"
)

// InquiryHandler handles contact-form submission and admin inquiry management.
type InquiryHandler struct {
	inquiries service.InquiryService
}

// NewInquiryHandler creates an InquiryHandler with the given service.
func NewInquiryHandler(inquiries service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Submit handles POST /api/contact.
// name, email, phone and message are required; status is always "new".
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.InquiryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	q, err := h.inquiries.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "submit")
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Message: "Inquiry submitted successfully", ID: q.ID})
}

// List handles GET /api/contact (admin). Optional query param: status.
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.InquiryListOptions{Status: r.URL.Query().Get("status")}
	items, err := h.inquiries.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err, "list_inquiries")
		return
	}
	// Return [] not null for empty lists
	if items == nil {
		items = []*model.Inquiry{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/contact/{id}.
func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	q, err := h.inquiries.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get_inquiry", "inquiry_id", id)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Update handles PUT /api/contact/{id}. Only status and notes are accepted.
func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch model.InquiryPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	q, err := h.inquiries.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "update_inquiry", "inquiry_id", id)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /api/contact/{id}.
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.inquiries.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete_inquiry", "inquiry_id", id)
		return
	}
	writeMessage(w, http.StatusOK, "Inquiry deleted successfully")
}
