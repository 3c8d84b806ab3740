package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books?q=&sort_by=&sort_order=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		Search:    query.Get("q"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	books, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{"count": len(books)})
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", nil)
		return
	}

	if issues := ValidateStruct(req); issues != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid create request", toErrorDetails(issues))
		return
	}

	book, err := h.service.CreateBook(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, book)
}

// CreateBulk handles POST /books/bulk
func (h *HTTPHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be a JSON array", nil)
		return
	}

	books, err := h.service.CreateBooks(r.Context(), reqs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, books)
}

// TotalPrice handles GET /books/total-price
func (h *HTTPHandler) TotalPrice(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalPrice(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]interface{}{"total_price": total}, nil)
}

// SortedByPublisher handles GET /books/sorted-by-publisher.
// With ?source=view the rows come from the pre-sorted database view.
func (h *HTTPHandler) SortedByPublisher(w http.ResponseWriter, r *http.Request) {
	fromView := r.URL.Query().Get("source") == "view"

	books, err := h.service.SortedByPublisher(r.Context(), fromView)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{"count": len(books)})
}

// SortedByAuthor handles GET /books/sorted-by-author.
func (h *HTTPHandler) SortedByAuthor(w http.ResponseWriter, r *http.Request) {
	fromView := r.URL.Query().Get("source") == "view"

	books, err := h.service.SortedByAuthor(r.Context(), fromView)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{"count": len(books)})
}

// Citation handles GET /books/{id}/citation?style=
// A missing book or a book without author/publisher yields a null payload;
// an unsupported style yields the fixed explanatory message. Both are
// successful responses.
func (h *HTTPHandler) Citation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "book id must be an integer", nil)
		return
	}

	citation, err := h.service.Citation(r.Context(), id, r.URL.Query().Get("style"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	if citation == nil {
		httpx.JSONSuccess(w, r, nil, nil)
		return
	}
	httpx.JSONSuccess(w, r, *citation, nil)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrEmptyTitle) {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
}

func toErrorDetails(issues []ValidationIssue) []httpx.ErrorDetail {
	details := make([]httpx.ErrorDetail, len(issues))
	for i, issue := range issues {
		details[i] = httpx.ErrorDetail{Field: issue.Field, Message: issue.Message}
	}
	return details
}
