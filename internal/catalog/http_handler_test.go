package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo, zap.NewNop())), mockRepo
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().List(gomock.Any(), Query{}).Return([]Book{orwell1984()}, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
	})

	t.Run("search and sort params forwarded", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		want := Query{Search: "Orwell", SortBy: "title", SortOrder: "desc"}
		mockRepo.EXPECT().List(gomock.Any(), want).Return([]Book{}, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books?q=Orwell&sort_by=title&sort_order=desc", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no matches is an empty list, not an error", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]Book{}, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books?q=nothing", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, []interface{}{}, resp.Body["data"])
	})

	t.Run("storage error", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	req := CreateBookRequest{
		Title:     "1984",
		Price:     decimal.RequireFromString("9.99"),
		Publisher: PublisherRef{Name: "Secker"},
		Author:    AuthorRef{LastName: "Orwell", FirstName: "George"},
	}

	t.Run("created", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		created := orwell1984()
		created.Price = req.Price
		mockRepo.EXPECT().CreateBook(gomock.Any(), req).Return(created, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", req))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "1984", data["title"])
	})

	t.Run("missing title rejected without touching the repo", func(t *testing.T) {
		handler, _ := newTestHandler(t)
		bad := req
		bad.Title = ""

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", bad))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		r := httptest.NewRequest(http.MethodPost, "/books", nil)
		w := httptest.NewRecorder()
		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_CreateBulk(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		reqs := []CreateBookRequest{
			{Title: "Emma", Author: AuthorRef{LastName: "Austen", FirstName: "Jane"}},
			{Title: "Persuasion", Author: AuthorRef{LastName: "Austen", FirstName: "Jane"}},
		}
		mockRepo.EXPECT().CreateBooks(gomock.Any(), reqs).Return([]Book{{ID: 1}, {ID: 2}}, nil)

		w := httptest.NewRecorder()
		handler.CreateBulk(w, testutil.NewRequest(http.MethodPost, "/books/bulk", reqs))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("one empty title fails the whole batch", func(t *testing.T) {
		handler, _ := newTestHandler(t)
		reqs := []CreateBookRequest{
			{Title: "Emma"},
			{Title: ""},
		}

		w := httptest.NewRecorder()
		handler.CreateBulk(w, testutil.NewRequest(http.MethodPost, "/books/bulk", reqs))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_TotalPrice(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	mockRepo.EXPECT().TotalPrice(gomock.Any()).Return(decimal.RequireFromString("15.50"), nil)

	w := httptest.NewRecorder()
	handler.TotalPrice(w, testutil.NewRequest(http.MethodGet, "/books/total-price", nil))

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, "15.50", data["total_price"])
}

func TestHTTPHandler_Citation(t *testing.T) {
	t.Run("mla", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(orwell1984(), nil)

		r := testutil.NewRequest(http.MethodGet, "/books/1/citation?style=MLA", nil)
		r.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		handler.Citation(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, `Orwell,George. "1984", Secker.`, resp.Body["data"])
	})

	t.Run("missing book yields null data", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(Book{}, ErrNotFound)

		r := testutil.NewRequest(http.MethodGet, "/books/42/citation?style=mla", nil)
		r.SetPathValue("id", "42")
		w := httptest.NewRecorder()
		handler.Citation(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Nil(t, resp.Body["data"])
	})

	t.Run("unsupported style is still a 200", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(orwell1984(), nil)

		r := testutil.NewRequest(http.MethodGet, "/books/1/citation?style=klingon", nil)
		r.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		handler.Citation(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, UnsupportedStyleMessage, resp.Body["data"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		r := testutil.NewRequest(http.MethodGet, "/books/abc/citation?style=mla", nil)
		r.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		handler.Citation(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_SortedByPublisher(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().List(gomock.Any(), Query{}).Return([]Book{orwell1984()}, nil)

		w := httptest.NewRecorder()
		handler.SortedByPublisher(w, testutil.NewRequest(http.MethodGet, "/books/sorted-by-publisher", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("from view", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().ListSortedByPublisher(gomock.Any()).Return([]Book{orwell1984()}, nil)

		w := httptest.NewRecorder()
		handler.SortedByPublisher(w, testutil.NewRequest(http.MethodGet, "/books/sorted-by-publisher?source=view", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_SortedByAuthor(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	mockRepo.EXPECT().ListSortedByAuthor(gomock.Any()).Return([]Book{orwell1984()}, nil)

	w := httptest.NewRecorder()
	handler.SortedByAuthor(w, testutil.NewRequest(http.MethodGet, "/books/sorted-by-author?source=view", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
