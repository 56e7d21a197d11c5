package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
	"clientdesk/internal/service"
)

// MockClientService is a mock implementation of service.ClientService.
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) List(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, in service.ClientInput) (*model.Client, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, id uint, in service.ClientInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockClientService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientService) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientService) BulkUpdateCategory(ctx context.Context, ids []uint, category string) (int64, error) {
	args := m.Called(ctx, ids, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *MockClientService) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryStat), args.Error(1)
}

func (m *MockClientService) AddCategory(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockClientService) DeleteCategory(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestClientHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("Create", mock.Anything, service.ClientInput{Name: "Acme", Category: "Enterprise"}).
			Return(&model.Client{ID: 1, Name: "Acme", Category: "Enterprise"}, nil)

		c, rec := newJSONContext(http.MethodPost, "/api/clients", `{"name":"Acme","category":"Enterprise"}`)
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"client added successfully"}`, rec.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, errs.NewValidation("name and category are required"))

		c, rec := newJSONContext(http.MethodPost, "/api/clients", `{"name":"Acme"}`)
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"name and category are required"}`, rec.Body.String())
	})
}

func TestClientHandler_Get(t *testing.T) {
	t.Run("unknown id maps to 404", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("Get", mock.Anything, uint(42)).Return(nil, errs.ErrNotFound)

		c, rec := newJSONContext(http.MethodGet, "/api/clients/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodGet, "/api/clients/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		h := NewClientHandler(new(MockClientService), zerolog.Nop())

		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClientHandler_BulkDelete(t *testing.T) {
	t.Run("reports deleted count", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("BulkDelete", mock.Anything, []uint{1, 2, 3}).Return(int64(3), nil)

		c, rec := newJSONContext(http.MethodPost, "/api/clients/bulk-delete", `{"client_ids":[1,2,3]}`)
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.BulkDelete(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"successfully deleted 3 clients"}`, rec.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty selection maps to 400", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("BulkDelete", mock.Anything, mock.Anything).Return(int64(0), errs.ErrEmptySelection)

		c, rec := newJSONContext(http.MethodPost, "/api/clients/bulk-delete", `{"client_ids":[]}`)
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.BulkDelete(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"no clients selected"}`, rec.Body.String())
	})
}

func TestClientHandler_Import(t *testing.T) {
	newUpload := func(t *testing.T, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
		t.Helper()
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/clients/import", &body)
		req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("csv upload accepted", func(t *testing.T) {
		mockSvc := new(MockClientService)
		mockSvc.On("ImportCSV", mock.Anything, mock.Anything).Return(2, nil)

		c, rec := newUpload(t, "clients.csv", "name,category\nAcme,Enterprise\nGlobex,SMB\n")
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.Import(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"successfully imported 2 clients"}`, rec.Body.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-csv upload rejected", func(t *testing.T) {
		mockSvc := new(MockClientService)

		c, rec := newUpload(t, "clients.xlsx", "not a csv")
		h := NewClientHandler(mockSvc, zerolog.Nop())

		require.NoError(t, h.Import(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "ImportCSV")
	})

	t.Run("missing file rejected", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodPost, "/api/clients/import", "")
		h := NewClientHandler(new(MockClientService), zerolog.Nop())

		require.NoError(t, h.Import(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
