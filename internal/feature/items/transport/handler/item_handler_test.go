package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authentity "fleamarket_backend/internal/feature/auth/domain/entity"
	"fleamarket_backend/internal/feature/items/domain/entity"
	"fleamarket_backend/internal/feature/items/usecase"
	jwtmw "fleamarket_backend/internal/platform/jwt"
)

// mockItemsUsecase is a mock implementation of the ItemsUsecase interface.
type mockItemsUsecase struct {
	ListAllFunc      func(ctx context.Context) ([]entity.Item, error)
	GetByIDFunc      func(ctx context.Context, id string) (*entity.Item, error)
	CreateFunc       func(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error)
	UpdateStatusFunc func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error)
	DeleteFunc       func(ctx context.Context, id string, actingUser *authentity.User) error
}

func (m *mockItemsUsecase) ListAll(ctx context.Context) ([]entity.Item, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockItemsUsecase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, usecase.ErrItemNotFound
}

func (m *mockItemsUsecase) Create(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, price, description, owner)
	}
	return nil, nil
}

func (m *mockItemsUsecase) UpdateStatus(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, actingUser)
	}
	return nil, usecase.ErrItemNotFound
}

func (m *mockItemsUsecase) Delete(ctx context.Context, id string, actingUser *authentity.User) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, actingUser)
	}
	return usecase.ErrItemNotFound
}

var testUser = &authentity.User{
	ID:       "user-1",
	Username: "alice",
	Password: "$2a$10$hash",
	Status:   authentity.UserStatusFree,
}

// newTestRouter registers the item routes with a stand-in for the auth middleware
// that stores the given user in the context.
func newTestRouter(h *ItemHandler, user *authentity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items", h.List)
	r.GET("/items/:id", h.Get)

	protected := r.Group("/")
	if user != nil {
		protected.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUser, user)
		})
	}
	protected.POST("/items", h.Create)
	protected.PATCH("/items/:id/status", h.UpdateStatus)
	protected.DELETE("/items/:id", h.Delete)

	return r
}

func TestItemHandler_List(t *testing.T) {
	t.Run("hides the owner password hash", func(t *testing.T) {
		mockUC := &mockItemsUsecase{
			ListAllFunc: func(ctx context.Context) ([]entity.Item, error) {
				return []entity.Item{{
					ID:     "item-1",
					Name:   "PC",
					Price:  50000,
					Status: entity.ItemStatusOnSale,
					UserID: testUser.ID,
					User:   *testUser,
				}}, nil
			},
		}
		r := newTestRouter(NewItemHandler(mockUC), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/items", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "$2a$10$hash")
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
	})
}

func TestItemHandler_Get(t *testing.T) {
	t.Run("missing item maps to 404", func(t *testing.T) {
		r := newTestRouter(NewItemHandler(&mockItemsUsecase{}), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/items/no-such-id", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestItemHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		mockCreateFunc func(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error)
		expectedStatus int
	}{
		{
			name:        "success",
			requestBody: gin.H{"name": "PC", "price": 50000, "description": ""},
			mockCreateFunc: func(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error) {
				return &entity.Item{
					ID: "item-1", Name: name, Price: price, Description: description,
					Status: entity.ItemStatusOnSale, UserID: owner.ID, User: *owner,
				}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    gin.H{"price": 50000},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero price",
			requestBody:    gin.H{"name": "PC", "price": 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			requestBody:    gin.H{"name": "PC", "price": -100},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockItemsUsecase{CreateFunc: tt.mockCreateFunc}
			r := newTestRouter(NewItemHandler(mockUC), testUser)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/items", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var got gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "ON_SALE", got["status"])
				assert.Equal(t, testUser.ID, got["userId"])
			}
		})
	}

	t.Run("no authenticated user", func(t *testing.T) {
		r := newTestRouter(NewItemHandler(&mockItemsUsecase{}), nil)

		body, _ := json.Marshal(gin.H{"name": "PC", "price": 50000})
		req, _ := http.NewRequest(http.MethodPost, "/items", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestItemHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		mockFunc       func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error)
		expectedStatus int
	}{
		{
			name: "success: reserved",
			mockFunc: func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
				return &entity.Item{ID: id, Name: "PC", Status: entity.ItemStatusTrading, UserID: "user-2"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "own item maps to 400",
			mockFunc: func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
				return nil, usecase.ErrOwnItemPurchase
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "sold out maps to 400",
			mockFunc: func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
				return nil, usecase.ErrItemSoldOut
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "concurrent advance maps to 409",
			mockFunc: func(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
				return nil, usecase.ErrItemStateChanged
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing item maps to 404",
			mockFunc:       nil,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockItemsUsecase{UpdateStatusFunc: tt.mockFunc}
			r := newTestRouter(NewItemHandler(mockUC), testUser)

			req, _ := http.NewRequest(http.MethodPatch, "/items/item-1/status", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestItemHandler_Delete(t *testing.T) {
	t.Run("success returns 204", func(t *testing.T) {
		mockUC := &mockItemsUsecase{
			DeleteFunc: func(ctx context.Context, id string, actingUser *authentity.User) error {
				return nil
			},
		}
		r := newTestRouter(NewItemHandler(mockUC), testUser)

		req, _ := http.NewRequest(http.MethodDelete, "/items/item-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("non-owner maps to 400", func(t *testing.T) {
		mockUC := &mockItemsUsecase{
			DeleteFunc: func(ctx context.Context, id string, actingUser *authentity.User) error {
				return usecase.ErrNotItemOwner
			},
		}
		r := newTestRouter(NewItemHandler(mockUC), testUser)

		req, _ := http.NewRequest(http.MethodDelete, "/items/item-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing item maps to 404", func(t *testing.T) {
		r := newTestRouter(NewItemHandler(&mockItemsUsecase{}), testUser)

		req, _ := http.NewRequest(http.MethodDelete, "/items/no-such-id", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
