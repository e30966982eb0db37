package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/mocks"
)

func TestCatalogHandlers_CreateService(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createErr      error
		expectedStatus int
		expectedBody   map[string]interface{}
		expectedInput  *domain.ServiceInput
	}{
		{
			name:           "created",
			body:           map[string]interface{}{"sub_category": 3, "name": "Plumbing", "price": 450},
			expectedStatus: http.StatusCreated,
			expectedBody:   map[string]interface{}{"message": "The record was successfully created."},
			expectedInput:  &domain.ServiceInput{SubCategoryID: 3, Name: "Plumbing", Price: 450},
		},
		{
			name:           "free service",
			body:           map[string]interface{}{"sub_category": 3, "name": "Notice board", "price": 0},
			expectedStatus: http.StatusCreated,
			expectedInput:  &domain.ServiceInput{SubCategoryID: 3, Name: "Notice board"},
		},
		{
			name:           "price missing",
			body:           map[string]interface{}{"sub_category": 3, "name": "Plumbing"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "Bad request."},
		},
		{
			name:           "negative price",
			body:           map[string]interface{}{"sub_category": 3, "name": "Plumbing", "price": -1},
			createErr:      domain.FieldErrors(map[string][]string{"price": {"Ensure this value is greater than or equal to 0."}}),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "sub category of another organization",
			body:           map[string]interface{}{"sub_category": 9, "name": "Plumbing", "price": 10},
			createErr:      domain.Validation(domain.CodeSomethingWentWrong),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an organization admin",
			body:           map[string]interface{}{"sub_category": 3, "name": "Plumbing", "price": 10},
			createErr:      domain.Forbidden(),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			var got *domain.ServiceInput
			svc.CreateServiceFunc = func(ctx context.Context, userID uint, in domain.ServiceInput) (*domain.Service, error) {
				got = &in
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				return &domain.Service{ID: 7, Name: in.Name, Price: in.Price}, nil
			}
			handler := NewCatalogHandlers(svc)

			c, w := newTestContext(http.MethodPost, "/catalog/services", tt.body, "2")
			handler.CreateService(c)

			assertResponse(t, w, tt.expectedStatus, tt.expectedBody)
			if tt.expectedInput != nil {
				if got == nil {
					t.Fatal("expected the workflow to be called")
				}
				if *got != *tt.expectedInput {
					t.Errorf("expected input %+v, got %+v", *tt.expectedInput, *got)
				}
			}
		})
	}
}

func TestCatalogHandlers_CreateSlot(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		slotErr        error
		expectedStatus int
		expectedBody   map[string]interface{}
		expectedDay    int
	}{
		{
			name:           "created",
			body:           map[string]interface{}{"service": 4, "start_time": "09:00", "end_time": "10:00", "day_of_week": 2},
			expectedStatus: http.StatusCreated,
			expectedDay:    2,
		},
		{
			name:           "day zero reaches the workflow",
			body:           map[string]interface{}{"service": 4, "start_time": "09:00", "end_time": "10:00", "day_of_week": 0},
			slotErr:        domain.Validation(domain.CodeInvalidDayOfWeek),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "The day of week must be between 1 and 7."},
			expectedDay:    0,
		},
		{
			name:           "end before start",
			body:           map[string]interface{}{"service": 4, "start_time": "11:00", "end_time": "10:00", "day_of_week": 2},
			slotErr:        domain.Validation(domain.CodeInvalidEndTime),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "The end time must be after the start time."},
			expectedDay:    2,
		},
		{
			name:           "day missing",
			body:           map[string]interface{}{"service": 4, "start_time": "09:00", "end_time": "10:00"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "Bad request."},
			expectedDay:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			day := -1
			svc.CreateSlotFunc = func(ctx context.Context, userID uint, in domain.SlotInput) (*domain.ServiceSlot, error) {
				day = in.DayOfWeek
				if tt.slotErr != nil {
					return nil, tt.slotErr
				}
				return &domain.ServiceSlot{ID: 1, ServiceID: in.ServiceID, DayOfWeek: in.DayOfWeek}, nil
			}
			handler := NewCatalogHandlers(svc)

			c, w := newTestContext(http.MethodPost, "/catalog/slots", tt.body, "2")
			handler.CreateSlot(c)

			assertResponse(t, w, tt.expectedStatus, tt.expectedBody)
			if day != tt.expectedDay {
				t.Errorf("expected day %d to reach the workflow, got %d", tt.expectedDay, day)
			}
		})
	}
}

func TestCatalogHandlers_UpdateCategory(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.UpdateCategoryFunc = func(ctx context.Context, userID, id uint, in domain.CategoryInput) (*domain.ServiceCategory, error) {
		if userID != 2 || id != 5 || in.Name != "Household" {
			t.Errorf("unexpected args %d %d %+v", userID, id, in)
		}
		return &domain.ServiceCategory{ID: id, Name: in.Name}, nil
	}
	handler := NewCatalogHandlers(svc)

	c, w := newTestContext(http.MethodPut, "/catalog/categories/5", map[string]interface{}{"name": "Household"}, "2")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.UpdateCategory(c)

	assertResponse(t, w, http.StatusOK, map[string]interface{}{
		"message": "The record was successfully updated.",
		"results": map[string]interface{}{"id": float64(5), "name": "Household"},
	})
}

func TestCatalogHandlers_Delete(t *testing.T) {
	tests := []struct {
		name           string
		param          string
		deleteErr      error
		expectedStatus int
	}{
		{name: "deleted", param: "8", expectedStatus: http.StatusNoContent},
		{name: "missing exclusion", param: "8", deleteErr: domain.NotFound(), expectedStatus: http.StatusNotFound},
		{name: "not allowed", param: "8", deleteErr: domain.Forbidden(), expectedStatus: http.StatusForbidden},
		{name: "bad id", param: "x", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			var removed uint
			svc.DeleteExclusionFunc = func(ctx context.Context, userID, id uint) error {
				removed = id
				return tt.deleteErr
			}
			handler := NewCatalogHandlers(svc)

			c, w := newTestContext(http.MethodDelete, "/catalog/exclusions/"+tt.param, nil, "2")
			c.Params = gin.Params{{Key: "id", Value: tt.param}}
			handler.DeleteExclusion(c)
			c.Writer.WriteHeaderNow()

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusNoContent && removed != 8 {
				t.Errorf("expected exclusion 8 to be removed, got %d", removed)
			}
		})
	}
}

func TestCatalogHandlers_BrowseQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected domain.CatalogQuery
	}{
		{
			name:     "search falls back onto name",
			query:    "?search=plumb&category_id=3&page=2&page_size=5",
			expected: domain.CatalogQuery{Name: "plumb", CategoryID: 3, Page: domain.Page{Number: 2, Size: 5}},
		},
		{
			name:     "name wins over search",
			query:    "?name=yoga&search=plumb&sub_category_id=4",
			expected: domain.CatalogQuery{Name: "yoga", SubCategoryID: 4},
		},
		{
			name:     "no filters",
			expected: domain.CatalogQuery{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			var got domain.CatalogQuery
			svc.BrowseServicesFunc = func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error) {
				got = q
				return &domain.ListResult[domain.Service]{Page: 1, Size: 20, Results: []domain.Service{}}, nil
			}
			handler := NewCatalogHandlers(svc)

			c, w := newTestContext(http.MethodGet, "/bookings/services"+tt.query, nil, "6")
			handler.BrowseServices(c)

			assertResponse(t, w, http.StatusOK, map[string]interface{}{"message": "The record was successfully retrieved."})
			if got != tt.expected {
				t.Errorf("expected query %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestCatalogHandlers_BrowseNeedsCurrentFlat(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.BookingCategoriesFunc = func(ctx context.Context, userID uint) ([]domain.ServiceCategory, error) {
		return nil, domain.ErrNoCurrentFlat
	}
	handler := NewCatalogHandlers(svc)

	c, w := newTestContext(http.MethodGet, "/bookings/categories", nil, "6")
	handler.BookingCategories(c)

	assertResponse(t, w, http.StatusOK, map[string]interface{}{
		"message": "Current flat is not selected.",
		"results": map[string]interface{}{"no_current_flat": true},
	})
}

func TestCatalogHandlers_ListRejectsGarbage(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.SlotsFunc = func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSlot], error) {
		t.Error("workflow should not be called")
		return nil, nil
	}
	handler := NewCatalogHandlers(svc)

	c, w := newTestContext(http.MethodGet, "/catalog/slots?day_of_week=monday", nil, "2")
	handler.Slots(c)

	assertResponse(t, w, http.StatusBadRequest, map[string]interface{}{"message": "Bad request."})
}
