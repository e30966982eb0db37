package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/internal/mocks"
)

func TestPolicyHandlers_List(t *testing.T) {
	handler := NewPolicyHandlers(mocks.NewMockPolicyService())

	c, w := newTestContext(http.MethodGet, "/admin/policies", nil, "1")
	handler.List(c)

	body := decodeResponse(t, w)
	policies, _ := body["results"].([]interface{})
	if w.Code != http.StatusOK || len(policies) != 1 {
		t.Fatalf("expected one policy, got %d %s", w.Code, w.Body.String())
	}
}

func TestPolicyHandlers_ListError(t *testing.T) {
	policies := mocks.NewMockPolicyService()
	policies.GetPoliciesFunc = func() ([][]string, error) {
		return nil, errors.New("db closed")
	}
	handler := NewPolicyHandlers(policies)

	c, w := newTestContext(http.MethodGet, "/admin/policies", nil, "1")
	handler.List(c)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if len(c.Errors) != 1 {
		t.Errorf("expected the adapter error on the context, got %v", c.Errors)
	}
}

func TestPolicyHandlers_AddRemove(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "valid rule",
			requestBody:    PolicyRequest{Sub: "role_resident", Obj: "/bookings/*", Act: "(GET)"},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "incomplete rule",
			requestBody:    map[string]string{"sub": "role_resident"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "adapter failure",
			requestBody:    PolicyRequest{Sub: "role_resident", Obj: "/bookings/*", Act: "(GET)"},
			serviceErr:     errors.New("db closed"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policies := mocks.NewMockPolicyService()
			var added, removed []string
			policies.AddPolicyFunc = func(subject, resource, action string) error {
				added = []string{subject, resource, action}
				return tt.serviceErr
			}
			policies.RemovePolicyFunc = func(subject, resource, action string) error {
				removed = []string{subject, resource, action}
				return tt.serviceErr
			}
			handler := NewPolicyHandlers(policies)

			c, w := newTestContext(http.MethodPost, "/admin/policies", tt.requestBody, "1")
			handler.Add(c)
			c.Writer.WriteHeaderNow()
			if w.Code != tt.expectedStatus {
				t.Errorf("add: expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			c, w = newTestContext(http.MethodDelete, "/admin/policies", tt.requestBody, "1")
			handler.Remove(c)
			c.Writer.WriteHeaderNow()
			if w.Code != tt.expectedStatus {
				t.Errorf("remove: expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus == http.StatusNoContent {
				if len(added) != 3 || added[0] != "role_resident" || added[1] != "/bookings/*" {
					t.Errorf("unexpected added rule %v", added)
				}
				if len(removed) != 3 || removed[2] != "(GET)" {
					t.Errorf("unexpected removed rule %v", removed)
				}
			}
		})
	}
}
