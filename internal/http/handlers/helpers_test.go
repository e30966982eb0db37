package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// newTestContext builds a gin context for a JSON request. A non-empty userID
// is stored the way the auth middleware does.
func newTestContext(method, path string, body interface{}, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		buf = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	return responseBody
}

// validateValue compares nested maps key by key and leaves extra keys alone
func validateValue(t *testing.T, key string, expected, actual interface{}) {
	t.Helper()

	expectedMap, expectedIsMap := expected.(map[string]interface{})
	actualMap, actualIsMap := actual.(map[string]interface{})

	if expectedIsMap && actualIsMap {
		for nestedKey, nestedExpected := range expectedMap {
			if nestedActual, exists := actualMap[nestedKey]; !exists {
				t.Errorf("expected key %s.%s not found in response", key, nestedKey)
			} else {
				validateValue(t, key+"."+nestedKey, nestedExpected, nestedActual)
			}
		}
	} else if expected != actual {
		t.Errorf("for key %s, expected %v, got %v", key, expected, actual)
	}
}

func assertResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody map[string]interface{}) {
	t.Helper()

	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d (body %s)", expectedStatus, w.Code, w.Body.String())
	}
	if expectedBody == nil {
		return
	}
	responseBody := decodeResponse(t, w)
	for key, expectedValue := range expectedBody {
		if actualValue, exists := responseBody[key]; !exists {
			t.Errorf("expected key %s not found in response", key)
		} else {
			validateValue(t, key, expectedValue, actualValue)
		}
	}
}
