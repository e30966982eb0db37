package mocks

import "github.com/hardik-python-lr/our-gate-backend/domain"

// MockCodeHasher implements domain.CodeHasher by prefixing the code.
type MockCodeHasher struct {
	HashFunc func(code string) (string, error)
}

var _ domain.CodeHasher = (*MockCodeHasher)(nil)

func NewMockCodeHasher() *MockCodeHasher {
	return &MockCodeHasher{}
}

func (m *MockCodeHasher) Hash(code string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(code)
	}
	return "hashed_" + code, nil
}

func (m *MockCodeHasher) Verify(hashed, code string) bool {
	return hashed == "hashed_"+code
}
