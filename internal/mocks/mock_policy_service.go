package mocks

import "github.com/hardik-python-lr/our-gate-backend/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(subject, resource, action string) error
	RemovePolicyFunc    func(subject, resource, action string) error
	CheckPermissionFunc func(subject, resource, action string) (bool, error)
	GetPoliciesFunc     func() ([][]string, error)
	SeedDefaultsFunc    func(defaults [][]string) (bool, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(subject, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(subject, resource, action)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(subject, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(subject, resource, action)
	}
	return nil
}

// CheckPermission lets the super admin through by default
func (m *MockPolicyService) CheckPermission(subject, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(subject, resource, action)
	}
	return subject == domain.RoleSuperAdmin.Subject(), nil
}

func (m *MockPolicyService) GetPolicies() ([][]string, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{
		{domain.RoleSuperAdmin.Subject(), "/admin/*", "(GET)|(POST)|(DELETE)"},
	}, nil
}

func (m *MockPolicyService) SeedDefaults(defaults [][]string) (bool, error) {
	if m.SeedDefaultsFunc != nil {
		return m.SeedDefaultsFunc(defaults)
	}
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
