package services

import (
	"github.com/casbin/casbin/v2"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(subject, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(subject, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(subject, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(subject, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(subject, resource, action string) (bool, error) {
	return p.enforcer.Enforce(subject, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}

// SeedDefaults installs defaults when the policy table is empty. It reports
// whether anything was written.
func (p *PolicyServiceImpl) SeedDefaults(defaults [][]string) (bool, error) {
	existing, err := p.enforcer.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, rule := range defaults {
		params := make([]interface{}, len(rule))
		for i, v := range rule {
			params[i] = v
		}
		if _, err := p.enforcer.AddPolicy(params...); err != nil {
			return false, err
		}
	}
	return true, p.enforcer.SavePolicy()
}

const (
	readMethods  = "(GET)"
	writeMethods = "(POST)|(PATCH)|(DELETE)"
	allMethods   = "(GET)|(POST)|(PUT)|(PATCH)|(DELETE)"
)

// DefaultPolicies is the route policy set installed on first start. Every
// authenticated role may use the /auth routes; workflow services still check
// roles themselves.
func DefaultPolicies() [][]string {
	var rules [][]string
	add := func(r domain.RoleID, obj, act string) {
		rules = append(rules, []string{r.Subject(), obj, act})
	}

	for _, r := range domain.AllRoles() {
		add(r, "/auth/*", allMethods)
		add(r, "/bookings/:id", readMethods)
	}

	add(domain.RoleSuperAdmin, "/admin/*", allMethods)
	add(domain.RoleSuperAdmin, "/users", writeMethods)
	add(domain.RoleSuperAdmin, "/users/:id", writeMethods)

	add(domain.RoleOrgAdministrator, "/users", writeMethods)
	add(domain.RoleOrgAdministrator, "/users/:id", writeMethods)
	add(domain.RoleOrgAdministrator, "/bookings/admin", readMethods)
	add(domain.RoleOrgAdministrator, "/bookings/admin/*", allMethods)
	add(domain.RoleOrgAdministrator, "/catalog/*", allMethods)

	add(domain.RoleEstablishmentAdmin, "/users", writeMethods)
	add(domain.RoleEstablishmentAdmin, "/users/:id", writeMethods)
	add(domain.RoleEstablishmentAdmin, "/links/*", allMethods)

	add(domain.RoleManagementCommittee, "/users", writeMethods)
	add(domain.RoleManagementCommittee, "/links/residents", writeMethods)

	add(domain.RoleSecurityGuard, "/attendance/*", allMethods)

	add(domain.RoleResident, "/bookings", writeMethods)
	add(domain.RoleResident, "/bookings/*", allMethods)
	add(domain.RoleResident, "/links/residents/current", writeMethods)

	add(domain.RoleEmployee, "/bookings/employee", readMethods)

	return rules
}
