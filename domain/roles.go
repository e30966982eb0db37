package domain

import "fmt"

// RoleID identifies one authorization domain. The numeric values are persisted
// in the roles table and must not change.
type RoleID uint

const (
	RoleSuperAdmin          RoleID = 1
	RoleOrgAdministrator    RoleID = 2
	RoleEstablishmentAdmin  RoleID = 3
	RoleManagementCommittee RoleID = 4
	RoleSecurityGuard       RoleID = 5
	RoleResident            RoleID = 6
	RoleEmployee            RoleID = 7
)

var roleSlugs = map[RoleID]string{
	RoleSuperAdmin:          "super_admin",
	RoleOrgAdministrator:    "org_admin",
	RoleEstablishmentAdmin:  "establishment_admin",
	RoleManagementCommittee: "management_committee",
	RoleSecurityGuard:       "security_guard",
	RoleResident:            "resident",
	RoleEmployee:            "employee",
}

var roleNames = map[RoleID]string{
	RoleSuperAdmin:          "Super Admin",
	RoleOrgAdministrator:    "Organization Administrator",
	RoleEstablishmentAdmin:  "Establishment Admin",
	RoleManagementCommittee: "Management Committee",
	RoleSecurityGuard:       "Security Guard",
	RoleResident:            "Resident",
	RoleEmployee:            "Employee",
}

// AllRoles lists every role in id order.
func AllRoles() []RoleID {
	return []RoleID{
		RoleSuperAdmin,
		RoleOrgAdministrator,
		RoleEstablishmentAdmin,
		RoleManagementCommittee,
		RoleSecurityGuard,
		RoleResident,
		RoleEmployee,
	}
}

// Valid reports whether r is one of the known roles.
func (r RoleID) Valid() bool {
	_, ok := roleSlugs[r]
	return ok
}

// Slug is the stable identifier used in casbin subjects ("role_" + slug).
func (r RoleID) Slug() string {
	if s, ok := roleSlugs[r]; ok {
		return s
	}
	return fmt.Sprintf("unknown_%d", uint(r))
}

// Subject returns the casbin policy subject for the role.
func (r RoleID) Subject() string {
	return "role_" + r.Slug()
}

func (r RoleID) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return r.Slug()
}

// AdminPrecedence is the order in which administrative roles win when a user
// holds more than one of them.
var AdminPrecedence = []RoleID{
	RoleSuperAdmin,
	RoleOrgAdministrator,
	RoleEstablishmentAdmin,
	RoleManagementCommittee,
}

// CreatableRoles maps an administrative role to the roles it may hand out when
// creating users. Committee seats are granted through the committee workflow
// only, so the establishment admin set omits RoleManagementCommittee.
var CreatableRoles = map[RoleID][]RoleID{
	RoleSuperAdmin:          {RoleOrgAdministrator},
	RoleOrgAdministrator:    {RoleEstablishmentAdmin, RoleEmployee},
	RoleEstablishmentAdmin:  {RoleSecurityGuard, RoleResident},
	RoleManagementCommittee: {RoleResident},
}

// Permission is the outcome of evaluating a user against a set of acceptable roles.
type Permission struct {
	Allowed bool
	Held    map[RoleID]bool
}

// Has reports whether the role was acceptable and is held.
func (p Permission) Has(r RoleID) bool {
	return p.Held[r]
}

// First returns the first held role in the given order.
func (p Permission) First(order ...RoleID) (RoleID, bool) {
	for _, r := range order {
		if p.Held[r] {
			return r, true
		}
	}
	return 0, false
}

// Deny is the fail-closed evaluation result for the given acceptable roles.
func Deny(acceptable []RoleID) Permission {
	held := make(map[RoleID]bool, len(acceptable))
	for _, r := range acceptable {
		held[r] = false
	}
	return Permission{Allowed: false, Held: held}
}
