package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"go.uber.org/zap"
)

// MembershipDeps collects what user administration and linking need.
type MembershipDeps struct {
	Perms       domain.PermissionEvaluator
	Resolver    domain.ContextResolver
	Users       domain.UserRepository
	Roles       domain.RoleRepository
	Sites       domain.SiteRepository
	Memberships domain.MembershipRepository
	Tx          domain.Transactor
	Audit       domain.AuditLogger
	Log         *zap.Logger
}

// MembershipServiceImpl implements domain.MembershipService
type MembershipServiceImpl struct {
	d   MembershipDeps
	log *zap.Logger
}

func NewMembershipService(d MembershipDeps) *MembershipServiceImpl {
	return &MembershipServiceImpl{d: d, log: d.Log.Named("membership")}
}

// CreateUser creates a user with the subset of requested roles the caller may hand out.
func (s *MembershipServiceImpl) CreateUser(ctx context.Context, callerID uint, in domain.CreateUserInput) (*domain.User, []domain.RoleID, error) {
	perm, err := requireRole(ctx, s.d.Perms, callerID, domain.AdminPrecedence...)
	if err != nil {
		return nil, nil, err
	}
	callerRole, _ := perm.First(domain.AdminPrecedence...)

	if callerRole == domain.RoleManagementCommittee {
		if _, err := s.committeeEstablishment(ctx, callerID); err != nil {
			return nil, nil, err
		}
	}

	roles := grantable(callerRole, in.Roles)
	if len(roles) == 0 {
		return nil, nil, domain.Validation(domain.CodeInvalidRoleSelection)
	}
	if fields := validateUserInput(in); len(fields) > 0 {
		return nil, nil, domain.FieldErrors(fields)
	}

	taken, err := s.d.Users.PhoneOrEmailTaken(ctx, in.Phone, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, domain.Validation(domain.CodeDuplicateRecord)
	}

	user := &domain.User{
		Phone:        in.Phone,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		ProfileImage: in.ProfileImage,
		IsActive:     true,
	}
	if in.Email != nil && *in.Email != "" {
		user.Email = in.Email
	}
	if callerRole == domain.RoleOrgAdministrator {
		orgs, err := s.d.Sites.OwnedOrganizationIDs(ctx, callerID)
		if err != nil {
			return nil, nil, err
		}
		if len(orgs) > 0 {
			user.OrganizationID = &orgs[0]
		}
	}

	if err := s.d.Users.Create(ctx, user, roles); err != nil {
		return nil, nil, err
	}
	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserCreatedEvent, callerID).
		WithPhone(user.Phone).
		WithMetadata("created_user_id", user.ID))
	return user, roles, nil
}

// DeleteUser deactivates a user and frees their phone and email.
func (s *MembershipServiceImpl) DeleteUser(ctx context.Context, callerID, userID uint) error {
	perm, err := requireRole(ctx, s.d.Perms, callerID,
		domain.RoleSuperAdmin, domain.RoleOrgAdministrator, domain.RoleEstablishmentAdmin)
	if err != nil {
		return err
	}
	callerRole, _ := perm.First(domain.AdminPrecedence...)

	user, err := s.d.Users.FindActiveByID(ctx, userID)
	if err != nil {
		return err
	}
	held, err := s.d.Roles.RoleIDs(ctx, userID)
	if err != nil {
		return err
	}
	if len(grantable(callerRole, held)) == 0 {
		return domain.Forbidden()
	}

	id := strconv.FormatUint(uint64(user.ID), 10)
	user.Phone = scramblePhone(user.ID)
	if user.Email != nil {
		email := id + "-" + *user.Email
		user.Email = &email
	}
	user.IsActive = false
	if err := s.d.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	s.log.Info("user deactivated", zap.Uint("user_id", user.ID), zap.Uint("caller_id", callerID))

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserDeactivatedEvent, callerID).
		WithMetadata("deactivated_user_id", user.ID))
	return nil
}

// LinkGuard posts a security guard at an establishment the caller administers.
func (s *MembershipServiceImpl) LinkGuard(ctx context.Context, callerID, userID, establishmentID uint) (*domain.EstablishmentGuard, error) {
	if _, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleEstablishmentAdmin); err != nil {
		return nil, err
	}
	if _, err := s.d.Sites.AdministeredEstablishment(ctx, establishmentID, callerID); err != nil {
		return nil, err
	}
	if _, err := s.d.Users.FindActiveWithRole(ctx, userID, domain.RoleSecurityGuard); err != nil {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}

	var link *domain.EstablishmentGuard
	err := s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.d.Memberships.ActiveGuardLink(ctx, userID); err == nil {
			return domain.Validation(domain.CodeSomethingWentWrong).
				WithCause(fmt.Errorf("user %d is already an active guard", userID))
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		existing, err := s.d.Memberships.GuardLink(ctx, userID, establishmentID)
		switch {
		case err == nil:
			link = existing
		case errors.Is(err, domain.ErrNotFound):
			link = &domain.EstablishmentGuard{EstablishmentID: establishmentID, UserID: userID}
		default:
			return err
		}
		link.IsActive = true
		return s.d.Memberships.SaveGuardLink(ctx, link)
	})
	if err != nil {
		return nil, err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.GuardLinkChangedEvent, callerID).
		WithMetadata("guard_user_id", userID).
		WithMetadata("establishment_id", establishmentID).
		WithMetadata("active", true))
	return link, nil
}

// UnlinkGuard deactivates the guard's link at an establishment the caller administers.
func (s *MembershipServiceImpl) UnlinkGuard(ctx context.Context, callerID, userID uint) error {
	if _, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleEstablishmentAdmin); err != nil {
		return err
	}
	link, err := s.d.Memberships.ActiveGuardLinkAdministeredBy(ctx, userID, callerID)
	if err != nil {
		return err
	}
	link.IsActive = false
	if err := s.d.Memberships.SaveGuardLink(ctx, link); err != nil {
		return err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.GuardLinkChangedEvent, callerID).
		WithMetadata("guard_user_id", userID).
		WithMetadata("establishment_id", link.EstablishmentID).
		WithMetadata("active", false))
	return nil
}

// LinkResident makes a resident a member of a flat. A resident's first flat
// becomes the current one.
func (s *MembershipServiceImpl) LinkResident(ctx context.Context, callerID uint, in domain.LinkResidentInput) (*domain.FlatMember, error) {
	flat, err := s.authorizeFlat(ctx, callerID, in.FlatID)
	if err != nil {
		return nil, err
	}
	if !in.MemberRole.Valid() {
		return nil, domain.FieldErrors(map[string][]string{
			"member_role": {fmt.Sprintf("%q is not a valid choice.", in.MemberRole)},
		})
	}
	if _, err := s.d.Users.FindActiveWithRole(ctx, in.UserID, domain.RoleResident); err != nil {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}

	var member *domain.FlatMember
	err = s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.d.Memberships.ActiveFlatMember(ctx, in.UserID, flat.ID); err == nil {
			return domain.Validation(domain.CodeDuplicateRecord)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		count, err := s.d.Memberships.CountActiveFlatMembers(ctx, in.UserID)
		if err != nil {
			return err
		}
		member = &domain.FlatMember{
			FlatID:        flat.ID,
			UserID:        in.UserID,
			MemberRole:    in.MemberRole,
			IsActive:      true,
			IsCurrentFlat: count == 0,
		}
		return s.d.Memberships.SaveFlatMember(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.ResidentLinkChangedEvent, callerID).
		WithMetadata("resident_user_id", in.UserID).
		WithMetadata("flat_id", flat.ID).
		WithMetadata("active", true))
	return member, nil
}

// UnlinkResident ends a resident's membership of a flat.
func (s *MembershipServiceImpl) UnlinkResident(ctx context.Context, callerID, userID, flatID uint) error {
	flat, err := s.authorizeFlat(ctx, callerID, flatID)
	if err != nil {
		return err
	}
	member, err := s.d.Memberships.ActiveFlatMember(ctx, userID, flat.ID)
	if err != nil {
		return err
	}
	member.IsActive = false
	member.IsCurrentFlat = false
	if err := s.d.Memberships.SaveFlatMember(ctx, member); err != nil {
		return err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.ResidentLinkChangedEvent, callerID).
		WithMetadata("resident_user_id", userID).
		WithMetadata("flat_id", flat.ID).
		WithMetadata("active", false))
	return nil
}

// SelectCurrentFlat switches the resident's current flat.
func (s *MembershipServiceImpl) SelectCurrentFlat(ctx context.Context, callerID, flatID uint) error {
	if _, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleResident); err != nil {
		return err
	}
	err := s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		return s.d.Memberships.SetCurrentFlat(ctx, callerID, flatID)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound().WithCause(err)
	}
	return err
}

// GrantCommitteeSeat seats a resident of the establishment on its committee
// and grants the committee role.
func (s *MembershipServiceImpl) GrantCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint, role domain.CommitteeRole) (*domain.ManagementCommittee, error) {
	if _, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleEstablishmentAdmin); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.FieldErrors(map[string][]string{
			"committee_role": {fmt.Sprintf("%q is not a valid choice.", role)},
		})
	}
	if _, err := s.d.Sites.AdministeredEstablishment(ctx, establishmentID, callerID); err != nil {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}
	if _, err := s.d.Users.FindActiveWithRole(ctx, userID, domain.RoleResident); err != nil {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}
	member, err := s.d.Memberships.IsActiveMemberOfEstablishment(ctx, userID, establishmentID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.Validation(domain.CodeSomethingWentWrong)
	}

	var seat *domain.ManagementCommittee
	err = s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		existing, err := s.d.Memberships.CommitteeSeat(ctx, userID, establishmentID)
		switch {
		case err == nil:
			seat = existing
		case errors.Is(err, domain.ErrNotFound):
			seat = &domain.ManagementCommittee{EstablishmentID: establishmentID, UserID: userID}
		default:
			return err
		}
		seat.CommitteeRole = role
		seat.IsActive = true
		if err := s.d.Memberships.SaveCommitteeSeat(ctx, seat); err != nil {
			return err
		}
		return s.d.Roles.Grant(ctx, userID, domain.RoleManagementCommittee)
	})
	if err != nil {
		return nil, err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.CommitteeSeatChangedEvent, callerID).
		WithMetadata("member_user_id", userID).
		WithMetadata("establishment_id", establishmentID).
		WithMetadata("committee_role", string(role)))
	return seat, nil
}

// RevokeCommitteeSeat vacates the seat and removes the committee role.
func (s *MembershipServiceImpl) RevokeCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint) error {
	if _, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleEstablishmentAdmin); err != nil {
		return err
	}
	if _, err := s.d.Sites.AdministeredEstablishment(ctx, establishmentID, callerID); err != nil {
		return err
	}
	seat, err := s.d.Memberships.CommitteeSeat(ctx, userID, establishmentID)
	if err != nil {
		return err
	}
	if !seat.IsActive {
		return domain.NotFound()
	}

	err = s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		seat.IsActive = false
		if err := s.d.Memberships.SaveCommitteeSeat(ctx, seat); err != nil {
			return err
		}
		return s.d.Roles.Revoke(ctx, userID, domain.RoleManagementCommittee)
	})
	if err != nil {
		return err
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.CommitteeSeatChangedEvent, callerID).
		WithMetadata("member_user_id", userID).
		WithMetadata("establishment_id", establishmentID).
		WithMetadata("active", false))
	return nil
}

// committeeEstablishment returns the establishment a committee member acts for.
func (s *MembershipServiceImpl) committeeEstablishment(ctx context.Context, callerID uint) (uint, error) {
	flat, err := s.d.Resolver.CurrentFlat(ctx, callerID)
	if err != nil {
		return 0, err
	}
	if _, err := s.d.Resolver.ValidCommitteeSeat(ctx, callerID, flat.EstablishmentID()); err != nil {
		return 0, err
	}
	return flat.EstablishmentID(), nil
}

// authorizeFlat loads the flat if the caller administers its establishment or
// sits on that establishment's committee.
func (s *MembershipServiceImpl) authorizeFlat(ctx context.Context, callerID, flatID uint) (*domain.Flat, error) {
	perm, err := requireRole(ctx, s.d.Perms, callerID, domain.RoleEstablishmentAdmin, domain.RoleManagementCommittee)
	if err != nil {
		return nil, err
	}
	flat, err := s.d.Sites.ActiveFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}

	if perm.Has(domain.RoleEstablishmentAdmin) {
		_, err := s.d.Sites.AdministeredEstablishment(ctx, flat.EstablishmentID(), callerID)
		if err == nil {
			return flat, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if perm.Has(domain.RoleManagementCommittee) {
		estID, err := s.committeeEstablishment(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if estID == flat.EstablishmentID() {
			return flat, nil
		}
	}
	return nil, domain.Forbidden()
}

// grantable intersects requested with the roles caller may hand out, keeping
// request order and dropping repeats.
func grantable(caller domain.RoleID, requested []domain.RoleID) []domain.RoleID {
	allowed := make(map[domain.RoleID]bool)
	for _, r := range domain.CreatableRoles[caller] {
		allowed[r] = true
	}
	var out []domain.RoleID
	for _, r := range requested {
		if allowed[r] {
			out = append(out, r)
			delete(allowed, r)
		}
	}
	return out
}

func validateUserInput(in domain.CreateUserInput) map[string][]string {
	fields := map[string][]string{}
	if strings.TrimSpace(in.FirstName) == "" {
		fields["first_name"] = append(fields["first_name"], "This field is required.")
	}
	if len(in.Phone) != 10 || strings.Trim(in.Phone, "0123456789") != "" {
		fields["phone"] = append(fields["phone"], "Enter a valid 10 digit phone number.")
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		fields["email"] = append(fields["email"], "Enter a valid email address.")
	}
	return fields
}

// scramblePhone fills the phone column with a value no login can match. The
// leading letter keeps it apart from real numbers and the zero-padded id keeps
// it unique.
func scramblePhone(id uint) string {
	return fmt.Sprintf("x%09d", id)
}
