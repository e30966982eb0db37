package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

type MembershipHandlers struct {
	svc domain.MembershipService
}

func NewMembershipHandlers(svc domain.MembershipService) *MembershipHandlers {
	return &MembershipHandlers{svc: svc}
}

// CreateUserRequest represents an administrative user creation
type CreateUserRequest struct {
	FirstName    string          `json:"first_name" binding:"required"`
	LastName     string          `json:"last_name" binding:"required"`
	Phone        string          `json:"phone" binding:"required"`
	Email        *string         `json:"email"`
	ProfileImage string          `json:"profile_image"`
	Roles        []domain.RoleID `json:"roles" binding:"required"`
}

type GuardLinkRequest struct {
	User          uint `json:"user" binding:"required"`
	Establishment uint `json:"establishment" binding:"required"`
}

type ResidentLinkRequest struct {
	User       uint              `json:"user" binding:"required"`
	Flat       uint              `json:"flat" binding:"required"`
	MemberRole domain.MemberRole `json:"member_role" binding:"required"`
}

type ResidentUnlinkRequest struct {
	User uint `json:"user" binding:"required"`
	Flat uint `json:"flat" binding:"required"`
}

type CurrentFlatRequest struct {
	Flat uint `json:"flat" binding:"required"`
}

type CommitteeSeatRequest struct {
	User          uint                 `json:"user" binding:"required"`
	Establishment uint                 `json:"establishment" binding:"required"`
	CommitteeRole domain.CommitteeRole `json:"committee_role" binding:"required"`
}

type CommitteeRevokeRequest struct {
	User          uint `json:"user" binding:"required"`
	Establishment uint `json:"establishment" binding:"required"`
}

// CreateUser handles POST /users
func (h *MembershipHandlers) CreateUser(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, roles, err := h.svc.CreateUser(c.Request.Context(), callerID, domain.CreateUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
		Roles:        req.Roles,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeRecordCreated, gin.H{
		"user":  user,
		"roles": roleResults(roles),
	})
}

// DeleteUser handles DELETE /users/:id
func (h *MembershipHandlers) DeleteUser(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), callerID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkGuard handles POST /links/guards
func (h *MembershipHandlers) LinkGuard(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req GuardLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.svc.LinkGuard(c.Request.Context(), callerID, req.User, req.Establishment)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeRecordCreated, link)
}

// UnlinkGuard handles DELETE /links/guards/:user
func (h *MembershipHandlers) UnlinkGuard(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "user")
	if !ok {
		return
	}

	if err := h.svc.UnlinkGuard(c.Request.Context(), callerID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkResident handles POST /links/residents
func (h *MembershipHandlers) LinkResident(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req ResidentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.svc.LinkResident(c.Request.Context(), callerID, domain.LinkResidentInput{
		UserID:     req.User,
		FlatID:     req.Flat,
		MemberRole: req.MemberRole,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeRecordCreated, member)
}

// UnlinkResident handles DELETE /links/residents
func (h *MembershipHandlers) UnlinkResident(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req ResidentUnlinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UnlinkResident(c.Request.Context(), callerID, req.User, req.Flat); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectCurrentFlat handles PATCH /links/residents/current
func (h *MembershipHandlers) SelectCurrentFlat(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req CurrentFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.SelectCurrentFlat(c.Request.Context(), callerID, req.Flat); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeCurrentFlatUpdated, gin.H{"flat": req.Flat})
}

// GrantCommitteeSeat handles POST /links/committee
func (h *MembershipHandlers) GrantCommitteeSeat(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req CommitteeSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	seat, err := h.svc.GrantCommitteeSeat(c.Request.Context(), callerID, req.User, req.Establishment, req.CommitteeRole)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeCommitteeSeatGrant, seat)
}

// RevokeCommitteeSeat handles DELETE /links/committee
func (h *MembershipHandlers) RevokeCommitteeSeat(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}
	var req CommitteeRevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.RevokeCommitteeSeat(c.Request.Context(), callerID, req.User, req.Establishment); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
