package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// AuthHandlers handles OTP login and session HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// GenerateOTPRequest represents an OTP request
type GenerateOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest represents OTP verification request
type VerifyOTPRequest struct {
	Phone        string  `json:"phone" binding:"required"`
	OTP          string  `json:"otp" binding:"required"`
	CurrentToken *string `json:"current_token"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// PushTokenRequest carries the device's push token
type PushTokenRequest struct {
	CurrentToken string `json:"current_token"`
}

// GenerateOTP sends a login code to the user's phone
func (h *AuthHandlers) GenerateOTP(c *gin.Context) {
	var req GenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	otp, err := h.authSvc.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, domain.CodeOTPGenerated, gin.H{
		"phone":      otp.Phone,
		"expires_at": otp.ExpiresAt,
	})
}

// VerifyOTP exchanges a login code for tokens
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP, req.CurrentToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, domain.CodeCredentialsMatched, tokenResults(result))
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, domain.CodeCredentialsMatched, tokenResults(result))
}

// Logout ends the current session. It answers 200 even when the session is
// already gone.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if sessionID := c.GetString("session_id"); sessionID != "" {
		if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
			_ = c.Error(err)
		}
	}
	respond(c, http.StatusOK, domain.CodeCredentialsRemoved, nil)
}

// Me returns the caller's profile and roles
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	user, roles, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, domain.CodeRecordRetrieved, gin.H{
		"user":  user,
		"roles": roleResults(roles),
	})
}

// SavePushToken stores the caller's device token
func (h *AuthHandlers) SavePushToken(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.authSvc.SavePushToken(c.Request.Context(), userID, req.CurrentToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, domain.CodePushTokenSaved, token)
}

func tokenResults(r *domain.AuthResult) gin.H {
	out := gin.H{
		"access":     r.AccessToken,
		"refresh":    r.RefreshToken,
		"token_type": "Bearer",
		"expires_in": r.ExpiresIn,
	}
	if r.User != nil {
		out["user"] = r.User
	}
	if r.Roles != nil {
		out["roles"] = roleResults(r.Roles)
	}
	if r.CurrentToken != nil {
		out["current_token"] = *r.CurrentToken
	}
	return out
}

func roleResults(roles []domain.RoleID) []gin.H {
	out := make([]gin.H, 0, len(roles))
	for _, r := range roles {
		out = append(out, gin.H{"id": uint(r), "name": r.String()})
	}
	return out
}
