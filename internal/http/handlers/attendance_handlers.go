package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// AttendanceHandlers serves guard check-in and check-out
type AttendanceHandlers struct {
	svc domain.AttendanceService
}

func NewAttendanceHandlers(svc domain.AttendanceService) *AttendanceHandlers {
	return &AttendanceHandlers{svc: svc}
}

// AttendanceRequest is the check-in / check-out payload. Missing fields are
// reported by the workflow, not by binding.
type AttendanceRequest struct {
	Location *domain.GeoPoint `json:"location"`
	Image    *string          `json:"image"`
	DeviceID *string          `json:"device_id"`
}

func (r AttendanceRequest) input() domain.AttendanceInput {
	return domain.AttendanceInput{Location: r.Location, Image: r.Image, DeviceID: r.DeviceID}
}

// CheckIn handles POST /attendance/check-in
func (h *AttendanceHandlers) CheckIn(c *gin.Context) {
	h.mark(c, h.svc.CheckIn, http.StatusCreated, domain.CodeUserCheckIn)
}

// CheckOut handles PATCH /attendance/check-out
func (h *AttendanceHandlers) CheckOut(c *gin.Context) {
	h.mark(c, h.svc.CheckOut, http.StatusOK, domain.CodeUserCheckOut)
}

type markFunc func(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error)

func (h *AttendanceHandlers) mark(c *gin.Context, fn markFunc, status int, code domain.Code) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, status, code, result)
}

// Status handles GET /attendance/status
func (h *AttendanceHandlers) Status(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	status, err := h.svc.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, status)
}
