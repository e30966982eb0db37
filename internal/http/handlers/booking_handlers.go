package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// BookingHandlers serves the service request workflow
type BookingHandlers struct {
	svc domain.BookingService
}

func NewBookingHandlers(svc domain.BookingService) *BookingHandlers {
	return &BookingHandlers{svc: svc}
}

// BookingRequest is a quote or booking payload
type BookingRequest struct {
	Service        uint   `json:"service" binding:"required"`
	RequestedDate  string `json:"requested_date" binding:"required"`
	RequestedSlots []uint `json:"requested_slots"`
}

func (r BookingRequest) input() domain.BookingInput {
	return domain.BookingInput{ServiceID: r.Service, RequestedDate: r.RequestedDate, SlotIDs: r.RequestedSlots}
}

// PaymentCallbackRequest is what the checkout widget posts back. Payment id
// and signature are empty when the user dismissed the checkout.
type PaymentCallbackRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// RatingRequest requires the key, not a non-zero value; the range is
// checked by the workflow.
type RatingRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

type CompleteRequest struct {
	Rating *int `json:"rating"`
}

type StatusRequest struct {
	Status domain.RequestStatus `json:"status" binding:"required"`
}

type AssignRequest struct {
	AssignedUser uint `json:"assigned_user" binding:"required"`
}

// ListQuery holds the list filters accepted on the query string
type ListQuery struct {
	Status        string `form:"status"`
	Rating        *int   `form:"rating"`
	RequestedDate string `form:"requested_date"`
	Search        string `form:"search"`
	Establishment uint   `form:"establishment"`
	RequestedUser uint   `form:"requested_user"`
	AssignedUser  uint   `form:"assigned_user"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

func (q ListQuery) query() domain.RequestQuery {
	return domain.RequestQuery{
		Status:          q.Status,
		Rating:          q.Rating,
		Date:            q.RequestedDate,
		Search:          q.Search,
		EstablishmentID: q.Establishment,
		RequestedUserID: q.RequestedUser,
		AssignedUserID:  q.AssignedUser,
		Page:            domain.Page{Number: q.Page, Size: q.PageSize},
	}
}

// Slots handles GET /bookings/services/:id/slots?date=YYYY-MM-DD
func (h *BookingHandlers) Slots(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	slots, err := h.svc.SlotsForDate(c.Request.Context(), userID, serviceID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, slots)
}

// PayableAmount handles POST /bookings/payable-amount
func (h *BookingHandlers) PayableAmount(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := h.svc.PayableAmount(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, quote)
}

// Create handles POST /bookings
func (h *BookingHandlers) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeRecordCreated, result)
}

// PaymentCallback handles the public POST /bookings/payment-callback
func (h *BookingHandlers) PaymentCallback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.svc.PaymentCallback(c.Request.Context(), domain.CallbackInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Abandoned {
		respond(c, http.StatusOK, domain.CodePaymentAbandoned, nil)
		return
	}
	respond(c, http.StatusOK, domain.CodePaymentReconciled, result)
}

// History handles GET /bookings/history
func (h *BookingHandlers) History(c *gin.Context) {
	userID, q, ok := h.listParams(c)
	if !ok {
		return
	}
	list, err := h.svc.History(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, list)
}

// Rate handles PATCH /bookings/:id/rating
func (h *BookingHandlers) Rate(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.svc.Rate(c.Request.Context(), userID, requestID, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordUpdated, view)
}

// CompleteByResident handles PATCH /bookings/:id/complete
func (h *BookingHandlers) CompleteByResident(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	view, err := h.svc.CompleteByResident(c.Request.Context(), userID, requestID, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRequestCompleted, view)
}

// Detail handles GET /bookings/:id
func (h *BookingHandlers) Detail(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}

	view, err := h.svc.Detail(c.Request.Context(), userID, requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, view)
}

// AdminList handles GET /bookings/admin
func (h *BookingHandlers) AdminList(c *gin.Context) {
	userID, q, ok := h.listParams(c)
	if !ok {
		return
	}
	list, err := h.svc.AdminList(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, list)
}

// UpdateStatus handles PATCH /bookings/admin/:id/status
func (h *BookingHandlers) UpdateStatus(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.svc.UpdateStatus(c.Request.Context(), userID, requestID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeStatusUpdated, view)
}

// Assign handles PATCH /bookings/admin/:id/assign
func (h *BookingHandlers) Assign(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.svc.Assign(c.Request.Context(), userID, requestID, req.AssignedUser)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeEmployeeAssigned, view)
}

// AssignableEmployees handles GET /bookings/admin/employees
func (h *BookingHandlers) AssignableEmployees(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	employees, err := h.svc.AssignableEmployees(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, employees)
}

// CompleteByAdmin handles PATCH /bookings/admin/:id/complete
func (h *BookingHandlers) CompleteByAdmin(c *gin.Context) {
	userID, requestID, ok := h.target(c)
	if !ok {
		return
	}
	view, err := h.svc.CompleteByAdmin(c.Request.Context(), userID, requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRequestCompleted, view)
}

// EmployeeList handles GET /bookings/employee
func (h *BookingHandlers) EmployeeList(c *gin.Context) {
	userID, q, ok := h.listParams(c)
	if !ok {
		return
	}
	list, err := h.svc.EmployeeList(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, list)
}

func (h *BookingHandlers) target(c *gin.Context) (uint, uint, bool) {
	userID, ok := caller(c)
	if !ok {
		return 0, 0, false
	}
	requestID, ok := pathID(c, "id")
	return userID, requestID, ok
}

func (h *BookingHandlers) listParams(c *gin.Context) (uint, domain.RequestQuery, bool) {
	userID, ok := caller(c)
	if !ok {
		return 0, domain.RequestQuery{}, false
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return 0, domain.RequestQuery{}, false
	}
	return userID, q.query(), true
}
