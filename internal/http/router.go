package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/internal/http/handlers"
	"github.com/hardik-python-lr/our-gate-backend/internal/http/middleware"
	"github.com/hardik-python-lr/our-gate-backend/internal/logger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by BuildRouter
type Handlers struct {
	Auth       *handlers.AuthHandlers
	Attendance *handlers.AttendanceHandlers
	Booking    *handlers.BookingHandlers
	Catalog    *handlers.CatalogHandlers
	Membership *handlers.MembershipHandlers
	Policy     *handlers.PolicyHandlers
}

func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinMiddleware(log), gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/otp/generate", h.Auth.GenerateOTP)
	auth.POST("/otp/verify", h.Auth.VerifyOTP)
	auth.POST("/refresh", h.Auth.Refresh)

	// The gateway posts back without a user token.
	r.POST("/bookings/payment-callback", h.Booking.PaymentCallback)

	v := r.Group("/", jwtmw.WithJWT(), cb.Enforce())
	v.POST("/auth/logout", h.Auth.Logout)
	v.GET("/auth/me", h.Auth.Me)
	v.PUT("/auth/push-token", h.Auth.SavePushToken)

	att := v.Group("/attendance")
	att.POST("/check-in", h.Attendance.CheckIn)
	att.PATCH("/check-out", h.Attendance.CheckOut)
	att.GET("/status", h.Attendance.Status)

	bk := v.Group("/bookings")
	bk.GET("/services", h.Catalog.BrowseServices)
	bk.GET("/categories", h.Catalog.BookingCategories)
	bk.GET("/categories/:id/sub-categories", h.Catalog.BookingSubCategories)
	bk.GET("/services/:id/slots", h.Booking.Slots)
	bk.POST("/payable-amount", h.Booking.PayableAmount)
	bk.POST("", h.Booking.Create)
	bk.GET("/history", h.Booking.History)
	bk.GET("/employee", h.Booking.EmployeeList)
	bk.GET("/:id", h.Booking.Detail)
	bk.PATCH("/:id/rating", h.Booking.Rate)
	bk.PATCH("/:id/complete", h.Booking.CompleteByResident)

	bka := bk.Group("/admin")
	bka.GET("", h.Booking.AdminList)
	bka.GET("/employees", h.Booking.AssignableEmployees)
	bka.PATCH("/:id/status", h.Booking.UpdateStatus)
	bka.PATCH("/:id/assign", h.Booking.Assign)
	bka.PATCH("/:id/complete", h.Booking.CompleteByAdmin)

	cat := v.Group("/catalog")
	cat.POST("/categories", h.Catalog.CreateCategory)
	cat.GET("/categories", h.Catalog.Categories)
	cat.GET("/categories/:id", h.Catalog.Category)
	cat.PUT("/categories/:id", h.Catalog.UpdateCategory)
	cat.DELETE("/categories/:id", h.Catalog.DeleteCategory)
	cat.POST("/sub-categories", h.Catalog.CreateSubCategory)
	cat.GET("/sub-categories", h.Catalog.SubCategories)
	cat.GET("/sub-categories/:id", h.Catalog.SubCategory)
	cat.PUT("/sub-categories/:id", h.Catalog.UpdateSubCategory)
	cat.DELETE("/sub-categories/:id", h.Catalog.DeleteSubCategory)
	cat.POST("/services", h.Catalog.CreateService)
	cat.GET("/services", h.Catalog.Services)
	cat.GET("/services/:id", h.Catalog.Service)
	cat.PUT("/services/:id", h.Catalog.UpdateService)
	cat.DELETE("/services/:id", h.Catalog.DeleteService)
	cat.POST("/slots", h.Catalog.CreateSlot)
	cat.GET("/slots", h.Catalog.Slots)
	cat.GET("/slots/:id", h.Catalog.Slot)
	cat.PUT("/slots/:id", h.Catalog.UpdateSlot)
	cat.DELETE("/slots/:id", h.Catalog.DeleteSlot)
	cat.POST("/exclusions", h.Catalog.CreateExclusion)
	cat.GET("/exclusions", h.Catalog.Exclusions)
	cat.GET("/exclusions/:id", h.Catalog.Exclusion)
	cat.PUT("/exclusions/:id", h.Catalog.UpdateExclusion)
	cat.DELETE("/exclusions/:id", h.Catalog.DeleteExclusion)

	v.POST("/users", h.Membership.CreateUser)
	v.DELETE("/users/:id", h.Membership.DeleteUser)

	links := v.Group("/links")
	links.POST("/guards", h.Membership.LinkGuard)
	links.DELETE("/guards/:user", h.Membership.UnlinkGuard)
	links.POST("/residents", h.Membership.LinkResident)
	links.DELETE("/residents", h.Membership.UnlinkResident)
	links.PATCH("/residents/current", h.Membership.SelectCurrentFlat)
	links.POST("/committee", h.Membership.GrantCommitteeSeat)
	links.DELETE("/committee", h.Membership.RevokeCommitteeSeat)

	adm := v.Group("/admin")
	adm.GET("/policies", h.Policy.List)
	adm.POST("/policies", h.Policy.Add)
	adm.DELETE("/policies", h.Policy.Remove)

	return r
}
