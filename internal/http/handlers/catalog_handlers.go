package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// CatalogHandlers serves catalog management for organization admins and the
// service browser for residents
type CatalogHandlers struct {
	svc domain.CatalogService
}

func NewCatalogHandlers(svc domain.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{svc: svc}
}

type CategoryRequest struct {
	Organization uint   `json:"organization"`
	Name         string `json:"name" binding:"required"`
}

type SubCategoryRequest struct {
	Category uint   `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// OfferingRequest creates or edits a bookable service. A zero price is valid.
type OfferingRequest struct {
	SubCategory uint   `json:"sub_category" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Image       string `json:"image"`
	Price       *int64 `json:"price" binding:"required"`
}

// SlotRequest leaves the day range to the workflow.
type SlotRequest struct {
	Service   uint   `json:"service" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
}

type ExclusionRequest struct {
	Service       uint   `json:"service" binding:"required"`
	ExclusionDate string `json:"exclusion_date" binding:"required"`
}

// CatalogListQuery holds the catalog filters accepted on the query string
type CatalogListQuery struct {
	Name          string `form:"name"`
	Search        string `form:"search"`
	Category      uint   `form:"category_id"`
	SubCategory   uint   `form:"sub_category_id"`
	Service       uint   `form:"service_id"`
	DayOfWeek     int    `form:"day_of_week"`
	ExclusionDate string `form:"exclusion_date"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

func (q CatalogListQuery) query() domain.CatalogQuery {
	name := q.Name
	if name == "" {
		name = q.Search
	}
	return domain.CatalogQuery{
		Name:          name,
		CategoryID:    q.Category,
		SubCategoryID: q.SubCategory,
		ServiceID:     q.Service,
		DayOfWeek:     q.DayOfWeek,
		Date:          q.ExclusionDate,
		Page:          domain.Page{Number: q.Page, Size: q.PageSize},
	}
}

func (h *CatalogHandlers) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	createRecord(c, &req, func(ctx context.Context, userID uint) (any, error) {
		return h.svc.CreateCategory(ctx, userID, domain.CategoryInput{OrganizationID: req.Organization, Name: req.Name})
	})
}

func (h *CatalogHandlers) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	updateRecord(c, &req, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.UpdateCategory(ctx, userID, id, domain.CategoryInput{Name: req.Name})
	})
}

func (h *CatalogHandlers) DeleteCategory(c *gin.Context) { deleteRecord(c, h.svc.DeleteCategory) }

func (h *CatalogHandlers) Category(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.Category(ctx, userID, id)
	})
}

func (h *CatalogHandlers) Categories(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.Categories(ctx, userID, q)
	})
}

func (h *CatalogHandlers) CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	createRecord(c, &req, func(ctx context.Context, userID uint) (any, error) {
		return h.svc.CreateSubCategory(ctx, userID, domain.SubCategoryInput{CategoryID: req.Category, Name: req.Name})
	})
}

func (h *CatalogHandlers) UpdateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	updateRecord(c, &req, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.UpdateSubCategory(ctx, userID, id, domain.SubCategoryInput{CategoryID: req.Category, Name: req.Name})
	})
}

func (h *CatalogHandlers) DeleteSubCategory(c *gin.Context) { deleteRecord(c, h.svc.DeleteSubCategory) }

func (h *CatalogHandlers) SubCategory(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.SubCategory(ctx, userID, id)
	})
}

func (h *CatalogHandlers) SubCategories(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.SubCategories(ctx, userID, q)
	})
}

func (h *CatalogHandlers) CreateService(c *gin.Context) {
	var req OfferingRequest
	createRecord(c, &req, func(ctx context.Context, userID uint) (any, error) {
		return h.svc.CreateService(ctx, userID, req.input())
	})
}

func (h *CatalogHandlers) UpdateService(c *gin.Context) {
	var req OfferingRequest
	updateRecord(c, &req, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.UpdateService(ctx, userID, id, req.input())
	})
}

func (h *CatalogHandlers) DeleteService(c *gin.Context) { deleteRecord(c, h.svc.DeleteService) }

func (h *CatalogHandlers) Service(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.Service(ctx, userID, id)
	})
}

func (h *CatalogHandlers) Services(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.Services(ctx, userID, q)
	})
}

func (h *CatalogHandlers) CreateSlot(c *gin.Context) {
	var req SlotRequest
	createRecord(c, &req, func(ctx context.Context, userID uint) (any, error) {
		return h.svc.CreateSlot(ctx, userID, req.input())
	})
}

func (h *CatalogHandlers) UpdateSlot(c *gin.Context) {
	var req SlotRequest
	updateRecord(c, &req, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.UpdateSlot(ctx, userID, id, req.input())
	})
}

func (h *CatalogHandlers) DeleteSlot(c *gin.Context) { deleteRecord(c, h.svc.DeleteSlot) }

func (h *CatalogHandlers) Slot(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.Slot(ctx, userID, id)
	})
}

func (h *CatalogHandlers) Slots(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.Slots(ctx, userID, q)
	})
}

func (h *CatalogHandlers) CreateExclusion(c *gin.Context) {
	var req ExclusionRequest
	createRecord(c, &req, func(ctx context.Context, userID uint) (any, error) {
		return h.svc.CreateExclusion(ctx, userID, domain.ExclusionInput{ServiceID: req.Service, Date: req.ExclusionDate})
	})
}

func (h *CatalogHandlers) UpdateExclusion(c *gin.Context) {
	var req ExclusionRequest
	updateRecord(c, &req, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.UpdateExclusion(ctx, userID, id, domain.ExclusionInput{ServiceID: req.Service, Date: req.ExclusionDate})
	})
}

func (h *CatalogHandlers) DeleteExclusion(c *gin.Context) { deleteRecord(c, h.svc.DeleteExclusion) }

func (h *CatalogHandlers) Exclusion(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.Exclusion(ctx, userID, id)
	})
}

func (h *CatalogHandlers) Exclusions(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.Exclusions(ctx, userID, q)
	})
}

// BrowseServices handles GET /bookings/services?search=&category_id=&sub_category_id=
func (h *CatalogHandlers) BrowseServices(c *gin.Context) {
	listRecords(c, func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error) {
		return h.svc.BrowseServices(ctx, userID, q)
	})
}

// BookingCategories handles GET /bookings/categories
func (h *CatalogHandlers) BookingCategories(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	categories, err := h.svc.BookingCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, categories)
}

// BookingSubCategories handles GET /bookings/categories/:id/sub-categories
func (h *CatalogHandlers) BookingSubCategories(c *gin.Context) {
	showRecord(c, func(ctx context.Context, userID, id uint) (any, error) {
		return h.svc.BookingSubCategories(ctx, userID, id)
	})
}

func (r OfferingRequest) input() domain.ServiceInput {
	return domain.ServiceInput{SubCategoryID: r.SubCategory, Name: r.Name, Image: r.Image, Price: *r.Price}
}

func (r SlotRequest) input() domain.SlotInput {
	return domain.SlotInput{ServiceID: r.Service, StartTime: r.StartTime, EndTime: r.EndTime, DayOfWeek: *r.DayOfWeek}
}

func createRecord(c *gin.Context, body any, create func(ctx context.Context, userID uint) (any, error)) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(body); err != nil {
		respondBindError(c, err)
		return
	}
	record, err := create(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, domain.CodeRecordCreated, record)
}

func updateRecord(c *gin.Context, body any, update func(ctx context.Context, userID, id uint) (any, error)) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(body); err != nil {
		respondBindError(c, err)
		return
	}
	record, err := update(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordUpdated, record)
}

func deleteRecord(c *gin.Context, remove func(ctx context.Context, userID, id uint) error) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func showRecord(c *gin.Context, show func(ctx context.Context, userID, id uint) (any, error)) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := show(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, record)
}

func listRecords(c *gin.Context, list func(ctx context.Context, userID uint, q domain.CatalogQuery) (any, error)) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var q CatalogListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	records, err := list(c.Request.Context(), userID, q.query())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, domain.CodeRecordRetrieved, records)
}
