package mocks

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockCatalogService implements domain.CatalogService for handler tests.
// Unset funcs succeed with empty records.
type MockCatalogService struct {
	CreateCategoryFunc       func(ctx context.Context, userID uint, in domain.CategoryInput) (*domain.ServiceCategory, error)
	UpdateCategoryFunc       func(ctx context.Context, userID, id uint, in domain.CategoryInput) (*domain.ServiceCategory, error)
	DeleteCategoryFunc       func(ctx context.Context, userID, id uint) error
	CategoryFunc             func(ctx context.Context, userID, id uint) (*domain.ServiceCategory, error)
	CategoriesFunc           func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceCategory], error)
	CreateSubCategoryFunc    func(ctx context.Context, userID uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error)
	UpdateSubCategoryFunc    func(ctx context.Context, userID, id uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error)
	DeleteSubCategoryFunc    func(ctx context.Context, userID, id uint) error
	SubCategoryFunc          func(ctx context.Context, userID, id uint) (*domain.ServiceSubCategory, error)
	SubCategoriesFunc        func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSubCategory], error)
	CreateServiceFunc        func(ctx context.Context, userID uint, in domain.ServiceInput) (*domain.Service, error)
	UpdateServiceFunc        func(ctx context.Context, userID, id uint, in domain.ServiceInput) (*domain.Service, error)
	DeleteServiceFunc        func(ctx context.Context, userID, id uint) error
	ServiceFunc              func(ctx context.Context, userID, id uint) (*domain.Service, error)
	ServicesFunc             func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error)
	CreateSlotFunc           func(ctx context.Context, userID uint, in domain.SlotInput) (*domain.ServiceSlot, error)
	UpdateSlotFunc           func(ctx context.Context, userID, id uint, in domain.SlotInput) (*domain.ServiceSlot, error)
	DeleteSlotFunc           func(ctx context.Context, userID, id uint) error
	SlotFunc                 func(ctx context.Context, userID, id uint) (*domain.ServiceSlot, error)
	SlotsFunc                func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSlot], error)
	CreateExclusionFunc      func(ctx context.Context, userID uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error)
	UpdateExclusionFunc      func(ctx context.Context, userID, id uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error)
	DeleteExclusionFunc      func(ctx context.Context, userID, id uint) error
	ExclusionFunc            func(ctx context.Context, userID, id uint) (*domain.ServiceExclusion, error)
	ExclusionsFunc           func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceExclusion], error)
	BrowseServicesFunc       func(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error)
	BookingCategoriesFunc    func(ctx context.Context, userID uint) ([]domain.ServiceCategory, error)
	BookingSubCategoriesFunc func(ctx context.Context, userID, categoryID uint) ([]domain.ServiceSubCategory, error)
}

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, userID uint, in domain.CategoryInput) (*domain.ServiceCategory, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, userID, in)
	}
	return &domain.ServiceCategory{ID: 1}, nil
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, userID, id uint, in domain.CategoryInput) (*domain.ServiceCategory, error) {
	if m.UpdateCategoryFunc != nil {
		return m.UpdateCategoryFunc(ctx, userID, id, in)
	}
	return &domain.ServiceCategory{ID: id}, nil
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, userID, id uint) error {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCatalogService) Category(ctx context.Context, userID, id uint) (*domain.ServiceCategory, error) {
	if m.CategoryFunc != nil {
		return m.CategoryFunc(ctx, userID, id)
	}
	return &domain.ServiceCategory{ID: id}, nil
}

func (m *MockCatalogService) Categories(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceCategory], error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.ServiceCategory]{Page: 1, Size: 20, Results: []domain.ServiceCategory{}}, nil
}

func (m *MockCatalogService) CreateSubCategory(ctx context.Context, userID uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error) {
	if m.CreateSubCategoryFunc != nil {
		return m.CreateSubCategoryFunc(ctx, userID, in)
	}
	return &domain.ServiceSubCategory{ID: 1}, nil
}

func (m *MockCatalogService) UpdateSubCategory(ctx context.Context, userID, id uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error) {
	if m.UpdateSubCategoryFunc != nil {
		return m.UpdateSubCategoryFunc(ctx, userID, id, in)
	}
	return &domain.ServiceSubCategory{ID: id}, nil
}

func (m *MockCatalogService) DeleteSubCategory(ctx context.Context, userID, id uint) error {
	if m.DeleteSubCategoryFunc != nil {
		return m.DeleteSubCategoryFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCatalogService) SubCategory(ctx context.Context, userID, id uint) (*domain.ServiceSubCategory, error) {
	if m.SubCategoryFunc != nil {
		return m.SubCategoryFunc(ctx, userID, id)
	}
	return &domain.ServiceSubCategory{ID: id}, nil
}

func (m *MockCatalogService) SubCategories(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSubCategory], error) {
	if m.SubCategoriesFunc != nil {
		return m.SubCategoriesFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.ServiceSubCategory]{Page: 1, Size: 20, Results: []domain.ServiceSubCategory{}}, nil
}

func (m *MockCatalogService) CreateService(ctx context.Context, userID uint, in domain.ServiceInput) (*domain.Service, error) {
	if m.CreateServiceFunc != nil {
		return m.CreateServiceFunc(ctx, userID, in)
	}
	return &domain.Service{ID: 1}, nil
}

func (m *MockCatalogService) UpdateService(ctx context.Context, userID, id uint, in domain.ServiceInput) (*domain.Service, error) {
	if m.UpdateServiceFunc != nil {
		return m.UpdateServiceFunc(ctx, userID, id, in)
	}
	return &domain.Service{ID: id}, nil
}

func (m *MockCatalogService) DeleteService(ctx context.Context, userID, id uint) error {
	if m.DeleteServiceFunc != nil {
		return m.DeleteServiceFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCatalogService) Service(ctx context.Context, userID, id uint) (*domain.Service, error) {
	if m.ServiceFunc != nil {
		return m.ServiceFunc(ctx, userID, id)
	}
	return &domain.Service{ID: id}, nil
}

func (m *MockCatalogService) Services(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error) {
	if m.ServicesFunc != nil {
		return m.ServicesFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.Service]{Page: 1, Size: 20, Results: []domain.Service{}}, nil
}

func (m *MockCatalogService) CreateSlot(ctx context.Context, userID uint, in domain.SlotInput) (*domain.ServiceSlot, error) {
	if m.CreateSlotFunc != nil {
		return m.CreateSlotFunc(ctx, userID, in)
	}
	return &domain.ServiceSlot{ID: 1}, nil
}

func (m *MockCatalogService) UpdateSlot(ctx context.Context, userID, id uint, in domain.SlotInput) (*domain.ServiceSlot, error) {
	if m.UpdateSlotFunc != nil {
		return m.UpdateSlotFunc(ctx, userID, id, in)
	}
	return &domain.ServiceSlot{ID: id}, nil
}

func (m *MockCatalogService) DeleteSlot(ctx context.Context, userID, id uint) error {
	if m.DeleteSlotFunc != nil {
		return m.DeleteSlotFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCatalogService) Slot(ctx context.Context, userID, id uint) (*domain.ServiceSlot, error) {
	if m.SlotFunc != nil {
		return m.SlotFunc(ctx, userID, id)
	}
	return &domain.ServiceSlot{ID: id}, nil
}

func (m *MockCatalogService) Slots(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSlot], error) {
	if m.SlotsFunc != nil {
		return m.SlotsFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.ServiceSlot]{Page: 1, Size: 20, Results: []domain.ServiceSlot{}}, nil
}

func (m *MockCatalogService) CreateExclusion(ctx context.Context, userID uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error) {
	if m.CreateExclusionFunc != nil {
		return m.CreateExclusionFunc(ctx, userID, in)
	}
	return &domain.ServiceExclusion{ID: 1}, nil
}

func (m *MockCatalogService) UpdateExclusion(ctx context.Context, userID, id uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error) {
	if m.UpdateExclusionFunc != nil {
		return m.UpdateExclusionFunc(ctx, userID, id, in)
	}
	return &domain.ServiceExclusion{ID: id}, nil
}

func (m *MockCatalogService) DeleteExclusion(ctx context.Context, userID, id uint) error {
	if m.DeleteExclusionFunc != nil {
		return m.DeleteExclusionFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockCatalogService) Exclusion(ctx context.Context, userID, id uint) (*domain.ServiceExclusion, error) {
	if m.ExclusionFunc != nil {
		return m.ExclusionFunc(ctx, userID, id)
	}
	return &domain.ServiceExclusion{ID: id}, nil
}

func (m *MockCatalogService) Exclusions(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceExclusion], error) {
	if m.ExclusionsFunc != nil {
		return m.ExclusionsFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.ServiceExclusion]{Page: 1, Size: 20, Results: []domain.ServiceExclusion{}}, nil
}

func (m *MockCatalogService) BrowseServices(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error) {
	if m.BrowseServicesFunc != nil {
		return m.BrowseServicesFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.Service]{Page: 1, Size: 20, Results: []domain.Service{}}, nil
}

func (m *MockCatalogService) BookingCategories(ctx context.Context, userID uint) ([]domain.ServiceCategory, error) {
	if m.BookingCategoriesFunc != nil {
		return m.BookingCategoriesFunc(ctx, userID)
	}
	return []domain.ServiceCategory{}, nil
}

func (m *MockCatalogService) BookingSubCategories(ctx context.Context, userID, categoryID uint) ([]domain.ServiceSubCategory, error) {
	if m.BookingSubCategoriesFunc != nil {
		return m.BookingSubCategoriesFunc(ctx, userID, categoryID)
	}
	return []domain.ServiceSubCategory{}, nil
}

var _ domain.CatalogService = (*MockCatalogService)(nil)
