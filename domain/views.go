package domain

import "time"

const DateLayout = "2006-01-02"

// ServiceSummary is the service as shown inside a booking.
type ServiceSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image,omitempty"`
}

// UserSummary is a user as shown inside a booking.
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// FlatSummary is a flat as shown inside a booking.
type FlatSummary struct {
	ID              uint   `json:"id"`
	Number          string `json:"number"`
	BuildingID      uint   `json:"building_id"`
	EstablishmentID uint   `json:"establishment_id"`
}

// SlotView is one frozen slot of a booking.
type SlotView struct {
	SlotID    uint   `json:"service_slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PaymentView is the payment of a booking.
type PaymentView struct {
	OrderID string        `json:"order_id"`
	Amount  int64         `json:"amount"`
	Status  PaymentStatus `json:"payment_status"`
}

// ResidentView is a booking as seen by the resident who made it.
type ResidentView struct {
	ID            uint            `json:"id"`
	Service       *ServiceSummary `json:"service"`
	RequestedDate string          `json:"requested_date"`
	Amount        int64           `json:"amount"`
	Status        RequestStatus   `json:"status"`
	Rating        *int            `json:"rating"`
	AssignedUser  *UserSummary    `json:"assigned_user"`
	Slots         []SlotView      `json:"requested_slots"`
	Payment       *PaymentView    `json:"payment_info"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EmployeeView is a booking as seen by the assigned employee.
type EmployeeView struct {
	ID            uint            `json:"id"`
	Service       *ServiceSummary `json:"service"`
	RequestedDate string          `json:"requested_date"`
	Amount        int64           `json:"amount"`
	Status        RequestStatus   `json:"status"`
	Rating        *int            `json:"rating"`
	Flat          *FlatSummary    `json:"flat"`
	RequestedUser *UserSummary    `json:"requested_user"`
	Slots         []SlotView      `json:"requested_slots"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AdminView is a booking as seen by the organization administrator.
type AdminView struct {
	ID            uint            `json:"id"`
	Service       *ServiceSummary `json:"service"`
	RequestedDate string          `json:"requested_date"`
	Amount        int64           `json:"amount"`
	Status        RequestStatus   `json:"status"`
	Rating        *int            `json:"rating"`
	IsActive      bool            `json:"is_active"`
	Flat          *FlatSummary    `json:"flat"`
	RequestedUser *UserSummary    `json:"requested_user"`
	AssignedUser  *UserSummary    `json:"assigned_user"`
	Slots         []SlotView      `json:"requested_slots"`
	Payment       *PaymentView    `json:"payment_info"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Audience selects which view of a booking a caller receives.
type Audience int

const (
	AudienceResident Audience = iota
	AudienceEmployee
	AudienceAdmin
)

// ViewFor renders r for the given audience.
func ViewFor(a Audience, r *ServiceRequest) any {
	switch a {
	case AudienceAdmin:
		return NewAdminView(r)
	case AudienceEmployee:
		return NewEmployeeView(r)
	default:
		return NewResidentView(r)
	}
}

func NewResidentView(r *ServiceRequest) ResidentView {
	return ResidentView{
		ID:            r.ID,
		Service:       summarizeService(r.Service),
		RequestedDate: FormatDate(r.RequestedDate),
		Amount:        r.Amount,
		Status:        r.Status,
		Rating:        r.Rating,
		AssignedUser:  summarizeUser(r.AssignedUser),
		Slots:         slotViews(r.Slots),
		Payment:       paymentView(r.Payment),
		CreatedAt:     r.CreatedAt,
	}
}

func NewEmployeeView(r *ServiceRequest) EmployeeView {
	return EmployeeView{
		ID:            r.ID,
		Service:       summarizeService(r.Service),
		RequestedDate: FormatDate(r.RequestedDate),
		Amount:        r.Amount,
		Status:        r.Status,
		Rating:        r.Rating,
		Flat:          summarizeFlat(r.Flat),
		RequestedUser: summarizeUser(r.RequestedUser),
		Slots:         slotViews(r.Slots),
		CreatedAt:     r.CreatedAt,
	}
}

func NewAdminView(r *ServiceRequest) AdminView {
	return AdminView{
		ID:            r.ID,
		Service:       summarizeService(r.Service),
		RequestedDate: FormatDate(r.RequestedDate),
		Amount:        r.Amount,
		Status:        r.Status,
		Rating:        r.Rating,
		IsActive:      r.IsActive,
		Flat:          summarizeFlat(r.Flat),
		RequestedUser: summarizeUser(r.RequestedUser),
		AssignedUser:  summarizeUser(r.AssignedUser),
		Slots:         slotViews(r.Slots),
		Payment:       paymentView(r.Payment),
		CreatedAt:     r.CreatedAt,
	}
}

func summarizeService(s *Service) *ServiceSummary {
	if s == nil {
		return nil
	}
	return &ServiceSummary{ID: s.ID, Name: s.Name, Price: s.Price, Image: s.Image}
}

func summarizeUser(u *User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone}
}

func summarizeFlat(f *Flat) *FlatSummary {
	if f == nil {
		return nil
	}
	return &FlatSummary{ID: f.ID, Number: f.Number, BuildingID: f.BuildingID, EstablishmentID: f.EstablishmentID()}
}

func slotViews(slots []ServiceRequestSlot) []SlotView {
	out := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotView{SlotID: s.ServiceSlotID, StartTime: s.StartTime.String(), EndTime: s.EndTime.String()})
	}
	return out
}

func paymentView(p *Payment) *PaymentView {
	if p == nil {
		return nil
	}
	return &PaymentView{OrderID: p.OrderID, Amount: p.Amount, Status: p.Status}
}
