package domain

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }

func TestAttendanceRecord_State(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		record      *AttendanceRecord
		expected    AttendanceState
		description string
	}{
		{
			name:        "no record",
			record:      nil,
			expected:    AttendanceNoRecord,
			description: "missing record means the guard has not checked in",
		},
		{
			name:        "open record",
			record:      &AttendanceRecord{ID: 1, SignInTime: now},
			expected:    AttendanceCheckedIn,
			description: "sign-out fields all empty",
		},
		{
			name: "closed record",
			record: &AttendanceRecord{
				ID:                1,
				SignInTime:        now,
				SignOutLocationID: uintPtr(2),
				SignOutImage:      strPtr("img"),
				SignOutDeviceID:   uintPtr(3),
				SignOutTime:       &now,
			},
			expected:    AttendanceCheckedOut,
			description: "all four sign-out fields populated",
		},
		{
			name: "partially closed record",
			record: &AttendanceRecord{
				ID:          1,
				SignInTime:  now,
				SignOutTime: &now,
			},
			expected:    AttendanceCheckedIn,
			description: "a partial sign-out is neither open nor closed and does not count as checked out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.record); got != tt.expected {
				t.Errorf("%s: expected state %d, got %d", tt.description, tt.expected, got)
			}
		})
	}
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2026-10-19", 1}, // Monday
		{"2026-10-21", 3},
		{"2026-10-24", 6},
		{"2026-10-25", 7}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := ISOWeekday(d); got != tt.expected {
				t.Errorf("expected weekday %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestCalendarDate_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 16th is already the 17th in India.
	instant := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)

	got := FormatDate(CalendarDate(instant, ist))
	if got != "2026-10-17" {
		t.Errorf("expected 2026-10-17, got %s", got)
	}

	start, end := DayBounds(instant, ist)
	if !start.Equal(time.Date(2026, 10, 16, 18, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected day start %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("expected a 24h day, got %v", end.Sub(start))
	}
}

func TestDateBefore(t *testing.T) {
	a, _ := ParseDate("2026-10-16")
	b, _ := ParseDate("2026-10-17")

	if !DateBefore(a, b) {
		t.Error("16th should be before 17th")
	}
	if DateBefore(b, b) {
		t.Error("a date is not before itself")
	}
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name           string
		page           Page
		expectedNumber int
		expectedSize   int
		expectedOffset int
	}{
		{"zero value", Page{}, 1, 20, 0},
		{"second page", Page{Number: 2, Size: 10}, 2, 10, 10},
		{"oversized", Page{Number: 1, Size: 1000}, 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.page.Normalize()
			if n.Number != tt.expectedNumber || n.Size != tt.expectedSize {
				t.Errorf("expected %d/%d, got %d/%d", tt.expectedNumber, tt.expectedSize, n.Number, n.Size)
			}
			if off := tt.page.Offset(); off != tt.expectedOffset {
				t.Errorf("expected offset %d, got %d", tt.expectedOffset, off)
			}
		})
	}
}

func TestViewFor_HidesFieldsPerAudience(t *testing.T) {
	date, _ := ParseDate("2026-10-20")
	req := &ServiceRequest{
		ID:            9,
		RequestedDate: date,
		Amount:        1000,
		Status:        StatusAssigned,
		Service:       &Service{ID: 1, Name: "Plumbing", Price: 500},
		Flat:          &Flat{ID: 4, Number: "A-101", BuildingID: 2, Building: &Building{ID: 2, EstablishmentID: 3}},
		RequestedUser: &User{ID: 10, FirstName: "Asha"},
		AssignedUser:  &User{ID: 11, FirstName: "Ravi"},
		Payment:       &Payment{OrderID: "order_1", Amount: 1000, Status: PaymentSuccess},
		Slots: []ServiceRequestSlot{
			{ServiceSlotID: 5, StartTime: datatypes.NewTime(9, 0, 0, 0), EndTime: datatypes.NewTime(10, 0, 0, 0)},
		},
	}

	resident, ok := ViewFor(AudienceResident, req).(ResidentView)
	if !ok {
		t.Fatal("resident audience should render a ResidentView")
	}
	if resident.AssignedUser == nil || resident.AssignedUser.ID != 11 {
		t.Error("resident should see the assigned employee")
	}
	if resident.RequestedDate != "2026-10-20" {
		t.Errorf("unexpected date %q", resident.RequestedDate)
	}
	if len(resident.Slots) != 1 || resident.Slots[0].StartTime != "09:00:00" {
		t.Errorf("unexpected slots %+v", resident.Slots)
	}

	employee, ok := ViewFor(AudienceEmployee, req).(EmployeeView)
	if !ok {
		t.Fatal("employee audience should render an EmployeeView")
	}
	if employee.Flat == nil || employee.Flat.EstablishmentID != 3 {
		t.Error("employee should see the flat with its establishment")
	}
	if employee.RequestedUser == nil || employee.RequestedUser.ID != 10 {
		t.Error("employee should see the requester")
	}

	admin, ok := ViewFor(AudienceAdmin, req).(AdminView)
	if !ok {
		t.Fatal("admin audience should render an AdminView")
	}
	if admin.Payment == nil || admin.Payment.OrderID != "order_1" {
		t.Error("admin should see the payment")
	}
}

func TestUser_FullName(t *testing.T) {
	u := &User{FirstName: "Asha"}
	if u.FullName() != "Asha" {
		t.Errorf("unexpected %q", u.FullName())
	}
	u.LastName = "Rao"
	if u.FullName() != "Asha Rao" {
		t.Errorf("unexpected %q", u.FullName())
	}
}
