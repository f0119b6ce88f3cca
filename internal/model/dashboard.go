package model

// Dashboard is the landing summary of the back office
type Dashboard struct {
	Counts          map[string]int64 `json:"counts"`
	PendingBookings int64            `json:"pending_bookings"`
	BookingsToday   int64            `json:"bookings_today"`
	RecentBookings  []Booking        `json:"recent_bookings"`
}

// DashboardRecentBookings is how many bookings the dashboard lists
const DashboardRecentBookings = 5
