package ports

import "context"

// TopProduct is one row of the "most viewed products" rollup.
type TopProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Views     int64  `json:"views"`
	AddToCart int64  `json:"addToCart"`
}

// UserEngagement is the per-user rollup shown on the admin dashboard.
type UserEngagement struct {
	UserID      string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	OrderCount  int64  `json:"orderCount"`
	EventsCount int64  `json:"eventsCount"`
	LoginCount  int64  `json:"loginCount"`
}

// DashboardStats is the full admin dashboard payload, computed on demand.
type DashboardStats struct {
	TotalUsers   int64            `json:"totalUsers"`
	TotalOrders  int64            `json:"totalOrders"`
	TotalEvents  int64            `json:"totalEvents"`
	TotalRevenue float64          `json:"totalRevenue"`
	TopProducts  []TopProduct     `json:"topProducts"`
	Users        []UserEngagement `json:"users"`
}

// AnalyticsService aggregates events, orders and users into the admin
// dashboard. Admin-only; every call recomputes from the store.
type AnalyticsService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
