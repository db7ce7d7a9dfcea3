package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// topProductsLimit caps the "most viewed products" rollup.
const topProductsLimit = 5

// placeholderProductName stands in for products that were deleted after
// collecting view events; a dangling reference must not fail the rollup.
const placeholderProductName = "Unknown product"

// AnalyticsService rolls events, orders and users up into the admin
// dashboard. Everything is recomputed per call; there is no cache and no
// incremental state.
type AnalyticsService struct {
	users    ports.UserRepository
	orders   ports.OrderRepository
	events   ports.EventRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewAnalyticsService(
	users ports.UserRepository,
	orders ports.OrderRepository,
	events ports.EventRepository,
	products ports.ProductRepository,
	log zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		users:    users,
		orders:   orders,
		events:   events,
		products: products,
		log:      log,
	}
}

func (s *AnalyticsService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: count users: %w", err)
	}
	if stats.TotalOrders, err = s.orders.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: count orders: %w", err)
	}
	if stats.TotalEvents, err = s.events.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: count events: %w", err)
	}
	if stats.TotalRevenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: total revenue: %w", err)
	}

	if stats.TopProducts, err = s.topProducts(ctx); err != nil {
		return nil, err
	}
	if stats.Users, err = s.userEngagement(ctx); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int64("users", stats.TotalUsers).
		Int64("orders", stats.TotalOrders).
		Int64("events", stats.TotalEvents).
		Msg("dashboard stats computed")

	return stats, nil
}

// topProducts ranks products strictly by view count, annotating each with its
// add-to-cart count. Products with zero views never appear, even when they
// have cart-add events.
func (s *AnalyticsService) topProducts(ctx context.Context) ([]ports.TopProduct, error) {
	views, err := s.events.TopProductsByType(ctx, domain.EventProductView, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top products: %w", err)
	}
	if len(views) == 0 {
		return []ports.TopProduct{}, nil
	}

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ProductID)
	}

	cartAdds, err := s.events.CountByProductForType(ctx, domain.EventAddToCart, ids)
	if err != nil {
		return nil, fmt.Errorf("dashboard: cart-add counts: %w", err)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resolve product names: %w", err)
	}

	top := make([]ports.TopProduct, 0, len(views))
	for _, v := range views {
		name := placeholderProductName
		if p, ok := products[v.ProductID]; ok {
			name = p.Name
		}
		top = append(top, ports.TopProduct{
			ProductID: v.ProductID,
			Name:      name,
			Views:     v.Count,
			AddToCart: cartAdds[v.ProductID],
		})
	}
	return top, nil
}

// userEngagement builds the per-user rollup, excluding admin accounts.
func (s *AnalyticsService) userEngagement(ctx context.Context) ([]ports.UserEngagement, error) {
	clients, err := s.users.ListByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list users: %w", err)
	}

	orderCounts, err := s.orders.CountByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: order counts: %w", err)
	}
	eventCounts, err := s.events.CountByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: event counts: %w", err)
	}

	rollup := make([]ports.UserEngagement, 0, len(clients))
	for _, u := range clients {
		rollup = append(rollup, ports.UserEngagement{
			UserID:      u.ID,
			Username:    u.Username,
			Email:       u.Email,
			OrderCount:  orderCounts[u.ID],
			EventsCount: eventCounts[u.ID],
			LoginCount:  u.LoginCount,
		})
	}
	return rollup, nil
}
