package service

import (
	"context"

	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/repository"
)

// DashboardStats are the back-office aggregates. Revenue excludes cancelled
// orders.
type DashboardStats struct {
	TotalOrders     int                      `json:"total_orders"`
	TotalRevenue    float64                  `json:"total_revenue"`
	TotalCustomers  int                      `json:"total_customers"`
	UnreadMessages  int                      `json:"unread_messages"`
	RecentOrders    []*models.Order          `json:"recent_orders"`
	RecentMessages  []*models.ContactMessage `json:"recent_messages"`
}

// DashboardService assembles read-only aggregates for the admin landing page.
type DashboardService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	messages repository.MessageRepository
}

func NewDashboardService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	messages repository.MessageRepository,
) *DashboardService {
	return &DashboardService{orders: orders, users: users, messages: messages}
}

// CustomerSummary is one row of the admin customers listing: the account plus
// its lifetime order aggregates.
type CustomerSummary struct {
	*models.User
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

const recentLimit = 10

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalOrders:    len(orders),
		TotalCustomers: customers,
	}

	for _, order := range orders {
		if order.Status != models.OrderStatusCancelled {
			stats.TotalRevenue += order.Total
		}
	}

	for _, msg := range messages {
		if msg.Status == models.MessageStatusUnread {
			stats.UnreadMessages++
		}
	}

	stats.RecentOrders = orders
	if len(stats.RecentOrders) > recentLimit {
		stats.RecentOrders = stats.RecentOrders[:recentLimit]
	}
	stats.RecentMessages = messages
	if len(stats.RecentMessages) > recentLimit {
		stats.RecentMessages = stats.RecentMessages[:recentLimit]
	}

	return stats, nil
}

// ListCustomers returns every account, newest first, with its order count and
// lifetime spend. Spend sums every order the customer placed, cancelled ones
// included, so the figure matches their order history page.
func (s *DashboardService) ListCustomers(ctx context.Context) ([]*CustomerSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	type aggregate struct {
		count int
		spent float64
	}
	byEmail := make(map[string]aggregate, len(users))
	for _, order := range orders {
		agg := byEmail[order.UserEmail]
		agg.count++
		agg.spent += order.Total
		byEmail[order.UserEmail] = agg
	}

	customers := make([]*CustomerSummary, len(users))
	for i, user := range users {
		agg := byEmail[user.Email]
		customers[i] = &CustomerSummary{
			User:       user,
			OrderCount: agg.count,
			TotalSpent: roundCurrency(agg.spent),
		}
	}
	return customers, nil
}
