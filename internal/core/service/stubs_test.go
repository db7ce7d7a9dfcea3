package service

import (
	"context"
	"fmt"
	"time"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared across the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users      map[string]*domain.User // keyed by ID
	createErr  error
	incErr     error
	loginBumps []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user_%d", len(r.users)+1)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) IncrementLoginCount(_ context.Context, id string) error {
	if r.incErr != nil {
		return r.incErr
	}
	if u, ok := r.users[id]; ok {
		u.LoginCount++
	}
	r.loginBumps = append(r.loginBumps, id)
	return nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	listGot  ports.CatalogFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) List(_ context.Context, filter ports.CatalogFilter) ([]*domain.Product, error) {
	r.listGot = filter
	var out []*domain.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *stubProductRepo) UpdateStock(_ context.Context, id string, stock int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p.Stock = stock
	return p, nil
}

type stubCartRepo struct {
	lines    map[string]*domain.CartLine // keyed by line ID
	nextID   int
	addErr   error
	clearErr error
	cleared  []string // user IDs passed to ClearUser
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{lines: make(map[string]*domain.CartLine)}
}

func (r *stubCartRepo) AddOrIncrement(_ context.Context, userID, productID string, quantity int, addedAt time.Time) error {
	if r.addErr != nil {
		return r.addErr
	}
	for _, l := range r.lines {
		if l.UserID == userID && l.ProductID == productID {
			l.Quantity += quantity
			return nil
		}
	}
	r.nextID++
	id := fmt.Sprintf("line_%d", r.nextID)
	r.lines[id] = &domain.CartLine{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   addedAt,
	}
	return nil
}

func (r *stubCartRepo) ListWithProducts(_ context.Context, userID string) ([]*domain.CartLine, error) {
	var out []*domain.CartLine
	for _, l := range r.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, lineID string) (*domain.CartLine, error) {
	if l, ok := r.lines[lineID]; ok {
		clone := *l
		return &clone, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubCartRepo) DecrementQuantity(_ context.Context, lineID string) error {
	l, ok := r.lines[lineID]
	if !ok {
		return domain.ErrItemNotFound
	}
	l.Quantity--
	return nil
}

func (r *stubCartRepo) Delete(_ context.Context, lineID string) error {
	if _, ok := r.lines[lineID]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.lines, lineID)
	return nil
}

func (r *stubCartRepo) ClearUser(_ context.Context, userID string) (int64, error) {
	r.cleared = append(r.cleared, userID)
	if r.clearErr != nil {
		return 0, r.clearErr
	}
	var n int64
	for id, l := range r.lines {
		if l.UserID == userID {
			delete(r.lines, id)
			n++
		}
	}
	return n, nil
}

type stubOrderRepo struct {
	orders    []*domain.Order
	createErr error
	byUser    map[string]int64
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) TotalRevenue(_ context.Context) (float64, error) {
	var total float64
	for _, o := range r.orders {
		total += o.Total
	}
	return total, nil
}

func (r *stubOrderRepo) CountByUser(_ context.Context) (map[string]int64, error) {
	if r.byUser != nil {
		return r.byUser, nil
	}
	out := make(map[string]int64)
	for _, o := range r.orders {
		out[o.UserID]++
	}
	return out, nil
}

type stubEventRepo struct {
	events    []*domain.Event
	insertErr error
	top       []ports.ProductEventCount
	cartAdds  map[string]int64
	byUser    map[string]int64
}

func (r *stubEventRepo) Insert(_ context.Context, event *domain.Event) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubEventRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.events)), nil
}

func (r *stubEventRepo) TopProductsByType(_ context.Context, _ string, _ int) ([]ports.ProductEventCount, error) {
	return r.top, nil
}

func (r *stubEventRepo) CountByProductForType(_ context.Context, _ string, _ []string) (map[string]int64, error) {
	return r.cartAdds, nil
}

func (r *stubEventRepo) CountByUser(_ context.Context) (map[string]int64, error) {
	return r.byUser, nil
}

type stubGuard struct {
	held       bool
	acquireErr error
	acquired   []string
	released   []string
}

func (g *stubGuard) Acquire(_ context.Context, userID string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	g.acquired = append(g.acquired, userID)
	return !g.held, nil
}

func (g *stubGuard) Release(_ context.Context, userID string) error {
	g.released = append(g.released, userID)
	return nil
}
