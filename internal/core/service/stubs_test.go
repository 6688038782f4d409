package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

// In-memory stand-ins for the persistence and provider ports. Shared by
// the service tests in this package.

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.CartItems = append([]domain.CartLine(nil), u.CartItems...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
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
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) AddCartItem(_ context.Context, userID, productID string) ([]domain.CartLine, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for i := range u.CartItems {
		if u.CartItems[i].ProductID == productID {
			u.CartItems[i].Quantity++
			return append([]domain.CartLine(nil), u.CartItems...), nil
		}
	}
	u.CartItems = append(u.CartItems, domain.CartLine{ProductID: productID, Quantity: 1})
	return append([]domain.CartLine(nil), u.CartItems...), nil
}

func (r *stubUserRepo) SetCartItemQuantity(_ context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for i := range u.CartItems {
		if u.CartItems[i].ProductID == productID {
			u.CartItems[i].Quantity = quantity
			return append([]domain.CartLine(nil), u.CartItems...), nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *stubUserRepo) RemoveCartItem(_ context.Context, userID, productID string) ([]domain.CartLine, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for i := range u.CartItems {
		if u.CartItems[i].ProductID == productID {
			u.CartItems = append(u.CartItems[:i], u.CartItems[i+1:]...)
			return append([]domain.CartLine(nil), u.CartItems...), nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *stubUserRepo) ClearCart(_ context.Context, userID string) ([]domain.CartLine, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.CartItems = []domain.CartLine{}
	return []domain.CartLine{}, nil
}

type stubProductRepo struct {
	products []*domain.Product
	seq      int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{}
}

func (r *stubProductRepo) add(p *domain.Product) *domain.Product {
	r.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("prod_%d", r.seq)
	}
	r.products = append(r.products, p)
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	clone := *p
	return r.add(&clone), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				clone := *p
				out = append(out, &clone)
			}
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	return append([]*domain.Product(nil), r.products...), nil
}

func (r *stubProductRepo) FindFeatured(_ context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Sample(_ context.Context, n int) ([]*domain.Product, error) {
	if n > len(r.products) {
		n = len(r.products)
	}
	return append([]*domain.Product(nil), r.products[:n]...), nil
}

func (r *stubProductRepo) SetFeatured(_ context.Context, id string, featured bool) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			p.IsFeatured = featured
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type stubCouponRepo struct {
	coupons []*domain.Coupon
	seq     int
}

func newStubCouponRepo() *stubCouponRepo {
	return &stubCouponRepo{}
}

func (r *stubCouponRepo) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("coupon_%d", r.seq)
	r.coupons = append(r.coupons, &clone)
	out := clone
	return &out, nil
}

func (r *stubCouponRepo) FindActive(_ context.Context, userID string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.UserID == userID && c.IsActive {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubCouponRepo) FindActiveByCode(_ context.Context, userID, code string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.UserID == userID && c.Code == code && c.IsActive {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (r *stubCouponRepo) Deactivate(_ context.Context, userID, code string) error {
	for _, c := range r.coupons {
		if c.UserID == userID && c.Code == code {
			c.IsActive = false
		}
	}
	return nil
}

func (r *stubCouponRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := r.coupons[:0]
	for _, c := range r.coupons {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	r.coupons = kept
	return nil
}

type stubOrderRepo struct {
	orders []*domain.Order
	byDay  map[string]ports.DailySales
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byDay: make(map[string]ports.DailySales)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, bool, error) {
	for _, existing := range r.orders {
		if existing.StripeSessionID == o.StripeSessionID {
			clone := *existing
			return &clone, true, nil
		}
	}
	r.seq++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.seq)
	r.orders = append(r.orders, &clone)
	out := clone
	return &out, false, nil
}

func (r *stubOrderRepo) FindByStripeSession(_ context.Context, sessionID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.StripeSessionID == sessionID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) Totals(_ context.Context) (int64, int64, error) {
	var revenue int64
	for _, o := range r.orders {
		revenue += o.TotalCents
	}
	return int64(len(r.orders)), revenue, nil
}

func (r *stubOrderRepo) SalesByDay(_ context.Context, _, _ time.Time) (map[string]ports.DailySales, error) {
	return r.byDay, nil
}

type stubSessionRegistry struct {
	tokens map[string]string
}

func newStubSessionRegistry() *stubSessionRegistry {
	return &stubSessionRegistry{tokens: make(map[string]string)}
}

func (r *stubSessionRegistry) StoreRefreshToken(_ context.Context, userID, token string, _ time.Duration) error {
	r.tokens[userID] = token
	return nil
}

func (r *stubSessionRegistry) RefreshToken(_ context.Context, userID string) (string, error) {
	return r.tokens[userID], nil
}

func (r *stubSessionRegistry) DeleteRefreshToken(_ context.Context, userID string) error {
	delete(r.tokens, userID)
	return nil
}

type stubGateway struct {
	created  []ports.CreateSessionInput
	sessions map[string]*ports.CheckoutSession
	seq      int
}

func newStubGateway() *stubGateway {
	return &stubGateway{sessions: make(map[string]*ports.CheckoutSession)}
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, in ports.CreateSessionInput) (*ports.CheckoutSession, error) {
	g.created = append(g.created, in)
	g.seq++
	session := &ports.CheckoutSession{
		ID:            fmt.Sprintf("cs_test_%d", g.seq),
		PaymentStatus: "unpaid",
		Metadata:      in.Metadata,
	}
	g.sessions[session.ID] = session
	return session, nil
}

func (g *stubGateway) RetrieveCheckoutSession(_ context.Context, sessionID string) (*ports.CheckoutSession, error) {
	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %q", sessionID)
	}
	return session, nil
}

type stubProductCache struct {
	featured []*domain.Product
	readErr  error
	stores   int
}

func newStubProductCache() *stubProductCache {
	return &stubProductCache{}
}

func (c *stubProductCache) FeaturedProducts(_ context.Context) ([]*domain.Product, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.featured, nil
}

func (c *stubProductCache) StoreFeaturedProducts(_ context.Context, products []*domain.Product) error {
	c.featured = products
	c.stores++
	return nil
}

func (c *stubProductCache) InvalidateFeaturedProducts(_ context.Context) error {
	c.featured = nil
	return nil
}

type stubImageStore struct {
	uploads []string
	deletes []string
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{}
}

func (s *stubImageStore) Upload(_ context.Context, image string) (*ports.UploadedImage, error) {
	s.uploads = append(s.uploads, image)
	return &ports.UploadedImage{
		URL:      fmt.Sprintf("https://img.example/%d.png", len(s.uploads)),
		PublicID: fmt.Sprintf("products/img_%d", len(s.uploads)),
	}, nil
}

func (s *stubImageStore) Delete(_ context.Context, publicID string) error {
	s.deletes = append(s.deletes, publicID)
	return nil
}
