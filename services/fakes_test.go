package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
)

type fakeUsers struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SaveCart(_ context.Context, userID uint, items []models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.CartItems = models.NewCart(append([]models.CartItem{}, items...))
	return nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeProducts struct {
	mu        sync.Mutex
	products  map[uint]models.Product
	nextID    uint
	deleteErr error
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{products: map[uint]models.Product{}}
	for _, p := range products {
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProducts) Save(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id uint) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []uint) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) filter(keep func(models.Product) bool) []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Product{}
	for _, p := range f.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeProducts) FindAll(context.Context) ([]models.Product, error) {
	return f.filter(func(models.Product) bool { return true }), nil
}

func (f *fakeProducts) FindFeatured(context.Context) ([]models.Product, error) {
	return f.filter(func(p models.Product) bool { return p.IsFeatured }), nil
}

func (f *fakeProducts) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	return f.filter(func(p models.Product) bool { return p.Category == category }), nil
}

func (f *fakeProducts) Sample(_ context.Context, category string, n int) ([]models.Product, error) {
	out := f.filter(func(p models.Product) bool { return p.Category == category })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (f *fakeProducts) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.products)), nil
}

type fakeCoupons struct {
	mu      sync.Mutex
	coupons []models.Coupon
}

func (f *fakeCoupons) FindActive(_ context.Context, userID uint, code string) (*models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.UserID == userID && c.Code == code && c.IsActive {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCoupons) FindCurrent(_ context.Context, userID uint, now time.Time) (*models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.UserID == userID && c.Redeemable(now) {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCoupons) Replace(_ context.Context, coupon *models.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.coupons[:0]
	for _, c := range f.coupons {
		if c.UserID != coupon.UserID {
			kept = append(kept, c)
		}
	}
	coupon.ID = uint(len(kept) + 1)
	f.coupons = append(kept, *coupon)
	return nil
}

func (f *fakeCoupons) Deactivate(_ context.Context, userID uint, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deactivate(userID, code)
	return nil
}

func (f *fakeCoupons) deactivate(userID uint, code string) {
	for i := range f.coupons {
		if f.coupons[i].UserID == userID && f.coupons[i].Code == code {
			f.coupons[i].IsActive = false
		}
	}
}

func (f *fakeCoupons) forUser(userID uint) []models.Coupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Coupon{}
	for _, c := range f.coupons {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

type fakeOrders struct {
	mu      sync.Mutex
	orders  []models.Order
	coupons *fakeCoupons
	daily   []models.DailySales
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order, redeemCoupon string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if redeemCoupon != "" && f.coupons != nil {
		f.coupons.mu.Lock()
		f.coupons.deactivate(order.UserID, redeemCoupon)
		f.coupons.mu.Unlock()
	}
	order.ID = uint(len(f.orders) + 1)
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrders) FindByReference(_ context.Context, reference string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.Reference == reference {
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) FindByID(_ context.Context, id uint) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) FindByUser(_ context.Context, userID uint) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(_ context.Context, page, limit int, _ string) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := (page - 1) * limit
	if start > len(f.orders) {
		start = len(f.orders)
	}
	end := start + limit
	if end > len(f.orders) {
		end = len(f.orders)
	}
	return append([]models.Order{}, f.orders[start:end]...), int64(len(f.orders)), nil
}

func (f *fakeOrders) Totals(context.Context) (int64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var revenue float64
	for _, o := range f.orders {
		revenue += o.TotalAmount
	}
	return int64(len(f.orders)), revenue, nil
}

func (f *fakeOrders) DailySales(context.Context, time.Time, time.Time) ([]models.DailySales, error) {
	return f.daily, nil
}

type fakeCache struct {
	products []models.Product
	present  bool
	err      error
	sets     int
	fills    int
	version  int64
	// beforeFill runs between the read-path query and its fill.
	beforeFill func()
}

func (f *fakeCache) Get(context.Context) ([]models.Product, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.products, f.present, nil
}

func (f *fakeCache) Set(_ context.Context, products []models.Product) error {
	f.sets++
	f.version++
	f.products = append([]models.Product{}, products...)
	f.present = true
	return nil
}

func (f *fakeCache) Clear(context.Context) error {
	f.version++
	f.products = nil
	f.present = false
	return nil
}

func (f *fakeCache) Version(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.version, nil
}

func (f *fakeCache) Fill(_ context.Context, version int64, products []models.Product) (bool, error) {
	if f.beforeFill != nil {
		f.beforeFill()
	}
	if version != f.version {
		return false, nil
	}
	f.fills++
	f.products = append([]models.Product{}, products...)
	f.present = true
	return true, nil
}

const fakeCDN = "https://cdn.test/products/"

type fakeImages struct {
	stored  []string
	removed []string
	fail    error
}

func (f *fakeImages) Store(_ context.Context, source string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	url := fakeCDN + strings.TrimPrefix(source, "data:")
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeImages) Remove(_ context.Context, imageURL string) error {
	f.removed = append(f.removed, imageURL)
	return nil
}

func (f *fakeImages) Hosts(imageURL string) bool {
	return strings.HasPrefix(imageURL, fakeCDN)
}

type fakePublisher struct {
	published []models.Order
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order *models.Order) error {
	f.published = append(f.published, *order)
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []string
	release chan struct{}
}

func (f *fakeNotifier) CouponIssued(_ context.Context, _ *models.User, coupon *models.Coupon) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, coupon.Code)
	return nil
}

func (f *fakeNotifier) codes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}
