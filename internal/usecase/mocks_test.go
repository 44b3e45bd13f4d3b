package usecase

import (
	"context"
	"sync"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

// fakeTx подменяет pgx.Tx: мок-репозитории не трогают соединение,
// поэтому достаточно no-op Commit/Rollback.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (fakeDB) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) { return fakeTx{}, nil }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type mockCartRepo struct {
	m      sync.Mutex
	carts  []*domain.Cart
	nextID int64
	err    error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{nextID: 1}
}

func (m *mockCartRepo) findUnpaid(customer string) *domain.Cart {
	for _, c := range m.carts {
		if c.Customer == customer && !c.Paid {
			return c
		}
	}
	return nil
}

func (m *mockCartRepo) findByID(id int64) *domain.Cart {
	for _, c := range m.carts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Products = append([]domain.ProductInCart(nil), c.Products...)
	return &cp
}

func (m *mockCartRepo) GetUnpaidCart(_ context.Context, customer string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if c := m.findUnpaid(customer); c != nil {
		return copyCart(c), nil
	}
	return nil, e.ErrCartNotFound
}

func (m *mockCartRepo) CreateCart(_ context.Context, customer string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if c := m.findUnpaid(customer); c != nil {
		return copyCart(c), nil
	}
	c := &domain.Cart{ID: m.nextID, Customer: customer, Products: []domain.ProductInCart{}}
	m.nextID++
	m.carts = append(m.carts, c)
	return copyCart(c), nil
}

func (m *mockCartRepo) AddLineItem(_ context.Context, cartID int64, item domain.ProductInCart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c := m.findByID(cartID)
	if c == nil {
		return e.ErrCartNotFound
	}
	c.Products = append(c.Products, item)
	return nil
}

func (m *mockCartRepo) IncrementLineItem(_ context.Context, cartID int64, model string) error {
	return m.bumpLineItem(cartID, model, 1)
}

func (m *mockCartRepo) DecrementLineItem(_ context.Context, cartID int64, model string) error {
	return m.bumpLineItem(cartID, model, -1)
}

func (m *mockCartRepo) bumpLineItem(cartID int64, model string, delta int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c := m.findByID(cartID)
	if c == nil {
		return e.ErrCartNotFound
	}
	for i := range c.Products {
		if c.Products[i].Model == model {
			c.Products[i].Quantity += delta
			return nil
		}
	}
	return nil
}

func (m *mockCartRepo) RemoveLineItem(_ context.Context, cartID int64, model string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c := m.findByID(cartID)
	if c == nil {
		return e.ErrCartNotFound
	}
	for i, item := range c.Products {
		if item.Model == model {
			c.Products = append(c.Products[:i], c.Products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCartRepo) AdjustTotal(_ context.Context, cartID int64, delta int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if c := m.findByID(cartID); c != nil {
		c.Total += delta
	}
	return nil
}

func (m *mockCartRepo) ResetTotal(_ context.Context, cartID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if c := m.findByID(cartID); c != nil {
		c.Total = 0
	}
	return nil
}

func (m *mockCartRepo) ClearLineItems(_ context.Context, cartID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if c := m.findByID(cartID); c != nil {
		c.Products = []domain.ProductInCart{}
	}
	return nil
}

func (m *mockCartRepo) MarkPaid(_ context.Context, cartID int64, paymentDate string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if c := m.findByID(cartID); c != nil {
		c.Paid = true
		c.PaymentDate = &paymentDate
	}
	return nil
}

func (m *mockCartRepo) GetPaidCarts(_ context.Context, customer string) ([]domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Cart
	for _, c := range m.carts {
		if c.Customer == customer && c.Paid {
			result = append(result, *copyCart(c))
		}
	}
	return result, nil
}

func (m *mockCartRepo) GetAllCarts(context.Context) ([]domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.Cart, 0, len(m.carts))
	for _, c := range m.carts {
		result = append(result, *copyCart(c))
	}
	return result, nil
}

func (m *mockCartRepo) DeleteAll(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.carts = nil
	return nil
}

// unpaidCount считает неоплаченные корзины покупателя.
func (m *mockCartRepo) unpaidCount(customer string) int {
	m.m.Lock()
	defer m.m.Unlock()
	count := 0
	for _, c := range m.carts {
		if c.Customer == customer && !c.Paid {
			count++
		}
	}
	return count
}

type mockProductRepo struct {
	m        sync.Mutex
	products map[string]*domain.Product
	err      error
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	repo := &mockProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.products[p.Model] = p
	}
	return repo
}

func (m *mockProductRepo) FindByModel(_ context.Context, model string) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[model]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindByModelForUpdate(ctx context.Context, model string) (*domain.Product, error) {
	return m.FindByModel(ctx, model)
}

func (m *mockProductRepo) DecrementQuantity(_ context.Context, model string, amount int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	p, ok := m.products[model]
	if !ok {
		return e.ErrProductNotFound
	}
	if p.Quantity < amount {
		return e.ErrInsufficientStock
	}
	p.Quantity -= amount
	return nil
}

func (m *mockProductRepo) Create(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[product.Model]; ok {
		return e.ErrProductAlreadyExists
	}
	cp := *product
	m.products[product.Model] = &cp
	return nil
}

func (m *mockProductRepo) ChangeQuantity(_ context.Context, model string, delta int) (int, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	p, ok := m.products[model]
	if !ok {
		return 0, e.ErrProductNotFound
	}
	if p.Quantity+delta < 0 {
		return 0, e.ErrInsufficientStock
	}
	p.Quantity += delta
	return p.Quantity, nil
}

func (m *mockProductRepo) GetProducts(_ context.Context, category *domain.Category, model *string) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Product
	for _, p := range m.products {
		if category != nil && p.Category != *category {
			continue
		}
		if model != nil && p.Model != *model {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductRepo) quantity(model string) int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.products[model].Quantity
}

type mockOutboxRepo struct {
	m      sync.Mutex
	events []*OutboxEvent
	err    error
}

func (m *mockOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []*OutboxEvent
	for _, ev := range m.events {
		if ev.Status == Pending && len(result) < limit {
			ev.Status = Processing
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, ev := range m.events {
		if ev.ID == id {
			ev.Status = Processed
		}
	}
	return nil
}

func (m *mockOutboxRepo) count() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.events)
}

type mockCacheRepo struct {
	m       sync.Mutex
	cached  map[string]domain.Product
	deleted []string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{cached: make(map[string]domain.Product)}
}

func (m *mockCacheRepo) GetProducts(_ context.Context, models []string) (map[string]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	result := make(map[string]domain.Product)
	for _, model := range models {
		if p, ok := m.cached[model]; ok {
			result[model] = p
		}
	}
	return result, nil
}

func (m *mockCacheRepo) SetProducts(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, p := range products {
		m.cached[p.Model] = p
	}
	return nil
}

func (m *mockCacheRepo) DeleteProducts(_ context.Context, models []string) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, model := range models {
		delete(m.cached, model)
		m.deleted = append(m.deleted, model)
	}
	return nil
}

type mockUserRepo struct {
	m     sync.Mutex
	users map[string]*domain.User
	creds map[string][2]string // username -> {hash, salt}
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*domain.User),
		creds: make(map[string][2]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User, passwordHash, salt string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.Username]; ok {
		return e.ErrUserAlreadyExists
	}
	cp := *user
	m.users[user.Username] = &cp
	m.creds[user.Username] = [2]string{passwordHash, salt}
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetCredentials(_ context.Context, username string) (string, string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", "", m.err
	}
	c, ok := m.creds[username]
	if !ok {
		return "", "", e.ErrUserNotFound
	}
	return c[0], c[1], nil
}

func (m *mockUserRepo) GetAll(context.Context) ([]domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, username string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[username]; !ok {
		return e.ErrUserNotFound
	}
	delete(m.users, username)
	delete(m.creds, username)
	return nil
}

type mockSessionRepo struct {
	m        sync.Mutex
	sessions map[string]string
	err      error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]string)}
}

func (m *mockSessionRepo) Create(_ context.Context, sessionID, username string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sessions[sessionID] = username
	return nil
}

func (m *mockSessionRepo) Get(_ context.Context, sessionID string) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	username, ok := m.sessions[sessionID]
	if !ok {
		return "", e.ErrSessionNotFound
	}
	return username, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.sessions, sessionID)
	return nil
}

type mockReviewRepo struct {
	m       sync.Mutex
	reviews []domain.Review
	err     error
}

func (m *mockReviewRepo) Create(_ context.Context, review *domain.Review) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, r := range m.reviews {
		if r.Model == review.Model && r.Username == review.Username {
			return e.ErrReviewAlreadyExists
		}
	}
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReviewRepo) GetByModel(_ context.Context, model string) ([]domain.Review, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Review
	for _, r := range m.reviews {
		if r.Model == model {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) Delete(_ context.Context, model, username string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, r := range m.reviews {
		if r.Model == model && r.Username == username {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return e.ErrReviewNotFound
}

func (m *mockReviewRepo) DeleteAllForModel(_ context.Context, model string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.reviews[:0]
	for _, r := range m.reviews {
		if r.Model != model {
			kept = append(kept, r)
		}
	}
	m.reviews = kept
	return nil
}
