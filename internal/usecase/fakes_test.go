package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// =====================
// インメモリ実装（ユニットテスト用）
// =====================

type fakeProductRepo struct {
	products map[int64]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	m := make(map[int64]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *fakeProductRepo) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive && p.IsFeatured {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) FilterOptions(ctx context.Context) (repo.FilterOptions, error) {
	return repo.FilterOptions{}, nil
}

type fakeCartRepo struct {
	mu     sync.Mutex
	nextID int64
	carts  map[model.CartOwner]model.Cart
	items  map[int64]model.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		nextID: 1,
		carts:  make(map[model.CartOwner]model.Cart),
		items:  make(map[int64]model.CartItem),
	}
}

func (r *fakeCartRepo) GetOrCreateByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[owner]; ok {
		return c, nil
	}
	c := model.Cart{ID: r.nextID, OwnerType: owner.Type, OwnerRef: owner.Ref}
	r.nextID++
	r.carts[owner] = c
	return c, nil
}

func (r *fakeCartRepo) FindByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[owner]; ok {
		return c, nil
	}
	return model.Cart{}, repo.ErrNotFound
}

func (r *fakeCartRepo) ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.CartItem
	for _, it := range r.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCartRepo) FindItem(ctx context.Context, itemID int64) (model.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[itemID]; ok {
		return it, nil
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (r *fakeCartRepo) UpsertItem(ctx context.Context, cartID int64, productID int64, custom model.Customization, addQty int64, priceAtAdd float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, it := range r.items {
		if it.CartID == cartID && it.ProductID == productID && it.Customization == custom {
			it.Quantity += addQty
			r.items[id] = it
			return nil
		}
	}
	it := model.CartItem{
		ID:            r.nextID,
		CartID:        cartID,
		ProductID:     productID,
		Quantity:      addQty,
		Customization: custom,
		PriceAtAdd:    priceAtAdd,
	}
	r.nextID++
	r.items[it.ID] = it
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, itemID int64, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	r.items[itemID] = it
	return nil
}

func (r *fakeCartRepo) DeleteItem(ctx context.Context, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, cartID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, it := range r.items {
		if it.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{nextID: 1, users: make(map[int64]model.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return model.User{}, repo.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, name string, phone string, currency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Name, u.Phone, u.Currency = name, phone, currency
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.LastLoginAt = &at
	r.users[id] = u
	return nil
}

// 送信内容を記録するNotifier
type fakeNotifier struct {
	mu            sync.Mutex
	orderMails    []string // 宛先
	resetMails    map[string]string
	giftCardMails []string
	returnMails   []string
	apptMails     []string
	fail          bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{resetMails: make(map[string]string)}
}

func (n *fakeNotifier) OrderConfirmation(ctx context.Context, to string, order model.Order, items []model.OrderItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.orderMails = append(n.orderMails, to)
	return nil
}

func (n *fakeNotifier) PasswordResetCode(ctx context.Context, to string, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.resetMails[to] = code
	return nil
}

func (n *fakeNotifier) GiftCardDelivery(ctx context.Context, card model.GiftCard) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.giftCardMails = append(n.giftCardMails, card.RecipientEmail)
	return nil
}

func (n *fakeNotifier) AppointmentConfirmation(ctx context.Context, appt model.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.apptMails = append(n.apptMails, appt.Email)
	return nil
}

func (n *fakeNotifier) AppointmentRequested(ctx context.Context, to string, appt model.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.apptMails = append(n.apptMails, to)
	return nil
}

func (n *fakeNotifier) ReturnRequested(ctx context.Context, to string, orderNumber string, reason string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errSendFailed
	}
	n.returnMails = append(n.returnMails, to)
	return nil
}

type fakeBlogRepo struct {
	posts []model.BlogPost
}

func (r *fakeBlogRepo) ListPublished(ctx context.Context, q repo.BlogListQuery) ([]model.BlogPost, int64, error) {
	var matched []model.BlogPost
	for _, p := range r.posts {
		if !p.IsPublished {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Tag != "" && !tagListContains(p.Tags, q.Tag) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(*matched[j].PublishedAt)
	})
	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return []model.BlogPost{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func tagListContains(tags string, tag string) bool {
	for _, t := range strings.Split(tags, ",") {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

func (r *fakeBlogRepo) FindPublishedBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	for _, p := range r.posts {
		if p.Slug == slug && p.IsPublished {
			return p, nil
		}
	}
	return model.BlogPost{}, repo.ErrNotFound
}

type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	appts  []model.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	appt.ID = r.nextID
	r.appts = append(r.appts, *appt)
	return nil
}
