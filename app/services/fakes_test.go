package services_test

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/repositories"
)

// fakeProductRepo is an in-memory ProductRepo whose DecrementStock applies
// the same guard as the Mongo implementation.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product

	// failDecrementFor forces ErrStockConflict for one product, simulating
	// a concurrent order winning the race after validation passed.
	failDecrementFor primitive.ObjectID
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if patch.Colors != nil {
		p.Colors = patch.Colors
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) All(_ context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) Featured(_ context.Context, limit int64) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		if p.Featured {
			out = append(out, *p)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) LowStock(_ context.Context, threshold int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		if p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if id == r.failDecrementFor || p.Stock < qty {
		return repositories.ErrStockConflict
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Stock += qty
	}
	return nil
}

func (r *fakeProductRepo) stock(id primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// fakeOrderRepo is an in-memory OrderRepo.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*models.Order

	failCreate bool
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errInsertFailed
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) All(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Recent(_ context.Context, limit int64) ([]models.Order, error) {
	all, _ := r.All(context.Background())
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) Revenue(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, o := range r.orders {
		if o.OrderStatus != models.OrderCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, orderStatus, paymentStatus string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			if orderStatus != "" {
				o.OrderStatus = orderStatus
			}
			if paymentStatus != "" {
				o.PaymentStatus = paymentStatus
			}
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOrderRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	r.orders = kept
	return nil
}

// fakeUserRepo is an in-memory UserRepo.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) All(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeAdminRepo is an in-memory AdminRepo.
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminRepo(admins ...*models.Admin) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: map[primitive.ObjectID]*models.Admin{}}
	for _, a := range admins {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		r.admins[a.ID] = a
	}
	return r
}

func (r *fakeAdminRepo) Create(_ context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.admins[a.ID] = a
	return nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
