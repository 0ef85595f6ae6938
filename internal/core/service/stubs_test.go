package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

// --- users ---

type memUsers struct {
	mu   sync.Mutex
	next int64
	byID map[int64]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Roles = append([]domain.RoleAssignment(nil), u.Roles...)
	return &c
}

func (r *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.next++
	c := cloneUser(user)
	c.ID = r.next
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memUsers) Update(_ context.Context, id int64, ch ports.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if ch.Name != nil {
		u.Name = *ch.Name
	}
	if ch.Email != nil {
		u.Email = *ch.Email
	}
	if ch.PasswordHash != nil {
		u.PasswordHash = *ch.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *memUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memUsers) List(_ context.Context, f ports.ListUsersFilter) ([]domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start := (f.Page - 1) * f.Limit
	var out []domain.User
	for i := start; i < len(ids) && i < start+f.Limit; i++ {
		out = append(out, *cloneUser(r.byID[ids[i]]))
	}
	return out, len(ids) > start+f.Limit, nil
}

func (r *memUsers) AddRole(_ context.Context, userID int64, role domain.RoleAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (r *memUsers) RemoveFranchiseRoles(_ context.Context, franchiseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		kept := u.Roles[:0]
		for _, role := range u.Roles {
			if role.Role == domain.RoleFranchisee && role.ObjectID != nil && *role.ObjectID == franchiseID {
				continue
			}
			kept = append(kept, role)
		}
		u.Roles = kept
	}
	return nil
}

func (r *memUsers) FranchiseAdmins(_ context.Context, ids []int64) (map[int64][]domain.FranchiseAdmin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64][]domain.FranchiseAdmin)
	for _, fid := range ids {
		for _, u := range r.byID {
			for _, role := range u.Roles {
				if role.Role == domain.RoleFranchisee && role.ObjectID != nil && *role.ObjectID == fid {
					out[fid] = append(out[fid], domain.FranchiseAdmin{ID: u.ID, Name: u.Name, Email: u.Email})
				}
			}
		}
	}
	return out, nil
}

// --- sessions ---

type memSessions struct {
	mu      sync.Mutex
	active  map[string]int64
	revoked map[string]bool
	err     error
}

func newMemSessions() *memSessions {
	return &memSessions{active: make(map[string]int64), revoked: make(map[string]bool)}
}

func (s *memSessions) Register(_ context.Context, sig string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.active[sig] = userID
	delete(s.revoked, sig)
	return nil
}

func (s *memSessions) Revoke(_ context.Context, sig string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[sig] = true
	delete(s.active, sig)
	return nil
}

func (s *memSessions) RevokeUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for sig, id := range s.active {
		if id == userID {
			s.revoked[sig] = true
			delete(s.active, sig)
		}
	}
	return nil
}

func (s *memSessions) IsRevoked(_ context.Context, sig string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return true, s.err
	}
	_, ok := s.active[sig]
	return s.revoked[sig] || !ok, nil
}

// --- franchises ---

type memFranchises struct {
	mu           sync.Mutex
	next         int64
	nextStore    int64
	byID         map[int64]*domain.Franchise
	storeCreates int
	storeDeletes int
}

func newMemFranchises() *memFranchises {
	return &memFranchises{byID: make(map[int64]*domain.Franchise)}
}

func cloneFranchise(f *domain.Franchise) domain.Franchise {
	c := *f
	c.Stores = append([]domain.Store{}, f.Stores...)
	c.Admins = nil
	return c
}

func (r *memFranchises) List(_ context.Context, f ports.ListFranchisesFilter) ([]domain.Franchise, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start := (f.Page - 1) * f.Limit
	var out []domain.Franchise
	for i := start; i < len(ids) && i < start+f.Limit; i++ {
		out = append(out, cloneFranchise(r.byID[ids[i]]))
	}
	return out, len(ids) > start+f.Limit, nil
}

func (r *memFranchises) FindByID(_ context.Context, id int64) (*domain.Franchise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneFranchise(f)
	return &c, nil
}

func (r *memFranchises) FindByIDs(_ context.Context, ids []int64) ([]domain.Franchise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Franchise{}
	for _, id := range ids {
		if f, ok := r.byID[id]; ok {
			out = append(out, cloneFranchise(f))
		}
	}
	return out, nil
}

func (r *memFranchises) Create(_ context.Context, name string) (*domain.Franchise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.Name == name {
			return nil, domain.ErrFranchiseExists
		}
	}
	r.next++
	f := &domain.Franchise{ID: r.next, Name: name, Stores: []domain.Store{}}
	r.byID[f.ID] = f
	c := cloneFranchise(f)
	return &c, nil
}

func (r *memFranchises) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memFranchises) CreateStore(_ context.Context, franchiseID int64, name string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeCreates++
	f, ok := r.byID[franchiseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.nextStore++
	s := domain.Store{ID: r.nextStore, FranchiseID: franchiseID, Name: name}
	f.Stores = append(f.Stores, s)
	return &s, nil
}

func (r *memFranchises) DeleteStore(_ context.Context, franchiseID, storeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeDeletes++
	f, ok := r.byID[franchiseID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, s := range f.Stores {
		if s.ID == storeID {
			f.Stores = append(f.Stores[:i], f.Stores[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- menu and orders ---

type memMenu struct {
	items []domain.MenuItem
}

func (m *memMenu) List(context.Context) ([]domain.MenuItem, error) {
	return append([]domain.MenuItem(nil), m.items...), nil
}

func (m *memMenu) Add(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	c := *item
	c.ID = int64(len(m.items) + 1)
	m.items = append(m.items, c)
	return &c, nil
}

func (m *memMenu) Exists(_ context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, id := range ids {
		for _, it := range m.items {
			if it.ID == id {
				out[id] = true
			}
		}
	}
	return out, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (r *memOrders) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	c.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, c)
	return &c, nil
}

func (r *memOrders) ListByDiner(_ context.Context, dinerID int64, page, limit int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []domain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].DinerID == dinerID {
			mine = append(mine, r.orders[i])
		}
	}
	start := (page - 1) * limit
	if start >= len(mine) {
		return nil, nil
	}
	return mine[start:min(start+limit, len(mine))], nil
}

func (r *memOrders) StoreRevenue(_ context.Context, storeIDs []int64) (map[int64]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]float64)
	for _, id := range storeIDs {
		for i := range r.orders {
			if r.orders[i].StoreID == id {
				out[id] += r.orders[i].Total()
			}
		}
	}
	return out, nil
}

func (r *memOrders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type stubFactory struct {
	fn    func(ctx context.Context, diner domain.Identity, order *domain.Order) (*ports.FactoryResponse, error)
	calls int
}

func (f *stubFactory) SubmitOrder(ctx context.Context, diner domain.Identity, order *domain.Order) (*ports.FactoryResponse, error) {
	f.calls++
	return f.fn(ctx, diner, order)
}

// --- identities ---

func admin(id int64) domain.Identity {
	return domain.Identity{ID: id, Name: "常用名字", Roles: []domain.RoleAssignment{{Role: domain.RoleAdmin}}}
}

func diner(id int64) domain.Identity {
	return domain.Identity{ID: id, Name: "pizza diner", Roles: []domain.RoleAssignment{{Role: domain.RoleDiner}}}
}

func franchisee(id, franchiseID int64) domain.Identity {
	return domain.Identity{ID: id, Name: "pizza franchisee", Roles: []domain.RoleAssignment{
		{Role: domain.RoleDiner},
		domain.Assign(domain.RoleFranchisee, franchiseID),
	}}
}
