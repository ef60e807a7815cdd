package service

import (
	"context"
	"strconv"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	createErr error
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

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrDuplicateIdentity
		}
	}
	r.seq++
	clone := cloneUser(u)
	clone.ID = strconv.Itoa(r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("User")
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NotFound("User")
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("User")
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Contact != nil {
		u.Contact = *upd.Contact
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("User")
	}
	delete(r.users, id)
	return u, nil
}

type stubProcurementRepo struct {
	items   map[string]*domain.Procurement
	seq     int
	updated *domain.Procurement
}

func newStubProcurementRepo() *stubProcurementRepo {
	return &stubProcurementRepo{items: make(map[string]*domain.Procurement)}
}

func (r *stubProcurementRepo) Create(_ context.Context, p *domain.Procurement) (*domain.Procurement, error) {
	r.seq++
	clone := *p
	clone.ID = strconv.Itoa(r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProcurementRepo) FindByID(_ context.Context, id string) (*domain.Procurement, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Procurement")
	}
	clone := *p
	return &clone, nil
}

func (r *stubProcurementRepo) List(_ context.Context) ([]*domain.Procurement, error) {
	out := make([]*domain.Procurement, 0, len(r.items))
	for _, p := range r.items {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// Update mirrors the mongo store: identity and creation fields are kept.
func (r *stubProcurementRepo) Update(_ context.Context, id string, p *domain.Procurement) (*domain.Procurement, error) {
	existing, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Procurement")
	}
	r.updated = p
	next := *p
	next.ID = existing.ID
	next.RecordedBy = existing.RecordedBy
	next.CreatedAt = existing.CreatedAt
	r.items[id] = &next
	out := next
	return &out, nil
}

func (r *stubProcurementRepo) Delete(_ context.Context, id string) (*domain.Procurement, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Procurement")
	}
	delete(r.items, id)
	return p, nil
}

type stubSaleRepo struct {
	items      map[string]*domain.Sale
	seq        int
	lastFilter domain.SaleFilter
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{items: make(map[string]*domain.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	r.seq++
	clone := *s
	clone.ID = strconv.Itoa(r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id string) (*domain.Sale, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Sale")
	}
	clone := *s
	return &clone, nil
}

func (r *stubSaleRepo) List(_ context.Context, f domain.SaleFilter) ([]*domain.Sale, error) {
	r.lastFilter = f
	out := make([]*domain.Sale, 0, len(r.items))
	for _, s := range r.items {
		if f.Type != "" && s.SaleType != f.Type {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSaleRepo) Update(_ context.Context, id string, s *domain.Sale) (*domain.Sale, error) {
	existing, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Sale")
	}
	next := *s
	next.ID = existing.ID
	next.SaleType = existing.SaleType
	next.SalesAgent = existing.SalesAgent
	next.CreatedAt = existing.CreatedAt
	r.items[id] = &next
	out := next
	return &out, nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id string) (*domain.Sale, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("Sale")
	}
	delete(r.items, id)
	return s, nil
}
