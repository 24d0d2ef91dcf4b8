package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
)

type userRepo struct {
	db access
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	return r.db.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return user.ErrDuplicateUsername
			}
			if u.Email != "" && strings.EqualFold(existing.Email, u.Email) {
				return user.ErrDuplicateEmail
			}
		}
		st.users[u.ID] = *u
		st.stamp(u.ID)
		return nil
	})
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.ID == id })
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, user.ErrUserNotFound
	}
	return r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) find(match func(u user.User) bool) (*user.User, error) {
	var out *user.User
	err := r.db.read(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return user.ErrUserNotFound
	})
	return out, err
}

func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	return r.db.write(func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return user.ErrUserNotFound
		}
		cur.FirstName = u.FirstName
		cur.LastName = u.LastName
		cur.Email = u.Email
		cur.IsActive = u.IsActive
		cur.UpdatedAt = time.Now()
		st.users[u.ID] = cur
		return nil
	})
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id string) error {
	return r.db.write(func(st *state) error {
		cur, ok := st.users[id]
		if !ok {
			return user.ErrUserNotFound
		}
		now := time.Now()
		cur.LastLoginAt = &now
		st.users[id] = cur
		return nil
	})
}

func (r *userRepo) ExistsUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return existsResult(err, user.ErrUserNotFound)
}

func (r *userRepo) ExistsEmail(ctx context.Context, email, exceptID string) (bool, error) {
	found := false
	err := r.db.read(func(st *state) error {
		for _, u := range st.users {
			if u.ID != exceptID && email != "" && strings.EqualFold(u.Email, email) {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func existsResult(err, notFound error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if err == notFound {
		return false, nil
	}
	return false, err
}

type customerRepo struct {
	db access
}

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	return r.db.write(func(st *state) error {
		for _, existing := range st.customers {
			if existing.Phone == c.Phone {
				return customer.ErrDuplicatePhone
			}
		}
		st.customers[c.ID] = *c
		st.stamp(c.ID)
		return nil
	})
}

func (r *customerRepo) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.find(func(c customer.Customer) bool { return c.ID == id })
}

func (r *customerRepo) FindByUserID(ctx context.Context, userID string) (*customer.Customer, error) {
	return r.find(func(c customer.Customer) bool { return c.UserID == userID })
}

func (r *customerRepo) find(match func(c customer.Customer) bool) (*customer.Customer, error) {
	var out *customer.Customer
	err := r.db.read(func(st *state) error {
		for _, c := range st.customers {
			if match(c) {
				c := c
				out = &c
				return nil
			}
		}
		return customer.ErrCustomerNotFound
	})
	return out, err
}

func (r *customerRepo) ExistsPhone(ctx context.Context, phone string) (bool, error) {
	_, err := r.find(func(c customer.Customer) bool { return c.Phone == phone })
	return existsResult(err, customer.ErrCustomerNotFound)
}

type sellerRepo struct {
	db access
}

// hydrate fills the user-owned fields of a seller copy.
func (st *state) hydrate(s seller.Seller) *seller.Seller {
	if u, ok := st.users[s.UserID]; ok {
		s.Username = u.Username
		s.FirstName = u.FirstName
		s.LastName = u.LastName
		s.Email = u.Email
	}
	return &s
}

func (r *sellerRepo) Create(ctx context.Context, s *seller.Seller) error {
	return r.db.write(func(st *state) error {
		if err := st.checkSellerUnique(s); err != nil {
			return err
		}
		st.sellers[s.ID] = *s
		st.stamp(s.ID)
		return nil
	})
}

func (r *sellerRepo) Update(ctx context.Context, s *seller.Seller) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.sellers[s.ID]; !ok {
			return seller.ErrSellerNotFound
		}
		if err := st.checkSellerUnique(s); err != nil {
			return err
		}
		st.sellers[s.ID] = *s
		return nil
	})
}

func (st *state) checkSellerUnique(s *seller.Seller) error {
	for _, existing := range st.sellers {
		if existing.ID == s.ID {
			continue
		}
		if existing.Phone == s.Phone {
			return seller.ErrDuplicatePhone
		}
		if s.IDCardNumber != "" && existing.IDCardNumber == s.IDCardNumber {
			return seller.ErrDuplicateIDCard
		}
	}
	return nil
}

func (r *sellerRepo) FindByID(ctx context.Context, id string) (*seller.Seller, error) {
	return r.find(func(s seller.Seller) bool { return s.ID == id })
}

func (r *sellerRepo) FindByUserID(ctx context.Context, userID string) (*seller.Seller, error) {
	return r.find(func(s seller.Seller) bool { return s.UserID == userID })
}

func (r *sellerRepo) find(match func(s seller.Seller) bool) (*seller.Seller, error) {
	var out *seller.Seller
	err := r.db.read(func(st *state) error {
		for _, s := range st.sellers {
			if match(s) {
				out = st.hydrate(s)
				return nil
			}
		}
		return seller.ErrSellerNotFound
	})
	return out, err
}

func (r *sellerRepo) FirstActive(ctx context.Context) (*seller.Seller, error) {
	var out *seller.Seller
	err := r.db.read(func(st *state) error {
		var best *seller.Seller
		for _, s := range st.sellers {
			if !s.IsActive {
				continue
			}
			if best == nil || st.rank[s.ID] < st.rank[best.ID] {
				s := s
				best = &s
			}
		}
		if best == nil {
			return seller.ErrSellerNotFound
		}
		out = st.hydrate(*best)
		return nil
	})
	return out, err
}

func (r *sellerRepo) List(ctx context.Context, f seller.Filter) ([]*seller.Seller, error) {
	var out []*seller.Seller
	err := r.db.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		for _, s := range st.sellers {
			switch f.Status {
			case seller.StatusActive:
				if !s.IsActive {
					continue
				}
			case seller.StatusInactive:
				if s.IsActive {
					continue
				}
			}
			h := st.hydrate(s)
			if search != "" && !containsAny(search, h.Username, h.FirstName, h.LastName, h.Email, h.Phone) {
				continue
			}
			out = append(out, h)
		}
		sort.Slice(out, func(i, j int) bool { return st.rank[out[i].ID] > st.rank[out[j].ID] })
		return nil
	})
	return out, err
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func (r *sellerRepo) CountActive(ctx context.Context) (int, error) {
	count := 0
	err := r.db.read(func(st *state) error {
		for _, s := range st.sellers {
			if s.IsActive {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *sellerRepo) ExistsPhone(ctx context.Context, phone, exceptID string) (bool, error) {
	_, err := r.find(func(s seller.Seller) bool { return s.ID != exceptID && s.Phone == phone })
	return existsResult(err, seller.ErrSellerNotFound)
}

func (r *sellerRepo) ExistsIDCard(ctx context.Context, idCard, exceptID string) (bool, error) {
	if idCard == "" {
		return false, nil
	}
	_, err := r.find(func(s seller.Seller) bool { return s.ID != exceptID && s.IDCardNumber == idCard })
	return existsResult(err, seller.ErrSellerNotFound)
}
