package memory

import (
	"context"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type userRepository struct{ s *Store }

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = newID(user.ID)
	if _, ok := r.s.users[user.ID]; ok {
		return errors.Conflict("User already exists")
	}
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = clone(user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return clone(u), nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = clone(user)
	return nil
}

type warrantyRepository struct{ s *Store }

func NewWarrantyRepository(s *Store) repository.WarrantyRepository {
	return &warrantyRepository{s: s}
}

func (r *warrantyRepository) Create(ctx context.Context, record *entity.WarrantyRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	record.ID = newID(record.ID)
	now := r.s.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.s.warranties[record.ID] = clone(record)
	return nil
}

func (r *warrantyRepository) GetByID(ctx context.Context, id string) (*entity.WarrantyRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warranties[id]
	if !ok {
		return nil, errors.NotFound("Warranty", nil)
	}
	return clone(w), nil
}

func (r *warrantyRepository) find(match func(*entity.WarrantyRecord) bool) (*entity.WarrantyRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.warranties {
		if match(w) {
			return clone(w), nil
		}
	}
	return nil, errors.NotFound("Warranty", nil)
}

func (r *warrantyRepository) GetByIMEI(ctx context.Context, imei string) (*entity.WarrantyRecord, error) {
	return r.find(func(w *entity.WarrantyRecord) bool { return w.IMEI == imei })
}

func (r *warrantyRepository) GetBySerial(ctx context.Context, serial string) (*entity.WarrantyRecord, error) {
	return r.find(func(w *entity.WarrantyRecord) bool { return w.SerialNumber != "" && w.SerialNumber == serial })
}

func (r *warrantyRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.WarrantyRecord, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.WarrantyRecord
	for _, w := range r.s.warranties {
		if status != "" && w.Status != status {
			continue
		}
		out = append(out, clone(w))
	}
	items, total := page(out, func(w *entity.WarrantyRecord) time.Time { return w.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *warrantyRepository) Update(ctx context.Context, record *entity.WarrantyRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warranties[record.ID]; !ok {
		return errors.NotFound("Warranty", nil)
	}
	record.UpdatedAt = r.s.now()
	r.s.warranties[record.ID] = clone(record)
	return nil
}

func (r *warrantyRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warranties[id]; !ok {
		return errors.NotFound("Warranty", nil)
	}
	delete(r.s.warranties, id)
	return nil
}

type loyaltyRepository struct{ s *Store }

func NewLoyaltyRepository(s *Store) repository.LoyaltyRepository {
	return &loyaltyRepository{s: s}
}

func (r *loyaltyRepository) Get(ctx context.Context, userID string) (*entity.LoyaltyPoints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.loyalty[userID]
	if !ok {
		return nil, errors.NotFound("Loyalty account", nil)
	}
	return cloneLoyalty(l), nil
}

func (r *loyaltyRepository) Apply(ctx context.Context, userID string, fn func(*entity.LoyaltyPoints) error) (*entity.LoyaltyPoints, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	acct, ok := r.s.loyalty[userID]
	if ok {
		acct = cloneLoyalty(acct)
	} else {
		acct = &entity.LoyaltyPoints{UserID: userID, Tier: entity.LoyaltyTierBronze, CreatedAt: now}
	}
	if err := fn(acct); err != nil {
		return nil, err
	}
	acct.UpdatedAt = now
	r.s.loyalty[userID] = cloneLoyalty(acct)
	return acct, nil
}
