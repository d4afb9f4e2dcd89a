package memory

import (
	"context"
	"strings"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type corporateDealRepository struct{ s *Store }

func NewCorporateDealRepository(s *Store) repository.CorporateDealRepository {
	return &corporateDealRepository{s: s}
}

func (r *corporateDealRepository) Create(ctx context.Context, deal *entity.CorporateDeal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deal.ID = newID(deal.ID)
	now := r.s.now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	c := *deal
	c.ProductNames = append([]string(nil), deal.ProductNames...)
	r.s.deals[deal.ID] = &c
	return nil
}

func (r *corporateDealRepository) GetByID(ctx context.Context, id string) (*entity.CorporateDeal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deals[id]
	if !ok {
		return nil, errors.NotFound("Corporate deal", nil)
	}
	return clone(d), nil
}

func (r *corporateDealRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.CorporateDeal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.deals {
		if strings.EqualFold(d.CompanyName, companyName) {
			return clone(d), nil
		}
	}
	return nil, errors.NotFound("Corporate deal", nil)
}

func (r *corporateDealRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.CorporateDeal, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CorporateDeal
	for _, d := range r.s.deals {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, clone(d))
	}
	items, total := page(out, func(d *entity.CorporateDeal) time.Time { return d.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *corporateDealRepository) Update(ctx context.Context, deal *entity.CorporateDeal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deals[deal.ID]; !ok {
		return errors.NotFound("Corporate deal", nil)
	}
	deal.UpdatedAt = r.s.now()
	r.s.deals[deal.ID] = clone(deal)
	return nil
}

type giveawayRepository struct{ s *Store }

func NewGiveawayRepository(s *Store) repository.GiveawayRepository {
	return &giveawayRepository{s: s}
}

// Create keys entries by campaign and user, so a second entry conflicts.
func (r *giveawayRepository) Create(ctx context.Context, entry *entity.GiveawayEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = entry.Campaign + "_" + entry.UserID
	if _, ok := r.s.giveaways[entry.ID]; ok {
		return errors.Conflict("Already entered this giveaway")
	}
	now := r.s.now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.s.giveaways[entry.ID] = clone(entry)
	return nil
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*entity.GiveawayEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.giveaways[id]
	if !ok {
		return nil, errors.NotFound("Giveaway entry", nil)
	}
	return clone(g), nil
}

func (r *giveawayRepository) List(ctx context.Context, campaign string, limit, offset int) ([]*entity.GiveawayEntry, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.GiveawayEntry
	for _, g := range r.s.giveaways {
		if campaign != "" && g.Campaign != campaign {
			continue
		}
		out = append(out, clone(g))
	}
	items, total := page(out, func(g *entity.GiveawayEntry) time.Time { return g.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *giveawayRepository) Update(ctx context.Context, entry *entity.GiveawayEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.giveaways[entry.ID]; !ok {
		return errors.NotFound("Giveaway entry", nil)
	}
	entry.UpdatedAt = r.s.now()
	r.s.giveaways[entry.ID] = clone(entry)
	return nil
}

type stockRequestRepository struct{ s *Store }

func NewStockRequestRepository(s *Store) repository.StockRequestRepository {
	return &stockRequestRepository{s: s}
}

func (r *stockRequestRepository) Create(ctx context.Context, req *entity.StockRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = newID(req.ID)
	now := r.s.now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.s.stockRequests[req.ID] = clone(req)
	return nil
}

func (r *stockRequestRepository) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sr, ok := r.s.stockRequests[id]
	if !ok {
		return nil, errors.NotFound("Stock request", nil)
	}
	return clone(sr), nil
}

func (r *stockRequestRepository) List(ctx context.Context, productID, status string, limit, offset int) ([]*entity.StockRequest, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockRequest
	for _, sr := range r.s.stockRequests {
		if productID != "" && sr.ProductID != productID {
			continue
		}
		if status != "" && sr.Status != status {
			continue
		}
		out = append(out, clone(sr))
	}
	items, total := page(out, func(sr *entity.StockRequest) time.Time { return sr.CreatedAt }, limit, offset)
	return items, total, nil
}

func (r *stockRequestRepository) Update(ctx context.Context, req *entity.StockRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stockRequests[req.ID]; !ok {
		return errors.NotFound("Stock request", nil)
	}
	req.UpdatedAt = r.s.now()
	r.s.stockRequests[req.ID] = clone(req)
	return nil
}
