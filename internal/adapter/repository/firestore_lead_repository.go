package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreCorporateDealRepository struct {
	client *firestore.Client
}

func NewFirestoreCorporateDealRepository(client *firestore.Client) repository.CorporateDealRepository {
	return &firestoreCorporateDealRepository{client: client}
}

func (r *firestoreCorporateDealRepository) Create(ctx context.Context, deal *entity.CorporateDeal) error {
	if deal.ID == "" {
		deal.ID = r.client.Collection(colCorporateDeals).NewDoc().ID
	}
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	return setDoc(ctx, r.client.Collection(colCorporateDeals).Doc(deal.ID), deal, "create corporate deal")
}

func (r *firestoreCorporateDealRepository) GetByID(ctx context.Context, id string) (*entity.CorporateDeal, error) {
	return getDoc[entity.CorporateDeal](ctx, r.client.Collection(colCorporateDeals).Doc(id), "Corporate deal")
}

// GetByCompanyName compares case-insensitively, so it scans the collection.
func (r *firestoreCorporateDealRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.CorporateDeal, error) {
	deals, err := collect[entity.CorporateDeal](r.client.Collection(colCorporateDeals).Documents(ctx), "corporate deals")
	if err != nil {
		return nil, err
	}
	for _, d := range deals {
		if strings.EqualFold(d.CompanyName, companyName) {
			return d, nil
		}
	}
	return nil, errors.NotFound("Corporate deal", nil)
}

func (r *firestoreCorporateDealRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.CorporateDeal, int64, error) {
	query := r.client.Collection(colCorporateDeals).Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	items, err := collect[entity.CorporateDeal](query.Documents(ctx), "corporate deals")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, func(d *entity.CorporateDeal) time.Time { return d.CreatedAt }, limit, offset)
	return page, total, nil
}

func (r *firestoreCorporateDealRepository) Update(ctx context.Context, deal *entity.CorporateDeal) error {
	deal.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colCorporateDeals).Doc(deal.ID), deal, "Corporate deal")
}

type firestoreGiveawayRepository struct {
	client *firestore.Client
}

func NewFirestoreGiveawayRepository(client *firestore.Client) repository.GiveawayRepository {
	return &firestoreGiveawayRepository{client: client}
}

// Create keys entries as <campaign>_<userId>; Firestore's Create fails with
// AlreadyExists on a second entry.
func (r *firestoreGiveawayRepository) Create(ctx context.Context, entry *entity.GiveawayEntry) error {
	entry.ID = entry.Campaign + "_" + entry.UserID
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if _, err := r.client.Collection(colGiveaways).Doc(entry.ID).Create(ctx, entry); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Already entered this giveaway")
		}
		return errors.Internal("Failed to create giveaway entry", err)
	}
	return nil
}

func (r *firestoreGiveawayRepository) GetByID(ctx context.Context, id string) (*entity.GiveawayEntry, error) {
	return getDoc[entity.GiveawayEntry](ctx, r.client.Collection(colGiveaways).Doc(id), "Giveaway entry")
}

func (r *firestoreGiveawayRepository) List(ctx context.Context, campaign string, limit, offset int) ([]*entity.GiveawayEntry, int64, error) {
	query := r.client.Collection(colGiveaways).Query
	if campaign != "" {
		query = query.Where("campaign", "==", campaign)
	}
	items, err := collect[entity.GiveawayEntry](query.Documents(ctx), "giveaway entries")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, func(g *entity.GiveawayEntry) time.Time { return g.CreatedAt }, limit, offset)
	return page, total, nil
}

func (r *firestoreGiveawayRepository) Update(ctx context.Context, entry *entity.GiveawayEntry) error {
	entry.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colGiveaways).Doc(entry.ID), entry, "Giveaway entry")
}

type firestoreStockRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreStockRequestRepository(client *firestore.Client) repository.StockRequestRepository {
	return &firestoreStockRequestRepository{client: client}
}

func (r *firestoreStockRequestRepository) Create(ctx context.Context, req *entity.StockRequest) error {
	if req.ID == "" {
		req.ID = r.client.Collection(colStockRequests).NewDoc().ID
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	return setDoc(ctx, r.client.Collection(colStockRequests).Doc(req.ID), req, "create stock request")
}

func (r *firestoreStockRequestRepository) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	return getDoc[entity.StockRequest](ctx, r.client.Collection(colStockRequests).Doc(id), "Stock request")
}

func (r *firestoreStockRequestRepository) List(ctx context.Context, productID, status string, limit, offset int) ([]*entity.StockRequest, int64, error) {
	query := r.client.Collection(colStockRequests).Query
	if productID != "" {
		query = query.Where("productId", "==", productID)
	}
	if status != "" {
		query = query.Where("status", "==", status)
	}
	items, err := collect[entity.StockRequest](query.Documents(ctx), "stock requests")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, func(sr *entity.StockRequest) time.Time { return sr.CreatedAt }, limit, offset)
	return page, total, nil
}

func (r *firestoreStockRequestRepository) Update(ctx context.Context, req *entity.StockRequest) error {
	req.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colStockRequests).Doc(req.ID), req, "Stock request")
}
