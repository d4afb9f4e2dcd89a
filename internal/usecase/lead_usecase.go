package usecase

import (
	"context"
	"fmt"
	"strings"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

// LeadUseCase handles inbound customer submissions: corporate deal
// inquiries, giveaway entries and back-in-stock requests. Each one notifies
// admins, and a failed notification fails the submission.
type LeadUseCase struct {
	dealRepo         repository.CorporateDealRepository
	giveawayRepo     repository.GiveawayRepository
	stockRequestRepo repository.StockRequestRepository
	productRepo      repository.ProductRepository
	notificationUC   *NotificationUseCase
}

func NewLeadUseCase(
	dealRepo repository.CorporateDealRepository,
	giveawayRepo repository.GiveawayRepository,
	stockRequestRepo repository.StockRequestRepository,
	productRepo repository.ProductRepository,
	notificationUC *NotificationUseCase,
) *LeadUseCase {
	return &LeadUseCase{
		dealRepo:         dealRepo,
		giveawayRepo:     giveawayRepo,
		stockRequestRepo: stockRequestRepo,
		productRepo:      productRepo,
		notificationUC:   notificationUC,
	}
}

type CorporateDealInput struct {
	CompanyName  string   `json:"company_name" validate:"required"`
	ContactName  string   `json:"contact_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"required"`
	ProductNames []string `json:"product_names"`
	Quantity     int      `json:"quantity" validate:"required,min=1"`
	Message      string   `json:"message"`
}

func (uc *LeadUseCase) SubmitCorporateDeal(ctx context.Context, input CorporateDealInput) (*entity.CorporateDeal, error) {
	company := strings.TrimSpace(input.CompanyName)
	_, err := uc.dealRepo.GetByCompanyName(ctx, company)
	switch {
	case err == nil:
		return nil, errors.Conflict("A deal request for this company already exists")
	case !errors.IsNotFound(err):
		return nil, err
	}

	deal := &entity.CorporateDeal{
		CompanyName:  company,
		ContactName:  input.ContactName,
		Email:        input.Email,
		Phone:        input.Phone,
		ProductNames: input.ProductNames,
		Quantity:     input.Quantity,
		Message:      input.Message,
		Status:       entity.CorporateDealNew,
	}
	if err := uc.dealRepo.Create(ctx, deal); err != nil {
		return nil, err
	}

	res := uc.notificationUC.Dispatch(ctx, NotificationEvent{
		Admin: &NotificationContent{
			Type:    entity.NotificationCorporateDeal,
			Title:   "New corporate deal request",
			Message: fmt.Sprintf("%s requested %d unit(s)", deal.CompanyName, deal.Quantity),
			Link:    "/admin/corporate-deals/" + deal.ID,
		},
		Metadata: map[string]interface{}{"dealId": deal.ID},
	})
	if err := res.Err(); err != nil {
		return nil, errors.Internal("Failed to notify admins of corporate deal", err)
	}
	return deal, nil
}

func (uc *LeadUseCase) ListCorporateDeals(ctx context.Context, status string, limit, offset int) ([]*entity.CorporateDeal, int64, error) {
	return uc.dealRepo.List(ctx, status, limit, offset)
}

func (uc *LeadUseCase) UpdateCorporateDealStatus(ctx context.Context, id, status string) (*entity.CorporateDeal, error) {
	switch status {
	case entity.CorporateDealNew, entity.CorporateDealContacted, entity.CorporateDealClosed:
	default:
		return nil, errors.BadRequest("Invalid corporate deal status", nil)
	}
	deal, err := uc.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deal.Status = status
	if err := uc.dealRepo.Update(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

type GiveawayEntryInput struct {
	Campaign string `json:"campaign" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required"`
}

// EnterGiveaway records one entry per user and campaign. userID falls back
// to the phone number for anonymous entrants.
func (uc *LeadUseCase) EnterGiveaway(ctx context.Context, userID string, input GiveawayEntryInput) (*entity.GiveawayEntry, error) {
	entrant := userID
	if entrant == "" {
		entrant = input.Phone
	}

	entry := &entity.GiveawayEntry{
		Campaign: input.Campaign,
		UserID:   entrant,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Status:   entity.GiveawayEntered,
	}
	if err := uc.giveawayRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	res := uc.notificationUC.Dispatch(ctx, NotificationEvent{
		UserID: userID,
		User: &NotificationContent{
			Type:    entity.NotificationGiveaway,
			Title:   "You're in!",
			Message: fmt.Sprintf("Your entry for %s has been received. Good luck!", entry.Campaign),
		},
		Admin: &NotificationContent{
			Type:    entity.NotificationGiveaway,
			Title:   "New giveaway entry",
			Message: fmt.Sprintf("%s entered %s", entry.Name, entry.Campaign),
			Link:    "/admin/giveaways?campaign=" + entry.Campaign,
		},
		Metadata: map[string]interface{}{"entryId": entry.ID, "campaign": entry.Campaign},
	})
	if err := res.Err(); err != nil {
		return nil, errors.Internal("Failed to send giveaway notifications", err)
	}
	return entry, nil
}

func (uc *LeadUseCase) ListGiveawayEntries(ctx context.Context, campaign string, limit, offset int) ([]*entity.GiveawayEntry, int64, error) {
	return uc.giveawayRepo.List(ctx, campaign, limit, offset)
}

func (uc *LeadUseCase) MarkGiveawayWinner(ctx context.Context, id string) (*entity.GiveawayEntry, error) {
	entry, err := uc.giveawayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status == entity.GiveawayDisqualified {
		return nil, errors.BadRequest("Disqualified entries cannot win", nil)
	}
	entry.Status = entity.GiveawayWinner
	if err := uc.giveawayRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

type StockRequestInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (uc *LeadUseCase) RequestStock(ctx context.Context, userID string, input StockRequestInput) (*entity.StockRequest, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	req := &entity.StockRequest{
		ProductID:   product.ID,
		ProductName: product.Name,
		UserID:      userID,
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Status:      entity.StockRequestPending,
	}
	if err := uc.stockRequestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	res := uc.notificationUC.Dispatch(ctx, NotificationEvent{
		UserID: userID,
		User: &NotificationContent{
			Type:    entity.NotificationStockOut,
			Title:   "Stock request received",
			Message: fmt.Sprintf("We'll let you know when %s is back in stock.", product.Name),
			Link:    "/products/" + product.Slug,
		},
		Admin: &NotificationContent{
			Type:    entity.NotificationStockOut,
			Title:   "Stock request",
			Message: fmt.Sprintf("%s (%s) asked for %s", req.Name, req.Phone, product.Name),
			Link:    "/admin/stock-requests/" + req.ID,
		},
		Metadata: map[string]interface{}{"requestId": req.ID, "productId": product.ID},
	})
	if err := res.Err(); err != nil {
		return nil, errors.Internal("Failed to send stock request notifications", err)
	}
	return req, nil
}

func (uc *LeadUseCase) ListStockRequests(ctx context.Context, productID, status string, limit, offset int) ([]*entity.StockRequest, int64, error) {
	return uc.stockRequestRepo.List(ctx, productID, status, limit, offset)
}

func (uc *LeadUseCase) MarkStockRequestNotified(ctx context.Context, id string) (*entity.StockRequest, error) {
	req, err := uc.stockRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = entity.StockRequestNotified
	if err := uc.stockRequestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
