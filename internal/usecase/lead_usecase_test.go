package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/domain/entity"
	"telemart/pkg/errors"
)

func dealInput(company string) CorporateDealInput {
	return CorporateDealInput{
		CompanyName: company,
		ContactName: "Karim",
		Email:       "karim@acme.test",
		Phone:       "01800000000",
		Quantity:    25,
	}
}

func TestSubmitCorporateDeal(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	deal, err := e.leads.SubmitCorporateDeal(ctx, dealInput("  Acme Ltd "))
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", deal.CompanyName)
	assert.Equal(t, entity.CorporateDealNew, deal.Status)
	assert.Equal(t, 1, e.pusher.admins)

	_, err = e.leads.SubmitCorporateDeal(ctx, dealInput("acme ltd"))
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = e.leads.UpdateCorporateDealStatus(ctx, deal.ID, "won")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	updated, err := e.leads.UpdateCorporateDealStatus(ctx, deal.ID, entity.CorporateDealContacted)
	require.NoError(t, err)
	assert.Equal(t, entity.CorporateDealContacted, updated.Status)
}

func TestLeadNotificationFailurePropagates(t *testing.T) {
	e := newTestEnv(t, withFailingNotifications())

	_, err := e.leads.SubmitCorporateDeal(context.Background(), dealInput("Acme Ltd"))
	assert.True(t, errors.Is(err, errors.CodeInternal))

	_, err = e.leads.EnterGiveaway(context.Background(), "user-1", GiveawayEntryInput{Campaign: "eid", Name: "Rahim", Phone: "017"})
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestEnterGiveawayOncePerCampaign(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	input := GiveawayEntryInput{Campaign: "eid-2024", Name: "Rahim", Phone: "01700000000"}

	entry, err := e.leads.EnterGiveaway(ctx, "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, entity.GiveawayEntered, entry.Status)

	_, err = e.leads.EnterGiveaway(ctx, "user-1", input)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	// anonymous entrants are keyed by phone
	_, err = e.leads.EnterGiveaway(ctx, "", input)
	require.NoError(t, err)
	_, err = e.leads.EnterGiveaway(ctx, "", input)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	other := input
	other.Campaign = "new-year"
	_, err = e.leads.EnterGiveaway(ctx, "user-1", other)
	require.NoError(t, err)

	entries, total, err := e.leads.ListGiveawayEntries(ctx, "eid-2024", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)

	winner, err := e.leads.MarkGiveawayWinner(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GiveawayWinner, winner.Status)
}

func TestRequestStock(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	cat := e.seedPhone(t, 0)

	_, err := e.leads.RequestStock(ctx, "", StockRequestInput{ProductID: "missing", Name: "Rahim", Phone: "017"})
	assert.True(t, errors.IsNotFound(err))

	req, err := e.leads.RequestStock(ctx, "user-1", StockRequestInput{ProductID: cat.product.ID, Name: "Rahim", Phone: "017"})
	require.NoError(t, err)
	assert.Equal(t, "X1", req.ProductName)
	assert.Equal(t, entity.StockRequestPending, req.Status)

	notes, _, err := e.notificationRepo.ListByUser(ctx, "user-1", false, 10, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "/products/x1", notes[0].Link)

	notified, err := e.leads.MarkStockRequestNotified(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestNotified, notified.Status)

	pending, total, err := e.leads.ListStockRequests(ctx, cat.product.ID, entity.StockRequestPending, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, pending)
}
