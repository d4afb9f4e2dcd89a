package repository

import (
	"context"
	stderrors "errors"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{client: client}
}

// Create keys the document by the Firebase uid.
func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.client.Collection(colUsers).Doc(user.ID).Create(ctx, user); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getDoc[entity.User](ctx, r.client.Collection(colUsers).Doc(id), "User")
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colUsers).Doc(user.ID), user, "User")
}

type firestoreWarrantyRepository struct {
	client *firestore.Client
}

func NewFirestoreWarrantyRepository(client *firestore.Client) repository.WarrantyRepository {
	return &firestoreWarrantyRepository{client: client}
}

func (r *firestoreWarrantyRepository) Create(ctx context.Context, record *entity.WarrantyRecord) error {
	if record.ID == "" {
		record.ID = r.client.Collection(colWarranties).NewDoc().ID
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	return setDoc(ctx, r.client.Collection(colWarranties).Doc(record.ID), record, "create warranty record")
}

func (r *firestoreWarrantyRepository) GetByID(ctx context.Context, id string) (*entity.WarrantyRecord, error) {
	return getDoc[entity.WarrantyRecord](ctx, r.client.Collection(colWarranties).Doc(id), "Warranty")
}

func (r *firestoreWarrantyRepository) GetByIMEI(ctx context.Context, imei string) (*entity.WarrantyRecord, error) {
	return first[entity.WarrantyRecord](ctx, r.client.Collection(colWarranties).Where("imei", "==", imei), "Warranty")
}

func (r *firestoreWarrantyRepository) GetBySerial(ctx context.Context, serial string) (*entity.WarrantyRecord, error) {
	return first[entity.WarrantyRecord](ctx, r.client.Collection(colWarranties).Where("serialNumber", "==", serial), "Warranty")
}

func (r *firestoreWarrantyRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.WarrantyRecord, int64, error) {
	query := r.client.Collection(colWarranties).Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	items, err := collect[entity.WarrantyRecord](query.Documents(ctx), "warranty records")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, func(w *entity.WarrantyRecord) time.Time { return w.CreatedAt }, limit, offset)
	return page, total, nil
}

func (r *firestoreWarrantyRepository) Update(ctx context.Context, record *entity.WarrantyRecord) error {
	record.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colWarranties).Doc(record.ID), record, "Warranty")
}

func (r *firestoreWarrantyRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colWarranties).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return errors.NotFound("Warranty", err)
		}
		return errors.Internal("Failed to get warranty", err)
	}
	return deleteDoc(ctx, ref, "warranty record")
}

type firestoreLoyaltyRepository struct {
	client *firestore.Client
}

func NewFirestoreLoyaltyRepository(client *firestore.Client) repository.LoyaltyRepository {
	return &firestoreLoyaltyRepository{client: client}
}

func (r *firestoreLoyaltyRepository) Get(ctx context.Context, userID string) (*entity.LoyaltyPoints, error) {
	return getDoc[entity.LoyaltyPoints](ctx, r.client.Collection(colLoyalty).Doc(userID), "Loyalty account")
}

func (r *firestoreLoyaltyRepository) Apply(ctx context.Context, userID string, fn func(*entity.LoyaltyPoints) error) (*entity.LoyaltyPoints, error) {
	docRef := r.client.Collection(colLoyalty).Doc(userID)
	var result *entity.LoyaltyPoints

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()
		acct := &entity.LoyaltyPoints{UserID: userID, Tier: entity.LoyaltyTierBronze, CreatedAt: now}

		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			if err := doc.DataTo(acct); err != nil {
				return err
			}
		case !isNotFound(err):
			return err
		}

		if err := fn(acct); err != nil {
			return err
		}
		acct.UpdatedAt = now
		result = acct
		return tx.Set(docRef, acct)
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to update loyalty points", err)
	}
	return result, nil
}
