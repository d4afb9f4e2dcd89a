package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreInventoryRepository struct {
	client *firestore.Client
}

// NewFirestoreInventoryRepository decrements stock inside a transaction so
// two orders for the same record cannot overwrite each other's result.
func NewFirestoreInventoryRepository(client *firestore.Client) repository.InventoryRepository {
	return &firestoreInventoryRepository{client: client}
}

// decrement reads field from the document, clamps, and writes it back in one
// transaction. Firestore retries the function on contention.
func (r *firestoreInventoryRepository) decrement(ctx context.Context, collection, id, resource string, qty int, field func(doc *firestore.DocumentSnapshot) string) (repository.StockChange, error) {
	var change repository.StockChange
	docRef := r.client.Collection(collection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		path := field(doc)
		current, err := doc.DataAt(path)
		if err != nil {
			return err
		}
		before := toInt(current)
		change = repository.StockChange{Before: before, After: entity.ClampedDecrement(before, qty)}

		return tx.Update(docRef, []firestore.Update{
			{Path: path, Value: change.After},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if isNotFound(err) {
			return repository.StockChange{}, errors.NotFound(resource, err)
		}
		return repository.StockChange{}, errors.Internal("Failed to decrement "+resource+" stock", err)
	}
	return change, nil
}

func stockField(*firestore.DocumentSnapshot) string { return "stockQuantity" }

// colorStockField prefers singleStockQuantity when the color carries one.
func colorStockField(doc *firestore.DocumentSnapshot) string {
	if v, err := doc.DataAt("singleStockQuantity"); err == nil && v != nil {
		return "singleStockQuantity"
	}
	return "stockQuantity"
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func (r *firestoreInventoryRepository) DecrementProductStock(ctx context.Context, productID string, qty int) (repository.StockChange, error) {
	return r.decrement(ctx, colProducts, productID, "Product", qty, stockField)
}

func (r *firestoreInventoryRepository) DecrementColorStock(ctx context.Context, colorID string, qty int) (repository.StockChange, error) {
	return r.decrement(ctx, colColors, colorID, "Color", qty, colorStockField)
}

func (r *firestoreInventoryRepository) DecrementPriceStock(ctx context.Context, priceID string, qty int) (repository.StockChange, error) {
	return r.decrement(ctx, colPrices, priceID, "Price", qty, stockField)
}
