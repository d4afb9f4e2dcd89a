package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"telemart/pkg/errors"
	"telemart/pkg/utils"
)

const (
	colCategories     = "categories"
	colBrands         = "brands"
	colCarePlans      = "care_plans"
	colProducts       = "products"
	colRegions        = "product_regions"
	colNetworks       = "product_networks"
	colColors         = "product_colors"
	colStorages       = "product_storages"
	colPrices         = "product_prices"
	colOrders         = "orders"
	colOrderItems     = "order_items"
	colNotifications  = "notifications"
	colUsers          = "users"
	colWarranties     = "warranty_records"
	colLoyalty        = "loyalty_points"
	colCorporateDeals = "corporate_deals"
	colGiveaways      = "giveaway_entries"
	colStockRequests  = "stock_requests"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// getDoc loads one document into T, mapping a missing document to NotFound.
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to get "+resource, err)
	}

	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, errors.Internal("Failed to parse "+resource+" data", err)
	}
	return &v, nil
}

func collect[T any](iter *firestore.DocumentIterator, resource string) ([]*T, error) {
	defer iter.Stop()

	var out []*T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+resource, err)
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, errors.Internal("Failed to parse "+resource+" data", err)
		}
		out = append(out, &v)
	}
	return out, nil
}

// first returns the first document matching q, or NotFound.
func first[T any](ctx context.Context, q firestore.Query, resource string) (*T, error) {
	items, err := collect[T](q.Limit(1).Documents(ctx), resource)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NotFound(resource, nil)
	}
	return items[0], nil
}

// newestPage sorts newest first and cuts one page. Ordering and paging
// happen here so equality filters never need a composite index.
func newestPage[T any](items []*T, createdAt func(*T) time.Time, limit, offset int) ([]*T, int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	start, end := utils.Window(len(items), limit, offset)
	return items[start:end], int64(len(items))
}

func byDisplayOrder[T any](items []*T, order func(*T) int) []*T {
	sort.SliceStable(items, func(i, j int) bool {
		return order(items[i]) < order(items[j])
	})
	return items
}

func setDoc(ctx context.Context, ref *firestore.DocumentRef, v interface{}, action string) error {
	if _, err := ref.Set(ctx, v); err != nil {
		return errors.Internal("Failed to "+action, err)
	}
	return nil
}

// updateDoc overwrites an existing document and reports NotFound otherwise.
func updateDoc(ctx context.Context, ref *firestore.DocumentRef, v interface{}, resource string) error {
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return errors.NotFound(resource, err)
		}
		return errors.Internal("Failed to get "+resource, err)
	}
	return setDoc(ctx, ref, v, "update "+resource)
}

// mutateDoc reads the document, applies fn and writes it back in one
// transaction. Firestore reruns fn when a concurrent write, such as a stock
// decrement, touches the document first. Errors returned by fn pass through.
func mutateDoc[T any](ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, resource string, fn func(*T) error) (*T, error) {
	var out *T
	var fnErr error
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		fnErr = nil
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return err
		}
		if err := fn(&v); err != nil {
			fnErr = err
			return err
		}
		out = &v
		return tx.Set(ref, &v)
	})
	if err != nil {
		if fnErr != nil {
			return nil, fnErr
		}
		if isNotFound(err) {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to update "+resource, err)
	}
	return out, nil
}

func deleteDoc(ctx context.Context, ref *firestore.DocumentRef, resource string) error {
	if _, err := ref.Delete(ctx); err != nil {
		return errors.Internal("Failed to delete "+resource, err)
	}
	return nil
}
