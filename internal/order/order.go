// Package order accumulates line items for the order being composed and
// finalizes them into immutable order records.
package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product-quantity-price triple within an order. SKU,
// names and unit price are copied from the catalog at add time, so later
// catalog changes never retroactively alter the item.
type LineItem struct {
	ProductID int             `json:"productId"`
	SKU       string          `json:"sku"`
	NameEn    string          `json:"nameEn"`
	NameFi    string          `json:"nameFi"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineTotal returns quantity × unit price.
func (it LineItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order is a finalized, immutable purchase record. Total always equals
// the sum of its own items' line totals; anything reconstructing an Order
// from storage must go through Recompute rather than trust a stored total.
type Order struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	CustomerName   string          `json:"customerName"`
	SupervisorName string          `json:"supervisorName,omitempty"`
	Note           string          `json:"note,omitempty"`
	Items          []LineItem      `json:"items"`
	Total          decimal.Decimal `json:"total"`
}

// NewID derives an order ID from the given time plus a 4-digit random
// suffix. Two orders created in the same millisecond collide only if the
// suffix also matches; callers needing a hard guarantee must not rely on
// this derivation.
func NewID(t time.Time) string {
	return fmt.Sprintf("%d_%04d", t.UnixMilli(), rand.Intn(10000))
}

// Recompute returns a copy of o whose Total is re-derived from its items.
func Recompute(o Order) Order {
	items := make([]LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	o.Total = totalOf(items)
	return o
}

func totalOf(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}
