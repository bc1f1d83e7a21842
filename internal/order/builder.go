package order

import (
	"errors"
	"time"

	"github.com/cleankey/api/internal/catalog"
	"github.com/shopspring/decimal"
)

// Errors returned by the order builder.
var (
	ErrNoProduct       = errors.New("product is required")
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrIndexOutOfRange = errors.New("item index out of range")
	ErrEmptyCustomer   = errors.New("customer name is required")
	ErrEmptyItems      = errors.New("order has no items")
)

// Builder accumulates line items for the order currently being composed.
// Each builder owns its state; independent builders never share items.
type Builder struct {
	items []LineItem

	now   func() time.Time
	newID func(t time.Time) string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{now: time.Now, newID: NewID}
}

// AddItem appends a line item for the given product. A non-zero
// unitPriceOverride wins over the product's catalog price. The same
// product may be added more than once; items are never merged.
func (b *Builder) AddItem(p *catalog.Product, quantity int, unitPriceOverride decimal.Decimal) (LineItem, error) {
	if p == nil {
		return LineItem{}, ErrNoProduct
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}

	price := unitPriceOverride
	if price.IsZero() {
		price = p.Price
	}

	item := LineItem{
		ProductID: p.ID,
		SKU:       p.SKU,
		NameEn:    p.NameEn,
		NameFi:    p.NameFi,
		Quantity:  quantity,
		UnitPrice: price,
	}
	b.items = append(b.items, item)
	return item, nil
}

// RemoveItem removes the item at the given position. An out-of-range
// index is an error, not a silent no-op.
func (b *Builder) RemoveItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return ErrIndexOutOfRange
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// Items returns a copy of the currently held items.
func (b *Builder) Items() []LineItem {
	out := make([]LineItem, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of items in the open order.
func (b *Builder) Len() int {
	return len(b.items)
}

// ComputeTotal returns the sum of all line totals, zero for an empty order.
func (b *Builder) ComputeTotal() decimal.Decimal {
	return totalOf(b.items)
}

// Finalize snapshots the open items into an immutable Order and resets
// the builder for the next order. Items are deep-copied, so mutating the
// builder afterwards cannot affect the returned record. Validation
// failures leave the builder untouched.
func (b *Builder) Finalize(customerName, supervisorName, note string) (Order, error) {
	if customerName == "" {
		return Order{}, ErrEmptyCustomer
	}
	if len(b.items) == 0 {
		return Order{}, ErrEmptyItems
	}

	now := b.now()
	items := make([]LineItem, len(b.items))
	copy(items, b.items)

	o := Order{
		ID:             b.newID(now),
		Timestamp:      now.UTC(),
		CustomerName:   customerName,
		SupervisorName: supervisorName,
		Note:           note,
		Items:          items,
		Total:          totalOf(items),
	}
	b.items = nil
	return o, nil
}
