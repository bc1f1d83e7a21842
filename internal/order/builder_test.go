package order

import (
	"testing"
	"time"

	"github.com/cleankey/api/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cleaner = catalog.Product{
	ID:       1,
	SKU:      "CLN-01",
	NameEn:   "Cleaner",
	NameFi:   "Puhdistusaine",
	Category: "Cleaning agents",
	Price:    decimal.RequireFromString("5.00"),
}

var gloves = catalog.Product{
	ID:       2,
	SKU:      "GLV-01",
	NameEn:   "Nitrile gloves",
	NameFi:   "Nitriilikäsineet",
	Category: "Protective equipment",
	Price:    decimal.RequireFromString("9.80"),
}

func TestAddItem_CopiesProductAtAddTime(t *testing.T) {
	b := NewBuilder()

	p := cleaner
	item, err := b.AddItem(&p, 3, decimal.Zero)
	require.NoError(t, err)

	// Later catalog changes must not leak into the held item.
	p.NameFi = "changed"
	p.Price = decimal.RequireFromString("99.00")

	assert.Equal(t, "Puhdistusaine", item.NameFi)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 1, b.Len())
}

func TestAddItem_PriceOverride(t *testing.T) {
	b := NewBuilder()

	item, err := b.AddItem(&cleaner, 1, decimal.RequireFromString("4.20"))
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("4.20")))

	// Zero override falls back to the catalog price.
	item, err = b.AddItem(&cleaner, 1, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("5.00")))
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	b := NewBuilder()

	_, err := b.AddItem(&cleaner, 0, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = b.AddItem(&cleaner, -2, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 0, b.Len())
}

func TestAddItem_NilProduct(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddItem(nil, 1, decimal.Zero)
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestAddItem_DuplicatesAllowed(t *testing.T) {
	b := NewBuilder()

	_, err := b.AddItem(&cleaner, 1, decimal.Zero)
	require.NoError(t, err)
	_, err = b.AddItem(&cleaner, 2, decimal.Zero)
	require.NoError(t, err)

	// Two distinct line items, never merged.
	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestRemoveItem(t *testing.T) {
	b := NewBuilder()
	_, _ = b.AddItem(&cleaner, 1, decimal.Zero)
	_, _ = b.AddItem(&gloves, 1, decimal.Zero)

	require.NoError(t, b.RemoveItem(0))
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "GLV-01", items[0].SKU)
}

func TestRemoveItem_OutOfRange(t *testing.T) {
	b := NewBuilder()
	_, _ = b.AddItem(&cleaner, 1, decimal.Zero)

	assert.ErrorIs(t, b.RemoveItem(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.RemoveItem(1), ErrIndexOutOfRange)
	assert.Equal(t, 1, b.Len())
}

func TestComputeTotal(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.ComputeTotal().IsZero())

	_, err := b.AddItem(&cleaner, 3, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, b.ComputeTotal().Equal(decimal.RequireFromString("15.00")),
		"3 × 5.00 should total 15.00, got %s", b.ComputeTotal())

	_, err = b.AddItem(&gloves, 2, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, b.ComputeTotal().Equal(decimal.RequireFromString("34.60")))
}

func TestComputeTotal_OrderIndependent(t *testing.T) {
	forward := NewBuilder()
	_, _ = forward.AddItem(&cleaner, 3, decimal.Zero)
	_, _ = forward.AddItem(&gloves, 2, decimal.RequireFromString("1.10"))

	reverse := NewBuilder()
	_, _ = reverse.AddItem(&gloves, 2, decimal.RequireFromString("1.10"))
	_, _ = reverse.AddItem(&cleaner, 3, decimal.Zero)

	assert.True(t, forward.ComputeTotal().Equal(reverse.ComputeTotal()))
}

func TestFinalize(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddItem(&cleaner, 3, decimal.Zero)
	require.NoError(t, err)

	o, err := b.Finalize("Acme Co", "", "")
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(decimal.RequireFromString("15.00")))
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Acme Co", o.CustomerName)
	assert.NotEmpty(t, o.ID)
	assert.False(t, o.Timestamp.IsZero())

	// Builder is reset for the next order.
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.ComputeTotal().IsZero())
}

func TestFinalize_EmptyCustomer(t *testing.T) {
	b := NewBuilder()
	_, _ = b.AddItem(&cleaner, 1, decimal.Zero)

	_, err := b.Finalize("", "", "")
	assert.ErrorIs(t, err, ErrEmptyCustomer)
	assert.Equal(t, 1, b.Len(), "failed finalize must leave builder state unchanged")
}

func TestFinalize_EmptyItems(t *testing.T) {
	b := NewBuilder()
	_, err := b.Finalize("Acme Co", "", "")
	assert.ErrorIs(t, err, ErrEmptyItems)
}

func TestFinalize_SnapshotIsDeepCopy(t *testing.T) {
	b := NewBuilder()
	_, _ = b.AddItem(&cleaner, 1, decimal.Zero)

	o, err := b.Finalize("Acme Co", "", "")
	require.NoError(t, err)

	// Reusing the builder must not affect the finalized record.
	_, _ = b.AddItem(&gloves, 5, decimal.Zero)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "CLN-01", o.Items[0].SKU)
}

func TestFinalize_TwiceProducesDistinctRecords(t *testing.T) {
	ids := []string{"100_0001", "100_0002"}
	b := NewBuilder()
	b.newID = func(time.Time) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	_, _ = b.AddItem(&cleaner, 3, decimal.Zero)
	first, err := b.Finalize("Acme Co", "", "")
	require.NoError(t, err)

	_, _ = b.AddItem(&cleaner, 3, decimal.Zero)
	second, err := b.Finalize("Acme Co", "", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestNewID_Derivation(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	id := NewID(at)
	assert.Regexp(t, `^1700000000123_\d{4}$`, id)
}

func TestRecompute_OverridesStoredTotal(t *testing.T) {
	o := Order{
		ID:           "1_0001",
		CustomerName: "Acme Co",
		Items: []LineItem{
			{ProductID: 1, SKU: "CLN-01", Quantity: 3, UnitPrice: decimal.RequireFromString("5.00")},
		},
		Total: decimal.RequireFromString("999.00"), // untrusted
	}
	got := Recompute(o)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("15.00")))
}
