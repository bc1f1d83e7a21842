package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/cleankey/api/internal/history"
	"github.com/cleankey/api/internal/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:             "1700000000123_0042",
		Timestamp:      time.Date(2026, 3, 14, 9, 30, 15, 123e6, time.UTC),
		CustomerName:   "Acme Co",
		SupervisorName: "J. Virtanen",
		Note:           "Leave the delivery at loading dock B, ring twice and ask for the site manager.",
		Items: []order.LineItem{
			{ProductID: 1, SKU: "CLN-01", NameEn: "Cleaner", NameFi: "Puhdistusaine",
				Quantity: 3, UnitPrice: decimal.RequireFromString("5.00")},
			{ProductID: 6, SKU: "GLV-01", NameEn: "Nitrile gloves", NameFi: "Nitriilikäsineet",
				Quantity: 2, UnitPrice: decimal.RequireFromString("9.80")},
		},
		Total: decimal.RequireFromString("34.60"),
	}
}

func TestWriteOrderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrderPDF(&buf, sampleOrder()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWriteOrderPDF_NoOptionalFields(t *testing.T) {
	o := sampleOrder()
	o.SupervisorName = ""
	o.Note = ""

	var buf bytes.Buffer
	require.NoError(t, WriteOrderPDF(&buf, o))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteHistoryOrderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryOrderPDF(&buf, sampleOrder()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteHistoryPDF(t *testing.T) {
	records := []history.Record{
		{ID: "1", CreatedAt: time.Now(), Payload: sampleOrder()},
		{ID: "2", CreatedAt: time.Now(), Payload: sampleOrder()},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryPDF(&buf, records, time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteHistoryPDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHistoryPDF(&buf, nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyHistory)
	assert.Zero(t, buf.Len(), "no document emitted for empty history")
}

func TestWriteHistoryPDF_ManyRecordsPaginates(t *testing.T) {
	var records []history.Record
	for i := 0; i < 120; i++ {
		records = append(records, history.Record{ID: "x", Payload: sampleOrder()})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryPDF(&buf, records, time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestOrderFilename(t *testing.T) {
	o := sampleOrder()
	assert.Equal(t, "cleankey-order-20260314093015.pdf", OrderFilename(o))
	// Deterministic for the same order.
	assert.Equal(t, OrderFilename(o), OrderFilename(o))
}

func TestHistoryOrderFilename(t *testing.T) {
	o := sampleOrder()
	o.CustomerName = "Acme Co / Büro #7"

	name := HistoryOrderFilename(o)
	assert.Equal(t, "cleankey-order-history-Acme_Co_B_ro_7-20260314093015123.pdf", name)
}

func TestHistoryOrderFilename_EmptyCustomer(t *testing.T) {
	o := sampleOrder()
	o.CustomerName = ""
	assert.Contains(t, HistoryOrderFilename(o), "-customer-")
}

func TestHistoryFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 15, 123e6, time.UTC)
	assert.Equal(t, "cleankey-order-history-20260314093015123.pdf", HistoryFilename(at))
}
