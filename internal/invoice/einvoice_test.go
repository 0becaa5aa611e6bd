package invoice

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEInvoiceBuilder_ThresholdBoundary(t *testing.T) {
	b := NewEInvoiceBuilder(testSeller(), decimal.Zero, nil)
	assert.True(t, d("50000").Equal(b.Threshold()))

	tests := []struct {
		total string
		want  bool
	}{
		{"49999.99", false},
		{"50000.00", true},
		{"51000.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			order := testOrder()
			order.Total = d(tt.total)

			doc := b.Build(order)
			if !tt.want {
				assert.Nil(t, doc)
				return
			}
			require.NotNil(t, doc)
			assert.Equal(t, order.InvoiceNumber, doc.DocDtls.No)
		})
	}
}

func TestEInvoiceBuilder_B2CWalkIn(t *testing.T) {
	order := testOrder()
	order.Total = d("60000")

	doc := NewEInvoiceBuilder(testSeller(), d("50000"), nil).Build(order)
	require.NotNil(t, doc)

	assert.Equal(t, SchemaVersion, doc.Version)
	assert.Equal(t, "GST", doc.TranDtls.TaxSch)
	assert.Equal(t, "B2C", doc.TranDtls.SupTyp)
	assert.Equal(t, "N", doc.TranDtls.IgstOnIntra)
	assert.Equal(t, "INV", doc.DocDtls.Typ)
	assert.Equal(t, "2025-03-05", doc.DocDtls.Dt)

	assert.Equal(t, "27ABCDE1234F1Z5", doc.SellerDtls.Gstin)
	assert.Equal(t, 411001, doc.SellerDtls.Pin)
	assert.Equal(t, "27", doc.SellerDtls.Stcd)

	assert.Empty(t, doc.BuyerDtls.Gstin)
	assert.Equal(t, "Walk-in Customer", doc.BuyerDtls.LglNm)
	assert.Equal(t, "27", doc.BuyerDtls.Pos)

	require.Len(t, doc.ItemList, 2)
	item := doc.ItemList[0]
	assert.Equal(t, 1, item.SlNo)
	assert.Equal(t, "Item A", item.PrdDesc)
	assert.Equal(t, "Y", item.IsServc)
	assert.Equal(t, "X", item.HsnCd)
	assert.Equal(t, 2.0, item.Qty)
	assert.Equal(t, "NOS", item.Unit)
	assert.Equal(t, 100.0, item.UnitPrice)
	assert.Equal(t, 200.0, item.TotAmt)
	assert.Equal(t, 200.0, item.AssAmt)
	assert.Equal(t, 5.0, item.GstRt)
	assert.Zero(t, item.CgstAmt)
	assert.Equal(t, 2, doc.ItemList[1].SlNo)

	assert.Equal(t, 400.0, doc.ValDtls.AssVal)
	assert.Equal(t, 60000.0, doc.ValDtls.TotInvVal)
	assert.Equal(t, doc.ValDtls.TotInvVal, doc.ValDtls.TotInvValFc)
	require.NotNil(t, doc.ValDtls.CgstVal)
	assert.Equal(t, 17.0, *doc.ValDtls.CgstVal)
	assert.Nil(t, doc.ValDtls.IgstVal)
}

func TestEInvoiceBuilder_B2BInterState(t *testing.T) {
	order := testOrder()
	order.Total = d("75000")
	order.CustomerName = "Acme Foods"
	order.CustomerGSTIN = "29AAACA1234B1Z2"
	order.PlaceOfSupply = "29"
	order.CGST, order.SGST = decimal.Zero, decimal.Zero
	order.IGST = d("34.00")

	doc := NewEInvoiceBuilder(testSeller(), d("50000"), nil).Build(order)
	require.NotNil(t, doc)

	assert.Equal(t, "B2B", doc.TranDtls.SupTyp)
	assert.Equal(t, "Y", doc.TranDtls.IgstOnIntra)
	assert.Equal(t, "29AAACA1234B1Z2", doc.BuyerDtls.Gstin)
	assert.Equal(t, "Acme Foods", doc.BuyerDtls.LglNm)
	assert.Equal(t, "29", doc.BuyerDtls.Pos)
	assert.Nil(t, doc.ValDtls.CgstVal)
	assert.Nil(t, doc.ValDtls.SgstVal)
	require.NotNil(t, doc.ValDtls.IgstVal)
	assert.Equal(t, 34.0, *doc.ValDtls.IgstVal)
}

func TestEInvoiceBuilder_NoLinesAndJSONShape(t *testing.T) {
	order := testOrder()
	order.Total = d("50000")
	order.Lines = nil
	order.CGST, order.SGST = decimal.Zero, decimal.Zero

	doc := NewEInvoiceBuilder(testSeller(), d("50000"), nil).Build(order)
	require.NotNil(t, doc)
	assert.Empty(t, doc.ItemList)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, []any{}, generic["ItemList"])

	val := generic["ValDtls"].(map[string]any)
	assert.NotContains(t, val, "CgstVal")
	assert.NotContains(t, val, "IgstVal")
	assert.NotContains(t, generic["BuyerDtls"].(map[string]any), "Gstin")
}
