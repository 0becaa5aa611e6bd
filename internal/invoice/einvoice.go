package invoice

import (
	"strconv"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	SchemaVersion = "1.1"
	// DefaultThreshold is the order total at which an e-invoice becomes mandatory.
	DefaultThreshold = 50000
	walkInCustomer   = "Walk-in Customer"
)

// Document is the e-invoice payload in the government IRN schema.
type Document struct {
	Version    string      `json:"Version"`
	TranDtls   TranDetails `json:"TranDtls"`
	DocDtls    DocDetails  `json:"DocDtls"`
	SellerDtls Seller      `json:"SellerDtls"`
	BuyerDtls  Buyer       `json:"BuyerDtls"`
	ItemList   []Item      `json:"ItemList"`
	ValDtls    Values      `json:"ValDtls"`
}

type TranDetails struct {
	TaxSch      string `json:"TaxSch"`
	SupTyp      string `json:"SupTyp"`
	IgstOnIntra string `json:"IgstOnIntra"`
}

type DocDetails struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"`
}

type Seller struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	Addr1 string `json:"Addr1"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
}

// Buyer omits Gstin for walk-in (B2C) customers.
type Buyer struct {
	Gstin string `json:"Gstin,omitempty"`
	LglNm string `json:"LglNm"`
	Pos   string `json:"Pos"`
}

// Item tax amounts stay zero until per-line tax allocation is persisted.
type Item struct {
	SlNo      int     `json:"SlNo"`
	PrdDesc   string  `json:"PrdDesc"`
	IsServc   string  `json:"IsServc"`
	HsnCd     string  `json:"HsnCd"`
	Qty       float64 `json:"Qty"`
	Unit      string  `json:"Unit"`
	UnitPrice float64 `json:"UnitPrice"`
	TotAmt    float64 `json:"TotAmt"`
	AssAmt    float64 `json:"AssAmt"`
	GstRt     float64 `json:"GstRt"`
	IgstAmt   float64 `json:"IgstAmt"`
	CgstAmt   float64 `json:"CgstAmt"`
	SgstAmt   float64 `json:"SgstAmt"`
}

// Values carries CgstVal/SgstVal and IgstVal only when non-zero.
type Values struct {
	AssVal      float64  `json:"AssVal"`
	CgstVal     *float64 `json:"CgstVal,omitempty"`
	SgstVal     *float64 `json:"SgstVal,omitempty"`
	IgstVal     *float64 `json:"IgstVal,omitempty"`
	TotInvVal   float64  `json:"TotInvVal"`
	TotInvValFc float64  `json:"TotInvValFc"`
}

// EInvoiceBuilder decides eligibility and builds the document.
type EInvoiceBuilder struct {
	seller    domain.SellerProfile
	pin       int
	threshold decimal.Decimal
	location  *time.Location
}

// NewEInvoiceBuilder creates a builder. A non-positive threshold uses
// DefaultThreshold.
func NewEInvoiceBuilder(seller domain.SellerProfile, threshold decimal.Decimal, loc *time.Location) *EInvoiceBuilder {
	if !threshold.IsPositive() {
		threshold = decimal.NewFromInt(DefaultThreshold)
	}
	if loc == nil {
		loc = time.UTC
	}
	pin, _ := strconv.Atoi(seller.Pin)
	return &EInvoiceBuilder{seller: seller, pin: pin, threshold: threshold, location: loc}
}

// Threshold returns the configured eligibility threshold.
func (b *EInvoiceBuilder) Threshold() decimal.Decimal {
	return b.threshold
}

// Required reports whether the order total reaches the threshold.
func (b *EInvoiceBuilder) Required(order *domain.Order) bool {
	return order.Total.GreaterThanOrEqual(b.threshold)
}

// Build returns nil for orders below the threshold.
func (b *EInvoiceBuilder) Build(order *domain.Order) *Document {
	if !b.Required(order) {
		return nil
	}

	pos := order.PlaceOfSupply
	if pos == "" {
		pos = b.seller.StateCode
	}

	doc := &Document{
		Version: SchemaVersion,
		TranDtls: TranDetails{
			TaxSch:      "GST",
			SupTyp:      "B2C",
			IgstOnIntra: "Y",
		},
		DocDtls: DocDetails{
			Typ: "INV",
			No:  order.InvoiceNumber,
			Dt:  order.InvoiceDate.In(b.location).Format(time.DateOnly),
		},
		SellerDtls: Seller{
			Gstin: b.seller.GSTIN,
			LglNm: b.seller.LegalName,
			Addr1: b.seller.Address,
			Loc:   b.seller.Location,
			Pin:   b.pin,
			Stcd:  b.seller.StateCode,
		},
		BuyerDtls: Buyer{
			LglNm: order.CustomerName,
			Pos:   pos,
		},
		ItemList: make([]Item, 0, len(order.Lines)),
		ValDtls: Values{
			AssVal:      order.Subtotal.InexactFloat64(),
			TotInvVal:   order.Total.InexactFloat64(),
			TotInvValFc: order.Total.InexactFloat64(),
		},
	}

	if order.CustomerGSTIN != "" {
		doc.TranDtls.SupTyp = "B2B"
		doc.BuyerDtls.Gstin = order.CustomerGSTIN
	}
	if doc.BuyerDtls.LglNm == "" {
		doc.BuyerDtls.LglNm = walkInCustomer
	}
	if b.seller.IntraState(pos) {
		doc.TranDtls.IgstOnIntra = "N"
	}

	for i, l := range order.Lines {
		doc.ItemList = append(doc.ItemList, Item{
			SlNo:      i + 1,
			PrdDesc:   l.Name,
			IsServc:   "Y",
			HsnCd:     l.HSNCode,
			Qty:       float64(l.Quantity),
			Unit:      "NOS",
			UnitPrice: l.Rate.InexactFloat64(),
			TotAmt:    l.Amount.InexactFloat64(),
			AssAmt:    l.Amount.InexactFloat64(),
			GstRt:     l.Slab.InexactFloat64(),
		})
	}

	if !order.CGST.IsZero() || !order.SGST.IsZero() {
		doc.ValDtls.CgstVal = floatPtr(order.CGST)
		doc.ValDtls.SgstVal = floatPtr(order.SGST)
	}
	if !order.IGST.IsZero() {
		doc.ValDtls.IgstVal = floatPtr(order.IGST)
	}

	return doc
}

func floatPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}
