package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type MenuItem struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Price     pgtype.Numeric     `json:"price"`
	Category  string             `json:"category"`
	GstSlab   pgtype.Numeric     `json:"gst_slab"`
	HsnCode   string             `json:"hsn_code"`
	FoodType  string             `json:"food_type"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Order struct {
	ID            int64              `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   pgtype.Timestamptz `json:"invoice_date"`
	TableNumber   string             `json:"table_number"`
	CustomerName  pgtype.Text        `json:"customer_name"`
	CustomerGstin pgtype.Text        `json:"customer_gstin"`
	PlaceOfSupply pgtype.Text        `json:"place_of_supply"`
	Subtotal      pgtype.Numeric     `json:"subtotal"`
	ServiceCharge pgtype.Numeric     `json:"service_charge"`
	Cgst          pgtype.Numeric     `json:"cgst"`
	Sgst          pgtype.Numeric     `json:"sgst"`
	Igst          pgtype.Numeric     `json:"igst"`
	Total         pgtype.Numeric     `json:"total"`
	TaxEnabled    bool               `json:"tax_enabled"`
	Status        string             `json:"status"`
	SettledAt     pgtype.Timestamptz `json:"settled_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type OrderLine struct {
	ID         int64          `json:"id"`
	OrderID    int64          `json:"order_id"`
	MenuItemID int64          `json:"menu_item_id"`
	ItemName   string         `json:"item_name"`
	HsnCode    string         `json:"hsn_code"`
	Quantity   int32          `json:"quantity"`
	Rate       pgtype.Numeric `json:"rate"`
	GstSlab    pgtype.Numeric `json:"gst_slab"`
	LineAmount pgtype.Numeric `json:"line_amount"`
	Position   int32          `json:"position"`
}

type TaxSlabRate struct {
	ID            int64              `json:"id"`
	Slab          pgtype.Numeric     `json:"slab"`
	CgstRate      pgtype.Numeric     `json:"cgst_rate"`
	SgstRate      pgtype.Numeric     `json:"sgst_rate"`
	EffectiveFrom pgtype.Date        `json:"effective_from"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID           int64              `json:"id"`
	Username     string             `json:"username"`
	FullName     string             `json:"full_name"`
	Role         string             `json:"role"`
	PasswordHash string             `json:"password_hash"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
