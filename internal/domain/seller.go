package domain

// SellerProfile identifies the restaurant on invoices. It is loaded once at
// startup and passed into the document builders.
type SellerProfile struct {
	LegalName    string
	Address      string
	GSTIN        string
	FSSAILicense string
	StateCode    string
	Location     string
	Pin          string
}

// IntraState reports whether a supply to placeOfSupply stays within the
// seller's state. An empty place of supply is treated as local.
func (s SellerProfile) IntraState(placeOfSupply string) bool {
	return placeOfSupply == "" || placeOfSupply == s.StateCode
}
