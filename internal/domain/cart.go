package domain

import "github.com/shopspring/decimal"

// LineKey identifies a cart line: the same product+variant selection
// always maps to the same key, so repeated selections accumulate quantity
// on one line instead of appending duplicates. VariantName is empty for
// products without variants.
type LineKey struct {
	ProductID   string `json:"productId"`
	VariantName string `json:"variantName,omitempty"`
}

// CartLine is one entry of the operator's in-progress sale. UnitPrice is a
// snapshot of the product price at add time; the line never reads stock.
type CartLine struct {
	LineKey
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	IsGift    bool            `json:"isGift"`
}
