package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attribute is one named dimension of a product (e.g. 颜色) together with
// its possible values, in the order the operator defined them.
type Attribute struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Variant is one concrete combination of attribute values with its own
// stock counter. Name is the composite "key:value" pairs joined with "/",
// in attribute-definition order, and is the variant's identity.
type Variant struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Stock      int               `json:"stock"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	Attributes  []Attribute     `json:"attributes,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FindVariant returns the variant with the given composite name, or nil.
func (p *Product) FindVariant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}

// AvailableStock resolves the stock a cart line sells against: the named
// variant's counter when variantName is set, the product counter otherwise.
// A variant name that no longer exists resolves to zero.
func (p *Product) AvailableStock(variantName string) int {
	if variantName == "" {
		return p.Stock
	}
	if v := p.FindVariant(variantName); v != nil {
		return v.Stock
	}
	return 0
}

// AdjustStock applies a stock delta for one sold or restocked line. With a
// variant name the delta lands on that variant and the product counter is
// recomputed as the sum of all variant stocks; without one the delta lands
// on the product counter directly. Checkout and cancel both go through
// this so the aggregate cannot drift between the two directions. A variant
// name with no match leaves every variant unchanged.
func (p *Product) AdjustStock(variantName string, delta int) {
	if variantName == "" {
		p.Stock += delta
		return
	}
	if v := p.FindVariant(variantName); v != nil {
		v.Stock += delta
	}
	p.Stock = SumVariantStock(p.Variants)
}

// SumVariantStock returns the aggregate stock over a variant list.
func SumVariantStock(variants []Variant) int {
	total := 0
	for _, v := range variants {
		total += v.Stock
	}
	return total
}
