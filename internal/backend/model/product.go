package model

import "strings"

// ExpirationDateLayout is the layout of Product.ExpirationDate.
const ExpirationDateLayout = "2006-01-02"

type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          Price  `json:"price"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// CreateProductDTO is a Product without the server assigned identifier.
type CreateProductDTO struct {
	Name           string `json:"name"`
	Price          Price  `json:"price"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// Matches reports whether term is contained, ignoring case, in the product's ID, name
// or price text as shown to the user. An empty term matches every product.
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ID), term) ||
		strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Price.String()), term)
}
