package handler

import "github.com/Avi18971911/softscanner-admin/internal/backend/model"

// ProductsView is the model of the products list view.
type ProductsView struct {
	// The products left after applying Query
	Products []model.Product
	// The free text filter over id, name and price
	Query string
	// The id looked up with the search form
	SearchID string
	// The product found for SearchID, nil when none was searched or found
	SearchResult *model.Product
	// Whether SearchID was not found
	SearchMissing bool
	// Values of the add form, kept when validation fails
	Form ProductForm
}

// ProductForm holds the raw values of the add and edit forms.
type ProductForm struct {
	ID             string
	Name           string
	Price          string
	ExpirationDate string
}

// StoreView is the model of the store view.
type StoreView struct {
	Store    *model.Store
	Products []model.Product
}

// LoginView is the model of the login view.
type LoginView struct {
	UserID string
}
