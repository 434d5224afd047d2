package handler

import (
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/microcosm-cc/bluemonday"
	"html"
	"net/http"
	"strings"
	"time"
)

// FormError is a validation failure whose message is shown to the user as is.
type FormError string

func (e FormError) Error() string {
	return string(e)
}

const (
	ErrNameRequired    FormError = "Product name is required"
	ErrPriceRequired   FormError = "Price is required"
	ErrInvalidPrice    FormError = "Price must be a non-negative number"
	ErrInvalidExpiry   FormError = "Expiration date must be a date in YYYY-MM-DD form"
	ErrFieldsRequired  FormError = "Name, email and password are required"
	ErrInvalidFormBody FormError = "Invalid form submission"
)

var textPolicy = bluemonday.StrictPolicy()

// sanitize strips markup from free text input.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func parseProductForm(r *http.Request) (ProductForm, error) {
	if err := r.ParseForm(); err != nil {
		return ProductForm{}, ErrInvalidFormBody
	}
	return ProductForm{
		Name:           sanitize(r.PostForm.Get("name")),
		Price:          strings.TrimSpace(r.PostForm.Get("price")),
		ExpirationDate: strings.TrimSpace(r.PostForm.Get("expiration_date")),
	}, nil
}

// validate checks the form and returns the price as typed, minus a leading "$".
func (f ProductForm) validate() (model.Price, error) {
	if f.Name == "" {
		return model.Price{}, ErrNameRequired
	}
	if f.Price == "" {
		return model.Price{}, ErrPriceRequired
	}
	price := model.NewPrice(strings.TrimPrefix(f.Price, "$"))
	if d, ok := price.Decimal(); !ok || d.IsNegative() {
		return model.Price{}, ErrInvalidPrice
	}
	if f.ExpirationDate != "" {
		if _, err := time.Parse(model.ExpirationDateLayout, f.ExpirationDate); err != nil {
			return model.Price{}, ErrInvalidExpiry
		}
	}
	return price, nil
}

func (f ProductForm) toCreateDTO() (model.CreateProductDTO, error) {
	price, err := f.validate()
	if err != nil {
		return model.CreateProductDTO{}, err
	}
	return model.CreateProductDTO{
		Name:           f.Name,
		Price:          price,
		ExpirationDate: f.ExpirationDate,
	}, nil
}

func (f ProductForm) toProduct(id string) (model.Product, error) {
	price, err := f.validate()
	if err != nil {
		return model.Product{}, err
	}
	return model.Product{
		ID:             id,
		Name:           f.Name,
		Price:          price,
		ExpirationDate: f.ExpirationDate,
	}, nil
}

func productToForm(p model.Product) ProductForm {
	return ProductForm{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price.String(),
		ExpirationDate: p.ExpirationDate,
	}
}

func filterProducts(products []model.Product, term string) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Matches(term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
