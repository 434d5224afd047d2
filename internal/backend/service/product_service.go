package service

import (
	"context"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"net/url"
)

type ProductService interface {
	Create(ctx context.Context, product model.CreateProductDTO) (*model.Product, error)
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, id string, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductServiceImpl struct {
	c client.Client
}

func NewProductServiceImpl(c client.Client) *ProductServiceImpl {
	return &ProductServiceImpl{c: c}
}

func (ps *ProductServiceImpl) Create(
	ctx context.Context,
	product model.CreateProductDTO,
) (*model.Product, error) {
	var created model.Product
	if err := ps.c.Post(ctx, productBasePath+"/create", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (ps *ProductServiceImpl) GetAll(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0)
	if err := ps.c.Get(ctx, productBasePath+"/all", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (ps *ProductServiceImpl) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := ps.c.Get(ctx, productBasePath+"/get/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (ps *ProductServiceImpl) Update(
	ctx context.Context,
	id string,
	product model.Product,
) (*model.Product, error) {
	var updated model.Product
	if err := ps.c.Put(ctx, productBasePath+"/update/"+url.PathEscape(id), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (ps *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	return ps.c.Delete(ctx, productBasePath+"/delete/"+url.PathEscape(id), nil)
}
