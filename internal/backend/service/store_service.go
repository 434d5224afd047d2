package service

import (
	"context"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
)

type StoreService interface {
	Get(ctx context.Context) (*model.Store, error)
	Init(ctx context.Context) (*model.Store, error)
}

type StoreServiceImpl struct {
	c client.Client
}

func NewStoreServiceImpl(c client.Client) *StoreServiceImpl {
	return &StoreServiceImpl{c: c}
}

func (ss *StoreServiceImpl) Get(ctx context.Context) (*model.Store, error) {
	var store model.Store
	if err := ss.c.Get(ctx, storeBasePath+"/get", &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (ss *StoreServiceImpl) Init(ctx context.Context) (*model.Store, error) {
	var store model.Store
	if err := ss.c.Post(ctx, storeBasePath+"/init", nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}
