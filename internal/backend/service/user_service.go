package service

import (
	"context"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"net/url"
)

type UserService interface {
	Create(ctx context.Context, user model.CreateUserDTO) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type UserServiceImpl struct {
	c client.Client
}

func NewUserServiceImpl(c client.Client) *UserServiceImpl {
	return &UserServiceImpl{c: c}
}

func (us *UserServiceImpl) Create(ctx context.Context, user model.CreateUserDTO) (*model.User, error) {
	var created model.User
	if err := us.c.Post(ctx, userBasePath+"/create", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (us *UserServiceImpl) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := us.c.Get(ctx, userBasePath+"/get/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
