package service

import (
	"context"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/Avi18971911/softscanner-admin/internal/fake_backend"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newFakeBackend(t *testing.T) (*fake_backend.Backend, client.Client) {
	logger := logrus.New()
	logger.Out = io.Discard
	backend := fake_backend.NewBackend(logger)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	c := client.NewRestyClient(client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, zaptest.NewLogger(t))
	return backend, c
}

var milk = model.Product{
	ID:             "p1",
	Name:           "Milk",
	Price: model.NewPrice("2.49"),
	ExpirationDate: "2025-01-31",
}

var bread = model.Product{
	ID:    "p2",
	Name:  "Bread",
	Price: model.NewPrice("3.10"),
}

func TestProductServiceImpl(t *testing.T) {
	t.Run("GetAll hits the list endpoint", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk, bread)
		ps := NewProductServiceImpl(c)

		products, err := ps.GetAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"GET /api/product/all"}, backend.Requests())
		require.Len(t, products, 2)
		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "p2", products[1].ID)
	})

	t.Run("GetAll keeps products whose price is not a number", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"p1","name":"Milk","price":"2.49"},{"id":"p2","name":"Sample","price":""}]`))
		}))
		t.Cleanup(srv.Close)
		c := client.NewRestyClient(client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, zaptest.NewLogger(t))
		ps := NewProductServiceImpl(c)

		products, err := ps.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "2.49", products[0].Price.String())
		assert.True(t, products[1].Price.IsZero())
	})

	t.Run("Update sends the price text unchanged", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk)
		ps := NewProductServiceImpl(c)

		updated, err := ps.Update(context.Background(), "p1", model.Product{Name: "Milk", Price: model.NewPrice("2.499")})
		require.NoError(t, err)
		assert.Equal(t, "2.499", updated.Price.String())
		assert.Equal(t, "2.499", backend.Products()[0].Price.String())
	})

	t.Run("GetAll is repeatable without mutation", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk, bread)
		ps := NewProductServiceImpl(c)

		first, err := ps.GetAll(context.Background())
		require.NoError(t, err)
		second, err := ps.GetAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("GetAll returns an empty slice for an empty backend", func(t *testing.T) {
		_, c := newFakeBackend(t)
		products, err := NewProductServiceImpl(c).GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Create posts the DTO and returns the stored product", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		ps := NewProductServiceImpl(c)

		created, err := ps.Create(context.Background(), model.CreateProductDTO{
			Name:  "Eggs",
			Price: model.NewPrice("4.00"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Eggs", created.Name)
		assert.Equal(t, []string{"POST /api/product/create"}, backend.Requests())
	})

	t.Run("GetByID escapes the id and maps 404", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk)
		ps := NewProductServiceImpl(c)

		found, err := ps.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Milk", found.Name)

		_, err = ps.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, client.ErrNotFound)
		assert.Equal(t, []string{"GET /api/product/get/p1", "GET /api/product/get/missing"}, backend.Requests())
	})

	t.Run("Update puts to the id path", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk)
		ps := NewProductServiceImpl(c)

		changed := milk
		changed.Name = "Oat Milk"
		updated, err := ps.Update(context.Background(), "p1", changed)
		require.NoError(t, err)
		assert.Equal(t, "Oat Milk", updated.Name)
		assert.Equal(t, []string{"PUT /api/product/update/p1"}, backend.Requests())
	})

	t.Run("Delete removes the product", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk, bread)
		ps := NewProductServiceImpl(c)

		require.NoError(t, ps.Delete(context.Background(), "p1"))
		assert.Equal(t, []string{"DELETE /api/product/delete/p1"}, backend.Requests())
		products, err := ps.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "p2", products[0].ID)
	})

	t.Run("Surfaces backend failures", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.Fail(fake_backend.RouteProductAll, http.StatusInternalServerError, "database offline")
		_, err := NewProductServiceImpl(c).GetAll(context.Background())
		var statusErr *client.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "database offline", statusErr.Message)
	})
}

func TestUserServiceImpl(t *testing.T) {
	t.Run("Create then GetByID round trips through the backend", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		us := NewUserServiceImpl(c)

		created, err := us.Create(context.Background(), model.CreateUserDTO{
			Name:     "Hilda",
			Age:      "31",
			Email:    "hilda@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		found, err := us.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hilda", found.Name)
		assert.Equal(t, []string{
			"POST /api/user/create",
			"GET /api/user/get/" + created.ID,
		}, backend.Requests())
	})
}

func TestStoreServiceImpl(t *testing.T) {
	t.Run("Get before Init is not found", func(t *testing.T) {
		_, c := newFakeBackend(t)
		_, err := NewStoreServiceImpl(c).Get(context.Background())
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("Init then Get returns the store", func(t *testing.T) {
		backend, c := newFakeBackend(t)
		backend.SeedProducts(milk)
		ss := NewStoreServiceImpl(c)

		initialised, err := ss.Init(context.Background())
		require.NoError(t, err)
		store, err := ss.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, initialised.ID, store.ID)
		require.Len(t, store.Products, 1)
		assert.Equal(t, "p1", store.Products[0].ID)
		assert.Equal(t, []string{"POST /api/store/init", "GET /api/store/get"}, backend.Requests())
	})
}
