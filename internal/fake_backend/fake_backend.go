package fake_backend

import (
	"encoding/json"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

// Route names accepted by Fail.
const (
	RouteUserCreate    = "user.create"
	RouteUserGet       = "user.get"
	RouteProductCreate = "product.create"
	RouteProductAll    = "product.all"
	RouteProductGet    = "product.get"
	RouteProductUpdate = "product.update"
	RouteProductDelete = "product.delete"
	RouteStoreGet      = "store.get"
	RouteStoreInit     = "store.init"
)

type failure struct {
	status  int
	message string
}

// Backend is an in-memory implementation of the REST API the admin UI consumes.
type Backend struct {
	mu       sync.Mutex
	products map[string]model.Product
	order    []string
	users    map[string]model.User
	store    *model.Store
	failures map[string]failure
	requests []string
	logger   *logrus.Logger
}

func NewBackend(logger *logrus.Logger) *Backend {
	return &Backend{
		products: make(map[string]model.Product),
		users:    make(map[string]model.User),
		failures: make(map[string]failure),
		logger:   logger,
	}
}

func (b *Backend) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/api/user/create", b.createUser).Methods("POST").Name(RouteUserCreate)
	r.HandleFunc("/api/user/get/{id}", b.getUser).Methods("GET").Name(RouteUserGet)
	r.HandleFunc("/api/product/create", b.createProduct).Methods("POST").Name(RouteProductCreate)
	r.HandleFunc("/api/product/all", b.allProducts).Methods("GET").Name(RouteProductAll)
	r.HandleFunc("/api/product/get/{id}", b.getProduct).Methods("GET").Name(RouteProductGet)
	r.HandleFunc("/api/product/update/{id}", b.updateProduct).Methods("PUT").Name(RouteProductUpdate)
	r.HandleFunc("/api/product/delete/{id}", b.deleteProduct).Methods("DELETE").Name(RouteProductDelete)
	r.HandleFunc("/api/store/get", b.getStore).Methods("GET").Name(RouteStoreGet)
	r.HandleFunc("/api/store/init", b.initStore).Methods("POST").Name(RouteStoreInit)
	return r
}

func (b *Backend) SeedProducts(products ...model.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range products {
		b.putProduct(p)
	}
}

func (b *Backend) SeedUser(user model.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[user.ID] = user
}

// Fail makes every request to the named route answer with status and message.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, message: message}
}

// Requests returns "METHOD path" for every request received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *Backend) Products() []model.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.productList()
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		f, failing := b.failures[mux.CurrentRoute(r).GetName()]
		b.mu.Unlock()

		b.logger.Infof("Request received with URL %s and method %s", r.URL.Path, r.Method)
		if failing {
			httpError(w, f.message, f.status, b.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, "Invalid request payload", http.StatusBadRequest, b.logger)
		return
	}
	user := model.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Age:      req.Age,
		Email:    req.Email,
		Password: req.Password,
	}
	b.mu.Lock()
	b.users[user.ID] = user
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, user, b.logger)
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	user, ok := b.users[mux.Vars(r)["id"]]
	b.mu.Unlock()
	if !ok {
		httpError(w, "user not found", http.StatusNotFound, b.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, b.logger)
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, "Invalid request payload", http.StatusBadRequest, b.logger)
		return
	}
	product := model.Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Price:          req.Price,
		ExpirationDate: req.ExpirationDate,
	}
	b.mu.Lock()
	b.putProduct(product)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, product, b.logger)
}

func (b *Backend) allProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	products := b.productList()
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, products, b.logger)
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	product, ok := b.products[mux.Vars(r)["id"]]
	b.mu.Unlock()
	if !ok {
		httpError(w, "product not found", http.StatusNotFound, b.logger)
		return
	}
	writeJSON(w, http.StatusOK, product, b.logger)
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req model.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, "Invalid request payload", http.StatusBadRequest, b.logger)
		return
	}
	req.ID = id

	b.mu.Lock()
	_, ok := b.products[id]
	if ok {
		b.putProduct(req)
	}
	b.mu.Unlock()
	if !ok {
		httpError(w, "product not found", http.StatusNotFound, b.logger)
		return
	}
	writeJSON(w, http.StatusOK, req, b.logger)
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b.mu.Lock()
	_, ok := b.products[id]
	if ok {
		delete(b.products, id)
		for i, existing := range b.order {
			if existing == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
	b.mu.Unlock()
	if !ok {
		httpError(w, "product not found", http.StatusNotFound, b.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) getStore(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	store := b.store
	b.mu.Unlock()
	if store == nil {
		httpError(w, "store not initialized", http.StatusNotFound, b.logger)
		return
	}
	writeJSON(w, http.StatusOK, store, b.logger)
}

func (b *Backend) initStore(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.store = &model.Store{
		ID:       uuid.NewString(),
		Name:     "SoftScanner Store",
		Products: b.productList(),
	}
	store := b.store
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, store, b.logger)
}

func (b *Backend) putProduct(p model.Product) {
	if _, exists := b.products[p.ID]; !exists {
		b.order = append(b.order, p.ID)
	}
	b.products[p.ID] = p
}

func (b *Backend) productList() []model.Product {
	products := make([]model.Product, 0, len(b.order))
	for _, id := range b.order {
		products = append(products, b.products[id])
	}
	return products
}
