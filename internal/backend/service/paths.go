package service

const (
	userBasePath    = "/api/user"
	productBasePath = "/api/product"
	storeBasePath   = "/api/store"
)
