package handler

import (
	"context"
	"errors"
	"github.com/Avi18971911/softscanner-admin/internal/auth"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/Avi18971911/softscanner-admin/internal/backend/service"
	"github.com/Avi18971911/softscanner-admin/internal/server/view"
	"github.com/Avi18971911/softscanner-admin/internal/tracing"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

const productsPath = "/products"

// ProductsHandler renders the product list, optionally filtered by the q parameter and
// with a single product looked up by the id parameter.
func ProductsHandler(
	ps service.ProductService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		query := r.URL.Query()
		page := newPage("Products", session)
		applyFlags(&page, query)
		pv := ProductsView{
			Query:    query.Get("q"),
			SearchID: strings.TrimSpace(query.Get("id")),
		}
		renderProducts(r.Context(), w, ps, tracer, views, logger, page, pv, http.StatusOK)
	}
}

// AddProductHandler validates the add form and creates the product.
func AddProductHandler(
	ps service.ProductService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		form, err := parseProductForm(r)
		var dto model.CreateProductDTO
		if err == nil {
			dto, err = form.toCreateDTO()
		}
		if err != nil {
			logger.Info("Rejected add product form", zap.Error(err))
			page := newPage("Products", session)
			page.Error = err.Error()
			renderProducts(
				r.Context(), w, ps, tracer, views, logger,
				page, ProductsView{Form: form}, http.StatusUnprocessableEntity,
			)
			return
		}

		ctx, span := tracer.StartSpan(r.Context(), "addProduct", tracing.WithAttributes(tracing.Attributes{
			"operation.type": "create",
			"operation.name": "add_product",
			"product.name":   dto.Name,
		}))
		created, err := ps.Create(ctx, dto)
		tracer.EndSpan(span, err)
		if err != nil {
			logger.Error("Error adding product", zap.String("name", dto.Name), zap.Error(err))
			redirectWithFlag(w, r, productsPath, flagError, "add")
			return
		}
		logger.Info("Product added", zap.String("product_id", created.ID))
		redirectWithFlag(w, r, productsPath, flagNotice, "added")
	}
}

// EditProductFormHandler renders the edit form prefilled with the stored product.
func EditProductFormHandler(
	ps service.ProductService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		id := mux.Vars(r)["id"]
		product, err := getProduct(r.Context(), ps, tracer, "fetchProduct", "fetch_product", id)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				views.RenderError(w, http.StatusNotFound, "product "+id+" not found")
				return
			}
			logger.Error("Error fetching product for edit", zap.String("product_id", id), zap.Error(err))
			redirectWithFlag(w, r, productsPath, flagError, "fetch")
			return
		}

		page := newPage("Edit Product", session)
		page.Data = productToForm(*product)
		views.Render(w, http.StatusOK, view.PageProductEdit, page)
	}
}

// EditProductHandler validates the edit form and updates the product.
func EditProductHandler(
	ps service.ProductService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		id := mux.Vars(r)["id"]
		form, err := parseProductForm(r)
		form.ID = id
		var product model.Product
		if err == nil {
			product, err = form.toProduct(id)
		}
		if err != nil {
			logger.Info("Rejected edit product form", zap.String("product_id", id), zap.Error(err))
			page := newPage("Edit Product", session)
			page.Error = err.Error()
			page.Data = form
			views.Render(w, http.StatusUnprocessableEntity, view.PageProductEdit, page)
			return
		}

		ctx, span := tracer.StartSpan(r.Context(), "editProduct", tracing.WithAttributes(tracing.Attributes{
			"operation.type": "edit",
			"operation.name": "edit_product",
			"product.id":     id,
		}))
		_, err = ps.Update(ctx, id, product)
		tracer.EndSpan(span, err)
		if err != nil {
			logger.Error("Error updating product", zap.String("product_id", id), zap.Error(err))
			redirectWithFlag(w, r, productsPath, flagError, "update")
			return
		}
		redirectWithFlag(w, r, productsPath, flagNotice, "updated")
	}
}

// DeleteProductHandler deletes the product named in the path.
func DeleteProductHandler(
	ps service.ProductService,
	tracer *tracing.Tracer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		id := mux.Vars(r)["id"]
		ctx, span := tracer.StartSpan(r.Context(), "deleteProduct", tracing.WithAttributes(tracing.Attributes{
			"operation.type": "delete",
			"operation.name": "delete_product",
			"product.id":     id,
		}))
		err := ps.Delete(ctx, id)
		tracer.EndSpan(span, err)
		if err != nil {
			logger.Error("Error deleting product", zap.String("product_id", id), zap.Error(err))
			redirectWithFlag(w, r, productsPath, flagError, "delete")
			return
		}
		logger.Info("Product deleted", zap.String("product_id", id), zap.String("user_id", session.User.ID))
		redirectWithFlag(w, r, productsPath, flagNotice, "deleted")
	}
}

func renderProducts(
	ctx context.Context,
	w http.ResponseWriter,
	ps service.ProductService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
	page view.Page,
	pv ProductsView,
	status int,
) {
	products, err := fetchProducts(ctx, ps, tracer)
	if err != nil {
		logger.Error("Error fetching products", zap.Error(err))
		page.Error = errorMessages["fetch"]
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	} else {
		pv.Products = filterProducts(products, pv.Query)
	}

	if pv.SearchID != "" {
		found, err := getProduct(ctx, ps, tracer, "searchProduct", "search_product", pv.SearchID)
		switch {
		case err == nil:
			pv.SearchResult = found
		case errors.Is(err, client.ErrNotFound):
			pv.SearchMissing = true
		default:
			logger.Error("Error searching product", zap.String("product_id", pv.SearchID), zap.Error(err))
			pv.SearchMissing = true
		}
	}

	page.Data = pv
	views.Render(w, status, view.PageProducts, page)
}

func fetchProducts(ctx context.Context, ps service.ProductService, tracer *tracing.Tracer) ([]model.Product, error) {
	ctx, span := tracer.StartSpan(ctx, "fetchProducts", tracing.WithAttributes(tracing.Attributes{
		"operation.type": "read",
		"operation.name": "fetch_all_products",
	}))
	products, err := ps.GetAll(ctx)
	tracer.EndSpan(span, err)
	return products, err
}

// getProduct looks up one product inside a span named spanName.
func getProduct(
	ctx context.Context,
	ps service.ProductService,
	tracer *tracing.Tracer,
	spanName string,
	operationName string,
	id string,
) (*model.Product, error) {
	ctx, span := tracer.StartSpan(ctx, spanName, tracing.WithAttributes(tracing.Attributes{
		"operation.type": "read",
		"operation.name": operationName,
		"product.id":     id,
	}))
	product, err := ps.GetByID(ctx, id)
	tracer.EndSpan(span, err)
	return product, err
}
