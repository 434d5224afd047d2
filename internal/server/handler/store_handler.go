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
	"go.uber.org/zap"
	"net/http"
)

const storePath = "/store"

func StoreHandler(
	ss service.StoreService,
	tracer *tracing.Tracer,
	views *view.Renderer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		page := newPage("Store", session)
		applyFlags(&page, r.URL.Query())
		status := http.StatusOK

		var store *model.Store
		err := tracer.Trace(r.Context(), "fetchStore", func(ctx context.Context) error {
			var err error
			store, err = ss.Get(ctx)
			return err
		}, tracing.WithAttributes(tracing.Attributes{
			"operation.type": "read",
			"operation.name": "fetch_store",
		}))

		sv := StoreView{}
		switch {
		case err == nil:
			sv.Store = store
			sv.Products = store.Products
		case errors.Is(err, client.ErrNotFound):
			page.Notice = "The store has not been initialized yet"
		default:
			logger.Error("Error fetching store", zap.Error(err))
			page.Error = "Failed to fetch store"
			status = http.StatusBadGateway
		}

		page.Data = sv
		views.Render(w, status, view.PageStore, page)
	}
}

func InitStoreHandler(
	ss service.StoreService,
	tracer *tracing.Tracer,
	logger *zap.Logger,
) auth.ProtectedHandler {
	return func(w http.ResponseWriter, r *http.Request, session auth.Session) {
		err := tracer.Trace(r.Context(), "initStore", func(ctx context.Context) error {
			_, err := ss.Init(ctx)
			return err
		}, tracing.WithAttributes(tracing.Attributes{
			"operation.type": "create",
			"operation.name": "init_store",
		}))
		if err != nil {
			logger.Error("Error initializing store", zap.Error(err))
			redirectWithFlag(w, r, storePath, flagError, "init")
			return
		}
		logger.Info("Store initialized", zap.String("user_id", session.User.ID))
		redirectWithFlag(w, r, storePath, flagNotice, "initialized")
	}
}
