package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"github.com/Avi18971911/softscanner-admin/internal/auth"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/Avi18971911/softscanner-admin/internal/backend/service"
	"github.com/Avi18971911/softscanner-admin/internal/metrics"
	"github.com/Avi18971911/softscanner-admin/internal/server/view"
	"github.com/Avi18971911/softscanner-admin/internal/tracing"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginPageHandler renders the login form, or sends users that are already logged in
// to the products view.
func LoginPageHandler(
	sessions *auth.Sessions,
	views *view.Renderer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessions.Current(r); ok {
			http.Redirect(w, r, productsPath, http.StatusFound)
			return
		}
		renderLogin(w, views, http.StatusOK, "", LoginView{})
	}
}

// LoginHandler checks the submitted credentials against the backend user and starts a
// session on success.
func LoginHandler(
	us service.UserService,
	sessions *auth.Sessions,
	tracer *tracing.Tracer,
	views *view.Renderer,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderLogin(w, views, http.StatusBadRequest, ErrInvalidFormBody.Error(), LoginView{})
			return
		}
		userID := strings.TrimSpace(r.PostForm.Get("user_id"))
		password := r.PostForm.Get("password")
		lv := LoginView{UserID: userID}
		if userID == "" || password == "" {
			renderLogin(w, views, http.StatusUnprocessableEntity, "User ID and password are required", lv)
			return
		}

		var user *model.User
		err := tracer.Trace(r.Context(), "login", func(ctx context.Context) error {
			found, err := us.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, client.ErrNotFound) {
					return ErrInvalidCredentials
				}
				return err
			}
			if subtle.ConstantTimeCompare([]byte(found.Password), []byte(password)) != 1 {
				return ErrInvalidCredentials
			}
			user = found
			return nil
		}, tracing.WithAttributes(tracing.Attributes{
			"operation.type": "read",
			"operation.name": "login",
			"user.id":        userID,
		}))
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				logger.Info("Rejected login", zap.String("user_id", userID))
				m.LoginsRejected.Inc()
				renderLogin(w, views, http.StatusUnauthorized, "Invalid credentials", lv)
				return
			}
			logger.Error("Error encountered during login", zap.String("user_id", userID), zap.Error(err))
			renderLogin(w, views, http.StatusBadGateway, "Failed to log in", lv)
			return
		}

		startSession(w, r, sessions, views, m, logger, user)
	}
}

// RegisterHandler creates a backend user from the registration form and logs them in.
func RegisterHandler(
	us service.UserService,
	sessions *auth.Sessions,
	tracer *tracing.Tracer,
	views *view.Renderer,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderLogin(w, views, http.StatusBadRequest, ErrInvalidFormBody.Error(), LoginView{})
			return
		}
		dto := model.CreateUserDTO{
			Name:     sanitize(r.PostForm.Get("name")),
			Age:      sanitize(r.PostForm.Get("age")),
			Email:    strings.TrimSpace(r.PostForm.Get("email")),
			Password: r.PostForm.Get("password"),
		}
		if dto.Name == "" || dto.Email == "" || dto.Password == "" {
			renderLogin(w, views, http.StatusUnprocessableEntity, ErrFieldsRequired.Error(), LoginView{})
			return
		}

		var user *model.User
		err := tracer.Trace(r.Context(), "registerUser", func(ctx context.Context) error {
			var err error
			user, err = us.Create(ctx, dto)
			return err
		}, tracing.WithAttributes(tracing.Attributes{
			"operation.type": "create",
			"operation.name": "register_user",
		}))
		if err != nil {
			logger.Error("Error registering user", zap.Error(err))
			renderLogin(w, views, http.StatusBadGateway, "Failed to create account", LoginView{})
			return
		}

		startSession(w, r, sessions, views, m, logger, user)
	}
}

func LogoutHandler(sessions *auth.Sessions, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.End(w, r)
		logger.Info("Session ended")
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
	}
}

func startSession(
	w http.ResponseWriter,
	r *http.Request,
	sessions *auth.Sessions,
	views *view.Renderer,
	m *metrics.Metrics,
	logger *zap.Logger,
	user *model.User,
) {
	if _, err := sessions.Begin(w, auth.Identity{ID: user.ID, Name: user.Name}); err != nil {
		logger.Error("Unable to create session", zap.String("user_id", user.ID), zap.Error(err))
		renderLogin(w, views, http.StatusInternalServerError, "Failed to log in", LoginView{UserID: user.ID})
		return
	}
	m.SessionsCreated.Inc()
	logger.Info("Login successful", zap.String("user_id", user.ID))
	http.Redirect(w, r, productsPath, http.StatusSeeOther)
}

func renderLogin(w http.ResponseWriter, views *view.Renderer, status int, message string, lv LoginView) {
	views.Render(w, status, view.PageLogin, view.Page{
		Title: "Login",
		Error: message,
		Data:  lv,
	})
}
