package view

import (
	"bytes"
	"embed"
	"fmt"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"go.uber.org/zap"
	"html/template"
	"net/http"
)

const (
	PageLogin       = "login.html"
	PageProducts    = "products.html"
	PageProductEdit = "product_edit.html"
	PageStore       = "store.html"
	PageError       = "error.html"
)

var pages = []string{PageLogin, PageProducts, PageProductEdit, PageStore, PageError}

//go:embed templates/*.html
var templateFS embed.FS

// Page is the model shared by every view. Data holds the view specific model.
type Page struct {
	Title    string
	UserName string
	ShowNav  bool
	Error    string
	Notice   string
	Data     interface{}
}

// ErrorData is the model of the error view.
type ErrorData struct {
	Message string
}

type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

var funcs = template.FuncMap{
	// price shows the stored text unchanged.
	"price": func(p model.Price) string {
		if p.IsZero() {
			return "N/A"
		}
		return "$" + p.String()
	},
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates, logger: logger}, nil
}

// Render writes page with the given status. The template is executed into a buffer
// first so that a failing template never produces a half written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Error("Unknown template", zap.String("template", name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		r.logger.Error("Error encountered when rendering template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("Error encountered when writing response", zap.Error(err))
	}
}

// RenderError shows the generic error view with message.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, PageError, Page{
		Title: "Error",
		Data:  ErrorData{Message: message},
	})
}
