package handler

import (
	"github.com/Avi18971911/softscanner-admin/internal/auth"
	"github.com/Avi18971911/softscanner-admin/internal/server/view"
	"net/http"
	"net/url"
)

// Failure and success flags carried across post/redirect/get.
const (
	flagError  = "error"
	flagNotice = "notice"
)

var errorMessages = map[string]string{
	"fetch":  "Failed to fetch products",
	"add":    "Failed to add product",
	"update": "Failed to update product",
	"delete": "Failed to delete product",
	"init":   "Failed to initialize store",
}

var noticeMessages = map[string]string{
	"added":       "Product added",
	"updated":     "Product updated",
	"deleted":     "Product deleted",
	"initialized": "Store initialized",
}

func newPage(title string, session auth.Session) view.Page {
	return view.Page{
		Title:    title,
		UserName: session.User.Name,
		ShowNav:  true,
	}
}

func applyFlags(page *view.Page, query url.Values) {
	if msg, ok := errorMessages[query.Get(flagError)]; ok {
		page.Error = msg
	}
	if msg, ok := noticeMessages[query.Get(flagNotice)]; ok {
		page.Notice = msg
	}
}

func redirectWithFlag(w http.ResponseWriter, r *http.Request, path string, flag string, value string) {
	http.Redirect(w, r, path+"?"+url.Values{flag: {value}}.Encode(), http.StatusSeeOther)
}
