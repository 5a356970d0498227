package handler

import (
	"net/http"

	"github.com/dysobo/niuzi-assistant/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	username := ""
	if user := UserFromContext(r.Context()); user != nil {
		username = user.Username
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.HomePage(username).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
