// Package handlers composes forms, services and the session manager into the
// request flows of the shop. Template rendering is out of scope: GET display
// flows return page data as JSON, POST form flows accept urlencoded bodies
// and answer with redirects and flash messages.
package handlers

import (
	"net/http"
	"time"

	"go-shop/internal/models"
)

// PageData is the payload of a display flow.
type PageData map[string]interface{}

func page(name string, user *models.User, flash string) PageData {
	data := PageData{
		"page":         name,
		"current_year": time.Now().Year(),
	}
	if user.IsAnonymous() {
		data["current_user"] = nil
	} else {
		data["current_user"] = user
	}
	if flash != "" {
		data["flash"] = flash
	}
	return data
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
