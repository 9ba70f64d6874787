package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// SetToast queues a toast notification for the client. HTMX requests pick
// it up from the HX-Trigger header, merged into any triggers already queued
// on the response; a short-lived flash cookie carries the same payload
// across plain 302 redirects where response headers are lost.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]any{
		"showToast": map[string]string{
			"message": message,
			"type":    toastType,
		},
	}

	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		var triggers map[string]any
		if err := json.Unmarshal([]byte(existing), &triggers); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
		} else {
			triggers["showToast"] = payload["showToast"]
			payload = triggers
		}
	}
	if data, err := json.Marshal(payload); err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
	} else {
		e.Response.Header().Set("HX-Trigger", string(data))
	}

	cookieVal, err := json.Marshal(map[string]string{"message": message, "type": toastType})
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast fires an error toast without letting HTMX swap the error text
// into the DOM: HX-Reswap none makes the client ignore the body while the
// HX-Trigger header still raises the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
