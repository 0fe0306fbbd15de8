package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/apiman/apiman-ui/internal/http/viewmodels"
)

const (
	flashToastCookieName = "apiman_ui_toast"
	flashToastMaxAge     = 30
)

// setFlashToast stores a toast for the next full page render. The delete
// dialog uses it so the organizations page can confirm the deletion after
// the redirect.
func setFlashToast(c *echo.Context, toast viewmodels.ToastViewData) {
	value, ok := encodeToast(toast)
	if !ok {
		return
	}
	c.SetCookie(toastCookie(value, flashToastMaxAge))
}

func popFlashToast(c *echo.Context) *viewmodels.ToastViewData {
	cookie, err := c.Cookie(flashToastCookieName)
	if err != nil || cookie == nil {
		return nil
	}
	expired := toastCookie("", -1)
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	return decodeToast(cookie.Value)
}

func deletedOrganizationToast(name string) viewmodels.ToastViewData {
	return viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Organization deleted",
		Description: "Organization " + name + " was deleted.",
	}
}

func toastCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashToastCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func encodeToast(toast viewmodels.ToastViewData) (string, bool) {
	toast, ok := cleanToast(toast)
	if !ok {
		return "", false
	}
	payload, err := json.Marshal(toast)
	if err != nil {
		return "", false
	}
	return base64.RawURLEncoding.EncodeToString(payload), true
}

func decodeToast(value string) *viewmodels.ToastViewData {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var toast viewmodels.ToastViewData
	if err := json.Unmarshal(raw, &toast); err != nil {
		return nil
	}
	toast, ok := cleanToast(toast)
	if !ok {
		return nil
	}
	return &toast
}

// cleanToast trims the toast and reports whether anything is left to show.
func cleanToast(toast viewmodels.ToastViewData) (viewmodels.ToastViewData, bool) {
	toast.Category = normalizeToastCategory(toast.Category)
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	return toast, toast.Title != "" || toast.Description != ""
}

func normalizeToastCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case "success", "error", "warning", "info":
		return category
	default:
		return "info"
	}
}
