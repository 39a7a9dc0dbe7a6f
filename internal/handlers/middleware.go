package handlers

import (
	"net/http"

	"github.com/diewo77/go-devis/internal/i18n"
	"github.com/diewo77/go-devis/internal/models"
)

// Preferences gives the stored settings to the middleware.
type Preferences interface {
	Get() models.Settings
}

// WithLanguage resolves the response language: ?lang= (remembered in a
// cookie), then the lang cookie, then Accept-Language, then the saved
// settings.
func WithLanguage(prefs Preferences, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := prefs.Get().Language
		if h := r.Header.Get("Accept-Language"); h != "" {
			lang = i18n.DetectLanguage(h)
		}
		if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
