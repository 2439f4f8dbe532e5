package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/topgearmoscow/miniapp-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// Allowed origins are exact ("https://app.example.ru"), "*", or a
// subdomain wildcard ("https://*.example.ru"). ExposedHeaders lets the admin
// UI read the export file name from Content-Disposition.
func CORS(cfg config.CORSConfig) Middleware {
	origins := config.ParseList(cfg.AllowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin != "" && isAllowedOrigin(origin, origins) {
				h.Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.ExposedHeaders != "" {
					h.Set("Access-Control-Expose-Headers", cfg.ExposedHeaders)
				}
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
		if scheme, host, ok := strings.Cut(a, "://*."); ok {
			prefix := scheme + "://"
			if strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, "."+host) {
				return true
			}
		}
	}
	return false
}
