package middleware

import "net/http"

// SecurityHeadersConfig holds security headers configuration
type SecurityHeadersConfig struct {
	Env string
}

// SecurityHeaders returns a middleware that adds browser security headers
// to all responses
func SecurityHeaders(config SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if config.Env == "production" {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; img-src 'self' data:; frame-ancestors 'none'; base-uri 'self'")
			} else {
				// Lenient CSP so local frontend tooling works
				w.Header().Set("Content-Security-Policy",
					"default-src 'self' http: https: ws:; img-src 'self' data: http: https:; frame-ancestors 'self'")
			}

			// HSTS only over HTTPS in production
			if config.Env == "production" && (r.Header.Get("X-Forwarded-Proto") == "https" || r.URL.Scheme == "https") {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
