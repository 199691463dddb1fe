package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets the response headers every portal endpoint carries.
// Responses routinely contain patient data, so caching is forbidden outright
// and the emergency snapshot must never end up framed or cached by a shared
// browser.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "DENY")

			// Legacy XSS filter off; the CSP below covers it.
			h.Set("X-XSS-Protection", "0")

			// Strict CSP for a JSON API: deny all resource loading and
			// frame embedding.
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// HTTP Strict Transport Security — 1 year including subdomains.
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// Do not send Referer header to downstream services.
			h.Set("Referrer-Policy", "no-referrer")

			// Disable browser features the portal does not use.
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			// No caching of patient data. Pragma is still needed for Safari
			// on the token-based emergency view.
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
			h.Set("Pragma", "no-cache")

			return next(c)
		}
	}
}
