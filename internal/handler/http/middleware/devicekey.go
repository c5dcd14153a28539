package middleware

import (
	"net/http"

	"github.com/clockwise-hq/timekeep-backend-go/internal/handler/http/response"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/apikey"
)

// DeviceKeyRequired authenticates punch devices with a shared API key sent in
// the X-Device-Key header, checked against the configured bcrypt hash. An
// empty hash disables the check, which is only meant for local development.
func DeviceKeyRequired(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			rawKey := r.Header.Get("X-Device-Key")
			if rawKey == "" {
				response.Unauthorized(w, "Missing device API key")
				return
			}

			if err := apikey.Verify(keyHash, rawKey); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
