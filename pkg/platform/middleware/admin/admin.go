package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/platform/middleware/metadata"
	"bicns/pkg/requestcontext"
)

// Header carries the operator token.
const Header = "X-Admin-Token"

// RequireAdminToken guards operator routes such as fee token minting. An
// empty expected token disables them.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	expected := []byte(expectedToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(r.Header.Get(Header)), expected) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token rejected",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", metadata.GetClientIP(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
