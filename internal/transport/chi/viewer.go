package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/boardsearch/internal/domain"
)

// ViewerHeader carries the identity resolved by the upstream gateway.
const ViewerHeader = "X-Viewer-ID"

// ViewerMiddleware puts the viewer named by ViewerHeader into the request context.
// Requests without a viewer are rejected with 401, except exempt paths.
func ViewerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			id := strings.TrimSpace(r.Header.Get(ViewerHeader))
			if id == "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthenticated, "missing "+ViewerHeader+" header")
				return
			}

			ctx := domain.ContextWithViewer(r.Context(), domain.Viewer{ID: id})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
