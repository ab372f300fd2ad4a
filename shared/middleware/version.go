package middleware

import (
	"net/http"

	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/utils"
)

// VersionHeader carries the API version. Endpoints are versioned via this
// header, not via the URL path.
const VersionHeader = "X-Api-Version"

// RequireAPIVersion rejects requests that do not declare a supported API
// version. A missing header and an unsupported version are distinct reasons
// but both map to 400.
func RequireAPIVersion(supported ...string) func(http.Handler) http.Handler {
	versions := make(map[string]struct{}, len(supported))
	for _, v := range supported {
		versions[v] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := r.Header.Get(VersionHeader)
			if v == "" {
				utils.WriteError(w, errors.NewBadRequest("Missing "+VersionHeader+" header"))
				return
			}
			if _, ok := versions[v]; !ok {
				utils.WriteError(w, errors.NewBadRequest("Unsupported API version: "+v))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
