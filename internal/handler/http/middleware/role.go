package middleware

import (
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
)

// RequireAction lets the request through only when the caller's role may
// perform action. Must run after AuthRequired.
func RequireAction(action user.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := user.Require(PrincipalFromContext(r.Context()), action); err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
