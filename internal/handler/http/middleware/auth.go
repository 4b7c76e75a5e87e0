package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/auth"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/jwt"
)

type principalKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller's principal in the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		p := principalFromClaims(claims)
		if !p.IsAuthenticated() {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	}
	return http.HandlerFunc(hfn)
}

func principalFromClaims(claims map[string]interface{}) user.Principal {
	var p user.Principal
	p.ID, _ = claims["user_id"].(string)
	p.Username, _ = claims["username"].(string)
	p.Email, _ = claims["email"].(string)
	role, _ := claims["role"].(string)
	p.Role = user.Role(role)
	return p
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by AuthRequired. The zero
// Principal is returned for anonymous requests.
func PrincipalFromContext(ctx context.Context) user.Principal {
	p, _ := ctx.Value(principalKey{}).(user.Principal)
	return p
}
