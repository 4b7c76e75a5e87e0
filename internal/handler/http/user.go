package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	GenerateCredentials(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// decodeJSON reads the request body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// pathID reads the named URL param. Ids that are not UUIDv7 cannot exist,
// so they are answered with notFound before reaching the store.
func pathID(w http.ResponseWriter, r *http.Request, name string, notFound error) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.HandleError(w, notFound)
		return "", false
	}
	return id, true
}

// Me handles GET /users/me
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.Me(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GenerateCredentials handles POST /users/credentials
func (h *userHandlerImpl) GenerateCredentials(w http.ResponseWriter, r *http.Request) {
	var req user.GenerateCredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor := middleware.PrincipalFromContext(r.Context())
	creds, err := h.userService.GenerateCredentials(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Credentials generated", "by", actor.Username, "username", creds.Username)
	response.Created(w, "Credentials generated successfully", creds)
}
