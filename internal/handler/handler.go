package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/service"
)

type contextKey string

// IdentityContextKey - ключ, под которым auth-middleware кладет проверенную
// личность в контекст запроса
const IdentityContextKey contextKey = "identity"

type Handlers struct {
	FeedService    service.FeedService
	PostService    service.PostService
	ProfileService service.ProfileService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		FeedService:    services.Feed,
		PostService:    services.Post,
		ProfileService: services.Profile,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

func identityFromContext(r *http.Request) (*identity.Identity, bool) {
	ident, ok := r.Context().Value(IdentityContextKey).(*identity.Identity)
	return ident, ok
}
