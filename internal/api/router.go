package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/planservice"
	"github.com/mbracken/skillet/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, is mounted at GET /events inside the auth group
// and receives note.open events.
// vaultRoot is used to resolve the attachments directory.
func NewRouter(svc *planservice.Service, idx index.RecipeIndex, authEnabled bool, token string, broker *sse.Broker, vaultRoot string) chi.Router {
	h := NewHandler(svc, idx, broker)
	ah := NewAttachmentHandler(vaultRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Plan.
	r.Get("/calendar", h.Calendar)
	r.Get("/plan/weeks", h.Weeks)
	r.Post("/plan/meals", h.AddMeal)
	r.Post("/plan/open", h.OpenPlan)

	// Shopping list.
	r.Post("/shopping-list", h.ShoppingList)

	// Recipe catalog.
	r.Get("/recipes", h.ListRecipes)
	r.Get("/recipes/*", h.GetRecipe)

	// Search.
	r.Get("/search", h.Search)

	// Recipe photo upload (auth-protected).
	r.Post("/attachments", ah.Upload)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", broker.ServeHTTP)
	}

	return r
}
