package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// NewRouter assembles the public HTTP surface. Only current-user sits behind
// the token guard; signup/signin issue the tokens the guard later verifies.
func NewRouter(h *Handlers, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.SignUp)
			r.Post("/signin", h.SignIn)
			r.With(RequireAuth(jwtSecret)).Get("/current-user", h.CurrentUser)
		})

		r.Post("/orders", h.CreateOrder)
		r.Get("/orders/{id}", h.GetOrder)
		r.Get("/products/{id}", h.GetProduct)
	})

	return r
}
