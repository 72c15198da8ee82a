package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joemocode/cakewalk-skill/internal/handler/skillhttp"
	middlewarePkg "github.com/joemocode/cakewalk-skill/internal/middleware"
	"github.com/joemocode/cakewalk-skill/internal/service/skill"
	"github.com/joemocode/cakewalk-skill/pkg/utils"
)

// NewRouter wires HTTP routes to the skill dispatcher.
func NewRouter(skillSvc *skill.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	skillHandler := skillhttp.New(skillSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		skillHandler.RegisterRoutes(api)
	})

	return r
}
