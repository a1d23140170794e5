package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sgce/sports-competition-system/handlers"
	"github.com/sgce/sports-competition-system/middleware"
	"github.com/sgce/sports-competition-system/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Team        *handlers.TeamHandler
	Player      *handlers.PlayerHandler
	Competition *handlers.CompetitionHandler
	Game        *handlers.GameHandler
	Discipline  *handlers.DisciplineHandler
	Dashboard   *handlers.DashboardHandler
	Report      *handlers.ReportHandler
}

// SetupRoutes собирает все маршруты API. Чтение открыто всем, изменения
// требуют токен с ролью master или organization.
func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator([]byte(jwtSecret))
	requireOrganizer := middleware.Authorize(models.RoleMaster, models.RoleOrganization)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/dashboard", h.Dashboard.Summary)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{id}", h.Team.GetByID)
		r.Get("/{teamID}/players", h.Player.ListByTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireOrganizer)

			r.Post("/", h.Team.Create)
			r.Put("/{id}", h.Team.Update)
			r.Delete("/{id}", h.Team.Delete)
			r.Post("/{id}/logo", h.Team.UploadLogo)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{id}", h.Player.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireOrganizer)

			r.Post("/", h.Player.Create)
			r.Put("/{id}", h.Player.Update)
			r.Delete("/{id}", h.Player.Delete)
		})
	})

	router.Route("/competitions", func(r chi.Router) {
		r.Get("/", h.Competition.List)
		r.Get("/{id}", h.Competition.GetByID)
		r.Get("/{id}/games", h.Game.ListByCompetition)
		r.Get("/{id}/standings", h.Competition.Standings)
		r.Get("/{id}/registrations", h.Competition.ListRegistrations)
		r.Get("/{id}/discipline", h.Discipline.ListRecords)
		r.Get("/{id}/discipline/{playerID}", h.Discipline.GetRecord)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireOrganizer)

			r.Post("/", h.Competition.Create)
			r.Put("/{id}", h.Competition.Update)

			r.Post("/{id}/registrations/{teamID}", h.Competition.RegisterTeam)
			r.Put("/{id}/registrations/{teamID}/confirm", h.Competition.ConfirmRegistration)
			r.Delete("/{id}/registrations/{teamID}", h.Competition.WithdrawTeam)

			r.Post("/{id}/start", h.Competition.Start)
			r.Post("/{id}/finish", h.Competition.Finish)
			r.Post("/{id}/cancel", h.Competition.Cancel)
			r.Post("/{id}/standings/recompute", h.Competition.RecomputeStandings)

			r.Post("/{id}/discipline/cards", h.Discipline.RecordCard)
			r.Put("/{id}/discipline/{playerID}/clear", h.Discipline.ClearSuspension)

			r.Post("/{id}/reports/standings", h.Report.GenerateStandings)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/{id}", h.Game.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(requireOrganizer)

			r.Put("/{id}/result", h.Game.Finish)
			r.Put("/{id}/schedule", h.Game.Schedule)
			r.Put("/{id}/postpone", h.Game.Postpone)
			r.Put("/{id}/cancel", h.Game.Cancel)
		})
	})

	return router
}
