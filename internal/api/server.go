package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/lumin/internal/metrics"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/httputil"
)

const handlerTimeout = 10 * time.Second

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	entryService     service.EntryServiceI
	goalService      service.GoalServiceI
	challengeService service.ChallengeServiceI
	dashboardService service.DashboardServiceI
	coachService     service.CoachServiceI
	jwtService       JWTServiceI
	limiter          *RateLimiter
	aiLimiter        *RateLimiter
	cors             *CORS
}

type ServicesList struct {
	UserService      service.UserServiceI
	EntryService     service.EntryServiceI
	GoalService      service.GoalServiceI
	ChallengeService service.ChallengeServiceI
	DashboardService service.DashboardServiceI
	CoachService     service.CoachServiceI
	JWTService       JWTServiceI
	// Optional. Nil limiters let every request through
	Limiter   *RateLimiter
	AILimiter *RateLimiter
	// Empty list allows any origin
	CORSOrigins []string
}

func New(servicesOptions *ServicesList) *Server {
	origins := servicesOptions.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		entryService:     servicesOptions.EntryService,
		goalService:      servicesOptions.GoalService,
		challengeService: servicesOptions.ChallengeService,
		dashboardService: servicesOptions.DashboardService,
		coachService:     servicesOptions.CoachService,
		jwtService:       servicesOptions.JWTService,
		limiter:          servicesOptions.Limiter,
		aiLimiter:        servicesOptions.AILimiter,
		cors:             NewCORS(origins),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.cors.Handler, metrics.InstrumentHandler)
	s.mx.Get("/health", s.Health)
	s.mx.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limiter.Handler(ClientKey))
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/refresh", s.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)

			r.Get("/users/me", s.GetMe)
			r.Put("/users/me", s.UpdateMe)
			r.Delete("/users/me", s.DeleteMe)

			r.Post("/entries", s.CreateEntry)
			r.Get("/entries", s.ListEntries)
			r.Get("/entries/stats", s.MoodStats)
			r.Get("/entries/{id}", s.GetEntry)
			r.Put("/entries/{id}", s.UpdateEntry)
			r.Delete("/entries/{id}", s.DeleteEntry)

			r.Post("/goals", s.CreateGoal)
			r.Get("/goals", s.ListGoals)
			r.Get("/goals/{id}", s.GetGoal)
			r.Put("/goals/{id}", s.UpdateGoal)
			r.Delete("/goals/{id}", s.DeleteGoal)
			r.Post("/goals/{id}/progress", s.UpdateGoalProgress)
			r.Post("/goals/{id}/milestones/{index}/complete", s.CompleteMilestone)

			r.Get("/challenges/today", s.TodayChallenges)
			r.Post("/challenges/{id}/progress", s.AddChallengeProgress)
			r.Post("/challenges/{id}/complete", s.CompleteChallenge)

			r.Get("/dashboard", s.Dashboard)

			r.Route("/ai", func(r chi.Router) {
				r.Use(s.aiLimiter.Handler(UserKey))
				r.Post("/prompts", s.AIPrompts)
				r.Post("/mood", s.AIMood)
				r.Post("/goal-plan", s.AIGoalPlan)
				r.Post("/habits", s.AIHabits)
				r.Post("/motivation", s.AIMotivation)
				r.Post("/chat", s.AIChat)
			})
		})
	})
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("server started", slog.String("address", address))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("server shutdown error: " + err.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}
