// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/enrollhub/internal/app/features/authapi"
	coursesfeature "github.com/dalemusser/enrollhub/internal/app/features/courses"
	dashboardfeature "github.com/dalemusser/enrollhub/internal/app/features/dashboard"
	healthfeature "github.com/dalemusser/enrollhub/internal/app/features/health"
	postsfeature "github.com/dalemusser/enrollhub/internal/app/features/posts"
	studentsfeature "github.com/dalemusser/enrollhub/internal/app/features/students"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// EnrollHub mounts the health endpoint and the auth endpoints outside the
// bearer-token gate; everything else under /api requires a valid token.
// The gate lives here, once, so no feature can accidentally be mounted
// unprotected.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// The admin SPA is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		// Credential endpoints issue the tokens; they sit outside the gate.
		authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, logger)
		api.Mount("/auth", authfeature.Routes(authHandler))

		// Everything else under /api requires a bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(tokens.RequireAuth)

			studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, logger)
			protected.Mount("/students", studentsfeature.Routes(studentsHandler))

			coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, logger)
			protected.Mount("/courses", coursesfeature.Routes(coursesHandler))

			postsHandler := postsfeature.NewHandler(deps.MongoDatabase, logger)
			protected.Mount("/posts", postsfeature.Routes(postsHandler))

			dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
			protected.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
		})
	})

	return r, nil
}
