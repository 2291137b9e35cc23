// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	chatfeature "github.com/varzeapro/varzeapro/internal/app/features/chat"
	errorsfeature "github.com/varzeapro/varzeapro/internal/app/features/errors"
	healthfeature "github.com/varzeapro/varzeapro/internal/app/features/health"
	homefeature "github.com/varzeapro/varzeapro/internal/app/features/home"
	loginfeature "github.com/varzeapro/varzeapro/internal/app/features/login"
	logoutfeature "github.com/varzeapro/varzeapro/internal/app/features/logout"
	onboardingfeature "github.com/varzeapro/varzeapro/internal/app/features/onboarding"
	playerdashfeature "github.com/varzeapro/varzeapro/internal/app/features/playerdash"
	signupfeature "github.com/varzeapro/varzeapro/internal/app/features/signup"
	teamdashfeature "github.com/varzeapro/varzeapro/internal/app/features/teamdash"
	welcomefeature "github.com/varzeapro/varzeapro/internal/app/features/welcome"
	playerstore "github.com/varzeapro/varzeapro/internal/app/store/players"
	positionstore "github.com/varzeapro/varzeapro/internal/app/store/positions"
	teamstore "github.com/varzeapro/varzeapro/internal/app/store/teams"
	userstore "github.com/varzeapro/varzeapro/internal/app/store/users"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/viewcache"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
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
// VárzeaPro initializes the template engine, applies session middleware,
// and mounts feature routers for the full onboarding flow: sign-up,
// sign-in, role selection, the setup wizard, and the role dashboards.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores over the shared database handle.
	users := userstore.New(deps.MongoDatabase)
	players := playerstore.New(deps.MongoDatabase, logger)
	teams := teamstore.New(deps.MongoDatabase, logger)
	positions := positionstore.New(deps.MongoDatabase)

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes and onboarding completion take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users, logger))

	// The onboarding draft rides the same signed cookie store as the session.
	drafts := wizard.NewStore(sessionMgr.Store(), logger)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Dashboard view models are cached per user and invalidated on finalize.
	cache := viewcache.New(appCfg.DashboardCacheTTL)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public landing page
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	signupHandler := signupfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/sign-up", signupfeature.Routes(signupHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/sign-in", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, drafts, logger)
	r.Mount("/sign-out", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role selection and the setup wizard
	welcomeHandler := welcomefeature.NewHandler(users, drafts, errLog, logger)
	r.Mount("/welcome", welcomefeature.Routes(welcomeHandler))

	onboardingHandler := onboardingfeature.NewHandler(players, teams, positions, drafts, cache, errLog, logger)
	r.Mount("/setup", onboardingfeature.Routes(onboardingHandler))

	// Role-based dashboards
	playerDashHandler := playerdashfeature.NewHandler(players, cache, errLog, logger)
	r.Mount("/player", playerdashfeature.Routes(playerDashHandler))

	teamDashHandler := teamdashfeature.NewHandler(teams, cache, errLog, logger)
	r.Mount("/team", teamdashfeature.Routes(teamDashHandler))

	// Conversations (both roles)
	chatHandler := chatfeature.NewHandler(logger)
	r.Mount("/chat", chatfeature.Routes(chatHandler))

	return r, nil
}
