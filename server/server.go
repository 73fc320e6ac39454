package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gymstack/gymstack/appointments"
	"github.com/gymstack/gymstack/auth"
	"github.com/gymstack/gymstack/equipment"
	"github.com/gymstack/gymstack/internal/config"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Directory    *principals.Directory
	Equipment    equipment.Repo
	Appointments appointments.Repo
}

type Server struct {
	env          string
	router       chi.Router
	config       config.Config
	auth         *auth.Service
	repos        Repos
	loginLimiter *ipRateLimiter
}

func New(cfg config.Config, repos Repos) (*Server, error) {
	if repos.Directory == nil {
		return nil, errors.New("[Server New] principal directory is required")
	}
	if repos.Equipment == nil {
		return nil, errors.New("[Server New] equipment repo is required")
	}
	if repos.Appointments == nil {
		return nil, errors.New("[Server New] appointments repo is required")
	}

	if !cfg.TokenSecretConfigured() {
		if cfg.IsProduction() {
			return nil, errors.New("[Server New] refusing to start: security.token_secret is not configured")
		}
		log.Warn().Msg("security.token_secret is not configured; falling back to the built-in development secret. Do not run this way outside DEV.")
	}

	codec := token.NewCodec(token.NewHMACSigner(cfg.GetTokenSecret()))
	authService, err := auth.NewService(repos.Directory, codec, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create auth service")
	}

	s := &Server{
		env:          cfg.GetEnv(),
		router:       chi.NewRouter(),
		config:       cfg,
		auth:         authService,
		repos:        repos,
		loginLimiter: newIPRateLimiter(loginRatePerSecond, loginRateBurst),
	}

	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the server's background resources. The HTTP listener is
// owned by the caller; this only tears down what New started.
func (s *Server) Close() error {
	s.loginLimiter.stop()
	return nil
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
