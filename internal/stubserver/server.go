// Package stubserver is an in-memory fake of the reservation backend. It
// implements just enough of the HTTP contract for the client's integration
// tests and local development: JWT sign-in with the refresh cookie, the
// numeric error-code envelope, Location headers on creation, and paged
// lists. It holds no business logic beyond that.
package stubserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/config"
	"github.com/reservekit/reserve-client/internal/domain"
)

// Application error codes of the real backend's envelope.
const (
	codeInvalidAccessTokenFormat  = 101
	codeInvalidRefreshTokenFormat = 102
	codeWrongCredential           = 110
	codeWrongPassword             = 111
	codeSignInRequired            = 112
	codeExpiredAccessToken        = 120
	codeExpiredRefreshToken       = 121
	codeInvalidRequest            = 200
	codeUserNotFound              = 301
	codeStoreNotFound             = 302
	codeUsernameDuplicate         = 401
)

type stubUser struct {
	ID           string
	Username     string
	Nickname     string
	Description  string
	PasswordHash string
	SignUpDate   string
}

type stubReservation struct {
	domain.Reservation
	Menus []domain.ReservationMenu
}

// Server is the stub backend.
type Server struct {
	app    *fiber.App
	cfg    config.StubConfig
	log    *zap.Logger
	tokens *tokenIssuer

	mu           sync.Mutex
	users        map[string]*stubUser
	stores       map[string]*domain.Store
	menus        map[string]*domain.Menu
	reservations map[string]*stubReservation
}

// New builds the stub with empty state and registers its routes.
func New(cfg config.StubConfig, logger *zap.Logger) *Server {
	s := &Server{
		app:          fiber.New(fiber.Config{DisableStartupMessage: true}),
		cfg:          cfg,
		log:          logger,
		tokens:       newTokenIssuer(cfg.JWTSecret),
		users:        map[string]*stubUser{},
		stores:       map[string]*domain.Store{},
		menus:        map[string]*domain.Menu{},
		reservations: map[string]*stubReservation{},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.app.Group("/v1")

	v1.Post("/sign-up", s.signUp)
	v1.Post("/sign-in", s.signIn)
	v1.Post("/sign-out", s.signOut)
	v1.Post("/token-refresh", s.refreshToken)

	v1.Get("/users/:username", s.getUser)
	v1.Put("/users", s.requireAuth, s.updateUser)
	v1.Put("/users/password", s.requireAuth, s.updatePassword)
	v1.Delete("/users", s.requireAuth, s.deleteUser)

	v1.Get("/stores", s.searchStores)
	v1.Post("/stores", s.requireAuth, s.createStore)
	v1.Get("/stores/:id", s.getStore)
	v1.Put("/stores/:id", s.requireAuth, s.updateStore)
	v1.Delete("/stores/:id", s.requireAuth, s.deleteStore)

	v1.Get("/stores/:id/menus", s.listMenus)
	v1.Post("/stores/:id/menus", s.requireAuth, s.createMenu)
	v1.Get("/menus/:id", s.getMenu)
	v1.Put("/menus/:id", s.requireAuth, s.updateMenu)
	v1.Delete("/menus/:id", s.requireAuth, s.deleteMenu)

	v1.Get("/reservations", s.requireAuth, s.searchReservations)
	v1.Post("/reservations", s.requireAuth, s.createReservation)
	v1.Get("/reservations/:id", s.requireAuth, s.getReservation)
	v1.Put("/reservations/:id", s.requireAuth, s.updateReservation)
	v1.Delete("/reservations/:id", s.requireAuth, s.deleteReservation)
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr)
}

// Serve accepts connections from an existing listener. Tests use it with a
// port-zero listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// respondError writes the backend's error envelope.
func respondError(c *fiber.Ctx, status, code int, message string) error {
	return c.Status(status).JSON(fiber.Map{"code": code, "message": message})
}

// requireAuth admits requests bearing a valid access token and records the
// caller's username for the handler.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	const scheme = "Bearer "
	header := c.Get("Authorization")
	if header == "" || len(header) <= len(scheme) || header[:len(scheme)] != scheme {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	claims, err := s.tokens.parse(header[len(scheme):])
	if err != nil {
		if err == errTokenExpired {
			return respondError(c, http.StatusUnauthorized, codeExpiredAccessToken, "Access token is expired.")
		}
		return respondError(c, http.StatusUnauthorized, codeInvalidAccessTokenFormat, "The Access token format is invalid.")
	}
	c.Locals("username", claims.Username)
	return c.Next()
}

// caller returns the authenticated user for the request.
func (s *Server) caller(c *fiber.Ctx) (*stubUser, bool) {
	username, _ := c.Locals("username").(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	return user, ok
}

func newID() string {
	return uuid.NewString()
}

func today() string {
	return time.Now().Format("2006-01-02")
}
