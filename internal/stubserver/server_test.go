package stubserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/auth"
	"github.com/reservekit/reserve-client/internal/cart"
	"github.com/reservekit/reserve-client/internal/config"
	"github.com/reservekit/reserve-client/internal/domain"
	"github.com/reservekit/reserve-client/internal/service"
	"github.com/reservekit/reserve-client/internal/storage"
	"github.com/reservekit/reserve-client/internal/token"
)

const testSecret = "test-secret"

// env wires the full client stack against a stub backend on a loopback
// port, the way the CLI composition root does.
type env struct {
	server       *Server
	tokens       *token.Store
	client       *api.Client
	sessions     *auth.Manager
	cart         *cart.Manager
	stores       *service.StoreService
	menus        *service.MenuService
	reservations *service.ReservationService
	users        *service.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := config.StubConfig{
		JWTSecret:         testSecret,
		AccessTTLSeconds:  1800,
		RefreshTTLSeconds: 3600,
		BcryptCost:        4,
	}
	srv := New(cfg, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	mem := storage.NewMemory()
	tokens := token.NewStore(mem)
	client, err := api.NewClient(config.APIConfig{
		BaseURL:        "http://" + ln.Addr().String() + "/v1",
		TimeoutSeconds: 10,
	}, tokens, mem, zap.NewNop())
	require.NoError(t, err)

	sessions := auth.NewManager(client, tokens, zap.NewNop())
	t.Cleanup(sessions.Close)

	return &env{
		server:       srv,
		tokens:       tokens,
		client:       client,
		sessions:     sessions,
		cart:         cart.NewManager(mem, zap.NewNop()),
		stores:       service.NewStoreService(client),
		menus:        service.NewMenuService(client),
		reservations: service.NewReservationService(client),
		users:        service.NewUserService(client),
	}
}

func (e *env) signUpAndIn(t *testing.T, username, nickname, password string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.sessions.SignUp(ctx, domain.SignUpRequest{
		Username:             username,
		Nickname:             nickname,
		Password:             password,
		PasswordConfirmation: password,
	}))
	require.NoError(t, e.sessions.SignIn(ctx, username, password))
}

func TestSignUpSignInSignOut(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUpAndIn(t, "alice", "Alice", "password123")

	session, ok := e.sessions.Session()
	require.True(t, ok)
	assert.Equal(t, "alice", session.User.Username)
	assert.Equal(t, "Alice", session.User.Nickname)
	assert.NotEmpty(t, session.User.UserID)

	require.NoError(t, e.sessions.SignOut(ctx))
	_, ok = e.sessions.Session()
	assert.False(t, ok)
	_, ok = e.tokens.Get()
	assert.False(t, ok)
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	req := domain.SignUpRequest{
		Username:             "alice",
		Nickname:             "Alice",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
	require.NoError(t, e.sessions.SignUp(ctx, req))

	err := e.sessions.SignUp(ctx, req)
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))
	assert.True(t, api.HasCode(err, api.CodeUsernameDuplicate))
}

func TestSignInWithWrongPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUpAndIn(t, "alice", "Alice", "password123")
	require.NoError(t, e.sessions.SignOut(ctx))

	err := e.sessions.SignIn(ctx, "alice", "not-the-password")
	assert.ErrorIs(t, err, auth.ErrWrongCredentials)
}

func TestStoreAndMenuLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUpAndIn(t, "owner123", "Owner", "password123")

	storeID, err := e.stores.Create(ctx, domain.StoreCreateRequest{
		Name:    "Alpha Diner",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	require.NotEmpty(t, storeID)

	store, err := e.stores.Get(ctx, storeID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Diner", store.Name)
	assert.Equal(t, "owner123", store.Registrant)

	menuID, err := e.menus.Create(ctx, storeID, domain.MenuCreateRequest{Name: "Pasta", Price: 12})
	require.NoError(t, err)

	menus, err := e.menus.ListForStore(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, 1, menus.Count)
	assert.Equal(t, menuID, menus.Results[0].MenuID)

	require.NoError(t, e.menus.Update(ctx, menuID, domain.MenuCreateRequest{Name: "Pasta", Price: 14}))
	menu, err := e.menus.Get(ctx, menuID)
	require.NoError(t, err)
	assert.Equal(t, 14, menu.Price)

	list, err := e.stores.Search(ctx, domain.StoreSearchParams{Query: "alpha"}, domain.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	require.NoError(t, e.stores.Delete(ctx, storeID))
	_, err = e.stores.Get(ctx, storeID)
	assert.True(t, api.IsNotFound(err))
	// Deleting the store took its menus with it.
	_, err = e.menus.Get(ctx, menuID)
	assert.Error(t, err)
}

func TestOnlyRegistrantMayEditStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUpAndIn(t, "owner123", "Owner", "password123")
	storeID, err := e.stores.Create(ctx, domain.StoreCreateRequest{Name: "Alpha Diner", Address: "1 Main St"})
	require.NoError(t, err)
	require.NoError(t, e.sessions.SignOut(ctx))

	e.signUpAndIn(t, "intruder", "Intruder", "password123")
	err = e.stores.Update(ctx, storeID, domain.StoreCreateRequest{Name: "Taken Over", Address: "2 Main St"})
	assert.True(t, api.IsForbidden(err))
	err = e.stores.Delete(ctx, storeID)
	assert.True(t, api.IsForbidden(err))
}

func TestReservationFromCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUpAndIn(t, "diner42", "Diner", "password123")

	storeID, err := e.stores.Create(ctx, domain.StoreCreateRequest{Name: "Alpha Diner", Address: "1 Main St"})
	require.NoError(t, err)
	menuID, err := e.menus.Create(ctx, storeID, domain.MenuCreateRequest{Name: "Pasta", Price: 10})
	require.NoError(t, err)

	menu, err := e.menus.Get(ctx, menuID)
	require.NoError(t, err)
	store, err := e.stores.Get(ctx, storeID)
	require.NoError(t, err)
	require.NoError(t, e.cart.AddOrSetItem(store.Ref(), menu, 2))

	reservationID, err := e.reservations.FromCart(ctx, e.cart.Cart(), "Team dinner", "2026-09-01", 19)
	require.NoError(t, err)
	require.NotEmpty(t, reservationID)

	// A completed reservation empties the cart.
	require.NoError(t, e.cart.Clear())
	assert.True(t, e.cart.Cart().Empty())

	reservation, err := e.reservations.Get(ctx, reservationID)
	require.NoError(t, err)
	assert.Equal(t, "Team dinner", reservation.ReservationName)
	assert.Equal(t, storeID, reservation.StoreID)
	assert.Equal(t, 19, reservation.Hour)

	list, err := e.reservations.Search(ctx, domain.ReservationSearchParams{StoreID: storeID}, domain.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	require.NoError(t, e.reservations.Update(ctx, reservationID, domain.ReservationUpdateRequest{
		ReservationName: "Team dinner",
		Date:            "2026-09-02",
		Hour:            20,
	}))
	reservation, err = e.reservations.Get(ctx, reservationID)
	require.NoError(t, err)
	assert.Equal(t, 20, reservation.Hour)

	require.NoError(t, e.reservations.Cancel(ctx, reservationID))
	_, err = e.reservations.Get(ctx, reservationID)
	assert.Error(t, err)
}

func TestReservationsScopedToCaller(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signUpAndIn(t, "diner42", "Diner", "password123")
	storeID, err := e.stores.Create(ctx, domain.StoreCreateRequest{Name: "Alpha Diner", Address: "1 Main St"})
	require.NoError(t, err)
	reservationID, err := e.reservations.Create(ctx, domain.ReservationCreateRequest{
		StoreID:         storeID,
		ReservationName: "Mine",
		Date:            "2026-09-01",
		Hour:            18,
	})
	require.NoError(t, err)
	require.NoError(t, e.sessions.SignOut(ctx))

	e.signUpAndIn(t, "stranger", "Stranger", "password123")
	list, err := e.reservations.Search(ctx, domain.ReservationSearchParams{}, domain.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)

	// Another user's reservation is indistinguishable from a missing one.
	_, err = e.reservations.Get(ctx, reservationID)
	assert.True(t, api.IsNotFound(err))
}

func TestExpiredAccessTokenIsRefreshedTransparently(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUpAndIn(t, "alice", "Alice", "password123")

	// Replace the stored token with one that is already expired. The
	// refresh cookie from sign-in is still valid, so the gateway should
	// recover without the caller noticing.
	e.server.mu.Lock()
	user := e.server.users["alice"]
	e.server.mu.Unlock()
	require.NotNil(t, user)
	expired, err := e.server.tokens.generate(user, -time.Minute)
	require.NoError(t, err)
	require.NoError(t, e.tokens.Set(expired))

	list, err := e.reservations.Search(ctx, domain.ReservationSearchParams{}, domain.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)

	// The store now holds the replacement token.
	tok, ok := e.tokens.Get()
	require.True(t, ok)
	assert.NotEqual(t, expired, tok)
}

func TestRefreshWithoutCookieFails(t *testing.T) {
	e := newEnv(t)

	_, err := e.client.RefreshToken(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.True(t, api.HasCode(err, api.CodeInvalidRefreshTokenFormat))
}

func TestUserProfileLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signUpAndIn(t, "alice", "Alice", "password123")

	profile, err := e.users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Nickname)
	assert.NotEmpty(t, profile.SignUpDate)

	require.NoError(t, e.users.Update(ctx, domain.UserUpdateRequest{Nickname: "Alicia", Description: "hi"}))
	profile, err = e.users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", profile.Nickname)
	assert.Equal(t, "hi", profile.Description)

	err = e.users.UpdatePassword(ctx, domain.PasswordUpdateRequest{
		OldPassword:  "wrong-password",
		NewPassword:  "newpassword1",
		Confirmation: "newpassword1",
	})
	require.Error(t, err)
	assert.True(t, api.HasCode(err, api.CodeWrongPassword))

	require.NoError(t, e.users.UpdatePassword(ctx, domain.PasswordUpdateRequest{
		OldPassword:  "password123",
		NewPassword:  "newpassword1",
		Confirmation: "newpassword1",
	}))

	require.NoError(t, e.sessions.SignOut(ctx))
	require.NoError(t, e.sessions.SignIn(ctx, "alice", "newpassword1"))

	require.NoError(t, e.users.Delete(ctx, domain.UserDeleteRequest{Password: "newpassword1"}))
	_, err = e.users.Get(ctx, "alice")
	assert.True(t, api.IsNotFound(err))
	assert.True(t, api.HasCode(err, api.CodeUserNotFound))
}

func TestUnknownUserNotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.users.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}
