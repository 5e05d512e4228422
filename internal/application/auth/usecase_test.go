package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/docflow-api/internal/application/auth"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/docflow-api/pkg/jwt"
	"github.com/tu-usuario/docflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byUsername map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.byUsername[u.Username] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.byUsername[username], nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*entity.Session)}
}

func (s *memSessionStore) Save(_ context.Context, session *entity.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "password"

func buildUseCase(t *testing.T) (*auth.UseCase, *memSessionStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUserRepo{byUsername: map[string]*entity.User{
		"manager": {
			ID:           "00000000-0000-0000-0000-000000000001",
			Username:     "manager",
			PasswordHash: string(hash),
			Role:         entity.RoleManager,
		},
		"accountant": {
			ID:           "00000000-0000-0000-0000-000000000002",
			Username:     "accountant",
			PasswordHash: string(hash),
			Role:         entity.RoleAccountant,
		},
	}}
	sessions := newMemSessionStore()
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	uc := auth.NewUseCase(users, sessions, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "docflow-test",
	}, 2*time.Second, log)
	return uc, sessions
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// Credenciales correctas → token + identidad, y la sesión queda en el almacén.
func TestLogin_CredencialesValidas(t *testing.T) {
	uc, sessions := buildUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: testPassword})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.Token, "debe emitirse un JWT")
	assert.Equal(t, "manager", out.User.Username)
	assert.Equal(t, entity.RoleManager, out.User.Role)
	assert.Equal(t, 1, sessions.count(), "debe quedar exactamente una sesión viva")
}

// Contraseña incorrecta → ErrInvalidCredentials y el almacén queda intacto.
func TestLogin_PasswordIncorrecta_NoTocaSesiones(t *testing.T) {
	uc, sessions := buildUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, out)
	assert.Equal(t, 0, sessions.count(), "un login fallido no debe dejar sesión")
}

// Usuario inexistente → el mismo error que contraseña incorrecta (sin filtrar
// cuál de los dos falló).
func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Login estando ya conectado → sesión nueva; la anterior sigue en el almacén
// hasta que expire por TTL.
func TestLogin_RepetidoEmiteSesionNueva(t *testing.T) {
	uc, sessions := buildUseCase(t)

	first, err := uc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: testPassword})
	require.NoError(t, err)
	second, err := uc.Login(context.Background(), dto.LoginRequest{Username: "manager", Password: testPassword})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token, "cada login emite un token distinto")
	assert.Equal(t, 2, sessions.count())
}

// Dos logins concurrentes con el mismo username se serializan: ambos terminan
// y cada uno con su sesión propia.
func TestLogin_ConcurrenteMismoUsuario(t *testing.T) {
	uc, sessions := buildUseCase(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Login(context.Background(), dto.LoginRequest{Username: "accountant", Password: testPassword})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, sessions.count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Logout / CurrentUser
// ──────────────────────────────────────────────────────────────────────────────

// Logout elimina la sesión; el token deja de estar respaldado.
func TestLogout_InvalidaSesion(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "manager", Password: testPassword})
	require.NoError(t, err)

	// El sessionID viaja dentro de los claims del token.
	sessions := collectSessionIDs(t, uc, out)
	require.Len(t, sessions, 1)
	sessionID := sessions[0]

	assert.True(t, uc.IsAuthenticated(ctx, sessionID))
	require.NoError(t, uc.Logout(ctx, sessionID))
	assert.False(t, uc.IsAuthenticated(ctx, sessionID), "tras logout la sesión no debe estar viva")
}

// Logout es idempotente: cerrar una sesión inexistente no es error.
func TestLogout_Idempotente(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	assert.NoError(t, uc.Logout(ctx, "no-existe"))
	assert.NoError(t, uc.Logout(ctx, ""))
}

// CurrentUser con sesión viva devuelve la identidad, nunca credenciales.
func TestCurrentUser_SesionViva(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "accountant", Password: testPassword})
	require.NoError(t, err)

	ids := collectSessionIDs(t, uc, out)
	require.Len(t, ids, 1)

	identity, err := uc.CurrentUser(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "accountant", identity.Username)
	assert.Equal(t, entity.RoleAccountant, identity.Role)
}

// CurrentUser sin sesión → (nil, nil), no error.
func TestCurrentUser_SinSesion(t *testing.T) {
	uc, _ := buildUseCase(t)

	identity, err := uc.CurrentUser(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

// collectSessionIDs extrae el sessionID del JWT emitido en el login.
func collectSessionIDs(t *testing.T, _ *auth.UseCase, out *dto.LoginResponse) []string {
	t.Helper()
	claims, err := pkgjwt.Parse("test-secret-key-for-unit-tests", out.Token)
	require.NoError(t, err)
	return []string{claims.SessionID}
}
