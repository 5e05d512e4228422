package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
	"github.com/tu-usuario/docflow-api/pkg/jwt"
	"github.com/tu-usuario/docflow-api/pkg/logger"
)

// Resultados de login particionados para observabilidad del gate.
var loginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total de intentos de login por resultado",
	},
	[]string{"result"}, // success | invalid | timeout | error
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase es el gate de autenticación: login, logout y consulta de sesión.
//
// Es el único módulo que escribe en el SessionStore; el resto del sistema
// (middleware, handlers) solo lee. Los intentos de login concurrentes para el
// mismo username se serializan con un lock por usuario para no intercalar
// escrituras de sesión.
type UseCase struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	jwtCfg   JWTConfig
	timeout  time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	inLogin map[string]*sync.Mutex // lock por username
}

// NewUseCase construye el gate de autenticación.
// loginTimeout acota cada intento; al expirar se trata como credenciales inválidas.
func NewUseCase(userRepo repository.UserRepository, sessions repository.SessionStore, jwtCfg JWTConfig, loginTimeout time.Duration, log *logger.Logger) *UseCase {
	if loginTimeout <= 0 {
		loginTimeout = 5 * time.Second
	}
	return &UseCase{
		userRepo: userRepo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		timeout:  loginTimeout,
		log:      log,
		inLogin:  make(map[string]*sync.Mutex),
	}
}

// userLock devuelve el mutex del username, creándolo si no existe.
func (uc *UseCase) userLock(username string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	l, ok := uc.inLogin[username]
	if !ok {
		l = &sync.Mutex{}
		uc.inLogin[username] = l
	}
	return l
}

// Login verifica username/password, crea la sesión, la persiste y emite el JWT.
//
// Garantías:
//   - Credenciales incorrectas → domain.ErrInvalidCredentials, sesión intacta.
//   - Timeout del intento → domain.ErrInvalidCredentials (sin estado parcial).
//   - Un segundo intento concurrente con el mismo username espera al primero.
//   - Un login estando ya conectado emite una sesión nueva (la anterior expira
//     sola por TTL), igual que la consola sobreescribía su sesión guardada.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	lock := uc.userLock(in.Username)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type verified struct {
		user *entity.User
		err  error
	}
	done := make(chan verified, 1)
	go func() {
		user, err := uc.userRepo.GetByUsername(in.Username)
		if err != nil {
			done <- verified{nil, err}
			return
		}
		if user == nil {
			done <- verified{nil, domain.ErrInvalidCredentials}
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
			done <- verified{nil, domain.ErrInvalidCredentials}
			return
		}
		done <- verified{user, nil}
	}()

	var user *entity.User
	select {
	case <-ctx.Done():
		loginsTotal.WithLabelValues("timeout").Inc()
		uc.log.Warn().Str("username", in.Username).Msg("login expiró, se trata como credenciales inválidas")
		return nil, domain.ErrInvalidCredentials
	case v := <-done:
		if v.err != nil {
			if v.err == domain.ErrInvalidCredentials {
				loginsTotal.WithLabelValues("invalid").Inc()
				uc.log.Warn().Str("username", in.Username).Msg("credenciales inválidas")
			} else {
				loginsTotal.WithLabelValues("error").Inc()
				uc.log.Error().Err(v.err).Str("username", in.Username).Msg("fallo al verificar credenciales")
			}
			return nil, v.err
		}
		user = v.user
	}

	now := time.Now()
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	session := &entity.Session{
		ID:        uuid.New().String(),
		Identity:  user.Identity(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session, ttl); err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, session.ID, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		// No dejar una sesión huérfana si el token no se pudo emitir.
		_ = uc.sessions.Delete(ctx, session.ID)
		loginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	loginsTotal.WithLabelValues("success").Inc()
	uc.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("autorización exitosa")

	return &dto.LoginResponse{
		Token:   token,
		User:    dto.UserResponse{ID: user.ID, Username: user.Username, Role: user.Role},
		Message: "autorización exitosa",
	}, nil
}

// Logout elimina la sesión. Es idempotente: cerrar una sesión inexistente no es error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.log.Info().Str("session_id", sessionID).Msg("sesión cerrada")
	return nil
}

// CurrentUser devuelve la identidad de la sesión, o nil si no hay sesión viva.
func (uc *UseCase) CurrentUser(ctx context.Context, sessionID string) (*entity.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	identity := session.Identity
	return &identity, nil
}

// IsAuthenticated informa si la sesión sigue viva en el almacén.
func (uc *UseCase) IsAuthenticated(ctx context.Context, sessionID string) bool {
	identity, err := uc.CurrentUser(ctx, sessionID)
	return err == nil && identity != nil
}
