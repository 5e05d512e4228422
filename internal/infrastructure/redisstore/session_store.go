package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
	"github.com/tu-usuario/docflow-api/pkg/config"
)

// Prefijo de las claves de sesión en Redis.
const sessionKeyPrefix = "session:"

// Asegura que SessionStore implementa repository.SessionStore.
var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore guarda sesiones serializadas en Redis con TTL.
// Redis reemplaza al localStorage de la consola: la sesión sobrevive
// reinicios del proceso y expira sola.
type SessionStore struct {
	client *redis.Client
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewSessionStore construye el almacén sobre un cliente ya conectado.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save serializa y guarda la sesión con el TTL dado.
func (s *SessionStore) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Get devuelve la sesión o (nil, nil) si no existe o ya expiró.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &session, nil
}

// Delete elimina la sesión. Borrar una clave inexistente no es error (idempotente).
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}
