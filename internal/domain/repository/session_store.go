package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// SessionStore define el almacén externo de sesiones.
//
// Solo el caso de uso de auth escribe aquí; el resto del sistema únicamente lee.
// Get devuelve (nil, nil) si la sesión no existe o ya expiró.
type SessionStore interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
