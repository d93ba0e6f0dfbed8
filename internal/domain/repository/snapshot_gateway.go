package repository

import (
	"context"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// SnapshotGateway define el puerto hacia el almacén remoto de datos (DIP).
// El backend guarda una sola fila por usuario con las colecciones
// serializadas; el gateway es transporte sin estado, no es dueño de nada.
type SnapshotGateway interface {
	// Save sobreescribe la fila completa del usuario con el snapshot.
	// Errores: domain.ErrNoSession (userID vacío), domain.ErrNetwork
	// (fallo de transporte), domain.ErrServer (rechazo del backend).
	Save(ctx context.Context, userID string, snap *entity.Snapshot) error

	// Load lee la fila del usuario. Si todavía no existe fila devuelve un
	// snapshot vacío y error nil: un usuario nuevo no es un error.
	Load(ctx context.Context, userID string) (*entity.Snapshot, error)
}
