package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

var _ repository.SnapshotGateway = (*UserDataRepo)(nil)

// UserDataRepo implementación del puerto SnapshotGateway sobre PostgreSQL.
// La tabla user_data tiene UNA fila por usuario con cada colección
// serializada como JSONB, más una columna NUMERIC con el ingreso total
// denormalizado (consultas de operación sin parsear JSON):
//
//	CREATE TABLE user_data (
//	    user_id    UUID PRIMARY KEY REFERENCES users(id),
//	    products   JSONB NOT NULL DEFAULT '[]',
//	    sales      JSONB NOT NULL DEFAULT '[]',
//	    clients    JSONB NOT NULL DEFAULT '[]',
//	    payments   JSONB NOT NULL DEFAULT '[]',
//	    meetings   JSONB NOT NULL DEFAULT '[]',
//	    expiries   JSONB NOT NULL DEFAULT '[]',
//	    revenue    NUMERIC NOT NULL DEFAULT 0,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// No hay control de concurrencia optimista (sin versión/etag): dos sesiones
// del mismo usuario pueden pisarse; gana la última escritura.
type UserDataRepo struct {
	pool *pgxpool.Pool
}

// NewUserDataRepository construye el gateway de snapshots.
func NewUserDataRepository(pool *pgxpool.Pool) *UserDataRepo {
	return &UserDataRepo{pool: pool}
}

// Save sobreescribe (upsert) la fila completa del usuario con el snapshot.
func (r *UserDataRepo) Save(ctx context.Context, userID string, snap *entity.Snapshot) error {
	if userID == "" {
		return domain.ErrNoSession
	}
	if snap == nil {
		snap = entity.EmptySnapshot()
	}

	cols, err := marshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	revenue := totalRevenue(snap)

	query := `
		INSERT INTO user_data (user_id, products, sales, clients, payments, meetings, expiries, revenue, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			products = EXCLUDED.products,
			sales = EXCLUDED.sales,
			clients = EXCLUDED.clients,
			payments = EXCLUDED.payments,
			meetings = EXCLUDED.meetings,
			expiries = EXCLUDED.expiries,
			revenue = EXCLUDED.revenue,
			updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query,
		userID, cols.products, cols.sales, cols.clients, cols.payments,
		cols.meetings, cols.expiries, revenue, time.Now(),
	)
	if err != nil {
		return classify("upsert user_data", err)
	}
	return nil
}

// Load lee la fila del usuario. Sin fila devuelve un snapshot vacío y error
// nil: un usuario recién registrado todavía no guardó nada.
func (r *UserDataRepo) Load(ctx context.Context, userID string) (*entity.Snapshot, error) {
	if userID == "" {
		return nil, domain.ErrNoSession
	}

	query := `
		SELECT products, sales, clients, payments, meetings, expiries
		FROM user_data WHERE user_id = $1`
	var raw [6][]byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5],
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.EmptySnapshot(), nil
		}
		return nil, classify("select user_data", err)
	}

	snap := &entity.Snapshot{}
	fields := []struct {
		data []byte
		dst  interface{}
	}{
		{raw[0], &snap.Products},
		{raw[1], &snap.Sales},
		{raw[2], &snap.Clients},
		{raw[3], &snap.Payments},
		{raw[4], &snap.Meetings},
		{raw[5], &snap.Expiries},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue // columna NULL o ausente: queda colección vacía
		}
		if err := json.Unmarshal(f.data, f.dst); err != nil {
			return nil, fmt.Errorf("%w: fila user_data corrupta: %v", domain.ErrServer, err)
		}
	}
	snap.Normalize()
	return snap, nil
}

type snapshotColumns struct {
	products, sales, clients, payments, meetings, expiries []byte
}

func marshalSnapshot(snap *entity.Snapshot) (*snapshotColumns, error) {
	c := snap.Clone()
	c.Normalize()
	var (
		cols snapshotColumns
		err  error
	)
	if cols.products, err = json.Marshal(c.Products); err != nil {
		return nil, err
	}
	if cols.sales, err = json.Marshal(c.Sales); err != nil {
		return nil, err
	}
	if cols.clients, err = json.Marshal(c.Clients); err != nil {
		return nil, err
	}
	if cols.payments, err = json.Marshal(c.Payments); err != nil {
		return nil, err
	}
	if cols.meetings, err = json.Marshal(c.Meetings); err != nil {
		return nil, err
	}
	if cols.expiries, err = json.Marshal(c.Expiries); err != nil {
		return nil, err
	}
	return &cols, nil
}

// totalRevenue suma cantidad × precio de todas las ventas del snapshot.
func totalRevenue(snap *entity.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, s := range snap.Sales {
		total = total.Add(s.Total())
	}
	return total
}

// classify separa los fallos del gateway en las dos familias del contrato:
// rechazo del motor (ErrServer) y fallo de transporte (ErrNetwork).
func classify(op string, err error) error {
	if isPgError(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrServer, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrNetwork, op, err)
}
