package sync_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/Negocio-api/internal/application/sync"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway simula la fila user_data remota: un snapshot por usuario.
// failSave fuerza fallos de guardado para probar el manejo de errores.
type fakeGateway struct {
	rows     map[string]*entity.Snapshot
	saves    int
	loads    int
	failSave bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: map[string]*entity.Snapshot{}}
}

func (g *fakeGateway) Save(_ context.Context, userID string, snap *entity.Snapshot) error {
	g.saves++
	if g.failSave {
		return domain.ErrNetwork
	}
	g.rows[userID] = snap.Clone()
	return nil
}

func (g *fakeGateway) Load(_ context.Context, userID string) (*entity.Snapshot, error) {
	g.loads++
	row, ok := g.rows[userID]
	if !ok {
		// Usuario sin fila: colecciones vacías, no error.
		return entity.EmptySnapshot(), nil
	}
	return row.Clone(), nil
}

func newCoordinator(g *fakeGateway) (*appsync.Coordinator, *store.Store) {
	s := store.New()
	c := appsync.New(appsync.Config{
		UserID:  "user-1",
		Store:   s,
		Gateway: g,
	})
	return c, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Save / Hydrate
// ──────────────────────────────────────────────────────────────────────────────

// Guardar y rehidratar en otra sesión reproduce el estado exacto.
func TestSaveHydrate_RoundTrip(t *testing.T) {
	g := newFakeGateway()
	c1, s1 := newCoordinator(g)
	s1.AddProduct(store.ProductInput{Name: "Arroz", Price: decimal.NewFromInt(100), Units: "10"})
	s1.AddClient(store.ClientInput{Name: "María"})
	require.NoError(t, c1.Save(context.Background()))

	c2, s2 := newCoordinator(g)
	require.NoError(t, c2.Hydrate(context.Background()))

	assert.Equal(t, s1.Snapshot(), s2.Snapshot())
}

// Guardar dos veces sin cambios es idempotente: el remoto queda igual.
func TestSave_Idempotente(t *testing.T) {
	g := newFakeGateway()
	c, s := newCoordinator(g)
	s.AddProduct(store.ProductInput{Name: "Arroz", Units: "10"})

	require.NoError(t, c.Save(context.Background()))
	primero := g.rows["user-1"].Clone()
	require.NoError(t, c.Save(context.Background()))

	assert.Equal(t, primero, g.rows["user-1"])
	assert.Equal(t, 2, g.saves)
}

// Guardados sucesivos: gana el último snapshot (last-write-wins).
func TestSave_UltimoSnapshotGana(t *testing.T) {
	g := newFakeGateway()
	c, s := newCoordinator(g)

	s.AddProduct(store.ProductInput{Name: "Estado A", Units: "1"})
	require.NoError(t, c.Save(context.Background()))

	s.AddProduct(store.ProductInput{Name: "Estado B", Units: "2"})
	require.NoError(t, c.Save(context.Background()))

	row := g.rows["user-1"]
	require.Len(t, row.Products, 2)
	assert.Equal(t, "Estado B", row.Products[1].Name)
}

// Hidratar un usuario sin fila remota deja colecciones vacías, sin error.
func TestHydrate_UsuarioSinFilaRemota(t *testing.T) {
	g := newFakeGateway()
	c, s := newCoordinator(g)

	require.NoError(t, c.Hydrate(context.Background()))
	assert.True(t, s.Snapshot().IsEmpty())
}

// Un guardado fallido devuelve el error y NO altera el estado local.
func TestSave_FalloNoAlteraEstadoLocal(t *testing.T) {
	g := newFakeGateway()
	g.failSave = true
	c, s := newCoordinator(g)
	s.AddProduct(store.ProductInput{Name: "Arroz", Units: "10"})

	antes := s.Snapshot()
	err := c.Save(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, antes, s.Snapshot())
	assert.Empty(t, g.rows, "el remoto no debe tener fila tras el fallo")
}

// Tras un fallo no hay reintento automático; el siguiente Save explícito
// vuelve a intentar y funciona.
func TestSave_SinReintentoAutomatico(t *testing.T) {
	g := newFakeGateway()
	g.failSave = true
	c, s := newCoordinator(g)
	s.AddProduct(store.ProductInput{Name: "Arroz", Units: "10"})

	require.Error(t, c.Save(context.Background()))
	assert.Equal(t, 1, g.saves)

	g.failSave = false
	require.NoError(t, c.Save(context.Background()))
	assert.Equal(t, 2, g.saves)
	assert.Len(t, g.rows["user-1"].Products, 1)
}

// Pull sobreescribe lo local por completo: ediciones sin guardar se pierden.
func TestPull_SobrescribeEdicionesLocales(t *testing.T) {
	g := newFakeGateway()
	c, s := newCoordinator(g)

	s.AddProduct(store.ProductInput{Name: "Guardado", Units: "1"})
	require.NoError(t, c.Save(context.Background()))

	s.AddProduct(store.ProductInput{Name: "Sin guardar", Units: "9"})
	require.NoError(t, c.Pull(context.Background()))

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Guardado", products[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Coalescencia de guardados concurrentes
// ──────────────────────────────────────────────────────────────────────────────

// blockingGateway retiene el primer Save hasta que el test lo libere, para
// encolar un segundo snapshot mientras el primero sigue en vuelo.
type blockingGateway struct {
	*fakeGateway
	entered chan struct{}
	release chan struct{}
	first   bool
}

func (g *blockingGateway) Save(ctx context.Context, userID string, snap *entity.Snapshot) error {
	if !g.first {
		g.first = true
		close(g.entered)
		<-g.release
	}
	return g.fakeGateway.Save(ctx, userID, snap)
}

// Un Save que llega con otro en vuelo se coalesce: el guardado en vuelo
// drena el último snapshot y el remoto termina con el estado final.
func TestSave_CoalesceConGuardadoEnVuelo(t *testing.T) {
	bg := &blockingGateway{
		fakeGateway: newFakeGateway(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	s := store.New()
	c := appsync.New(appsync.Config{UserID: "user-1", Store: s, Gateway: bg})

	s.AddProduct(store.ProductInput{Name: "Primero", Units: "1"})
	done := make(chan error, 1)
	go func() { done <- c.Save(context.Background()) }()
	<-bg.entered // el primer guardado está en vuelo

	// Dos mutaciones + saves mientras el primero sigue bloqueado: se
	// coalescen y solo sobrevive el último snapshot.
	s.AddProduct(store.ProductInput{Name: "Segundo", Units: "2"})
	require.NoError(t, c.Save(context.Background()))
	s.AddProduct(store.ProductInput{Name: "Tercero", Units: "3"})
	require.NoError(t, c.Save(context.Background()))

	close(bg.release)
	require.NoError(t, <-done)

	// Primer guardado + un único drenaje del snapshot coalescido.
	assert.Equal(t, 2, bg.saves)
	row := bg.rows["user-1"]
	require.Len(t, row.Products, 3)
	assert.Equal(t, "Tercero", row.Products[2].Name)
}
