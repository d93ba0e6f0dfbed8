package session_test

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/realtime"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	rows     map[string]*entity.Snapshot
	loads    int
	failLoad bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: map[string]*entity.Snapshot{}}
}

func (g *fakeGateway) Save(_ context.Context, userID string, snap *entity.Snapshot) error {
	g.rows[userID] = snap.Clone()
	return nil
}

func (g *fakeGateway) Load(_ context.Context, userID string) (*entity.Snapshot, error) {
	g.loads++
	if g.failLoad {
		return nil, domain.ErrNetwork
	}
	row, ok := g.rows[userID]
	if !ok {
		return entity.EmptySnapshot(), nil
	}
	return row.Clone(), nil
}

// seedRemote deja una fila remota con un producto para el usuario.
func seedRemote(g *fakeGateway, userID, productName string) {
	snap := entity.EmptySnapshot()
	snap.Products = []entity.Product{{ID: 1, Name: productName, Units: "10"}}
	g.rows[userID] = snap
}

// ──────────────────────────────────────────────────────────────────────────────
// Sign-in
// ──────────────────────────────────────────────────────────────────────────────

// El sign-in hidrata el store con la fila remota del usuario.
func TestOnSignedIn_HidrataDesdeRemoto(t *testing.T) {
	g := newFakeGateway()
	seedRemote(g, "user-1", "Arroz")
	m := session.NewManager(g, nil, false, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, session.Authenticated, s.State())

	products := s.Store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Arroz", products[0].Name)
}

// Un usuario sin fila remota inicia sesión con colecciones vacías.
func TestOnSignedIn_UsuarioNuevoStoreVacio(t *testing.T) {
	g := newFakeGateway()
	m := session.NewManager(g, nil, false, nil)

	s, err := m.OnSignedIn(context.Background(), "user-nuevo")
	require.NoError(t, err)
	assert.True(t, s.Store.Snapshot().IsEmpty())
}

// Re-ingreso idempotente: la segunda llamada devuelve la misma sesión sin
// recargar del remoto ni pisar el estado local.
func TestOnSignedIn_ReingresoNoRehidrata(t *testing.T) {
	g := newFakeGateway()
	m := session.NewManager(g, nil, false, nil)

	s1, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, g.loads)

	// Edición local sin guardar.
	s1.Store.AddProduct(store.ProductInput{Name: "Sin guardar", Units: "1"})

	s2, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, g.loads, "el re-ingreso no debe recargar del remoto")
	assert.Len(t, s2.Store.Products(), 1)
}

// Un fallo de hidratación aborta el sign-in y no deja sesión a medias.
func TestOnSignedIn_FalloDeHidratacionAborta(t *testing.T) {
	g := newFakeGateway()
	g.failLoad = true
	m := session.NewManager(g, nil, false, nil)

	_, err := m.OnSignedIn(context.Background(), "user-1")
	require.ErrorIs(t, err, domain.ErrNetwork)

	_, err = m.Resolve("user-1")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

// UserID vacío no es un sign-in válido.
func TestOnSignedIn_UserIDVacio(t *testing.T) {
	m := session.NewManager(newFakeGateway(), nil, false, nil)
	_, err := m.OnSignedIn(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

// El flag por defecto de auto-sync del manager se aplica a la sesión nueva.
func TestOnSignedIn_AutoSyncPorDefecto(t *testing.T) {
	g := newFakeGateway()

	apagado := session.NewManager(g, nil, false, nil)
	s, err := apagado.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, s.Coordinator.AutoSync())

	encendido := session.NewManager(g, nil, true, nil)
	s, err = encendido.OnSignedIn(context.Background(), "user-2")
	require.NoError(t, err)
	assert.True(t, s.Coordinator.AutoSync())
}

// bloqueanteGateway retiene el primer Load hasta que el test lo libere, para
// simular una hidratación lenta con otro sign-in concurrente en curso.
type bloqueanteGateway struct {
	*fakeGateway
	entro   chan struct{}
	libera  chan struct{}
	primero stdsync.Once
}

func newBloqueanteGateway() *bloqueanteGateway {
	return &bloqueanteGateway{
		fakeGateway: newFakeGateway(),
		entro:       make(chan struct{}),
		libera:      make(chan struct{}),
	}
}

func (g *bloqueanteGateway) Load(ctx context.Context, userID string) (*entity.Snapshot, error) {
	bloquea := false
	g.primero.Do(func() { bloquea = true })
	if bloquea {
		close(g.entro)
		<-g.libera
	}
	return g.fakeGateway.Load(ctx, userID)
}

// Un segundo sign-in concurrente del mismo usuario espera la hidratación en
// vuelo y recibe la misma sesión ya autenticada, nunca una a medio cargar.
func TestOnSignedIn_ConcurrenteEsperaHidratacion(t *testing.T) {
	g := newBloqueanteGateway()
	seedRemote(g.fakeGateway, "user-1", "Arroz")
	m := session.NewManager(g, nil, false, nil)

	type resultado struct {
		s   *session.Session
		err error
	}
	primero := make(chan resultado, 1)
	go func() {
		s, err := m.OnSignedIn(context.Background(), "user-1")
		primero <- resultado{s, err}
	}()
	<-g.entro

	segundo := make(chan resultado, 1)
	go func() {
		s, err := m.OnSignedIn(context.Background(), "user-1")
		segundo <- resultado{s, err}
	}()

	// Con la hidratación retenida, el segundo sign-in no debe resolver aún.
	select {
	case <-segundo:
		t.Fatal("el segundo sign-in resolvió con la hidratación en vuelo")
	case <-time.After(50 * time.Millisecond):
	}

	close(g.libera)
	r1 := <-primero
	r2 := <-segundo
	require.NoError(t, r1.err)
	require.NoError(t, r2.err)
	assert.Same(t, r1.s, r2.s)
	assert.Equal(t, session.Authenticated, r2.s.State())

	products := r2.s.Store.Products()
	require.Len(t, products, 1, "la sesión entregada debe estar hidratada")
	assert.Equal(t, "Arroz", products[0].Name)
	assert.Equal(t, 1, g.loads, "una sola hidratación para ambos sign-in")
}

// Si la hidratación en vuelo falla, el error llega también a quien esperaba y
// no queda sesión registrada.
func TestOnSignedIn_ConcurrenteRecibeFalloDeHidratacion(t *testing.T) {
	g := newBloqueanteGateway()
	g.failLoad = true
	m := session.NewManager(g, nil, false, nil)

	primero := make(chan error, 1)
	go func() {
		_, err := m.OnSignedIn(context.Background(), "user-1")
		primero <- err
	}()
	<-g.entro

	segundo := make(chan error, 1)
	go func() {
		_, err := m.OnSignedIn(context.Background(), "user-1")
		segundo <- err
	}()

	close(g.libera)
	require.ErrorIs(t, <-primero, domain.ErrNetwork)
	require.ErrorIs(t, <-segundo, domain.ErrNetwork)

	_, err := m.Resolve("user-1")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sign-out
// ──────────────────────────────────────────────────────────────────────────────

// El sign-out vacía el store por completo y descarta la sesión.
func TestOnSignedOut_VaciaStoreYDescartaSesion(t *testing.T) {
	g := newFakeGateway()
	seedRemote(g, "user-1", "Arroz")
	m := session.NewManager(g, nil, false, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, s.Store.Products())

	m.OnSignedOut("user-1")

	assert.True(t, s.Store.Snapshot().IsEmpty())
	_, err = m.Resolve("user-1")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

// Sign-out de un usuario sin sesión es un no-op seguro.
func TestOnSignedOut_SinSesionEsNoOp(t *testing.T) {
	m := session.NewManager(newFakeGateway(), nil, false, nil)
	m.OnSignedOut("fantasma")
}

// Tras el sign-out, los eventos del bus ya no tocan el store de la sesión
// cerrada: el listener quedó desuscrito.
func TestOnSignedOut_DesuscribeListener(t *testing.T) {
	g := newFakeGateway()
	bus := EventBus.New()
	m := session.NewManager(g, bus, true, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)

	m.OnSignedOut("user-1")

	// Simula un guardado de "otra sesión" del mismo usuario.
	seedRemote(g, "user-1", "Remoto nuevo")
	bus.Publish(realtime.Topic("user-1"), "otra-instancia")
	bus.WaitAsync()
	time.Sleep(20 * time.Millisecond)

	assert.True(t, s.Store.Snapshot().IsEmpty(), "la sesión cerrada no debe recibir pulls")
}

// ──────────────────────────────────────────────────────────────────────────────
// Realtime entre sesiones
// ──────────────────────────────────────────────────────────────────────────────

// Con auto-sync activo, una notificación de cambio ajena recarga el store.
func TestListener_PullAnteNotificacionAjena(t *testing.T) {
	g := newFakeGateway()
	bus := EventBus.New()
	m := session.NewManager(g, bus, true, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, s.Store.Snapshot().IsEmpty())

	seedRemote(g, "user-1", "Escrito por otra sesión")
	bus.Publish(realtime.Topic("user-1"), "otra-instancia")
	bus.WaitAsync()
	time.Sleep(20 * time.Millisecond)

	products := s.Store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Escrito por otra sesión", products[0].Name)
}

// Con auto-sync apagado la notificación se descarta.
func TestListener_IgnoraNotificacionConAutoSyncApagado(t *testing.T) {
	g := newFakeGateway()
	bus := EventBus.New()
	m := session.NewManager(g, bus, false, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)

	seedRemote(g, "user-1", "No debe llegar")
	bus.Publish(realtime.Topic("user-1"), "otra-instancia")
	bus.WaitAsync()
	time.Sleep(20 * time.Millisecond)

	assert.True(t, s.Store.Snapshot().IsEmpty())
}

// El eco del propio guardado no dispara un pull de la misma sesión.
func TestListener_IgnoraEcoPropio(t *testing.T) {
	g := newFakeGateway()
	bus := EventBus.New()
	m := session.NewManager(g, bus, true, nil)

	s, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	loadsTrasSignIn := g.loads

	s.Store.AddProduct(store.ProductInput{Name: "Propio", Units: "1"})
	require.NoError(t, s.Coordinator.Save(context.Background()))
	bus.WaitAsync()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, loadsTrasSignIn, g.loads, "el eco propio no debe recargar")
	assert.Len(t, s.Store.Products(), 1)
}

// Active lista las sesiones vivas para los jobs programados.
func TestActive_ListaSesionesVivas(t *testing.T) {
	g := newFakeGateway()
	m := session.NewManager(g, nil, false, nil)

	_, err := m.OnSignedIn(context.Background(), "user-1")
	require.NoError(t, err)
	_, err = m.OnSignedIn(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Len(t, m.Active(), 2)

	m.OnSignedOut("user-1")
	assert.Len(t, m.Active(), 1)
}
