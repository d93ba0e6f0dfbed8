// Package session implementa el ciclo de vida de sesión por usuario: liga la
// creación/destrucción del store local, el coordinador de sync y el listener
// realtime a las transiciones de autenticación.
package session

import (
	"context"
	stdsync "sync"

	"github.com/asaskevich/EventBus"

	"github.com/jhoicas/Negocio-api/internal/application/sync"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/realtime"
	"github.com/jhoicas/Negocio-api/internal/store"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// State estados del ciclo de vida de autenticación de un usuario.
type State int

const (
	Unauthenticated State = iota
	CheckingSession
	Authenticated
)

// String para logs.
func (s State) String() string {
	switch s {
	case CheckingSession:
		return "checking_session"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session estado vivo de un usuario autenticado.
//
// ready se cierra cuando la inicialización (hidratación + listener) terminó,
// con éxito o no; initErr guarda el resultado. Coordinator y listener se
// escriben solo antes del cierre de ready: leerlos exige esperar el canal.
type Session struct {
	UserID      string
	Store       *store.Store
	Coordinator *sync.Coordinator
	listener    *realtime.Listener

	ready   chan struct{}
	initErr error

	mu    stdsync.RWMutex
	state State
}

// State devuelve el estado actual de la sesión.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Manager registra las sesiones activas y ejecuta los hooks de entrada y
// salida del estado Authenticated. Un re-ingreso (ej. refresh de token) es
// idempotente: solo el sign-in explícito dispara la hidratación, no cada
// broadcast de estado de auth.
type Manager struct {
	mu       stdsync.Mutex
	sessions map[string]*Session

	gateway     repository.SnapshotGateway
	bus         EventBus.Bus
	log         *logger.Logger
	autoSyncDef bool
}

// NewManager construye el manager. bus puede ser nil para desactivar la ruta
// realtime por completo.
func NewManager(gateway repository.SnapshotGateway, bus EventBus.Bus, autoSyncDefault bool, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		gateway:     gateway,
		bus:         bus,
		log:         log,
		autoSyncDef: autoSyncDefault,
	}
}

// OnSignedIn hook de entrada al estado Authenticated.
//
// Si el usuario ya tiene sesión viva devuelve la existente SIN re-hidratar
// (un refresh de token no debe recargar ni pisar el estado local). Si la
// sesión existe pero su inicialización sigue en vuelo (dos dispositivos
// entrando a la vez), la llamada espera a que termine: nadie recibe una
// sesión a medio hidratar, y un fallo de hidratación se propaga a todos los
// que esperaban. Para una sesión nueva: crea el store, hidrata desde el
// remoto con auto-sync apagado y solo después arranca el listener realtime.
func (m *Manager) OnSignedIn(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, domain.ErrNoSession
	}

	m.mu.Lock()
	if existing, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		select {
		case <-existing.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if existing.initErr != nil {
			return nil, existing.initErr
		}
		return existing, nil
	}
	s := &Session{
		UserID: userID,
		Store:  store.New(),
		ready:  make(chan struct{}),
		state:  CheckingSession,
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	coord := sync.New(sync.Config{
		UserID:  userID,
		Topic:   realtime.Topic(userID),
		Store:   s.Store,
		Gateway: m.gateway,
		Bus:     busOrNil(m.bus),
		Log:     m.log,
	})
	s.Coordinator = coord

	// Hidratación única de la sesión. Un fallo aquí aborta el sign-in:
	// sin snapshot inicial la sesión trabajaría sobre datos fantasma. La
	// sesión se descarta ANTES de cerrar ready, así quien esperaba recibe
	// el error y un reintento posterior arranca de cero.
	if err := coord.Hydrate(ctx); err != nil {
		s.initErr = err
		m.mu.Lock()
		delete(m.sessions, userID)
		m.mu.Unlock()
		close(s.ready)
		return nil, err
	}
	coord.SetAutoSync(m.autoSyncDef)

	if m.bus != nil {
		l, err := realtime.Subscribe(m.bus, userID, coord, m.log)
		if err != nil {
			m.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo suscribir el listener realtime")
		} else {
			s.listener = l
		}
	}

	s.setState(Authenticated)
	close(s.ready)
	m.log.Info().Str("user_id", userID).Str("state", s.State().String()).Msg("sesión iniciada")
	return s, nil
}

// OnSignedOut hook de salida del estado Authenticated: desuscribe el
// listener, vacía el store por completo (sin limpieza parcial) y descarta la
// sesión. Es seguro llamarlo para un usuario sin sesión.
func (m *Manager) OnSignedOut(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	// Espera al fin de la inicialización: cerrar una sesión a medio
	// hidratar dejaría listener y store en manos de la goroutine de entrada.
	<-s.ready
	if s.initErr != nil {
		return
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.Store.Clear()
	s.setState(Unauthenticated)
	m.log.Info().Str("user_id", userID).Msg("sesión cerrada y store vaciado")
}

// Resolve devuelve la sesión viva del usuario, o domain.ErrNoSession si no
// inició sesión (o el servidor se reinició y debe autenticarse de nuevo).
// Si el sign-in del usuario sigue hidratando, espera a que termine.
func (m *Manager) Resolve(userID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoSession
	}
	<-s.ready
	if s.initErr != nil {
		return nil, domain.ErrNoSession
	}
	return s, nil
}

// Active devuelve las sesiones vivas ya hidratadas (para jobs programados);
// las que siguen inicializando se omiten sin bloquear.
func (m *Manager) Active() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		select {
		case <-s.ready:
			if s.initErr == nil {
				out = append(out, s)
			}
		default:
		}
	}
	return out
}

// busOrNil evita pasar una interfaz no-nil con valor nil al coordinador.
func busOrNil(bus EventBus.Bus) sync.ChangeBus {
	if bus == nil {
		return nil
	}
	return bus
}
