// Package sync implementa el coordinador de sincronización local/remoto:
// hidratación al iniciar sesión, push explícito del snapshot local y pull
// ante notificaciones de cambio remoto.
package sync

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/store"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// ChangeBus es el contrato mínimo de publicación que necesita el coordinador
// para anunciar cambios remotos. Lo implementa EventBus.Bus; la interfaz
// evita acoplar este paquete al listener.
type ChangeBus interface {
	Publish(topic string, args ...interface{})
}

// Config dependencias del coordinador. Bus puede ser nil (sin realtime).
type Config struct {
	UserID  string
	Topic   string // tópico de cambios del usuario (realtime.Topic)
	Store   *store.Store
	Gateway repository.SnapshotGateway
	Bus     ChangeBus
	Log     *logger.Logger
}

// Coordinator secuencia las tres operaciones del mecanismo de sync para una
// sesión: Hydrate (carga inicial), Save (push explícito) y Pull (recarga por
// notificación). Los guardados de una misma sesión se serializan: un Save que
// llega con otro en vuelo se coalesce al último snapshot (last-write-wins),
// nunca se intercalan escrituras.
type Coordinator struct {
	userID  string
	origin  string
	topic   string
	store   *store.Store
	gateway repository.SnapshotGateway
	bus     ChangeBus
	log     *logger.Logger

	autoSync atomic.Bool

	mu      sync.Mutex
	saving  bool
	pending *entity.Snapshot
}

var originSeq atomic.Int64

// New construye el coordinador. AutoSync arranca deshabilitado: el push/pull
// se dispara solo por acción explícita del caller hasta que se active el flag.
func New(cfg Config) *Coordinator {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Coordinator{
		userID:  cfg.UserID,
		origin:  originID(),
		topic:   cfg.Topic,
		store:   cfg.Store,
		gateway: cfg.Gateway,
		bus:     cfg.Bus,
		log:     cfg.Log,
	}
}

// Origin identifica esta instancia del coordinador en los eventos de cambio,
// para que su propio listener descarte los ecos de sus guardados.
func (c *Coordinator) Origin() string { return c.origin }

// SetAutoSync habilita o deshabilita el pull automático ante notificaciones
// de cambio remoto. Solo afecta la ruta realtime; Save/Pull explícitos
// funcionan siempre.
func (c *Coordinator) SetAutoSync(enabled bool) {
	c.autoSync.Store(enabled)
	c.log.Info().Str("user_id", c.userID).Bool("auto_sync", enabled).Msg("auto-sync actualizado")
}

// AutoSync devuelve el estado del flag.
func (c *Coordinator) AutoSync() bool { return c.autoSync.Load() }

// Hydrate carga el snapshot remoto y lo vuelca al store local. Un usuario sin
// fila remota hidrata colecciones vacías sin error. Se invoca una sola vez al
// iniciar sesión; los refrescos posteriores van por Pull.
func (c *Coordinator) Hydrate(ctx context.Context) error {
	snap, err := c.gateway.Load(ctx, c.userID)
	if err != nil {
		c.log.Error().Err(err).Str("user_id", c.userID).Msg("hidratación fallida")
		return err
	}
	c.store.Hydrate(snap)
	c.log.Info().Str("user_id", c.userID).
		Int("products", len(snap.Products)).
		Int("sales", len(snap.Sales)).
		Msg("store hidratado desde remoto")
	return nil
}

// Save toma el snapshot actual del store y lo escribe a la fila remota.
// Si ya hay un guardado en vuelo para esta sesión, el snapshot se encola
// coalesciendo (solo sobrevive el último) y la llamada devuelve nil: el
// guardado en vuelo lo drenará al terminar. Nunca hay dos escrituras
// intercaladas de la misma sesión.
//
// Un fallo se registra y se devuelve; no hay reintento automático. El
// siguiente disparo explícito vuelve a intentar con el estado local vigente.
func (c *Coordinator) Save(ctx context.Context) error {
	snap := c.store.Snapshot()

	c.mu.Lock()
	if c.saving {
		c.pending = snap
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	c.mu.Unlock()

	var firstErr error
	for {
		if err := c.gateway.Save(ctx, c.userID, snap); err != nil {
			c.log.Error().Err(err).Str("user_id", c.userID).Msg("guardado remoto fallido")
			if firstErr == nil {
				firstErr = err
			}
		} else {
			c.log.Debug().Str("user_id", c.userID).Msg("snapshot guardado en remoto")
			if c.bus != nil {
				c.bus.Publish(c.topic, c.origin)
			}
		}

		c.mu.Lock()
		if c.pending == nil {
			c.saving = false
			c.mu.Unlock()
			return firstErr
		}
		snap = c.pending
		c.pending = nil
		c.mu.Unlock()
	}
}

// Pull recarga el snapshot remoto y sobreescribe el estado local completo.
// Es last-remote-write-wins: no hay merge por campo, así que una edición
// local no guardada puede perderse. Trade-off explícito del diseño, no un
// bug a corregir en silencio.
func (c *Coordinator) Pull(ctx context.Context) error {
	snap, err := c.gateway.Load(ctx, c.userID)
	if err != nil {
		c.log.Error().Err(err).Str("user_id", c.userID).Msg("pull remoto fallido")
		return err
	}
	c.store.Hydrate(snap)
	c.log.Debug().Str("user_id", c.userID).Msg("store sobrescrito con snapshot remoto")
	return nil
}

// originID genera un identificador único de instancia dentro del proceso.
func originID() string {
	return "coord-" + strconv.FormatInt(originSeq.Add(1), 10)
}
