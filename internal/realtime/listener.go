// Package realtime implementa el listener de cambios remotos por usuario
// sobre un bus de eventos en proceso (asaskevich/EventBus). El gateway
// publica en el tópico del usuario tras cada guardado exitoso; las demás
// sesiones del mismo usuario reciben la notificación y, si tienen auto-sync
// activo, recargan su store.
package realtime

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"

	appsync "github.com/jhoicas/Negocio-api/internal/application/sync"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// Topic devuelve el tópico de cambios de la fila user_data de un usuario.
func Topic(userID string) string {
	return "userdata:" + userID
}

// pullTimeout acota el Load disparado por una notificación.
const pullTimeout = 30 * time.Second

// Listener suscripción de una sesión al feed de cambios de su usuario.
// El teardown (Close) es obligatorio al cerrar sesión o desmontar la sesión:
// una suscripción viva entregaría notificaciones de un usuario anterior al
// store de una sesión nueva.
type Listener struct {
	bus     EventBus.Bus
	topic   string
	coord   *appsync.Coordinator
	log     *logger.Logger
	handler func(origin string)
}

// Subscribe registra el listener en el tópico del usuario y lo arranca.
func Subscribe(bus EventBus.Bus, userID string, coord *appsync.Coordinator, log *logger.Logger) (*Listener, error) {
	if log == nil {
		log = logger.Nop()
	}
	l := &Listener{
		bus:   bus,
		topic: Topic(userID),
		coord: coord,
		log:   log,
	}
	// Se guarda la referencia exacta del handler: Unsubscribe la necesita.
	l.handler = func(origin string) { l.onChange(origin) }
	if err := bus.SubscribeAsync(l.topic, l.handler, false); err != nil {
		return nil, err
	}
	log.Debug().Str("topic", l.topic).Msg("listener realtime suscrito")
	return l, nil
}

// onChange es la ruta de pull: descarta los ecos de la propia sesión y las
// notificaciones con auto-sync apagado; el resto sobreescribe el store local
// con el snapshot remoto.
func (l *Listener) onChange(origin string) {
	if origin == l.coord.Origin() {
		return
	}
	if !l.coord.AutoSync() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pullTimeout)
	defer cancel()
	if err := l.coord.Pull(ctx); err != nil {
		// No fatal: el siguiente disparo explícito reintenta.
		l.log.Warn().Err(err).Str("topic", l.topic).Msg("pull por notificación fallido")
	}
}

// Close desuscribe el listener del bus.
func (l *Listener) Close() {
	if err := l.bus.Unsubscribe(l.topic, l.handler); err != nil {
		l.log.Warn().Err(err).Str("topic", l.topic).Msg("unsubscribe fallido")
	}
}
