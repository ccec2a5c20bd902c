// Package events publica los eventos del ciclo de vida en NATS.
package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"

	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/pkg/config"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// conn lo mínimo que se usa de *nats.Conn.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

var _ lifecycle.EventPublisher = (*NATSPublisher)(nil)

// NATSPublisher publica cada evento como JSON en "<prefijo>.<tipo>",
// p. ej. espaciodatos.diagnostic.decided.
type NATSPublisher struct {
	nc     conn
	prefix string
}

// NewNATSPublisher envuelve una conexión ya abierta.
func NewNATSPublisher(nc conn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: strings.Trim(prefix, ".")}
}

// Connect abre la conexión con reconexión indefinida.
func Connect(cfg config.NATSConfig, log *logger.Logger) (*NATSPublisher, error) {
	l := log.Component("nats")
	nc, err := nats.Connect(cfg.URL,
		nats.Name("espacio-datos-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warn().Err(err).Msg("desconectado de NATS")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			l.Info().Str("url", c.ConnectedUrl()).Msg("reconectado a NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: conectar: %w", err)
	}
	return NewNATSPublisher(nc, cfg.SubjectPrefix), nil
}

// Publish serializa y envía el evento. No espera confirmación del servidor.
func (p *NATSPublisher) Publish(_ context.Context, ev lifecycle.Event) error {
	data, err := sonic.Marshal(ev)
	if err != nil {
		return fmt.Errorf("nats: serializar %s: %w", ev.Type, err)
	}
	if err := p.nc.Publish(p.Subject(ev.Type), data); err != nil {
		return fmt.Errorf("nats: publicar %s: %w", ev.Type, err)
	}
	return nil
}

// Subject asunto NATS de un tipo de evento.
func (p *NATSPublisher) Subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Close vacía los mensajes pendientes y cierra la conexión.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

// NewPublisher devuelve el publicador NATS si hay URL configurada y NopPublisher si no.
// El closer devuelto siempre es seguro de invocar.
func NewPublisher(cfg config.NATSConfig, log *logger.Logger) (lifecycle.EventPublisher, func() error, error) {
	if cfg.URL == "" {
		log.Info().Msg("NATS_URL vacío: eventos desactivados")
		return lifecycle.NopPublisher{}, func() error { return nil }, nil
	}
	p, err := Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("prefix", p.prefix).Msg("eventos publicados en NATS")
	return p, p.Close, nil
}
