// Package lifecycle orquesta el ciclo Empresa → Diagnóstico → Proyecto/Intake: carga las
// entidades, aplica las reglas de internal/domain/lifecycle y persiste en una transacción.
package lifecycle

import (
	"context"
	"time"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// LifecycleUseCase casos de uso del ciclo de vida de empresas.
type LifecycleUseCase struct {
	repos  Repos // fuera de transacción (lecturas y escrituras de una sola fila)
	tx     TxRunner
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// Option personaliza el caso de uso.
type Option func(*LifecycleUseCase)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *LifecycleUseCase) { uc.now = now }
}

// NewLifecycleUseCase construye el caso de uso. events y log pueden ser nil.
func NewLifecycleUseCase(repos Repos, tx TxRunner, events EventPublisher, log *logger.Logger, opts ...Option) *LifecycleUseCase {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	uc := &LifecycleUseCase{
		repos:  repos,
		tx:     tx,
		events: events,
		log:    log.Component("lifecycle"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// publish notifica un evento ya confirmado. Los fallos solo se registran.
func (uc *LifecycleUseCase) publish(ctx context.Context, typ, companyID string, actor *entity.User, attrs map[string]string) {
	ev := Event{Type: typ, CompanyID: companyID, OccurredAt: uc.now(), Attributes: attrs}
	if actor != nil {
		ev.ActorID = actor.ID
	}
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", typ).Str("company_id", companyID).Msg("no se pudo publicar el evento")
	}
}
