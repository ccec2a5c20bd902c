package lifecycle

import (
	"context"
	"time"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

// Repos repositorios que participan en el ciclo de vida de una empresa.
type Repos struct {
	Companies   repository.CompanyRepository
	Diagnostics repository.DiagnosticRepository
	Projects    repository.ProjectRepository
	Intakes     repository.IntakeRepository
	Users       repository.UserRepository
}

// TxRunner ejecuta fn con repositorios atados a una única transacción: Commit si fn
// devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	RunLifecycle(ctx context.Context, fn func(r Repos) error) error
}

// Tipos de evento del ciclo de vida.
const (
	EventCompanyCreated    = "company.created"
	EventCompanyDeleted    = "company.deleted"
	EventDiagnosticDecided = "diagnostic.decided"
	EventIntakeSubmitted   = "intake.submitted"
	EventIntakeReset       = "intake.reset"
	EventProjectCompleted  = "project.completed"
)

// Event hecho ya confirmado en base de datos.
type Event struct {
	Type       string            `json:"type"`
	CompanyID  string            `json:"company_id"`
	ActorID    string            `json:"actor_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// EventPublisher puerto de salida para notificar transiciones. Se invoca tras el commit;
// un fallo se registra pero no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Event) error { return nil }
