package lifecycle

import (
	"fmt"
	"time"

	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// CanEditIntake decide si actor puede crear/modificar el intake. El cliente solo puede
// hacerlo mientras no esté enviado; el personal interno siempre. existing puede ser nil.
func CanEditIntake(existing *entity.ClientIntake, actor *entity.User) error {
	if actor.IsStaff() {
		return nil
	}
	if existing != nil && existing.Submitted {
		return fmt.Errorf("%w: el cuestionario ya fue enviado", domain.ErrInvalidState)
	}
	return nil
}

// SubmitIntake marca el intake como enviado y la empresa como "recibida".
func SubmitIntake(in *entity.ClientIntake, c *entity.Company, now time.Time) error {
	if in.Submitted {
		return fmt.Errorf("%w: el cuestionario ya fue enviado", domain.ErrInvalidState)
	}
	submittedAt := now
	in.Submitted = true
	in.SubmittedAt = &submittedAt
	in.UpdatedAt = now
	c.IntakeStatus = entity.IntakeStatusRecibida
	c.UpdatedAt = now
	return nil
}

// ResetIntake única transición hacia atrás: vuelve a dejar el intake editable.
func ResetIntake(in *entity.ClientIntake, c *entity.Company, now time.Time) {
	in.Submitted = false
	in.SubmittedAt = nil
	in.UpdatedAt = now
	c.IntakeStatus = entity.IntakeStatusPendiente
	c.UpdatedAt = now
}
