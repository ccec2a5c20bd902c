package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	rules "github.com/jhoicas/EspacioDatos-api/internal/domain/lifecycle"
)

// GetIntake cuestionario de la empresa; domain.ErrNotFound si aún no se ha guardado.
func (uc *LifecycleUseCase) GetIntake(ctx context.Context, companyID string) (*dto.IntakeResponse, error) {
	if _, err := uc.loadCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	in, err := uc.loadIntake(ctx, uc.repos, companyID)
	if err != nil {
		return nil, err
	}
	return dto.IntakeFromEntity(in), nil
}

// SaveIntake crea o reemplaza el contenido del cuestionario sin cambiar su estado de envío.
// Un cliente no puede modificarlo una vez enviado.
func (uc *LifecycleUseCase) SaveIntake(ctx context.Context, actor *entity.User, companyID string, req dto.IntakeRequest) (*dto.IntakeResponse, error) {
	if _, err := uc.loadCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	existing, err := uc.repos.Intakes.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := rules.CanEditIntake(existing, actor); err != nil {
		return nil, err
	}

	now := uc.now()
	in := existing
	if in == nil {
		in = &entity.ClientIntake{ID: uuid.New().String(), CompanyID: companyID, CreatedAt: now}
	}
	in.DataTypes = cleanList(req.DataTypes)
	in.UsagePattern = strings.TrimSpace(req.UsagePattern)
	in.Interests = cleanList(req.Interests)
	in.SensitivityLevel = strings.TrimSpace(req.SensitivityLevel)
	in.Notes = strings.TrimSpace(req.Notes)
	in.UpdatedAt = now

	if in.SensitivityLevel != "" && !entity.ValidRisk(in.SensitivityLevel) {
		return nil, fmt.Errorf("%w: sensitivity_level debe ser bajo, medio o alto", domain.ErrInvalidInput)
	}
	if err := uc.repos.Intakes.Save(ctx, in); err != nil {
		return nil, err
	}
	return dto.IntakeFromEntity(in), nil
}

// SubmitIntake envía el cuestionario y marca la empresa como "recibida" en una transacción.
func (uc *LifecycleUseCase) SubmitIntake(ctx context.Context, actor *entity.User, companyID string) (*dto.IntakeResponse, error) {
	var out *entity.ClientIntake
	err := uc.tx.RunLifecycle(ctx, func(r Repos) error {
		c, err := uc.loadCompany(ctx, r, companyID)
		if err != nil {
			return err
		}
		in, err := uc.loadIntake(ctx, r, companyID)
		if err != nil {
			return err
		}
		if err := rules.SubmitIntake(in, c, uc.now()); err != nil {
			return err
		}
		if err := r.Intakes.Save(ctx, in); err != nil {
			return err
		}
		out = in
		return r.Companies.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Msg("cuestionario enviado")
	uc.publish(ctx, EventIntakeSubmitted, companyID, actor, nil)
	return dto.IntakeFromEntity(out), nil
}

// ResetIntake reabre el cuestionario para que el cliente pueda editarlo de nuevo.
func (uc *LifecycleUseCase) ResetIntake(ctx context.Context, actor *entity.User, companyID string) (*dto.IntakeResponse, error) {
	var out *entity.ClientIntake
	err := uc.tx.RunLifecycle(ctx, func(r Repos) error {
		c, err := uc.loadCompany(ctx, r, companyID)
		if err != nil {
			return err
		}
		in, err := uc.loadIntake(ctx, r, companyID)
		if err != nil {
			return err
		}
		rules.ResetIntake(in, c, uc.now())
		if err := r.Intakes.Save(ctx, in); err != nil {
			return err
		}
		out = in
		return r.Companies.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Msg("cuestionario reabierto")
	uc.publish(ctx, EventIntakeReset, companyID, actor, nil)
	return dto.IntakeFromEntity(out), nil
}

func (uc *LifecycleUseCase) loadIntake(ctx context.Context, r Repos, companyID string) (*entity.ClientIntake, error) {
	in, err := r.Intakes.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fmt.Errorf("%w: cuestionario no encontrado", domain.ErrNotFound)
	}
	return in, nil
}

// cleanList recorta los elementos y descarta los vacíos.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
