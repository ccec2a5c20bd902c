// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/application/auth"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dashboard"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
	"github.com/jhoicas/EspacioDatos-api/internal/application/seed"
	"github.com/jhoicas/EspacioDatos-api/internal/application/usecase"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/memory"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/EspacioDatos-api/pkg/config"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// Storage repositorios y runner de transacciones del backend elegido.
type Storage struct {
	Repos lifecycle.Repos
	Tx    lifecycle.TxRunner
	Close func()
}

// OpenStorage abre el almacenamiento según APP_STORAGE. Con postgres aplica las
// migraciones pendientes si migrate es true.
func OpenStorage(ctx context.Context, cfg *config.Config, migrate bool, log *logger.Logger) (*Storage, error) {
	switch cfg.App.Storage {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Storage{Repos: store.Repos(), Tx: store, Close: func() {}}, nil

	case config.StoragePostgres:
		if migrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Storage{Repos: postgres.NewRepos(pool), Tx: postgres.NewTxRunner(pool), Close: pool.Close}, nil
	}
	return nil, fmt.Errorf("almacenamiento %q no soportado", cfg.App.Storage)
}

// Services casos de uso listos para montar en el router o usar desde la CLI.
type Services struct {
	Auth         *auth.AuthUseCase
	Users        *usecase.UserUseCase
	CompanyUsers *usecase.CompanyUserUseCase
	LeadImport   *usecase.LeadImportUseCase
	Lifecycle    *lifecycle.LifecycleUseCase
	Dashboard    *dashboard.DashboardUseCase
	Report       *report.ReportUseCase
	Seed         *seed.SeedUseCase
}

// NewServices construye los casos de uso sobre st. events puede ser nil.
func NewServices(cfg *config.Config, st *Storage, events lifecycle.EventPublisher, log *logger.Logger) *Services {
	r := st.Repos
	lc := lifecycle.NewLifecycleUseCase(r, st.Tx, events, log)
	return &Services{
		Auth: auth.NewAuthUseCase(r.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Users:        usecase.NewUserUseCase(r.Users, r.Companies),
		CompanyUsers: usecase.NewCompanyUserUseCase(r.Companies, r.Users),
		LeadImport:   usecase.NewLeadImportUseCase(lc),
		Lifecycle:    lc,
		Dashboard:    dashboard.NewDashboardUseCase(r.Users, r.Companies, r.Intakes, r.Projects),
		Report:       report.NewReportUseCase(r.Companies, r.Diagnostics, r.Projects, r.Intakes, pdf.NewMarotoReportGenerator()),
		Seed:         seed.NewSeedUseCase(r.Users, r.Companies, lc, log),
	}
}
