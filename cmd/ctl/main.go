// ctl tareas de operación: migraciones, datos demo e importación de leads.
//
// Uso:
//
//	go run ./cmd/ctl migrate up
//	go run ./cmd/ctl seed companies
//	go run ./cmd/ctl import leads.csv --encoding iso-8859-1
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/EspacioDatos-api/internal/bootstrap"
	"github.com/jhoicas/EspacioDatos-api/pkg/config"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// env configuración y logger cargados en PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "ctl",
		Short:         "Herramientas de operación de Espacio de Datos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(newMigrateCmd(e), newSeedCmd(e), newImportCmd(e))
	return root
}

// services abre el almacenamiento configurado sin migrar ni publicar eventos.
func (e *env) services(ctx context.Context) (*bootstrap.Services, func(), error) {
	st, err := bootstrap.OpenStorage(ctx, e.cfg, false, e.log)
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.NewServices(e.cfg, st, nil, e.log), st.Close, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
