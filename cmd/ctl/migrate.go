package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de PostgreSQL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := postgres.MigrateUp(e.cfg.DB.ConnectionString()); err != nil {
					return err
				}
				e.log.Info().Msg("migraciones aplicadas")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [pasos]",
			Short: "Revierte migraciones (todas si no se indica el número de pasos)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 0
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("pasos inválidos: %q", args[0])
					}
					steps = n
				}
				if err := postgres.MigrateDown(e.cfg.DB.ConnectionString(), steps); err != nil {
					return err
				}
				e.log.Info().Int("steps", steps).Msg("migraciones revertidas")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Versión actual del esquema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, dirty, err := postgres.MigrationVersion(e.cfg.DB.ConnectionString())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
				return nil
			},
		},
	)
	return cmd
}
