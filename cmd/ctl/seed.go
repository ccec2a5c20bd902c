package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
)

func newSeedCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga idempotente de datos de demostración",
	}
	run := func(fn func(ctx context.Context, e *env) (*dto.SeedResponse, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			out, err := fn(cmd.Context(), e)
			if err != nil {
				return err
			}
			printSeed(cmd.OutOrStdout(), out)
			return nil
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "users",
			Short: "Crea admin, asesor y cliente de demostración",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, e *env) (*dto.SeedResponse, error) {
				svc, done, err := e.services(ctx)
				if err != nil {
					return nil, err
				}
				defer done()
				return svc.Seed.SeedUsers(ctx)
			}),
		},
		&cobra.Command{
			Use:   "companies",
			Short: "Crea una empresa de demostración en cada estado",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, e *env) (*dto.SeedResponse, error) {
				svc, done, err := e.services(ctx)
				if err != nil {
					return nil, err
				}
				defer done()
				return svc.Seed.SeedCompanies(ctx)
			}),
		},
	)
	return cmd
}

func printSeed(w io.Writer, out *dto.SeedResponse) {
	fmt.Fprintln(w, out.Message)
	for _, c := range out.Created {
		fmt.Fprintf(w, "  + %s\n", c)
	}
	keys := make([]string, 0, len(out.Credentials))
	for k := range out.Credentials {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cred := out.Credentials[k]
		fmt.Fprintf(w, "  %-12s %s / %s\n", k, cred.Email, cred.Password)
	}
}
