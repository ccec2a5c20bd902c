package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/leadimport"
)

func newImportCmd(e *env) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "import <fichero.csv>",
		Short: "Da de alta como leads las empresas de un CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := leadimport.Encoding(encoding)
			if enc != leadimport.UTF8 && enc != leadimport.Latin1 {
				return fmt.Errorf("--encoding debe ser %s o %s", leadimport.UTF8, leadimport.Latin1)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			rows, rejected, err := leadimport.Read(f, enc)
			if err != nil {
				return err
			}
			for _, r := range rejected {
				e.log.Warn().Int("line", r.Line).Str("reason", r.Reason).Msg("fila descartada")
			}

			ctx := cmd.Context()
			svc, done, err := e.services(ctx)
			if err != nil {
				return err
			}
			defer done()

			reqs := make([]dto.CreateCompanyRequest, 0, len(rows))
			for _, r := range rows {
				reqs = append(reqs, r.Request)
			}
			out, err := svc.LeadImport.Import(ctx, nil, reqs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "altas: %d  duplicadas: %d  fallidas: %d  descartadas: %d\n",
				len(out.Created), len(out.Duplicates), len(out.Failed), len(rejected))
			for _, msg := range out.Failed {
				fmt.Fprintf(w, "  ! %s\n", msg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", string(leadimport.UTF8), "codificación del fichero: utf-8 | iso-8859-1")
	return cmd
}
