package score

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/angket_backend/config"
	"github.com/Alijeyrad/angket_backend/internal/app"
	"github.com/Alijeyrad/angket_backend/internal/batch"
	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
	"github.com/Alijeyrad/angket_backend/pkg/logs"
)

type options struct {
	input  string
	output string
	audit  bool
}

func NewScoreCommand() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a YAML batch of learners and write the ledger workbook",
		Long: `Score reads a YAML file of learners, scores each one on a fresh sheet,
commits every learner to a ledger and writes the ledger as an .xlsx workbook.

Scores are keyed by item id (see "angket catalog list"); omitted items keep
the baseline score of 1.`,
		Example: `  angket score --input kelas4.yaml --output rekap.xlsx --audit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				cfgPath = "config.yaml"
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}
			slog.SetDefault(logs.New(cfg))

			return run(cmd.Context(), cfg, o, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&o.input, "input", "i", "", "YAML batch file ('-' for stdin)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "workbook path (default: dated file name in the current directory)")
	cmd.Flags().BoolVar(&o.audit, "audit", false, "add a sheet with the last learner's item scores")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, o options, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	in, err := openInput(o.input)
	if err != nil {
		return err
	}
	defer in.Close()

	file, err := batch.Decode(in)
	if err != nil {
		return err
	}

	svc := assessment.New(assessment.Options{
		Catalog:      instrument.Default(),
		Exporter:     app.ProvideExporter(cfg),
		Logger:       slog.Default().With("component", "batch"),
		IncludeItems: o.audit,
	})
	out, err := batch.Run(ctx, svc, file)
	if err != nil {
		return err
	}

	path := o.output
	if path == "" {
		path = out.FileName
	}
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Fprintf(stdout, "%d learners scored, workbook written to %s\n", out.Rows, path)
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	return f, nil
}
