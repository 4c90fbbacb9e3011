package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	catalogcmd "github.com/Alijeyrad/angket_backend/cmd/catalog"
	httpcmd "github.com/Alijeyrad/angket_backend/cmd/http"
	scorecmd "github.com/Alijeyrad/angket_backend/cmd/score"
	systemcmd "github.com/Alijeyrad/angket_backend/cmd/system"
)

var (
	cfgFile string
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "angket",
		Short: "Angket PDBK scoring service for learners with special needs.",
		Long: `Angket PDBK scores the 43-item HATI/AKAL/JASAD observation instrument.
Operators enter 1-4 scores per item, commit one summary row per learner to a
ledger and export the ledger as an Excel workbook, over HTTP or in batch.`,
		SilenceUsage: true,
	}

	// Global config flag, available for all commands.
	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	root.AddCommand(systemcmd.NewSystemCommand())
	root.AddCommand(httpcmd.NewHTTPCommand())
	root.AddCommand(catalogcmd.NewCatalogCommand())
	root.AddCommand(scorecmd.NewScoreCommand())

	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
