package main

import (
	"encoding/json"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/pkg/logger"
)

var assessCmd = &cobra.Command{
	Use:   "assess <location>",
	Short: "Print the risk assessment for a location",
	Long:  "Looks up the curated risk table, or synthesizes scores for unknown places, and prints the assessment as JSON. No network access or API keys are needed.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	svc := risk.NewService(
		risk.Config{},
		risk.CuratedTable(),
		risk.NewSynthesizer(),
		clockwork.NewRealClock(),
		nil,
		logger.New(),
	)

	result, err := svc.Assess(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
