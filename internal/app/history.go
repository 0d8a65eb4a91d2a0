package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/surveystat/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analysis runs",
	Long: `List runs saved with 'surveystat analyze --save', newest first.

Each row shows when the run was saved, how many rows were loaded, the mean
CGPA and Passion Score, and the overall correlation (n/a when undefined).
JSON and YAML output include the per-major correlations.`,
	Example: `  # Last 10 runs
  surveystat history

  # Every run, as JSON
  surveystat history --limit 0 --format json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show (0 for all)")
	historyCmd.Flags().String("format", string(output.FormatText), "output format (text, json, yaml)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	limit := viper.GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("invalid limit: %d (must be 0 or positive)", limit)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case output.FormatYAML:
		return yaml.NewEncoder(out).Encode(runs)
	default:
		fmt.Fprint(out, output.RenderHistoryTable(runs))
		return nil
	}
}
