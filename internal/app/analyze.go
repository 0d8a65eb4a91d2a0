package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/surveystat/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a survey export",
	Long: `Load a survey export, derive each respondent's Passion Score and report:

  • mean, median and mode of CGPA and of the Passion Score
  • the Pearson correlation between CGPA and Passion Score
  • the same correlation within each major

Missing values are dropped per statistic: a respondent without a CGPA still
counts toward the Passion Score statistics, and correlations only use
respondents with both values. A mode is reported as None unless one value is
strictly the most frequent.

The file must contain these columns (header text, in any order):
  What is your major?
  What is your CGPA?
  Did you want to pursue that major?
  If your answer was no, why did you choose it?
  Do you consider pursuing a master's degree?
  Do you believe your chosen major aligns with your interests and career goals?
  How much do you engage in activities related to your major outside of your coursework?

Exports with different header text can be mapped with an aliases file, one
"header text=column" per line, where column is cgpa, major, desire, masters,
alignment, engagement or reason.`,
	Example: `  # Summary statistics and correlations
  surveystat analyze survey.csv

  # Write the figures to ./plots
  surveystat analyze survey.csv --plots ./plots

  # Machine-readable output
  surveystat analyze survey.csv --format json

  # Tab-separated export with custom headers
  surveystat analyze export.txt --delimiter tab --aliases headers.conf

  # Save the run to the history database
  surveystat analyze survey.csv --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	addAnalysisFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var st *store.Store
	if settings.Save {
		st, err = openStore()
		if err != nil {
			return err
		}
		defer st.Close()
	}

	_, err = runAnalysis(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], settings, st)
	return err
}
