package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/surveystat/internal/output"
	"github.com/blackwell-systems/surveystat/internal/store"
	"github.com/blackwell-systems/surveystat/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-run the analysis whenever the survey file changes",
	Long: `Run the analysis once, then again each time FILE is written, replaced or
renamed. Changes arriving close together trigger a single run.

A file that fails to load is reported and the watcher keeps going, so a
half-written export does not end the session. Press Ctrl+C to stop.`,
	Example: `  # Re-print the summary on every save
  surveystat watch survey.csv

  # Refresh the figures and keep history too
  surveystat watch survey.csv --plots ./plots --save`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addAnalysisFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watcher.DefaultDebounce, "quiet period before re-running")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	spinner := output.NewSpinner(fmt.Sprintf("Watching %s for changes (press Ctrl+C to stop)", path))
	spinner.SetWriter(errOut)

	analyze := func() error {
		spinner.Stop()
		defer func() {
			if !viper.GetBool("quiet") {
				spinner.Start()
			}
		}()
		_, err := runAnalysis(out, errOut, path, settings, st)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return err
	}

	if err := analyze(); err != nil {
		log.Debug().Err(err).Msg("initial run failed, watching anyway")
	}

	err = watcher.Run(ctx, path, viper.GetDuration("debounce"), analyze)
	spinner.Stop()
	return err
}
