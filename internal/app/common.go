package app

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
	"github.com/blackwell-systems/surveystat/internal/config"
	"github.com/blackwell-systems/surveystat/internal/output"
	"github.com/blackwell-systems/surveystat/internal/render"
	"github.com/blackwell-systems/surveystat/internal/store"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

// analysisSettings is the resolved configuration for one analysis run.
type analysisSettings struct {
	PlotDir string
	Save    bool
	Format  output.Format
	Load    survey.LoadOptions
}

// addAnalysisFlags registers the flags shared by analyze and watch.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("plots", "", "write figures as PNG files into this directory")
	cmd.Flags().Bool("save", false, "save a summary of the run to the history database")
	cmd.Flags().String("format", string(output.FormatText), "output format (text, json, yaml)")
	cmd.Flags().String("delimiter", "", "field delimiter (default: tab for .tsv, comma otherwise)")
	cmd.Flags().String("aliases", "", "header aliases file (default: $XDG_CONFIG_HOME/surveystat/aliases)")
}

// loadSettings resolves flags, environment and config file into settings.
func loadSettings() (analysisSettings, error) {
	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return analysisSettings{}, err
	}

	delim, err := parseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return analysisSettings{}, err
	}

	aliases, err := loadAliases(viper.GetString("aliases"))
	if err != nil {
		return analysisSettings{}, err
	}

	return analysisSettings{
		PlotDir: viper.GetString("plots"),
		Save:    viper.GetBool("save"),
		Format:  format,
		Load:    survey.LoadOptions{Delimiter: delim, Aliases: aliases},
	}, nil
}

// parseDelimiter accepts a single character, or "tab" / "\t".
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q (must be a single character)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// loadAliases reads the aliases file named by path, or the default one in the
// config directory when path is empty. Only the default may be absent.
func loadAliases(path string) (map[string]string, error) {
	if path != "" {
		cfg, err := config.LoadAliasesFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load aliases: %w", err)
		}
		return cfg.Aliases, nil
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, nil
	}
	cfg, err := config.LoadAliases(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	return cfg.Aliases, nil
}

// openStore opens the history database and ensures the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return st, nil
}

// status writes an informational line to w unless --quiet is set.
func status(w io.Writer, format string, args ...any) {
	if viper.GetBool("quiet") {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// runAnalysis loads path and runs the whole pipeline: report to out, then
// figures and history when configured. st may be nil when Save is false.
func runAnalysis(out, errOut io.Writer, path string, s analysisSettings, st *store.Store) (*analyzer.Report, error) {
	records, err := survey.Load(path, s.Load)
	if err != nil {
		return nil, err
	}
	records = survey.DeriveScores(records)
	rep := analyzer.Run(records)

	if err := output.WriteReport(out, rep, s.Format); err != nil {
		return rep, fmt.Errorf("failed to write report: %w", err)
	}

	if s.PlotDir != "" {
		if err := writeFigures(errOut, s.PlotDir, records, rep); err != nil {
			return rep, err
		}
	}

	if s.Save && st != nil {
		run := store.NewRun(path, rep)
		if err := st.SaveRun(run); err != nil {
			return rep, fmt.Errorf("failed to save run: %w", err)
		}
		status(errOut, "Saved run %s", run.ID)
	}

	return rep, nil
}

func writeFigures(errOut io.Writer, dir string, records []survey.Record, rep *analyzer.Report) error {
	var bar *output.ProgressBar
	if !viper.GetBool("quiet") {
		bar = output.NewProgress(render.Figures, "Rendering figures")
		bar.SetWriter(errOut)
	}

	written, err := render.Render(dir, records, rep, func(name string) {
		if bar != nil {
			bar.SetDescription(name)
			bar.Increment()
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to render figures: %w", err)
	}
	status(errOut, "Wrote %d figure(s) to %s", len(written), dir)
	return nil
}
