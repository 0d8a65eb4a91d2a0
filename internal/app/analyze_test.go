package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/surveystat/internal/render"
	"github.com/blackwell-systems/surveystat/internal/store"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

const surveyHeader = `"Did you want to pursue that major?","Do you consider pursuing a master's degree?",` +
	`"Do you believe your chosen major aligns with your interests and career goals?",` +
	`"How much do you engage in activities related to your major outside of your coursework?",` +
	`"What is your CGPA?","What is your major?","If your answer was no, why did you choose it?"`

// Passion Scores 8, -1, 5, 4.
const surveyRows = `Yes,Yes,Yes,Frequently,3.8,CS,My answer was yes
No,No,No,Never,2.9,Business,Family pressure
Yes,No,Yes,Occasionally,3.4,CS,My answer was yes
Yes,Yes,No,Rarely,3.4,Business,My answer was yes
`

func writeSurvey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte(surveyHeader+"\n"+surveyRows), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	if analyzeCmd.Use != "analyze FILE" {
		t.Errorf("expected Use to be 'analyze FILE', got '%s'", analyzeCmd.Use)
	}
	if analyzeCmd.Long == "" || analyzeCmd.Example == "" {
		t.Error("expected Long and Example to be set")
	}
	for _, name := range []string{"plots", "save", "format", "delimiter", "aliases"} {
		if analyzeCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be registered", name)
		}
	}
}

func TestAnalyze_TextReport(t *testing.T) {
	path := writeSurvey(t)

	out, _, err := execute(t, context.Background(), "analyze", path, "--quiet")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, want := range []string{
		"Median CGPA: 3.4\n",
		"Mode CGPA: 3.4\n",
		"Mean Passion Score: 4.0\n",
		"Median Passion Score: 4.5\n",
		"Mode Passion Score: None\n",
		"Business",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasPrefix(out, "Mean CGPA: ") {
		t.Errorf("output should start with the CGPA mean:\n%s", out)
	}
}

func TestAnalyze_HeaderOnlyWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte("\ufeff"+surveyHeader+"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, _, err := execute(t, context.Background(), "analyze", path, "--quiet")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{
		"Mean CGPA: None\n",
		"Mode Passion Score: None\n",
		"nan\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze_JSON(t *testing.T) {
	path := writeSurvey(t)

	out, _, err := execute(t, context.Background(), "analyze", path, "--format", "json", "--quiet")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var got struct {
		Rows    int `json:"rows"`
		Scored  int `json:"scored"`
		Passion struct {
			Mean *float64 `json:"mean"`
			Mode *float64 `json:"mode"`
		} `json:"passion_score"`
		Majors []struct {
			Major string `json:"major"`
			Pairs int    `json:"pairs"`
		} `json:"majors"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Rows != 4 || got.Scored != 4 {
		t.Errorf("rows/scored = %d/%d, want 4/4", got.Rows, got.Scored)
	}
	if got.Passion.Mean == nil || *got.Passion.Mean != 4 {
		t.Errorf("passion mean = %v, want 4", got.Passion.Mean)
	}
	if got.Passion.Mode != nil {
		t.Errorf("passion mode = %v, want null", *got.Passion.Mode)
	}
	if len(got.Majors) != 2 || got.Majors[0].Major != "CS" || got.Majors[1].Pairs != 2 {
		t.Errorf("unexpected majors: %+v", got.Majors)
	}
}

func TestAnalyze_InvalidFormat(t *testing.T) {
	path := writeSurvey(t)
	_, _, err := execute(t, context.Background(), "analyze", path, "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("expected invalid format error, got %v", err)
	}
}

func TestAnalyze_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	content := `"What is your major?","What is your CGPA?"` + "\nCS,3.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, context.Background(), "analyze", path, "--quiet")
	if !errors.Is(err, survey.ErrDataLoad) {
		t.Fatalf("expected ErrDataLoad, got %v", err)
	}
	if out != "" {
		t.Errorf("expected no report when loading fails, got:\n%s", out)
	}
}

func TestAnalyze_Aliases(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "survey.csv")
	renamed := strings.Replace(surveyHeader, `"What is your CGPA?"`, `"GPA"`, 1)
	if err := os.WriteFile(data, []byte(renamed+"\n"+surveyRows), 0644); err != nil {
		t.Fatal(err)
	}
	aliases := filepath.Join(dir, "headers.conf")
	if err := os.WriteFile(aliases, []byte("GPA=cgpa\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, context.Background(), "analyze", data, "--quiet"); !errors.Is(err, survey.ErrDataLoad) {
		t.Fatalf("expected ErrDataLoad without aliases, got %v", err)
	}

	out, _, err := execute(t, context.Background(), "analyze", data, "--aliases", aliases, "--quiet")
	if err != nil {
		t.Fatalf("analyze with aliases failed: %v", err)
	}
	if !strings.Contains(out, "Median CGPA: 3.4\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAnalyze_Plots(t *testing.T) {
	path := writeSurvey(t)
	plots := filepath.Join(t.TempDir(), "plots")

	_, stderr, err := execute(t, context.Background(), "analyze", path, "--plots", plots)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, name := range []string{
		render.FileScatter, render.FileCGPABox, render.FilePassionBox,
		render.FileEngagement, render.FileResponses, render.FileMajors,
	} {
		if _, err := os.Stat(filepath.Join(plots, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	if !strings.Contains(stderr, "Wrote 6 figure(s)") {
		t.Errorf("expected status line on stderr, got:\n%s", stderr)
	}
}

func TestAnalyze_SaveAndHistory(t *testing.T) {
	path := writeSurvey(t)
	db := filepath.Join(t.TempDir(), "history.db")

	_, stderr, err := execute(t, context.Background(), "analyze", path, "--save", "--db", db)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	idx := strings.Index(stderr, "Saved run ")
	if idx < 0 {
		t.Fatalf("expected 'Saved run' on stderr, got:\n%s", stderr)
	}
	id := strings.Fields(stderr[idx+len("Saved run "):])[0]

	out, _, err := execute(t, context.Background(), "history", "--db", db)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, id[:8]) {
		t.Errorf("history should list run %s:\n%s", id[:8], out)
	}

	out, _, err = execute(t, context.Background(), "history", "--db", db, "--format", "json")
	if err != nil {
		t.Fatalf("history --format json failed: %v", err)
	}
	var runs []store.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].Rows != 4 || len(runs[0].Majors) != 2 {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	out, _, err := execute(t, context.Background(), "history", "--db", db)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No saved runs found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHistory_InvalidLimit(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	_, _, err := execute(t, context.Background(), "history", "--db", db, "--limit", "-1")
	if err == nil {
		t.Error("expected an error for a negative limit")
	}
}

func TestWatch_RerunsOnChange(t *testing.T) {
	path := writeSurvey(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		time.Sleep(500 * time.Millisecond)
		_ = os.WriteFile(path, []byte(surveyHeader+"\n"+surveyRows+surveyRows), 0644)
	}()

	out, stderr, err := execute(t, ctx, "watch", path, "--debounce", "50ms")
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if n := strings.Count(out, "Mean CGPA: "); n < 2 {
		t.Errorf("expected at least 2 reports, got %d:\n%s", n, out)
	}
	if !strings.Contains(stderr, "Watching "+path) {
		t.Errorf("expected watching status on stderr, got:\n%s", stderr)
	}
}

func TestWatch_KeepsGoingAfterLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte("not,a,survey\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, stderr, err := execute(t, ctx, "watch", path, "--quiet")
	if err != nil {
		t.Fatalf("watch should not fail on a bad file: %v", err)
	}
	if !strings.Contains(stderr, "Error: ") {
		t.Errorf("expected the load error on stderr, got:\n%s", stderr)
	}
}
