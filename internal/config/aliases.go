// Package config locates the surveystat config directory and parses the
// header aliases file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/surveystat/internal/survey"
)

// AliasesFile is the name of the aliases file inside the config directory.
const AliasesFile = "aliases"

// Dir returns the surveystat config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/surveystat if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "surveystat"), nil
}

// AliasConfig holds the header aliases declared by the user. Each key is a
// header text as it appears in some export and the value is the canonical
// column header it stands for.
type AliasConfig struct {
	Aliases map[string]string
}

// LoadAliases reads the aliases file at {dir}/aliases. If the file does not
// exist, an empty config is returned without an error.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg, err := LoadAliasesFile(filepath.Join(dir, AliasesFile))
	if os.IsNotExist(err) {
		return &AliasConfig{Aliases: make(map[string]string)}, nil
	}
	return cfg, err
}

// LoadAliasesFile parses one aliases file. Each line has the form
//
//	header text=column
//
// where column is a short key (cgpa, major, desire, masters, alignment,
// engagement, reason) or the full canonical header. The last "=" on the line
// separates the two sides, so header text may itself contain "=". Blank lines
// and lines starting with "#" are ignored; malformed lines are skipped.
func LoadAliasesFile(path string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.LastIndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		header := strings.TrimSpace(line[:idx])
		target := strings.TrimSpace(line[idx+1:])
		if header == "" || target == "" {
			continue
		}

		col, ok := survey.LookupColumn(target)
		if !ok {
			log.Warn().Str("file", path).Int("line", lineNo).Str("column", target).Msg("unknown column in aliases, skipping")
			continue
		}
		cfg.Aliases[header] = string(col)
	}

	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	return cfg, nil
}
