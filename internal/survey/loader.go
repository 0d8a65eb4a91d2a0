// Package survey loads survey exports and derives per-respondent scores.
package survey

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
)

// ErrDataLoad is returned when the input file is missing, unreadable, malformed
// or lacks one of the required columns.
var ErrDataLoad = errors.New("cannot load survey data")

// LoadOptions controls how a survey file is read.
type LoadOptions struct {
	// Delimiter separates fields. If 0, it is chosen from the file extension:
	// tab for .tsv, comma otherwise.
	Delimiter rune
	// Aliases maps alternative header texts to canonical column names.
	Aliases map[string]string
}

// Load reads the survey file at path. Records are returned in file order
// without Passion Scores; call DeriveScores to attach them.
func Load(path string, opt LoadOptions) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer f.Close()

	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}

	records, err := Read(f, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("rows", len(records)).Msg("survey loaded")
	return records, nil
}

// utf8BOM is written at the start of CSV exports by some spreadsheet tools.
var utf8BOM = []byte("\xef\xbb\xbf")

// Read parses survey rows from r. Every column is read as text; CGPA is parsed
// afterwards so a malformed value can be reported with its row number. A file
// holding only a header row yields no records.
func Read(r io.Reader, opt LoadOptions) ([]Record, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	df := readFrame(data, delim, true)
	if df.Err != nil {
		if names, ok := headerOnly(data, delim); ok {
			if _, err := resolveHeaders(names, opt.Aliases); err != nil {
				return nil, err
			}
			return []Record{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, df.Err)
	}

	headers, err := resolveHeaders(df.Names(), opt.Aliases)
	if err != nil {
		return nil, err
	}

	cols := make(map[Column][]string, len(RequiredColumns))
	for _, c := range RequiredColumns {
		s := df.Col(headers[c])
		if s.Err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", ErrDataLoad, c, s.Err)
		}
		cols[c] = s.Records()
	}

	n := df.Nrow()
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		rec := Record{
			Row:             i + 1,
			MajorDesire:     cell(cols[ColMajorDesire], i),
			MastersIntent:   cell(cols[ColMastersIntent], i),
			AlignmentBelief: cell(cols[ColAlignmentBelief], i),
			Engagement:      cell(cols[ColEngagement], i),
			Major:           cell(cols[ColMajor], i),
			NoReason:        cell(cols[ColNoReason], i),
		}

		raw := cell(cols[ColCGPA], i)
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid CGPA %q", ErrDataLoad, rec.Row, raw)
			}
			rec.CGPA = &v
		}

		records = append(records, rec)
	}

	return records, nil
}

func readFrame(data []byte, delim rune, header bool) dataframe.DataFrame {
	return dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(header),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
		dataframe.WithDelimiter(delim),
	)
}

// headerOnly reports whether data is a single CSV row and returns its fields.
// gota refuses a frame with a header and no rows.
func headerOnly(data []byte, delim rune) ([]string, bool) {
	df := readFrame(data, delim, false)
	if df.Err != nil || df.Nrow() != 1 {
		return nil, false
	}
	// Records starts with gota's generated column names.
	return df.Records()[1], true
}

// resolveHeaders maps each required column to the header text used in the file.
// Header names are compared after trimming surrounding whitespace; aliases are
// consulted for headers that do not match a canonical name.
func resolveHeaders(names []string, aliases map[string]string) (map[Column]string, error) {
	found := make(map[Column]string, len(RequiredColumns))
	for _, name := range names {
		key := strings.TrimSpace(name)
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		c := Column(key)
		if _, seen := found[c]; !seen {
			found[c] = name
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := found[c]; !ok {
			missing = append(missing, strconv.Quote(string(c)))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s) %s", ErrDataLoad, strings.Join(missing, ", "))
	}
	return found, nil
}

func cell(col []string, i int) string {
	if i >= len(col) {
		return ""
	}
	return strings.TrimSpace(col[i])
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
