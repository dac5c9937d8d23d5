package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/noders-team/xptools/internal/analysis"
	"github.com/noders-team/xptools/pkg/config"
	"github.com/noders-team/xptools/pkg/fsutil"
)

var ErrNoData = errors.New("no data extracted")

// ResolveFormat maps FormatAuto to a concrete format from the output file
// extension; anything unrecognised falls back to a spreadsheet.
func ResolveFormat(path, format string) string {
	if format != config.FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.FormatJSON
	case ".md", ".markdown":
		return config.FormatMarkdown
	default:
		return config.FormatExcel
	}
}

func EncodeJSON(w io.Writer, r *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write exports r to path atomically. Empty reports are not written and
// yield ErrNoData.
func Write(path, format string, r *analysis.Report) error {
	if r.Empty() {
		return ErrNoData
	}

	var encode func(io.Writer, *analysis.Report) error
	switch resolved := ResolveFormat(path, format); resolved {
	case config.FormatExcel:
		encode = EncodeExcel
	case config.FormatJSON:
		encode = EncodeJSON
	case config.FormatMarkdown:
		encode = EncodeMarkdown
	default:
		return fmt.Errorf("unsupported format %q", resolved)
	}

	log.Debug().Msgf("starting export to %s", path)
	err := fsutil.WriteAtomic(path, func(w io.Writer) error {
		return encode(w, r)
	})
	if err != nil {
		return fmt.Errorf("failed to write report '%s': %w", path, err)
	}
	log.Info().Msgf("results saved to %s", path)
	return nil
}
