package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lox/liarsodds/internal/fileutil"
)

// Format is an output encoding for a Table.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Encode writes the table in the given format. Pretty output is indented
// with four spaces; compact JSON is a single line.
func Encode(w io.Writer, t *Table, format Format, pretty bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "    ")
		}
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if pretty {
			enc.SetIndent(4)
		} else {
			enc.SetIndent(2)
		}
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteFile encodes the table into path atomically.
func WriteFile(path string, t *Table, format Format, pretty bool) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, t, format, pretty)
	})
}
