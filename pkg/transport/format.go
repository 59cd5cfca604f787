package transport

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrSyntax is wrapped by every error caused by a malformed document.
var ErrSyntax = errors.New("transport: malformed document")

// Format is an on-disk encoding of the transport model.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForKey picks the format from the extension of a storage key.
func FormatForKey(key string) Format {
	switch strings.ToLower(path.Ext(key)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// Parse reads one document in the given format.
func Parse(r io.Reader, format Format) (*Element, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(r)
	default:
		return ParseJSON(r)
	}
}

// Write encodes e in the given format.
func Write(w io.Writer, e *Element, format Format) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, e)
	default:
		return WriteJSON(w, e)
	}
}

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
