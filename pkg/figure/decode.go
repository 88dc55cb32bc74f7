package figure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tikzbridge/pkg/errors"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseJSON decodes a JSON figure description.
func ParseJSON(data []byte) (*Figure, error) {
	var fig Figure
	if err := json.Unmarshal(data, &fig); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode JSON figure")
	}
	return &fig, nil
}

// ParseYAML decodes a YAML figure description.
func ParseYAML(data []byte) (*Figure, error) {
	var fig Figure
	if err := yaml.Unmarshal(data, &fig); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode YAML figure")
	}
	return &fig, nil
}

// Parse decodes a figure in the given format (FormatJSON or FormatYAML).
func Parse(data []byte, format string) (*Figure, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown figure format %q", format)
}

// Read decodes a figure from r in the given format.
func Read(r io.Reader, format string) (*Figure, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read figure: %w", err)
	}
	return Parse(data, format)
}

// ReadFile decodes a figure file, choosing the format from the extension:
// .json decodes as JSON, .yaml/.yml as YAML.
func ReadFile(path string) (*Figure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// FormatForPath maps a file extension to an input format.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer figure format from %q", filepath.Base(path))
}
