// Package catalog loads the room catalog exported by the content system.
// Catalogs are YAML or JSON documents of the form {"rooms": [...]} and are
// validated against an embedded JSON schema before they are decoded.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/hotel-site/room-filter/internal/domain"
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrInvalidCatalog is returned when a document cannot be decoded or fails validation.
	ErrInvalidCatalog = errors.New("invalid room catalog")

	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

//go:embed rooms.schema.json
var schemaSource string

const schemaURL = "rooms.schema.json"

var roomSchema = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		panic(fmt.Sprintf("catalog: add schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

type document struct {
	Rooms []domain.Room `json:"rooms"`
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the catalog file at path.
func Load(path string) ([]domain.Room, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	rooms, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rooms, nil
}

// Parse decodes and validates a catalog document.
// Room IDs must be unique; room order is preserved.
func Parse(data []byte, format Format) ([]domain.Room, error) {
	raw, err := normalize(data, format)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := roomSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(doc.Rooms))
	for i, r := range doc.Rooms {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: rooms[%d]: duplicate id %q", ErrInvalidCatalog, i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	if doc.Rooms == nil {
		doc.Rooms = []domain.Room{}
	}
	return doc.Rooms, nil
}

// normalize converts the document to JSON so both formats share one
// validation path.
func normalize(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
