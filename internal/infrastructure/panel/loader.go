package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// DecodeYAML parses a YAML panel document. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode panel yaml: %w", err)
	}
	return doc, nil
}

// DecodeJSON parses a JSON panel document. Unknown keys are rejected.
func DecodeJSON(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode panel json: %w", err)
	}
	return doc, nil
}

// EncodeYAML writes doc as YAML.
func EncodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode panel yaml: %w", err)
	}
	return enc.Close()
}

// ReadFile decodes a panel document, choosing JSON for .json files and
// YAML otherwise.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read panel file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(bytes.NewReader(data))
	}
	return DecodeYAML(bytes.NewReader(data))
}

// Build converts a document into a validated panel.
func Build(doc Document, loadedAt time.Time) (*model.LenderPanel, error) {
	profiles, err := doc.ToProfiles()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPanel, err)
	}
	return model.NewLenderPanel(doc.Version, profiles, loadedAt)
}

// LoadFile reads and builds the panel stored at path.
func LoadFile(path string) (*model.LenderPanel, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Build(doc, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build panel from %s: %w", path, err)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

// BuiltinSource serves the compiled-in panel.
type BuiltinSource struct{}

// Load implements port.PanelSource.
func (BuiltinSource) Load(context.Context) (*model.LenderPanel, error) {
	return Default(), nil
}

// FileSource reads the panel from a YAML or JSON file on every load.
type FileSource struct {
	Path string
}

// Load implements port.PanelSource.
func (s FileSource) Load(ctx context.Context) (*model.LenderPanel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}
