// Package pricing loads pricing tables and the lens catalog from YAML or JSON
// documents, validates them against an embedded JSON Schema and writes them
// to the store.
package pricing

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/worthyten/internal/store"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Document is an importable catalog.
type Document struct {
	PricingTables []domain.PricingTable `json:"pricingTables,omitempty"`
	Lenses        []domain.Lens         `json:"lenses,omitempty"`
}

// ValidationError lists every schema or consistency problem in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid pricing document: " + strings.Join(e.Problems, "; ")
}

// ParseFile reads and validates a document from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pricing document: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a YAML or JSON document and validates it.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading pricing document: %w", err)
	}

	// YAML is a superset of JSON, so one decoder handles both.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing pricing document: %w", err)
	}
	if raw == nil {
		return nil, &ValidationError{Problems: []string{"document is empty"}}
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing pricing document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("decoding pricing document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateSchema(raw any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("validating pricing document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{Problems: problems}
}

// Validate checks constraints the schema cannot express: one table per
// product and unique lens ids.
func (d *Document) Validate() error {
	var problems []string

	products := make(map[[2]string]struct{}, len(d.PricingTables))
	for _, pt := range d.PricingTables {
		b, m := domain.ProductKey(pt.Brand, pt.Model)
		key := [2]string{b, m}
		if _, dup := products[key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate pricing table for %s", domain.DisplayName(pt.Brand, pt.Model)))
		}
		products[key] = struct{}{}
	}

	lensIDs := make(map[string]struct{}, len(d.Lenses))
	for _, l := range d.Lenses {
		if _, dup := lensIDs[l.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate lens id %q", l.ID))
		}
		lensIDs[l.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Summary counts what an import wrote.
type Summary struct {
	PricingTables int `json:"pricing_tables"`
	Lenses        int `json:"lenses"`
}

// Importer writes documents to the store.
type Importer struct {
	store store.Store
	log   *slog.Logger
}

// ImporterOption configures the Importer.
type ImporterOption func(*Importer)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ImporterOption {
	return func(im *Importer) {
		im.log = l
	}
}

// NewImporter creates an Importer.
func NewImporter(s store.Store, opts ...ImporterOption) *Importer {
	im := &Importer{store: s, log: slog.Default()}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import upserts every pricing table and lens in doc. It stops at the first
// store error; rows written before the error stay written.
func (im *Importer) Import(ctx context.Context, doc *Document) (Summary, error) {
	var sum Summary

	for i := range doc.PricingTables {
		pt := &doc.PricingTables[i]
		if err := im.store.UpsertPricingTable(ctx, pt); err != nil {
			return sum, fmt.Errorf("importing pricing table %s: %w", domain.DisplayName(pt.Brand, pt.Model), err)
		}
		sum.PricingTables++
	}

	for i := range doc.Lenses {
		l := &doc.Lenses[i]
		if err := im.store.UpsertLens(ctx, l); err != nil {
			return sum, fmt.Errorf("importing lens %s: %w", l.ID, err)
		}
		sum.Lenses++
	}

	im.log.Info("pricing catalog imported",
		"pricing_tables", sum.PricingTables,
		"lenses", sum.Lenses,
	)
	return sum, nil
}

// Export reads the whole catalog back as a document.
func (im *Importer) Export(ctx context.Context) (*Document, error) {
	tables, err := im.store.ListPricingTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pricing tables: %w", err)
	}
	lenses, err := im.store.ListLenses(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing lenses: %w", err)
	}
	return &Document{PricingTables: tables, Lenses: lenses}, nil
}

// WriteYAML encodes the document as YAML with the same keys Parse accepts.
func (d *Document) WriteYAML(w io.Writer) error {
	// Round-trip through JSON so the json tags name the YAML keys.
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding pricing document: %w", err)
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("re-reading pricing document: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("writing pricing document: %w", err)
	}
	return enc.Close()
}

// IsValidationError reports whether err came from document validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
