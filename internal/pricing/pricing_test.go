package pricing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	storeMocks "github.com/donaldgifford/worthyten/internal/store/mocks"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

const yamlCatalog = `
pricingTables:
  - brand: Apple
    model: iPhone 13
    assessmentDeductions:
      powerOn: {amount: 5000, label: Does not power on}
    issues:
      display_cracked: {amount: 7000}
      body_dents: {amount: 3500}
    accessoryBonuses:
      original_box: {amount: 500}
lenses:
  - id: sony-fe-24-70
    brand: Sony
    name: FE 24-70mm F2.8 GM
    price: 150000
  - id: sony-fe-50
    brand: Sony
    name: FE 50mm F1.8
`

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantErr  string
		validate bool
		check    func(t *testing.T, doc *Document)
	}{
		{
			name:  "yaml catalog",
			input: yamlCatalog,
			check: func(t *testing.T, doc *Document) {
				t.Helper()
				require.Len(t, doc.PricingTables, 1)
				pt := doc.PricingTables[0]
				assert.Equal(t, "iPhone 13", pt.Model)
				amount, ok := pt.Amount(domain.SectionIssues, "display_cracked")
				assert.True(t, ok)
				assert.Equal(t, int64(7000), amount)
				assert.Equal(t, "Does not power on", pt.AssessmentDeductions["powerOn"].Label)

				require.Len(t, doc.Lenses, 2)
				assert.Equal(t, int64(150000), doc.Lenses[0].Price)
				assert.Zero(t, doc.Lenses[1].Price)
			},
		},
		{
			name:  "json catalog",
			input: `{"pricingTables":[{"brand":"Sony","model":"A7 III","issues":{"shutter_faulty":{"amount":9000}}}]}`,
			check: func(t *testing.T, doc *Document) {
				t.Helper()
				require.Len(t, doc.PricingTables, 1)
				assert.Equal(t, int64(9000), doc.PricingTables[0].Issues["shutter_faulty"].Amount)
				assert.Empty(t, doc.Lenses)
			},
		},
		{
			name:     "negative amount",
			input:    `{"pricingTables":[{"brand":"Apple","model":"iPhone 13","issues":{"battery_weak":{"amount":-10}}}]}`,
			wantErr:  "amount",
			validate: true,
		},
		{
			name:     "fractional amount",
			input:    `{"pricingTables":[{"brand":"Apple","model":"iPhone 13","issues":{"battery_weak":{"amount":10.5}}}]}`,
			wantErr:  "integer",
			validate: true,
		},
		{
			name:     "missing model",
			input:    `{"pricingTables":[{"brand":"Apple"}]}`,
			wantErr:  "model",
			validate: true,
		},
		{
			name:     "unknown top-level key",
			input:    `{"tables":[]}`,
			wantErr:  "tables",
			validate: true,
		},
		{
			name:     "bad rule id",
			input:    `{"pricingTables":[{"brand":"Apple","model":"iPhone 13","issues":{"bad id":{"amount":1}}}]}`,
			validate: true,
		},
		{
			name:     "bad lens id",
			input:    `{"lenses":[{"id":"Sony FE","brand":"Sony","name":"FE 50mm"}]}`,
			validate: true,
		},
		{
			name: "duplicate product by normalized key",
			input: `{"pricingTables":[
				{"brand":"Apple","model":"iPhone 13"},
				{"brand":"apple","model":"Apple iPhone 13"}
			]}`,
			wantErr:  "duplicate pricing table for Apple iPhone 13",
			validate: true,
		},
		{
			name:     "duplicate lens id",
			input:    `{"lenses":[{"id":"a","brand":"Sony","name":"FE 50mm"},{"id":"a","brand":"Sony","name":"FE 85mm"}]}`,
			wantErr:  `duplicate lens id "a"`,
			validate: true,
		},
		{
			name:     "empty document",
			input:    "",
			wantErr:  "document is empty",
			validate: true,
		},
		{
			name:    "malformed yaml",
			input:   "pricingTables: [",
			wantErr: "parsing pricing document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" || tt.validate {
				require.Error(t, err)
				if tt.wantErr != "" {
					assert.Contains(t, err.Error(), tt.wantErr)
				}
				assert.Equal(t, tt.validate, IsValidationError(err))
				return
			}

			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.PricingTables, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening pricing document")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(yamlCatalog))
	require.NoError(t, err)

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		UpsertPricingTable(mock.Anything, mock.MatchedBy(func(pt *domain.PricingTable) bool {
			return pt.Brand == "Apple" && pt.Model == "iPhone 13"
		})).
		Return(nil).
		Once()
	ms.EXPECT().UpsertLens(mock.Anything, mock.Anything).Return(nil).Times(2)

	im := NewImporter(ms, WithLogger(quietLogger()))
	sum, err := im.Import(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, Summary{PricingTables: 1, Lenses: 2}, sum)
}

func TestImporter_ImportStopsOnError(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(yamlCatalog))
	require.NoError(t, err)

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().UpsertPricingTable(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().UpsertLens(mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	im := NewImporter(ms, WithLogger(quietLogger()))
	sum, err := im.Import(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "importing lens sony-fe-24-70")
	assert.Equal(t, Summary{PricingTables: 1}, sum)
}

func TestImporter_Export(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().ListPricingTables(mock.Anything).Return([]domain.PricingTable{{Brand: "Apple", Model: "iPhone 13"}}, nil).Once()
	ms.EXPECT().ListLenses(mock.Anything, "").Return([]domain.Lens{{ID: "sony-fe-50", Brand: "Sony", Name: "FE 50mm F1.8"}}, nil).Once()

	im := NewImporter(ms, WithLogger(quietLogger()))
	doc, err := im.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.PricingTables, 1)
	assert.Len(t, doc.Lenses, 1)
	require.NoError(t, doc.Validate())
}

func TestDocument_WriteYAMLIsImportable(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(yamlCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "pricingTables:")
	assert.Contains(t, buf.String(), "assessmentDeductions:")

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
