package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/worthyten/internal/api/client"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func TestParsePairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr string
	}{
		{
			name: "trims whitespace",
			args: []string{"powerOn=yes", " screenIntact = no "},
			want: map[string]string{"powerOn": "yes", "screenIntact": "no"},
		},
		{name: "empty", args: nil, want: map[string]string{}},
		{name: "missing value", args: []string{"powerOn="}, wantErr: "expected key=value"},
		{name: "no separator", args: []string{"powerOn"}, wantErr: "expected key=value"},
		{name: "duplicate", args: []string{"a=1", "a=2"}, wantErr: `duplicate key "a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePairs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "redirect",
			err: &apiclient.APIError{StatusCode: 409, Errors: []apiclient.ErrorDetail{
				{Location: "stage", Value: "physical"},
			}},
			want: "Continue at the physical stage.",
		},
		{
			name: "lost session wrapped",
			err: fmt.Errorf("wrapped: %w", &apiclient.APIError{StatusCode: 404, Errors: []apiclient.ErrorDetail{
				{Location: "recovery", Value: "start_over"},
				{Location: "recovery", Value: "go_home"},
			}}),
			want: "Options: start_over, go_home. Start over with `wtn session start`.",
		},
		{name: "plain api error", err: &apiclient.APIError{StatusCode: 500}},
		{name: "other error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errorHint(tt.err))
		})
	}
}

func TestPrintStageResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printStageResult(&buf, &apiclient.StageResult{
		Stage: domain.StageIssues,
		Input: 27000,
		Price: 16500,
		Applied: []apiclient.AppliedRule{
			{SelectionID: "display_cracked", Label: "Cracked display", Delta: -7000, Found: true},
			{SelectionID: "warp_core", Delta: 0},
		},
		Next: domain.StageAccessories,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "₹27,000")
	assert.Contains(t, out, "Cracked display:")
	assert.Contains(t, out, "-7000")
	assert.Contains(t, out, "warp_core (no rule)")
	assert.Contains(t, out, "₹16,500")
	assert.NotContains(t, out, "Floor")
}

func TestPrintSession(t *testing.T) {
	t.Parallel()

	rec := domain.ValuationRecord{
		SessionID:          "s1",
		Category:           domain.CategoryPhone,
		BrandName:          "Apple",
		ModelName:          "iPhone 13",
		OriginalQuotePrice: 32000,
	}
	rec.SetPriceAfter(domain.StageAssessment, 27000)

	var buf bytes.Buffer
	require.NoError(t, printSession(&buf, &apiclient.Session{Record: rec, Next: domain.StagePhysical}))

	out := buf.String()
	assert.Contains(t, out, "Apple iPhone 13 (phone)")
	assert.Contains(t, out, "₹32,000")
	assert.Contains(t, out, "₹27,000")
	assert.NotContains(t, out, "Final offer")
	assert.Contains(t, out, "physical")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestPrintOrderCSV(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{{
		ID:         "01J9ZQ4K7T",
		Category:   domain.CategoryPhone,
		Brand:      "Apple",
		Model:      "iPhone 13",
		FinalPrice: 17850,
		CreatedAt:  time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		Record: domain.ValuationRecord{
			OriginalQuotePrice: 32000,
			DeviceAge:          "less-than-1",
			Accessories:        []string{"original_charger", "bill"},
			WarrantyBonus:      850,
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, printOrderCSV(&buf, orders))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"id,created_at,category,brand,model,quote_price,final_price,device_age,accessories,lens_bonus,warranty_bonus",
		lines[0])
	assert.Equal(t,
		"01J9ZQ4K7T,2026-10-01T09:30:00Z,phone,Apple,iPhone 13,32000,17850,less-than-1,original_charger;bill,0,850",
		lines[1])
}

func TestPrintOrderCSV_EmptyWritesHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printOrderCSV(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "id,created_at,"))
}
