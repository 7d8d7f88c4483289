package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/metrics"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func testOrder(final int64) OrderPayload {
	return OrderPayload{
		OrderID:       "01HZX5G3J0000000000000000A",
		SessionID:     "sess-1",
		Product:       "Apple iPhone 13",
		Category:      domain.CategoryPhone,
		FinalPrice:    final,
		OriginalQuote: 32000,
		DeviceAge:     "less-than-1",
		Issues:        []string{"battery"},
		Accessories:   []string{"original_box", "bill"},
	}
}

func TestDiscordNotifier_SendOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		order      OrderPayload
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "strong offer is green",
			order:      testOrder(28000),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "mid offer is yellow",
			order:      testOrder(17850),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "floor offer is orange",
			order:      testOrder(1600),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			order:      testOrder(17850),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			order:      testOrder(17850),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendOrder(context.Background(), &tt.order)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, tt.order.Product)
			require.NotNil(t, embed.Footer)
			assert.Contains(t, embed.Footer.Text, tt.order.OrderID)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, FormatRupees(tt.order.FinalPrice), fieldMap["Final Offer"])
			assert.Equal(t, "₹32,000", fieldMap["Quote"])
			assert.Equal(t, "battery", fieldMap["Issues"])
			assert.Equal(t, "original_box, bill", fieldMap["Accessories"])
			assert.NotContains(t, fieldMap, "Lenses")
		})
	}
}

func TestDiscordNotifier_SendOrder_NoIssuesWithLenses(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	o := testOrder(20000)
	o.Issues = nil
	o.Lenses = []string{"FE 24-70mm F2.8 GM"}

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendOrder(context.Background(), &o))

	require.Len(t, received.Embeds, 1)
	fieldMap := make(map[string]string)
	for _, f := range received.Embeds[0].Fields {
		fieldMap[f.Name] = f.Value
	}
	assert.Equal(t, "none", fieldMap["Issues"])
	assert.Equal(t, "FE 24-70mm F2.8 GM", fieldMap["Lenses"])
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	o := testOrder(17850)
	err := d.SendOrder(context.Background(), &o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	o := testOrder(17850)
	err := d.SendOrder(context.Background(), &o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
	assert.Equal(t, "discord", d.Name())
}

func TestFormatRupees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{17850, "₹17,850"},
		{123450, "₹1,23,450"},
		{12345678, "₹1,23,45,678"},
		{-1600, "-₹1,600"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupees(tt.in))
	}
}

func TestNewOrderPayload(t *testing.T) {
	t.Parallel()

	final := int64(21000)
	o := &domain.Order{
		ID:         "ord-1",
		SessionID:  "sess-1",
		Category:   domain.CategoryCamera,
		FinalPrice: final,
		Record: domain.ValuationRecord{
			BrandName:          "Sony",
			ModelName:          "Sony A7 III",
			OriginalQuotePrice: 90000,
			SelectedLenses:     []domain.SelectedLens{{ID: "fe-50", Name: "FE 50mm F1.8"}},
			NoIssues:           true,
		},
	}

	p := NewOrderPayload(o)
	assert.Equal(t, "Sony A7 III", p.Product)
	assert.Equal(t, int64(90000), p.OriginalQuote)
	assert.Equal(t, []string{"FE 50mm F1.8"}, p.Lenses)
	assert.Empty(t, p.Issues)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendOrder_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	o := testOrder(17850)
	require.NoError(t, d.SendOrder(context.Background(), &o))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}

// compile-time interface check.
var _ Notifier = (*DiscordNotifier)(nil)
