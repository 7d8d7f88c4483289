package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/worthyten/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // offer keeps 75%+ of the quote
	colorYellow = 0xF1C40F // 40-74%
	colorOrange = 0xE67E22 // below 40%
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Name identifies the backend in logs and metrics.
func (*DiscordNotifier) Name() string { return "discord" }

// SendOrder posts a single order as a Discord embed.
func (d *DiscordNotifier) SendOrder(ctx context.Context, o *OrderPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(o)},
	})
}

func buildEmbed(o *OrderPayload) discordEmbed {
	fields := []discordEmbedField{
		{Name: "Final Offer", Value: FormatRupees(o.FinalPrice), Inline: true},
		{Name: "Quote", Value: FormatRupees(o.OriginalQuote), Inline: true},
		{Name: "Category", Value: string(o.Category), Inline: true},
	}
	if o.DeviceAge != "" {
		fields = append(fields, discordEmbedField{Name: "Age", Value: o.DeviceAge, Inline: true})
	}
	fields = append(fields,
		discordEmbedField{Name: "Issues", Value: listOrNone(o.Issues)},
		discordEmbedField{Name: "Accessories", Value: listOrNone(o.Accessories)},
	)
	if len(o.Lenses) > 0 {
		fields = append(fields, discordEmbedField{Name: "Lenses", Value: strings.Join(o.Lenses, ", ")})
	}

	return discordEmbed{
		Title:  fmt.Sprintf("New Trade-In: %s", o.Product),
		Color:  offerColor(o.FinalPrice, o.OriginalQuote),
		Fields: fields,
		Footer: &discordFooter{Text: "Order " + o.OrderID},
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func offerColor(final, quote int64) int {
	if quote <= 0 {
		return colorOrange
	}
	ratio := float64(final) / float64(quote)
	switch {
	case ratio >= 0.75:
		return colorGreen
	case ratio >= 0.40:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
