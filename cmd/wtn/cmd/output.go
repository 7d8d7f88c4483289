package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jszwec/csvutil"

	apiclient "github.com/donaldgifford/worthyten/internal/api/client"
	"github.com/donaldgifford/worthyten/internal/notify"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func rupees(v int64) string {
	return notify.FormatRupees(v)
}

func printSession(w io.Writer, s *apiclient.Session) error {
	r := &s.Record
	tw := newTabWriter(w)
	tw.writef("Session:\t%s\n", r.SessionID)
	tw.writef("Device:\t%s (%s)\n", r.DisplayName(), r.Category)
	if r.Variant != nil {
		tw.writef("Variant:\t%s x%.2f\n", r.Variant.Label, r.Variant.Multiplier)
	}
	tw.writef("Quote:\t%s\n", rupees(r.OriginalQuotePrice))
	for _, st := range domain.Stages {
		if p, ok := r.PriceAfter(st); ok {
			tw.writef("After %s:\t%s\n", st, rupees(p))
		}
	}
	if final, ok := r.FinalPrice(); ok {
		tw.writef("Final offer:\t%s\n", rupees(final))
	}
	tw.writef("Next:\t%s\n", s.Next)
	return tw.finish()
}

func printStageResult(w io.Writer, res *apiclient.StageResult) error {
	tw := newTabWriter(w)
	tw.writef("Stage:\t%s\n", res.Stage)
	tw.writef("Input:\t%s\n", rupees(res.Input))
	for _, a := range res.Applied {
		label := a.Label
		if label == "" {
			label = a.SelectionID
		}
		if !a.Found {
			label += " (no rule)"
		}
		tw.writef("  %s:\t%+d\n", label, a.Delta)
	}
	if res.Floored {
		tw.writef("Floor:\tapplied\n")
	}
	tw.writef("Price:\t%s\n", rupees(res.Price))
	tw.writef("Next:\t%s\n", res.Next)
	return tw.finish()
}

func printLensTable(w io.Writer, lenses []domain.Lens) error {
	tw := newTabWriter(w)
	tw.writef("ID\tBRAND\tNAME\tPRICE\n")
	for i := range lenses {
		price := "-"
		if lenses[i].Price > 0 {
			price = rupees(lenses[i].Price)
		}
		tw.writef("%s\t%s\t%s\t%s\n",
			lenses[i].ID,
			lenses[i].Brand,
			truncate(lenses[i].Name, 40),
			price,
		)
	}
	return tw.finish()
}

func printPricingTables(w io.Writer, tables []domain.PricingTable) error {
	tw := newTabWriter(w)
	tw.writef("BRAND\tMODEL\tASSESSMENT\tISSUES\tACCESSORIES\tUPDATED\n")
	for i := range tables {
		t := &tables[i]
		tw.writef("%s\t%s\t%d\t%d\t%d\t%s\n",
			t.Brand,
			t.Model,
			len(t.AssessmentDeductions),
			len(t.Issues),
			len(t.AccessoryBonuses),
			t.UpdatedAt.Format(timeLayout),
		)
	}
	return tw.finish()
}

func printPricingTable(w io.Writer, t *domain.PricingTable) error {
	tw := newTabWriter(w)
	tw.writef("Product:\t%s\n", domain.DisplayName(t.Brand, t.Model))
	for _, sec := range []domain.Section{
		domain.SectionAssessment,
		domain.SectionIssues,
		domain.SectionAccessories,
	} {
		entries := t.Entries(sec)
		tw.writef("%s:\t%d rules\n", sec, len(entries))
		ids := make([]string, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			tw.writef("  %s\t%s\t%s\n", id, rupees(entries[id].Amount), entries[id].Label)
		}
	}
	return tw.finish()
}

func printOrderTable(w io.Writer, orders []domain.Order) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCREATED\tCATEGORY\tDEVICE\tFINAL PRICE\n")
	for i := range orders {
		o := &orders[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			o.CreatedAt.Format(timeLayout),
			o.Category,
			truncate(domain.DisplayName(o.Brand, o.Model), 40),
			rupees(o.FinalPrice),
		)
	}
	return tw.finish()
}

type orderRow struct {
	ID            string    `csv:"id"`
	CreatedAt     time.Time `csv:"created_at"`
	Category      string    `csv:"category"`
	Brand         string    `csv:"brand"`
	Model         string    `csv:"model"`
	QuotePrice    int64     `csv:"quote_price"`
	FinalPrice    int64     `csv:"final_price"`
	DeviceAge     string    `csv:"device_age"`
	Accessories   string    `csv:"accessories,omitempty"`
	LensBonus     int64     `csv:"lens_bonus"`
	WarrantyBonus int64     `csv:"warranty_bonus"`
}

// printOrderCSV writes orders as CSV with a header row. Prices are plain
// rupee integers so spreadsheets can sum them.
func printOrderCSV(w io.Writer, orders []domain.Order) error {
	rows := make([]orderRow, len(orders))
	for i := range orders {
		o := &orders[i]
		rows[i] = orderRow{
			ID:            o.ID,
			CreatedAt:     o.CreatedAt.UTC(),
			Category:      string(o.Category),
			Brand:         o.Brand,
			Model:         o.Model,
			QuotePrice:    o.Record.OriginalQuotePrice,
			FinalPrice:    o.FinalPrice,
			DeviceAge:     o.Record.DeviceAge,
			Accessories:   strings.Join(o.Record.Accessories, ";"),
			LensBonus:     o.Record.LensBonus,
			WarrantyBonus: o.Record.WarrantyBonus,
		}
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(orderRow{}); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	} else if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func printOrderDetail(w io.Writer, o *domain.Order) error {
	r := &o.Record
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", o.ID)
	tw.writef("Session:\t%s\n", o.SessionID)
	tw.writef("Created:\t%s\n", o.CreatedAt.Format(timeLayout))
	tw.writef("Device:\t%s (%s)\n", domain.DisplayName(o.Brand, o.Model), o.Category)
	tw.writef("Quote:\t%s\n", rupees(r.OriginalQuotePrice))
	if len(r.SelectedLenses) > 0 {
		names := make([]string, len(r.SelectedLenses))
		for i, l := range r.SelectedLenses {
			names[i] = l.Name
		}
		tw.writef("Lenses:\t%s (+%s)\n", strings.Join(names, ", "), rupees(r.LensBonus))
	}
	if len(r.Issues) > 0 {
		tw.writef("Issues:\t%s\n", strings.Join(r.Issues, ", "))
	}
	if len(r.Accessories) > 0 {
		tw.writef("Accessories:\t%s\n", strings.Join(r.Accessories, ", "))
	}
	if r.DeviceAge != "" {
		tw.writef("Age:\t%s\n", r.DeviceAge)
	}
	tw.writef("Final price:\t%s\n", rupees(o.FinalPrice))
	return tw.finish()
}

func printQuestionnaire(w io.Writer, q *apiclient.Questionnaire) error {
	tw := newTabWriter(w)
	tw.writef("Category:\t%s\n", q.Category)
	tw.writef("Assessment:\n")
	for _, qu := range q.Questions {
		tw.writef("  %s\t%s\n", qu.ID, qu.Text)
	}
	tw.writef("Physical:\n")
	for _, g := range q.Physical {
		ids := make([]string, len(g.Options))
		for i, o := range g.Options {
			ids[i] = o.ID
		}
		tw.writef("  %s\t%s\n", g.ID, strings.Join(ids, " | "))
	}
	tw.writef("Issues:\n")
	for _, o := range q.Issues {
		tw.writef("  %s\t%s\n", o.ID, o.Label)
	}
	tw.writef("Accessories:\n")
	for _, o := range q.Accessories {
		tw.writef("  %s\t%s\n", o.ID, o.Label)
	}
	tw.writef("Device age:\n")
	for _, b := range q.AgeBuckets {
		tw.writef("  %s\t%s\n", b.ID, b.Label)
	}
	return tw.finish()
}

func printState(w io.Writer, s *apiclient.SystemState) error {
	tw := newTabWriter(w)
	tw.writef("Pricing tables:\t%d\n", s.PricingTables)
	tw.writef("Lenses:\t%d\n", s.Lenses)
	tw.writef("Orders:\t%d\n", s.Orders)
	tw.writef("Orders (24h):\t%d\n", s.OrdersLast24h)
	tw.writef("Generated:\t%s\n", s.GeneratedAt.Format(timeLayout))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
