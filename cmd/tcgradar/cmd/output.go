package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tcgradar/tcgradar/pkg/decision"
	"github.com/tcgradar/tcgradar/pkg/filter"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

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

func printFilterResult(r *domain.FilterResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Valid:\t%v\n", r.IsValid)
	tw.writef("Quality:\t%s\n", r.Quality)
	tw.writef("Type:\t%s\n", r.CardType)
	tw.writef("Confidence:\t%.2f\n", r.ConfidenceScore)
	tw.writef("Title:\t%s\n", r.NormalizedTitle)
	if r.DetectedSet != "" {
		tw.writef("Set:\t%s\n", r.DetectedSet)
	}
	if r.DetectedNumber != "" {
		tw.writef("Number:\t%s\n", r.DetectedNumber)
	}
	if r.DetectedCondition != "" {
		tw.writef("Condition:\t%s\n", r.DetectedCondition)
	}
	if r.DetectedGrade != nil {
		tw.writef("Grade:\t%d\n", *r.DetectedGrade)
	}
	if len(r.Reasons) > 0 {
		tw.writef("Reasons:\t%s\n", strings.Join(r.Reasons, "; "))
	}
	return tw.finish()
}

func printEntityDetail(e *domain.CardEntity) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SKU:\t%s\n", e.CanonicalSKU)
	tw.writef("Name:\t%s\n", e.NameNormalized)
	tw.writef("Set:\t%s\n", e.SetCode)
	tw.writef("Number:\t%s\n", e.CardNumber)
	tw.writef("Rarity:\t%s\n", e.Rarity)
	tw.writef("Finish:\t%s\n", e.Finish)
	if e.Grade != nil {
		tw.writef("Grade:\tPSA %d\n", *e.Grade)
	}
	tw.writef("Language:\t%s\n", e.Language)
	tw.writef("Confidence:\t%.0f\n", e.Confidence)
	return tw.finish()
}

func printEntitiesTable(entities []*domain.EnhancedCardEntity) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SKU\tQUALITY\tTYPE\tTIER\tCONF\tTITLE\n")
	for _, e := range entities {
		if e == nil {
			continue
		}
		tw.writef("%s\t%s\t%s\t%s\t%.0f\t%s\n",
			e.CanonicalSKU,
			e.FilterQuality,
			e.CardType,
			e.MarketTier,
			e.Confidence,
			truncate(e.SourceTitle, 40),
		)
	}
	return tw.finish()
}

func printFilterStats(s *filter.FilterStats) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Processed:\t%d\n", s.TotalProcessed)
	tw.writef("Valid:\t%d\n", s.ValidListings)
	tw.writef("Invalid:\t%d\n", s.InvalidListings)
	tw.writef("Avg confidence:\t%.2f\n", s.AverageConfidence)
	tw.writef("Set detection:\t%.1f%%\n", s.SetDetectionRate*100)
	tw.writef("Grade detection:\t%.1f%%\n", s.GradeDetectionRate*100)
	return tw.finish()
}

func printDecision(r *decision.Result) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Recommendation:\t%s\n", r.Recommendation)
	tw.writef("Risk:\t%s\n", r.Risk)
	tw.writef("Liquidity:\t%.1f\n", r.Scores.Liquidity)
	tw.writef("Momentum:\t%.1f\n", r.Scores.Momentum)
	tw.writef("Stability:\t%.1f\n", r.Scores.Stability)
	if r.PriceTargetLow != nil && r.PriceTargetHigh != nil {
		tw.writef("Target:\t$%.2f - $%.2f\n", *r.PriceTargetLow, *r.PriceTargetHigh)
	}
	tw.writef("Rationale:\t%s\n", strings.Join(r.Rationale, "; "))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
