package analytics

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"

	"market-report/internal/errors"
)

const (
	ReportClassification = "classification"
	ReportEfficiency     = "efficiency"
	ReportSummary        = "summary"
)

// Skip records one row left out of a report because of a per-row error.
type Skip struct {
	Report  string `json:"report"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
	Error   string `json:"error"`
}

type SkipCount struct {
	Report string `json:"report"`
	Reason string `json:"reason"`
	Rows   int    `json:"rows"`
}

// SkipTally collects skipped rows across reports so they can be surfaced at
// the end of the run. A nil *SkipTally discards skips.
type SkipTally struct {
	skips  []Skip
	logger *slog.Logger
}

func NewSkipTally(logger *slog.Logger) *SkipTally {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkipTally{logger: logger}
}

func (t *SkipTally) Add(report, subject string, err error) {
	if t == nil {
		return
	}
	reason := "unknown error"
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		reason = appErr.Message
	}
	t.skips = append(t.skips, Skip{Report: report, Subject: subject, Reason: reason, Error: err.Error()})
	t.logger.Warn("row skipped",
		"report", report,
		"subject", subject,
		"reason", reason,
		"error", err,
	)
}

func (t *SkipTally) Skips() []Skip {
	if t == nil {
		return nil
	}
	return t.skips
}

func (t *SkipTally) Total() int {
	if t == nil {
		return 0
	}
	return len(t.skips)
}

// Counts groups skips by report and reason, ordered by report then reason.
func (t *SkipTally) Counts() []SkipCount {
	if t == nil {
		return nil
	}
	type key struct{ report, reason string }
	counts := make(map[key]int)
	for _, s := range t.skips {
		counts[key{s.Report, s.Reason}]++
	}

	out := make([]SkipCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, SkipCount{Report: k.report, Reason: k.reason, Rows: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Report != out[j].Report {
			return out[i].Report < out[j].Report
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

func (c SkipCount) String() string {
	noun := "rows"
	if c.Rows == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%d %s skipped due to %s (%s)", c.Rows, noun, c.Reason, c.Report)
}

// Lines renders Counts for the final output, e.g.
// "2 rows skipped due to malformed YOY_Sales (classification)".
func (t *SkipTally) Lines() []string {
	counts := t.Counts()
	lines := make([]string, len(counts))
	for i, c := range counts {
		lines[i] = c.String()
	}
	return lines
}

// CountsFor returns the Counts entries of a single report.
func (t *SkipTally) CountsFor(report string) []SkipCount {
	var out []SkipCount
	for _, c := range t.Counts() {
		if c.Report == report {
			out = append(out, c)
		}
	}
	return out
}
