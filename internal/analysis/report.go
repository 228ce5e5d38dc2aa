package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/statboard/internal/dataset"
)

// Options controls a grouped summary of one measure.
type Options struct {
	// GroupBy is the categorical column. Empty puts every row in one group
	// named "all".
	GroupBy string
	// Measure is the column to summarize and how to parse it.
	Measure Field
	// Sort orders the groups in the report.
	Sort Policy
	// Groups, when set, limits the report to these keys in this order
	// (Sort is still applied afterwards).
	Groups []string
}

// DefaultOptions returns median-descending ordering over all groups.
func DefaultOptions() Options {
	return Options{Sort: Policy{Key: SortByMedian, Order: Descending}}
}

// Report is a markdown-friendly grouped summary of one measure.
type Report struct {
	Name     string         `json:"name"`
	Rows     int            `json:"rows"`
	Used     int            `json:"used"`
	Dropped  int            `json:"dropped"`
	GroupBy  string         `json:"groupBy,omitempty"`
	Measure  string         `json:"measure"`
	Sort     string         `json:"sort"`
	Overall  Summary        `json:"overall"`
	Groups   []GroupSummary `json:"groups"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Analyze parses d with a single-measure schema, groups it, and summarizes
// each group. Rows whose measure does not parse are counted as dropped.
func Analyze(d *dataset.Dataset, opt Options) (*Report, error) {
	if opt.Measure.Column == "" {
		return nil, errors.New("analyze: measure column is required")
	}
	if !d.HasField(opt.Measure.Column) {
		return nil, fmt.Errorf("analyze: column %q not in %s (have: %s)", opt.Measure.Column, d.Name, strings.Join(d.Header, ", "))
	}
	if opt.GroupBy != "" && !d.HasField(opt.GroupBy) {
		return nil, fmt.Errorf("analyze: group-by column %q not in %s", opt.GroupBy, d.Name)
	}
	measure := opt.Measure.Measure
	if measure == "" {
		measure = opt.Measure.Column
	}
	schema := Schema{
		CategoryColumn: opt.GroupBy,
		Fields:         []Field{{Column: opt.Measure.Column, Measure: measure, Kind: opt.Measure.Kind}},
	}
	all := schema.ParseAll(d)
	used := Require(all, measure)

	rep := &Report{
		Name:    d.Name,
		Rows:    len(all),
		Used:    len(used),
		Dropped: len(all) - len(used),
		GroupBy: opt.GroupBy,
		Measure: measure,
		Sort:    opt.Sort.String(),
	}
	if len(used) == 0 {
		return nil, fmt.Errorf("analyze %s: no rows with a valid %s: %w", d.Name, opt.Measure.Column, ErrEmptySample)
	}
	overall, err := Summarize(Project(used, measure))
	if err != nil {
		return nil, err
	}
	rep.Overall = overall

	key := KeyFunc(ByCategory)
	if opt.GroupBy == "" {
		key = func(Record) string { return "all" }
	}
	groups := GroupBy(used, key)
	selected := groups.All()
	if len(opt.Groups) > 0 {
		selected = groups.Select(opt.Groups...)
		for _, k := range opt.Groups {
			if _, ok := groups.Get(k); !ok {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("group %q has no rows with a valid %s", k, measure))
			}
		}
	}
	sums, err := SummarizeGroups(selected, measure)
	if err != nil {
		return nil, err
	}
	rep.Groups = Sort(sums, opt.Sort)
	if rep.Dropped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("dropped %d/%d rows with a missing or malformed %s", rep.Dropped, rep.Rows, opt.Measure.Column))
	}
	return rep, nil
}

// Markdown renders the report. format renders values; nil uses %.4g.
func (r *Report) Markdown(format func(float64) string, whiskers bool) string {
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.4g", v) }
	}
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Dropped > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (used %d)\n", r.Rows, r.Used))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Measure: %s\n", r.Measure))
	o := r.Overall
	b.WriteString(fmt.Sprintf("Overall: n=%d, mean %s, sd %s, median %s (min %s, max %s)\n",
		o.N, format(o.Mean), format(o.StdDev), format(o.Median), format(o.Min), format(o.Max)))

	if len(r.Groups) > 0 {
		title := "all rows"
		if r.GroupBy != "" {
			title = "by " + r.GroupBy
		}
		b.WriteString(fmt.Sprintf("\n[GROUP-BY SUMMARY] %s, sorted %s\n", title, r.Sort))
		if whiskers {
			b.WriteString("| group | n | low | q1 | median | q3 | high | mean | sd |\n")
			b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		} else {
			b.WriteString("| group | n | min | q1 | median | q3 | max | mean | sd |\n")
			b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		}
		for _, g := range r.Groups {
			s := g.Summary
			lo, hi := s.Min, s.Max
			if whiskers {
				lo, hi = s.Whiskers()
			}
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				safeVal(g.Key), s.N, format(lo), format(s.Q1), format(s.Median), format(s.Q3), format(hi), format(s.Mean), format(s.StdDev)))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
