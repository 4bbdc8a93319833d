package counterpoint

import (
	"fmt"
)

// GlobalPosition marks an issue that belongs to the whole line.
const GlobalPosition = -1

// Issue is one finding of the validator.
type Issue struct {
	Rule     Rule     `json:"rule"`
	Position int      `json:"position"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// PositionResult groups the issues attached to one counterpoint position.
type PositionResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Result is the output of a validation. Equal inputs give equal results.
type Result struct {
	Species     Species          `json:"species"`
	Valid       bool             `json:"valid"`
	Score       int              `json:"score"`
	Errors      []Issue          `json:"errors"`
	Warnings    []Issue          `json:"warnings"`
	Suggestions []Issue          `json:"suggestions"`
	Positions   []PositionResult `json:"per_position_results"`
}

// Issues returns errors, warnings and suggestions in that order.
func (r Result) Issues() []Issue {
	all := make([]Issue, 0, len(r.Errors)+len(r.Warnings)+len(r.Suggestions))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	return append(all, r.Suggestions...)
}

// Has reports whether any issue carries the rule.
func (r Result) Has(rule Rule) bool {
	return len(r.ByRule(rule)) > 0
}

// ByRule filters issues by rule.
func (r Result) ByRule(rule Rule) []Issue {
	var out []Issue
	for _, is := range r.Issues() {
		if is.Rule == rule {
			out = append(out, is)
		}
	}
	return out
}

// CalculateScore deducts weighted issue counts from 100, floored at 0.
func CalculateScore(w Weights, errors, warnings, suggestions int) int {
	score := 100 - errors*w.Error - warnings*w.Warning - suggestions*w.Suggestion
	if score < 0 {
		return 0
	}
	return score
}

// collector accumulates issues in emission order.
type collector struct {
	issues []Issue
}

func (c *collector) add(rule Rule, sev Severity, pos int, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Rule:     rule,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

func (c *collector) errorf(rule Rule, pos int, format string, args ...any) {
	c.add(rule, SeverityError, pos, format, args...)
}

func (c *collector) warnf(rule Rule, pos int, format string, args ...any) {
	c.add(rule, SeverityWarning, pos, format, args...)
}

func (c *collector) suggestf(rule Rule, pos int, format string, args ...any) {
	c.add(rule, SeveritySuggestion, pos, format, args...)
}

// Aggregate splits issues by severity, attaches them to their positions and
// computes the score. Positions outside 0..positions-1 stay global.
func Aggregate(species Species, w Weights, positions int, issues []Issue) Result {
	res := Result{
		Species:     species,
		Errors:      []Issue{},
		Warnings:    []Issue{},
		Suggestions: []Issue{},
		Positions:   make([]PositionResult, positions),
	}
	for i := range res.Positions {
		res.Positions[i] = PositionResult{Valid: true, Issues: []Issue{}}
	}

	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			res.Errors = append(res.Errors, is)
		case SeverityWarning:
			res.Warnings = append(res.Warnings, is)
		default:
			res.Suggestions = append(res.Suggestions, is)
		}
		if is.Position >= 0 && is.Position < positions {
			pr := &res.Positions[is.Position]
			pr.Issues = append(pr.Issues, is)
			if is.Severity == SeverityError {
				pr.Valid = false
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	res.Score = CalculateScore(w, len(res.Errors), len(res.Warnings), len(res.Suggestions))
	return res
}
