// Package filterlist contains scanners over filter-list text.  A scanner
// walks the list line by line, skipping and counting non-rule lines, and
// yields parsed rules one at a time.
package filterlist

import (
	"log/slog"
	"strings"
)

// RuleList represents one source of filtering rules.
type RuleList interface {
	// GetID returns the rule list identifier.
	GetID() (id int)

	// NewScanner creates a new scanner that reads the list contents.
	NewScanner(logger *slog.Logger) (s *RuleScanner)
}

// StringRuleList is a rule list backed by a string with one rule per line.
// Obtaining the string (downloading or reading a file) is the caller's
// job.
type StringRuleList struct {
	// RulesText is the filter-list text.
	RulesText string

	// ID is the rule list identifier.
	ID int
}

// type check
var _ RuleList = (*StringRuleList)(nil)

// GetID implements the [RuleList] interface for *StringRuleList.
func (l *StringRuleList) GetID() (id int) { return l.ID }

// NewScanner implements the [RuleList] interface for *StringRuleList.
func (l *StringRuleList) NewScanner(logger *slog.Logger) (s *RuleScanner) {
	return NewRuleScanner(strings.NewReader(l.RulesText), l.ID, logger)
}
