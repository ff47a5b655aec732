package filterlist

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/trackscan/filterengine/rules"
)

// ScanStats counts the lines a scanner skipped.
type ScanStats struct {
	// Comments is the number of comment lines.
	Comments int

	// Cosmetic is the number of element-hiding lines and rules with
	// cosmetic-only options.
	Cosmetic int

	// Invalid is the number of lines that failed to parse.
	Invalid int
}

// RuleScanner reads filter-list text line by line and yields parsed rules.
// Blank lines, comments, and cosmetic rules are skipped and counted; a
// line that fails to parse is counted as invalid and never aborts the
// scan.
type RuleScanner struct {
	scanner *bufio.Scanner
	logger  *slog.Logger

	rule rules.Rule

	listID int
	stats  ScanStats
}

// NewRuleScanner creates a new rule scanner for the given reader.  logger
// may be nil, in which case nothing is logged.
func NewRuleScanner(r io.Reader, listID int, logger *slog.Logger) (s *RuleScanner) {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	return &RuleScanner{
		scanner: bufio.NewScanner(r),
		logger:  logger,
		listID:  listID,
	}
}

// Scan advances the scanner to the next valid rule.  It returns false when
// the list is exhausted.
func (s *RuleScanner) Scan() (ok bool) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		if rules.IsComment(line) {
			s.stats.Comments++

			continue
		}

		if rules.IsCosmetic(line) {
			s.stats.Cosmetic++

			continue
		}

		r, err := rules.ParseRule(line)
		if err != nil {
			if errors.Is(err, rules.ErrCosmeticRule) {
				s.stats.Cosmetic++
			} else {
				s.stats.Invalid++
				s.logger.Debug(
					"skipping invalid rule",
					"list_id", s.listID,
					"line", line,
					slogutil.KeyError, err,
				)
			}

			continue
		}

		s.rule = r

		return true
	}

	return false
}

// Rule returns the rule the scanner is positioned on.
func (s *RuleScanner) Rule() (r rules.Rule) { return s.rule }

// Stats returns the skip counters accumulated so far.
func (s *RuleScanner) Stats() (st ScanStats) { return s.stats }
