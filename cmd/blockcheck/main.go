// Blockcheck is a command-line tool that loads EasyList-style filter lists
// and reports, for each URL given on the command line or standard input,
// whether the lists block it and why.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	goFlags "github.com/jessevdk/go-flags"

	"github.com/trackscan/filterengine"
	"github.com/trackscan/filterengine/filterlist"
)

// Options -- console arguments
type Options struct {
	// Verbose - should we write debug-level log
	Verbose bool `short:"v" long:"verbose" description:"Verbose output (optional)." optional:"yes" optional-value:"true"`

	// FilterLists - paths to the filter lists
	FilterLists []string `short:"f" long:"filter" description:"Path to the filter list. Can be specified multiple times." required:"true"`

	// SourceURL - the URL of the page the requests originate from
	SourceURL string `short:"s" long:"source" description:"Source page URL used for third-party and $domain checks."`

	// ResourceType - resource type of the checked requests
	ResourceType string `short:"t" long:"type" description:"Resource type of the requests (script, image, xhr, ...)."`

	// ShowStats - print rule-set and cache counters after the run
	ShowStats bool `long:"stats" description:"Print engine statistics as JSON after the run." optional:"yes" optional-value:"true"`

	// URLs - the URLs to check; read from stdin when empty
	URLs struct {
		URLs []string `positional-arg-name:"url"`
	} `positional-args:"yes"`
}

func main() {
	var options Options
	parser := goFlags.NewParser(&options, goFlags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*goFlags.Error); ok && flagsErr.Type == goFlags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	os.Exit(run(options))
}

func run(options Options) (exitCode int) {
	level := slogutil.LevelInfo
	if options.Verbose {
		level = slogutil.LevelDebug
	}

	logger := slogutil.New(&slogutil.Config{
		Level: level,
	})

	m, err := buildMatcher(options, logger)
	if err != nil {
		logger.Error("loading filter lists", slogutil.KeyError, err)

		return 1
	}

	urls := options.URLs.URLs
	if len(urls) == 0 {
		urls, err = readLines(os.Stdin)
		if err != nil {
			logger.Error("reading urls", slogutil.KeyError, err)

			return 1
		}
	}

	for _, u := range urls {
		res := m.Match(u, options.SourceURL, options.ResourceType)
		verdict := "pass"
		if res.Blocked {
			verdict = "block"
		}

		if res.Rule != "" {
			fmt.Printf("%s\t%s\t%s\t%s\n", verdict, res.Reason, u, res.Rule)
		} else {
			fmt.Printf("%s\t%s\t%s\n", verdict, res.Reason, u)
		}
	}

	if options.ShowStats {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err = enc.Encode(m.Stats()); err != nil {
			logger.Error("encoding stats", slogutil.KeyError, err)

			return 1
		}
	}

	return 0
}

// buildMatcher reads the filter lists from disk and builds a matcher over
// them.
func buildMatcher(options Options, logger *slog.Logger) (m *filterengine.Matcher, err error) {
	defer func() { err = errors.Annotate(err, "building matcher: %w") }()

	lists := make([]filterlist.RuleList, 0, len(options.FilterLists))
	for i, path := range options.FilterLists {
		var text []byte
		text, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		lists = append(lists, &filterlist.StringRuleList{
			ID:        i + 1,
			RulesText: string(text),
		})
	}

	conf := &filterengine.Config{
		Logger:        logger,
		EnableLogging: options.Verbose,
	}

	rs := filterengine.LoadRuleSets(lists, conf)
	logger.Debug("rule set ready", "lists", len(lists), "rules", rs.Stats().Total)

	return filterengine.NewMatcher(rs, conf), nil
}

// readLines reads whitespace-trimmed non-empty lines from r.
func readLines(r *os.File) (lines []string, err error) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines, s.Err()
}
