// Package config holds the command line configuration for the
// bestiary extraction tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds all configuration for one extraction run
type Config struct {
	// Input is the rulebook file to extract from
	Input string

	// Output is the destination path; "" writes to stdout
	Output string

	// Format selects the output format: "json" or "text"
	Format string

	// Pages restricts extraction to a page selection like "3,5-9";
	// "" extracts every page
	Pages string

	// ExcludeImages skips image matching entirely
	ExcludeImages bool

	// NoPropagation disables carrying context art across pages
	NoPropagation bool

	// DenyImages lists record names excluded from image matching
	DenyImages []string

	// OCR enables the OCR fallback for pages without embedded text
	OCR bool

	// Actions parses each record's description into structured actions
	Actions bool

	// Verbose prints per-page warnings instead of a summary count
	Verbose bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Format: FormatJSON,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
// The single positional argument is the input file.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	args := pflag.Args()
	if len(args) != 1 {
		return nil, errors.New("exactly one input file is required")
	}
	cfg.Input = args[0]

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("BESTIARY")
	viper.AutomaticEnv()

	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("pages", cfg.Pages)
	viper.SetDefault("noimages", cfg.ExcludeImages)
	viper.SetDefault("nopropagation", cfg.NoPropagation)
	viper.SetDefault("deny", cfg.DenyImages)
	viper.SetDefault("ocr", cfg.OCR)
	viper.SetDefault("actions", cfg.Actions)
	viper.SetDefault("verbose", cfg.Verbose)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.StringP("output", "o", cfg.Output, "Output file (default stdout)")
	pflag.String("format", cfg.Format, "Output format: 'json' or 'text'")
	pflag.String("pages", cfg.Pages, "Pages to extract, e.g. '3,5-9' (default all)")
	pflag.Bool("noimages", cfg.ExcludeImages, "Skip image matching")
	pflag.Bool("nopropagation", cfg.NoPropagation, "Disable context art propagation across pages")
	pflag.StringSlice("deny", cfg.DenyImages, "Record names to exclude from image matching")
	pflag.Bool("ocr", cfg.OCR, "Use OCR for pages without embedded text")
	pflag.Bool("actions", cfg.Actions, "Parse record descriptions into structured actions")
	pflag.BoolP("verbose", "v", cfg.Verbose, "Print individual warnings")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("pages", pflag.Lookup("pages"))
	_ = viper.BindPFlag("noimages", pflag.Lookup("noimages"))
	_ = viper.BindPFlag("nopropagation", pflag.Lookup("nopropagation"))
	_ = viper.BindPFlag("deny", pflag.Lookup("deny"))
	_ = viper.BindPFlag("ocr", pflag.Lookup("ocr"))
	_ = viper.BindPFlag("actions", pflag.Lookup("actions"))
	_ = viper.BindPFlag("verbose", pflag.Lookup("verbose"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <rulebook.pdf|page.html>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExtracts creature and item records from tabletop rulebooks\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s monster-manual.pdf                     # all pages, JSON to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pages=5-40 -o records.json book.pdf  # page range to a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --actions --format=text book.pdf       # readable summary with actions\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  BESTIARY_FORMAT   Output format\n")
		fmt.Fprintf(os.Stderr, "  BESTIARY_PAGES    Page selection\n")
		fmt.Fprintf(os.Stderr, "  BESTIARY_OCR      OCR fallback\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Output = viper.GetString("output")
	cfg.Format = viper.GetString("format")
	cfg.Pages = viper.GetString("pages")
	cfg.ExcludeImages = viper.GetBool("noimages")
	cfg.NoPropagation = viper.GetBool("nopropagation")
	cfg.DenyImages = viper.GetStringSlice("deny")
	cfg.OCR = viper.GetBool("ocr")
	cfg.Actions = viper.GetBool("actions")
	cfg.Verbose = viper.GetBool("verbose")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input file cannot be empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("cannot access input file %s: %w", c.Input, err)
	}
	if c.Format != FormatJSON && c.Format != FormatText {
		return fmt.Errorf("format must be '%s' or '%s'", FormatJSON, FormatText)
	}
	if c.Pages != "" {
		if _, err := ParsePages(c.Pages); err != nil {
			return err
		}
	}
	return nil
}

// PageList returns the parsed page selection, or nil for all pages.
func (c *Config) PageList() []int {
	if c.Pages == "" {
		return nil
	}
	pages, _ := ParsePages(c.Pages)
	return pages
}

// ParsePages parses a page selection like "3,5-9" into a sorted list
// of 1-indexed page numbers without duplicates.
func ParsePages(spec string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parsePart(part)
		if err != nil {
			return nil, err
		}
		for p := lo; p <= hi; p++ {
			seen[p] = true
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("empty page selection %q", spec)
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// parsePart parses one selection element: a single page or a lo-hi range.
func parsePart(part string) (int, int, error) {
	if lo, hi, found := strings.Cut(part, "-"); found {
		start, err := parsePage(lo)
		if err != nil {
			return 0, 0, err
		}
		end, err := parsePage(hi)
		if err != nil {
			return 0, 0, err
		}
		if end < start {
			return 0, 0, fmt.Errorf("invalid page range %q", part)
		}
		return start, end, nil
	}
	p, err := parsePage(part)
	return p, p, err
}

func parsePage(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return p, nil
}
