// Command bestiary extracts creature and item records from tabletop
// rulebook PDFs and compendium HTML pages.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/codexforge/bestiary"
	"github.com/codexforge/bestiary/action"
	"github.com/codexforge/bestiary/htmldoc"
	"github.com/codexforge/bestiary/internal/config"
	"github.com/codexforge/bestiary/model"
)

// record is one output entry: the extracted record plus its parsed
// actions when requested.
type record struct {
	model.EntityRecord
	Actions []action.Action `json:"actions,omitempty"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bestiary: ")

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) error {
	ex, err := openExtractor(cfg)
	if err != nil {
		return err
	}
	ex = configure(ex, cfg)

	result, warnings, err := ex.Extract()
	if err != nil {
		return err
	}

	reportWarnings(cfg, warnings)

	records := make([]record, 0, len(result.Records))
	for i := range result.Records {
		rec := record{EntityRecord: result.Records[i]}
		if cfg.Actions {
			rec.Actions = bestiary.Actions(&result.Records[i])
		}
		records = append(records, rec)
	}

	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOut()

	if cfg.Format == config.FormatText {
		writeText(out, records)
	} else if err := writeJSON(out, records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d records: %d matched, %d skipped, %d errors\n",
		len(records), result.Stats.Matched, result.Stats.Skipped, result.Stats.Errors)
	return nil
}

// openExtractor selects the page source by file extension. HTML pages
// go through the compendium reader; everything else is treated as PDF.
func openExtractor(cfg *config.Config) (*bestiary.Extractor, error) {
	switch strings.ToLower(filepath.Ext(cfg.Input)) {
	case ".html", ".htm":
		src, err := htmldoc.OpenSource(cfg.Input)
		if err != nil {
			return nil, err
		}
		return bestiary.FromSource(src).SourceName(filepath.Base(cfg.Input)), nil
	default:
		return bestiary.Open(cfg.Input), nil
	}
}

// configure applies the command line options to the extractor.
func configure(ex *bestiary.Extractor, cfg *config.Config) *bestiary.Extractor {
	if pages := cfg.PageList(); pages != nil {
		ex = ex.Pages(pages...)
	}
	if cfg.ExcludeImages {
		ex = ex.ExcludeImages()
	}
	if cfg.NoPropagation {
		ex = ex.DisableImagePropagation()
	}
	if len(cfg.DenyImages) > 0 {
		ex = ex.DenyImages(cfg.DenyImages...)
	}
	if cfg.OCR {
		ex = ex.WithOCR()
	}
	return ex
}

func reportWarnings(cfg *config.Config, warnings []bestiary.Warning) {
	if len(warnings) == 0 {
		return
	}
	if cfg.Verbose {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%d warnings: %s\n", len(warnings), bestiary.FormatWarnings(warnings))
}

func openOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(w io.Writer, records []record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// writeText prints a readable one-block-per-record summary.
func writeText(w io.Writer, records []record) {
	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", rec.Name, rec.TypeLine)
		fmt.Fprintf(w, "  AC %d  HP %d  CR %s\n", rec.ArmorClass, rec.HitPoints, rec.ChallengeRating)
		if rec.ImageRef != "" {
			fmt.Fprintf(w, "  Image: %s\n", rec.ImageRef)
		}
		for _, act := range rec.Actions {
			fmt.Fprintf(w, "  %s [%s]", act.Name, act.Section)
			if act.ToHit != nil {
				fmt.Fprintf(w, " +%d to hit", *act.ToHit)
			}
			for _, d := range act.Damages {
				fmt.Fprintf(w, " %s %s", d.Dice, d.Type)
			}
			fmt.Fprintln(w)
		}
	}
}
