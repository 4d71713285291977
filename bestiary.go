// Package bestiary provides a fluent API for extracting structured
// creature and item records from tabletop-game rulebooks.
//
// Basic usage:
//
//	records, warnings, err := bestiary.Open("monster-manual.pdf").Records()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", bestiary.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := bestiary.Open("monster-manual.pdf").
//	    Pages(12, 13, 14).
//	    DisableImagePropagation().
//	    Extract()
//
// For non-PDF inputs, or for custom page providers, use FromSource with
// any PageSource implementation. The lower-level segment, spatial, and
// action packages are also available for advanced use.
package bestiary

import (
	"github.com/codexforge/bestiary/action"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/spelldata"
)

// Open opens a rulebook PDF and returns an Extractor for fluent
// configuration. The returned Extractor must be closed when done, either
// explicitly via Close() or implicitly when calling a terminal operation
// like Records().
//
// Example:
//
//	records, warnings, err := bestiary.Open("monster-manual.pdf").Records()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor from an already-opened PageSource.
// This is useful for non-PDF inputs or when you need more control over
// the source lifecycle. The caller is responsible for closing the source.
//
// Example:
//
//	src, err := pdfsource.Open("monster-manual.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	records, warnings, err := bestiary.FromSource(src).Records()
func FromSource(src PageSource) *Extractor {
	return &Extractor{
		source:       src,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Actions derives the structured actions of a record from its
// description text using the built-in spell reference table. The
// description is the ground truth; actions are never stored on the
// record itself.
//
// Example:
//
//	for _, act := range bestiary.Actions(&rec) {
//	    fmt.Println(act.Name, act.Section)
//	}
func Actions(rec *model.EntityRecord) []action.Action {
	return action.ParseRecord(rec, spelldata.Default())
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := bestiary.Must(bestiary.Open("monster-manual.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords wraps a call to Records() and panics if the error is
// non-nil. It discards warnings and returns just the records.
//
// Example:
//
//	records := bestiary.MustRecords(bestiary.Open("monster-manual.pdf").Records())
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
