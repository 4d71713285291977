package bestiary

// ExtractOptions holds configuration for record extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Image matching
	excludeImages      bool
	disablePropagation bool
	imageDenyList      []string

	// OCR fallback for pages with no text layer
	useOCR bool

	// Source label stamped onto extracted records; defaults to the
	// opened filename
	sourceName string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:              nil, // nil means all pages
		excludeImages:      false,
		disablePropagation: false,
		useOCR:             false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		excludeImages:      o.excludeImages,
		disablePropagation: o.disablePropagation,
		useOCR:             o.useOCR,
		sourceName:         o.sourceName,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.imageDenyList != nil {
		newOpts.imageDenyList = make([]string, len(o.imageDenyList))
		copy(newOpts.imageDenyList, o.imageDenyList)
	}

	return newOpts
}
