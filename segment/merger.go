package segment

import (
	"strings"

	"github.com/codexforge/bestiary/model"
)

// descriptionProbeLen is how many leading characters of an incoming
// description are checked against the existing one before concatenating.
// A cheap near-duplicate guard: identical extractions from a second pass
// share their opening text even when trailing noise differs.
const descriptionProbeLen = 50

// Merge deduplicates records by normalized name, preserving first-seen
// order. Default stats are upgraded by later populated ones, descriptions
// and sources are concatenated with duplicate guards. Merge is idempotent:
// merging already-merged output with itself is a no-op.
func Merge(records []model.EntityRecord) []model.EntityRecord {
	byKey := make(map[string]*model.EntityRecord)
	var order []string

	for _, rec := range records {
		key := model.NormalizeName(rec.Name)
		existing, ok := byKey[key]
		if !ok {
			clone := rec
			byKey[key] = &clone
			order = append(order, key)
			continue
		}
		mergeInto(existing, rec)
	}

	out := make([]model.EntityRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// mergeInto folds src into dst
func mergeInto(dst *model.EntityRecord, src model.EntityRecord) {
	if dst.HasDefaultStats() && !src.HasDefaultStats() {
		dst.ArmorClass = src.ArmorClass
		dst.HitPoints = src.HitPoints
		dst.TypeLine = src.TypeLine
	}
	if dst.TypeLine == model.UnknownType && src.TypeLine != model.UnknownType {
		dst.TypeLine = src.TypeLine
	}
	if dst.ChallengeRating == model.UnknownType && src.ChallengeRating != model.UnknownType {
		dst.ChallengeRating = src.ChallengeRating
	}

	if src.Description != "" {
		probe := src.Description
		if len(probe) > descriptionProbeLen {
			probe = probe[:descriptionProbeLen]
		}
		if !strings.Contains(dst.Description, probe) {
			if dst.Description != "" {
				dst.Description += "\n\n"
			}
			dst.Description += src.Description
		}
	}

	if src.Source != "" && !strings.Contains(dst.Source, src.Source) {
		if dst.Source != "" {
			dst.Source += ", "
		}
		dst.Source += src.Source
	}

	if dst.ImageRef == "" {
		dst.ImageRef = src.ImageRef
	}
	if dst.AbilityScores == nil {
		dst.AbilityScores = src.AbilityScores
	}
	if dst.SavingThrows == nil {
		dst.SavingThrows = src.SavingThrows
	}
}
