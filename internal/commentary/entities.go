package commentary

import "pitchside/internal/textutil"

// Capitalized words that open sentences often enough to never be names.
var stopWords = map[string]struct{}{
	"Goal":    {},
	"Card":    {},
	"Free":    {},
	"Corner":  {},
	"Penalty": {},
	"The":     {},
	"And":     {},
	"But":     {},
	"After":   {},
}

// One or two capitalized ASCII words. Case-sensitive on purpose.
var capitalizedName = mustRule(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`, ruleOptions{leading: true, trailing: true})

// ExtractEntities finds player and team mentions in three tiers:
//
//  1. known player names (PersonEntity), every mention kept
//  2. known team names (OrgEntity), skipping spans tier 1 already claimed
//  3. runs of one or two capitalized words (PersonEntity), skipping stop words
//     and any text already collected under case-insensitive comparison
func ExtractEntities(text string, profile *Profile) []Occurrence {
	if text == "" || profile == nil {
		return nil
	}
	idx := textutil.NewRuneOffsets(text)
	var out []Occurrence
	claimed := make(map[span]struct{})
	collected := make(map[string]struct{})

	add := func(sp span, category Category) {
		raw := text[sp.start:sp.end]
		out = append(out, Occurrence{
			Text:     raw,
			Category: category,
			Start:    idx.At(sp.start),
			End:      idx.At(sp.end),
			Payload:  raw,
		})
		collected[textutil.FoldKey(raw)] = struct{}{}
	}

	for _, player := range profile.players {
		for _, sp := range player.rule.findAll(text) {
			add(sp, CategoryPersonEntity)
			claimed[sp] = struct{}{}
		}
	}
	for _, team := range profile.teams {
		for _, sp := range team.rule.findAll(text) {
			if _, ok := claimed[sp]; ok {
				continue
			}
			add(sp, CategoryOrgEntity)
		}
	}
	for _, sp := range capitalizedName.findAll(text) {
		name := text[sp.start:sp.end]
		if _, stop := stopWords[name]; stop {
			continue
		}
		if _, seen := collected[textutil.FoldKey(name)]; seen {
			continue
		}
		add(sp, CategoryPersonEntity)
	}
	return out
}
