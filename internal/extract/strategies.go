package extract

import "regexp"

// fieldStrategy is one heuristic in a field's ordered strategy list.
// Strategies run most-specific-first; the first one whose candidate
// survives validation and normalization wins, and later entries never run.
type fieldStrategy struct {
	name       string
	confidence float64

	// find locates a raw candidate in the text, or returns "" when the
	// strategy does not apply.
	find func(text string) string

	// validate rejects malformed candidates so the next strategy gets a
	// chance. Nil means every candidate is acceptable.
	validate func(candidate string) bool

	// normalize rewrites the candidate into its canonical form. Returning
	// ok=false discards the candidate the same way a failed validation
	// does. Nil means the candidate is used verbatim.
	normalize func(candidate string) (string, bool)
}

// runStrategies evaluates an ordered strategy list and returns the first
// surviving match. Missing data is not an error: when no strategy matches
// the field comes back with a nil value and confidence 0.
func runStrategies(text string, strategies []fieldStrategy) ExtractedField {
	for _, s := range strategies {
		candidate := s.find(text)
		if candidate == "" {
			continue
		}
		if s.validate != nil && !s.validate(candidate) {
			continue
		}
		value := candidate
		if s.normalize != nil {
			normalized, ok := s.normalize(candidate)
			if !ok {
				continue
			}
			value = normalized
		}
		return FoundField(value, s.confidence)
	}
	return MissingField()
}

// firstSubmatch returns a find func capturing group one of the first match.
func firstSubmatch(re *regexp.Regexp) func(string) string {
	return groupSubmatch(re, 1)
}

// groupSubmatch returns a find func capturing the given group of the first match.
func groupSubmatch(re *regexp.Regexp, group int) func(string) string {
	return func(text string) string {
		if m := re.FindStringSubmatch(text); len(m) > group {
			return m[group]
		}
		return ""
	}
}
