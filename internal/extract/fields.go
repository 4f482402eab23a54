package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Shared shape patterns. Candidate selection differs per field; the shapes
// themselves do not. The string forms are kept separate so the specialized
// tier can embed them in context-aware patterns built at extraction time.
const (
	emailPattern = `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`
	phonePattern = `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`
)

var (
	emailRe = regexp.MustCompile(emailPattern)
	phoneRe = regexp.MustCompile(phonePattern)
	dateRe  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// Name patterns. Case-sensitive on purpose: a name candidate is a run of
// capitalized words, and a (?i) flag would defeat that.
var (
	nameAfterTitleRe = regexp.MustCompile(
		`Rental Application(?:\s+for)?[ \t]+([A-Z][A-Za-z'.-]*(?: [A-Z][A-Za-z'.-]*)+)`)
	nameLabelRe = regexp.MustCompile(
		`(?:Applicant(?: Name)?|Full Name|Name)\s*:\s*([A-Z][A-Za-z'.-]*(?: [A-Z][A-Za-z'.-]*)+)`)
	nameLineRe = regexp.MustCompile(
		`^[A-Z][A-Za-z'.-]*(?: [A-Z][A-Za-z'.-]*)+$`)
	nameBeforeEmailRe = regexp.MustCompile(
		`([A-Z][A-Za-z'.-]*(?: [A-Z][A-Za-z'.-]*)+)\s+[A-Za-z0-9._%+-]+@`)
)

var (
	// The greedy prefix binds the last "Email" label that still completes
	// the match, so an emergency-contact email block earlier in the
	// document cannot capture. No other email may sit between the label
	// and the captured one.
	emailBlockRe = regexp.MustCompile(
		`(?s).*Email[^@]*?(` + emailPattern + `).*?Type Financially`)
	phoneLabelRe = regexp.MustCompile(
		`(?i)(?:phone|tel|mobile|cell)\s*(?:number|#)?\s*:\s*(\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`)
	moveInLabelRe = regexp.MustCompile(
		`(?i)(?:desired\s+)?(?:move[-\s]?in(?:\s+date)?|lease\s+start(?:\s+date)?|start\s+date)\s*:\s*([0-9][0-9/.\-]*)`)
	propertyUnitRe = regexp.MustCompile(
		`([A-Z][A-Za-z0-9'&.]*(?: [A-Z][A-Za-z0-9'&.]*)*) - ([A-Za-z0-9][A-Za-z0-9-]*)`)
	unitLabelRe = regexp.MustCompile(
		`(?i)unit(?:\s*(?:number|#))?\s*:\s*([A-Za-z0-9-]+)`)
	marketRentRe = regexp.MustCompile(
		`(?i)market rent\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`)
	rentLabelRe = regexp.MustCompile(
		`(?i)\brent\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`)
	submittedViaRe = regexp.MustCompile(
		`(?i)submitted via\s+.*?\bon\s+(\d{1,2}/\d{1,2}/\d{2,4})`)
	createdLabelRe = regexp.MustCompile(
		`(?i)(?:created|application date|submitted)\s*:?\s*([0-9][0-9/.\-]*)`)
)

var nonDigitRe = regexp.MustCompile(`\D`)

// parseName extracts the applicant name. Strategy order follows pattern
// specificity of the label, not raw confidence: a bare capitalized line
// near the top of the document (0.7) is tried before a name adjacent to an
// email address (0.8).
func parseName(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "application_title",
			confidence: 0.95,
			find:       firstSubmatch(nameAfterTitleRe),
			validate:   validName,
		},
		{
			name:       "labeled",
			confidence: 0.9,
			find:       firstSubmatch(nameLabelRe),
			validate:   validName,
		},
		{
			name:       "capitalized_line",
			confidence: 0.7,
			find:       findCapitalizedLine,
			validate:   validName,
		},
		{
			name:       "before_email",
			confidence: 0.8,
			find:       firstSubmatch(nameBeforeEmailRe),
			validate:   validName,
		},
	})
}

// findCapitalizedLine scans the first ten lines for a bare line of two to
// five capitalized words.
func findCapitalizedLine(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i >= 10 {
			break
		}
		line = strings.TrimSpace(line)
		if nameLineRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// validName rejects candidates outside the 2-5 word, 4-50 character range
// so the next strategy in the list gets a chance.
func validName(candidate string) bool {
	words := len(strings.Fields(candidate))
	return words >= 2 && words <= 5 && len(candidate) >= 4 && len(candidate) <= 50
}

// parseEmail extracts the applicant email. Documents place an
// emergency-contact email before the applicant's own, so when multiple
// candidates exist without a labeled applicant block the last one wins.
func parseEmail(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "labeled_block",
			confidence: 0.95,
			find:       firstSubmatch(emailBlockRe),
		},
		{
			name:       "last_of_many",
			confidence: 0.7,
			find: func(text string) string {
				all := emailRe.FindAllString(text, -1)
				if len(all) > 1 {
					return all[len(all)-1]
				}
				return ""
			},
		},
		{
			name:       "single",
			confidence: 0.95,
			find: func(text string) string {
				all := emailRe.FindAllString(text, -1)
				if len(all) == 1 {
					return all[0]
				}
				return ""
			},
		},
	})
}

// parsePhone extracts the applicant phone number. Both strategies carry the
// same confidence: the ambiguity is only in which number gets selected, not
// in the format of the match itself.
func parsePhone(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "labeled",
			confidence: 0.9,
			find:       firstSubmatch(phoneLabelRe),
			normalize:  normalizePhone,
		},
		{
			name:       "first_match",
			confidence: 0.9,
			find:       func(text string) string { return phoneRe.FindString(text) },
			normalize:  normalizePhone,
		},
	})
}

// parseMoveInDate extracts the desired move-in date.
func parseMoveInDate(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "labeled",
			confidence: 0.85,
			find:       firstSubmatch(moveInLabelRe),
			normalize:  normalizeDate,
		},
		{
			name:       "first_date",
			confidence: 0.85,
			find:       func(text string) string { return dateRe.FindString(text) },
			normalize:  normalizeDate,
		},
	})
}

// parseProperty extracts the property name from the "Property - Unit"
// combo pattern, e.g. "Legacy Meadows - 4600-15".
func parseProperty(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "property_unit_combo",
			confidence: 0.9,
			find:       groupSubmatch(propertyUnitRe, 1),
			validate: func(candidate string) bool {
				return len(candidate) >= 3 && len(candidate) <= 50
			},
		},
	})
}

// parseUnitNumber extracts the unit token. The combo pattern shared with
// parseProperty is preferred; an explicit "Unit:" label is the fallback.
func parseUnitNumber(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "property_unit_combo",
			confidence: 0.9,
			find:       groupSubmatch(propertyUnitRe, 2),
		},
		{
			name:       "labeled",
			confidence: 0.85,
			find:       firstSubmatch(unitLabelRe),
		},
	})
}

// parseRent extracts the monthly rent amount. "Market Rent:" is more
// specific than a bare "Rent:" label and is tried first.
func parseRent(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "market_rent",
			confidence: 0.95,
			find:       firstSubmatch(marketRentRe),
			normalize:  normalizeRent,
		},
		{
			name:       "labeled",
			confidence: 0.85,
			find:       firstSubmatch(rentLabelRe),
			normalize:  normalizeRent,
		},
	})
}

// parseCreatedAt extracts the application submission date.
func parseCreatedAt(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "submitted_via",
			confidence: 0.95,
			find:       firstSubmatch(submittedViaRe),
			normalize:  normalizeDate,
		},
		{
			name:       "labeled",
			confidence: 0.85,
			find:       firstSubmatch(createdLabelRe),
			normalize:  normalizeDate,
		},
	})
}

// normalizePhone renders a candidate as DDD-DDD-DDDD. Anything that does
// not strip down to exactly ten digits is rejected.
func normalizePhone(candidate string) (string, bool) {
	digits := nonDigitRe.ReplaceAllString(candidate, "")
	if len(digits) != 10 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", digits[0:3], digits[3:6], digits[6:10]), true
}

// dateLayouts are tried in order for candidates the digit-count rules do
// not cover.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// normalizeDate renders a candidate as MM/DD/YYYY. All-digit candidates use
// the digit-count rules (6 digits assumes a 20YY year, 8 digits is taken
// verbatim); everything else goes through general date parsing. Unparseable
// input is rejected so the next strategy can run.
func normalizeDate(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if digits := nonDigitRe.ReplaceAllString(candidate, ""); digits == candidate {
		switch len(digits) {
		case 6:
			return fmt.Sprintf("%s/%s/20%s", digits[0:2], digits[2:4], digits[4:6]), true
		case 8:
			return fmt.Sprintf("%s/%s/%s", digits[0:2], digits[2:4], digits[4:8]), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("01/02/2006"), true
		}
	}
	return "", false
}

// normalizeRent strips thousands separators and keeps the decimal part.
func normalizeRent(candidate string) (string, bool) {
	value := strings.ReplaceAll(candidate, ",", "")
	if value == "" {
		return "", false
	}
	return value, true
}
