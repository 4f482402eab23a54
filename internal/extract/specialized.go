package extract

import (
	"regexp"
	"strings"
)

// specializedConfidence is the fixed trust level for every field the
// specialized tier matches. The tier is only invoked on one known document
// layout, so any successful match is treated as high-trust.
const specializedConfidence = 0.95

const emergencyContactMarker = "Emergency Contact"

var mobilePhoneRe = regexp.MustCompile(`(?i)(` + phonePattern + `)\s*\(?mobile\b`)

// SpecializedExtractor is the second tier, tuned to one known document
// layout and operating directly on raw document bytes decoded as text. It
// applies the same family of heuristics as the generic parsers but with
// positional and contextual cues the generic path cannot use: the document
// repeats the applicant's name once at the top and once at the start of
// their own contact block, and the applicant's phone numbers precede the
// emergency-contact block.
type SpecializedExtractor struct{}

// NewSpecializedExtractor creates a specialized extractor.
func NewSpecializedExtractor() *SpecializedExtractor {
	return &SpecializedExtractor{}
}

// Extract runs the layout-specific heuristics over the decoded text.
// Overall is the fraction of fields found rather than a mean of
// confidences.
func (s *SpecializedExtractor) Extract(text string) *ExtractedData {
	name := s.extractName(text)
	data := &ExtractedData{
		Name:       name,
		Email:      s.extractEmail(text, name),
		Phone:      s.extractPhone(text),
		MoveInDate: pinConfidence(parseMoveInDate(text)),
		Property:   pinConfidence(parseProperty(text)),
		UnitNumber: pinConfidence(parseUnitNumber(text)),
		Rent:       pinConfidence(parseRent(text)),
		CreatedAt:  pinConfidence(parseCreatedAt(text)),
		Metadata:   ExtractionMetadata{ExtractionMethod: MethodSpecialized},
	}
	data.Overall = float64(data.FieldsFound()) / FieldCount
	return data
}

// extractName uses only the application-title pattern. This tier is only
// invoked for one known layout, so there is no fallback chain.
func (s *SpecializedExtractor) extractName(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "application_title",
			confidence: specializedConfidence,
			find:       firstSubmatch(nameAfterTitleRe),
			validate:   validName,
		},
	})
}

// extractEmail selects the applicant email by context. Context-aware
// patterns are preferred over positional heuristics, which are preferred
// over pure order heuristics:
//
//  1. the applicant's name, then an "Email" label, then eventually the
//     "Type Financially" marker, matched across lines;
//  2. the name appearing twice before the email label;
//  3. the last of all emails in the document.
func (s *SpecializedExtractor) extractEmail(text string, name ExtractedField) ExtractedField {
	strategies := []fieldStrategy{}
	if name.Found() {
		quoted := regexp.QuoteMeta(*name.Value)
		contextRe := regexp.MustCompile(
			`(?s)` + quoted + `.*?Email.*?(` + emailPattern + `).*?Type\s+Financially`)
		repeatedNameRe := regexp.MustCompile(
			`(?s)` + quoted + `.*?` + quoted + `.*?Email.*?(` + emailPattern + `)`)
		strategies = append(strategies,
			fieldStrategy{
				name:       "name_context_block",
				confidence: specializedConfidence,
				find:       firstSubmatch(contextRe),
			},
			fieldStrategy{
				name:       "name_repeated",
				confidence: specializedConfidence,
				find:       firstSubmatch(repeatedNameRe),
			},
		)
	}
	strategies = append(strategies, fieldStrategy{
		name:       "last_email",
		confidence: specializedConfidence,
		find: func(text string) string {
			all := emailRe.FindAllString(text, -1)
			if len(all) == 0 {
				return ""
			}
			return all[len(all)-1]
		},
	})
	return runStrategies(text, strategies)
}

// extractPhone prefers a number suffixed by the literal word "mobile".
// Failing that, the last phone before the emergency-contact block is the
// applicant's own; without that block the first phone in the document wins.
func (s *SpecializedExtractor) extractPhone(text string) ExtractedField {
	return runStrategies(text, []fieldStrategy{
		{
			name:       "mobile_suffix",
			confidence: specializedConfidence,
			find:       firstSubmatch(mobilePhoneRe),
			normalize:  normalizePhone,
		},
		{
			name:       "before_emergency_contact",
			confidence: specializedConfidence,
			find:       findPhoneBeforeEmergencyContact,
			normalize:  normalizePhone,
		},
	})
}

func findPhoneBeforeEmergencyContact(text string) string {
	marker := strings.Index(text, emergencyContactMarker)
	if marker < 0 {
		return phoneRe.FindString(text)
	}
	last := ""
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		if loc[0] >= marker {
			break
		}
		last = text[loc[0]:loc[1]]
	}
	return last
}

// pinConfidence reuses a generic parser result but replaces its strategy
// confidence with this tier's fixed trust level.
func pinConfidence(field ExtractedField) ExtractedField {
	if !field.Found() {
		return field
	}
	return FoundField(*field.Value, specializedConfidence)
}
