package extract

// GenericExtractor is the fallback engine usable on any block of extracted
// plain text. It runs every field parser and aggregates a confidence-scored
// result. No parser observes another's output, so they may run in any order.
type GenericExtractor struct{}

// NewGenericExtractor creates a generic extractor.
func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

// Extract runs all eight field parsers over the text and assembles the
// result. Overall is the unweighted mean of the eight field confidences,
// never clipped or renormalized.
func (g *GenericExtractor) Extract(text string) *ExtractedData {
	data := &ExtractedData{
		Name:       parseName(text),
		Email:      parseEmail(text),
		Phone:      parsePhone(text),
		MoveInDate: parseMoveInDate(text),
		Property:   parseProperty(text),
		UnitNumber: parseUnitNumber(text),
		Rent:       parseRent(text),
		CreatedAt:  parseCreatedAt(text),
		Metadata:   ExtractionMetadata{ExtractionMethod: MethodGeneric},
	}
	data.Overall = data.meanConfidence()
	return data
}
