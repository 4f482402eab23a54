package extract

// ExtractionMethod records which tier produced a result. Consumers may
// weight trust differently per method.
type ExtractionMethod string

const (
	MethodGeneric     ExtractionMethod = "generic"
	MethodSpecialized ExtractionMethod = "specialized"
)

// FieldCount is the number of applicant fields an extraction produces.
const FieldCount = 8

// ExtractedField is a single best-effort field value with a declared
// trust level. Confidence is a fixed weight assigned to the pattern
// strategy that matched, not a calibrated probability. A missing field
// has a nil Value and confidence 0.
type ExtractedField struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
}

// FoundField builds a field from a matched value and its strategy confidence.
func FoundField(value string, confidence float64) ExtractedField {
	return ExtractedField{Value: &value, Confidence: confidence}
}

// MissingField represents a field no strategy matched.
func MissingField() ExtractedField {
	return ExtractedField{}
}

// Found reports whether any strategy produced a value for this field.
func (f ExtractedField) Found() bool {
	return f.Value != nil
}

// ExtractionMetadata describes how a result was produced.
type ExtractionMetadata struct {
	ExtractionMethod ExtractionMethod `json:"extractionMethod"`
	ProcessingTimeMs int64            `json:"processingTimeMs"`
	RequestID        string           `json:"requestId,omitempty"`
}

// ExtractedData is the aggregate result of one document extraction. It is
// created once per request and not mutated after construction.
type ExtractedData struct {
	Name       ExtractedField `json:"name"`
	Email      ExtractedField `json:"email"`
	Phone      ExtractedField `json:"phone"`
	MoveInDate ExtractedField `json:"moveInDate"`
	Property   ExtractedField `json:"property"`
	UnitNumber ExtractedField `json:"unitNumber"`
	Rent       ExtractedField `json:"rent"`
	CreatedAt  ExtractedField `json:"createdAt"`

	Overall  float64            `json:"overall"`
	Metadata ExtractionMetadata `json:"metadata"`
}

// Fields returns the eight applicant fields in their canonical order.
func (d *ExtractedData) Fields() []ExtractedField {
	return []ExtractedField{
		d.Name,
		d.Email,
		d.Phone,
		d.MoveInDate,
		d.Property,
		d.UnitNumber,
		d.Rent,
		d.CreatedAt,
	}
}

// FieldsFound counts fields that matched any strategy.
func (d *ExtractedData) FieldsFound() int {
	count := 0
	for _, f := range d.Fields() {
		if f.Found() {
			count++
		}
	}
	return count
}

// meanConfidence is the unweighted mean over all eight fields, including
// zeros for unmatched fields, so partial extraction lowers the overall
// score rather than being renormalized away.
func (d *ExtractedData) meanConfidence() float64 {
	sum := 0.0
	for _, f := range d.Fields() {
		sum += f.Confidence
	}
	return sum / FieldCount
}
