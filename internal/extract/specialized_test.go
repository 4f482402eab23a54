package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecializedExtractor_Name(t *testing.T) {
	t.Run("application title pattern", func(t *testing.T) {
		text := "Rental Application for John Smith\nrest of document\n"
		result := NewSpecializedExtractor().Extract(text)
		assertFound(t, result.Name, "John Smith", 0.95)
	})

	t.Run("no fallback chain", func(t *testing.T) {
		// The generic tier would find this labeled name; this tier only
		// knows the title pattern.
		text := "Applicant: John Smith\njohn@example.com\n"
		result := NewSpecializedExtractor().Extract(text)
		assertMissing(t, result.Name)
	})
}

func TestSpecializedExtractor_EmailFallbackChain(t *testing.T) {
	t.Run("name context block", func(t *testing.T) {
		text := "Rental Application for John Smith\n" +
			"emergency@example.com\n" +
			"John Smith\nEmail\njohn.smith@example.com\nType Financially Responsible\n" +
			"landlord@example.com\n"
		result := NewSpecializedExtractor().Extract(text)
		assertFound(t, result.Email, "john.smith@example.com", 0.95)
	})

	t.Run("name repeated before email label", func(t *testing.T) {
		// No "Type Financially" marker; the name appearing twice before
		// the label still identifies the applicant's own contact block.
		text := "Rental Application for John Smith\n" +
			"emergency@example.com\n" +
			"John Smith\nEmail\njohn.smith@example.com\n" +
			"landlord@example.com\n"
		result := NewSpecializedExtractor().Extract(text)
		assertFound(t, result.Email, "john.smith@example.com", 0.95)
	})

	t.Run("last email when context fails", func(t *testing.T) {
		// Name appears only once and there is no marker, so both
		// context-aware patterns fail and plain order decides.
		text := "Rental Application for John Smith\n" +
			"first@example.com\nlast@example.com\n"
		result := NewSpecializedExtractor().Extract(text)
		assertFound(t, result.Email, "last@example.com", 0.95)
	})

	t.Run("last email when name is missing", func(t *testing.T) {
		text := "no title here\nfirst@example.com\nlast@example.com\n"
		result := NewSpecializedExtractor().Extract(text)
		assertFound(t, result.Email, "last@example.com", 0.95)
	})
}

func TestSpecializedExtractor_PhoneSelection(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		missing bool
	}{
		{
			name: "mobile suffix preferred",
			text: "555-111-2222\n555-333-4444 mobile\nEmergency Contact\n555-999-8888\n",
			want: "555-333-4444",
		},
		{
			name: "last phone before emergency contact",
			text: "555-111-2222\n555-333-4444\nEmergency Contact\n555-999-8888\n",
			want: "555-333-4444",
		},
		{
			name: "first phone when no emergency contact block",
			text: "555-111-2222\n555-333-4444\n",
			want: "555-111-2222",
		},
		{
			name:    "no phone before emergency contact block",
			text:    "applicant details\nEmergency Contact\n555-999-8888\n",
			missing: true,
		},
		{
			name:    "no phones at all",
			text:    "no numbers here\n",
			missing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSpecializedExtractor().Extract(tt.text)
			if tt.missing {
				assertMissing(t, result.Phone)
				return
			}
			assertFound(t, result.Phone, tt.want, 0.95)
		})
	}
}

func TestSpecializedExtractor_FixedConfidences(t *testing.T) {
	text := "Rental Application for John Smith\n" +
		"Legacy Meadows - 4600-15\n" +
		"Market Rent: $1,500.00\n" +
		"Desired Move In: 01/15/2025\n" +
		"555-987-6543 mobile\n" +
		"john.smith@example.com\n" +
		"Submitted Via Online Portal on 12/20/2024\n"
	result := NewSpecializedExtractor().Extract(text)

	require.Equal(t, FieldCount, result.FieldsFound())
	for i, f := range result.Fields() {
		assert.InDelta(t, 0.95, f.Confidence, 1e-9, "field %d", i)
	}
	assert.Equal(t, MethodSpecialized, result.Metadata.ExtractionMethod)
}

func TestSpecializedExtractor_OverallIsFractionOfFieldsFound(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		found int
	}{
		{
			name:  "nothing found",
			text:  "completely unrelated text",
			found: 0,
		},
		{
			name:  "three fields",
			text:  "Market Rent: $900\n555-111-2222 mobile\nonly@example.com\n",
			found: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSpecializedExtractor().Extract(tt.text)
			require.Equal(t, tt.found, result.FieldsFound())
			assert.InDelta(t, float64(tt.found)/FieldCount, result.Overall, 1e-9)
			assertFieldInvariants(t, result)
		})
	}
}
