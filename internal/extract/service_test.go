package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAcquirer returns canned text regardless of input, standing in for the
// PDF text acquisition tier.
type stubAcquirer struct {
	text string
}

func (s stubAcquirer) AcquireText(_ context.Context, _ []byte) string {
	return s.text
}

// stubDecoder returns canned raw text, standing in for the raw byte decoder.
type stubDecoder struct {
	text string
}

func (s stubDecoder) DecodeRaw(_ []byte) string {
	return s.text
}

func TestService_DispatchesToGenericExtractor(t *testing.T) {
	svc := NewService(
		stubAcquirer{text: sampleApplicationText},
		stubDecoder{},
		nil,
	)

	result, err := svc.ExtractDocument(context.Background(), []byte("%PDF-1.4 irrelevant"))
	require.NoError(t, err)

	assert.Equal(t, MethodGeneric, result.Metadata.ExtractionMethod)
	assertFound(t, result.Name, "JANE DOE", 0.95)
	assert.NotEmpty(t, result.Metadata.RequestID)
	assert.GreaterOrEqual(t, result.Metadata.ProcessingTimeMs, int64(0))
}

func TestService_FallsBackToSpecializedExtractor(t *testing.T) {
	// Acquired text below the threshold routes the original bytes to the
	// specialized tier.
	svc := NewService(
		stubAcquirer{text: "too short"},
		stubDecoder{text: "Rental Application for John Smith\nMarket Rent: $1,500.00\n"},
		nil,
	)

	result, err := svc.ExtractDocument(context.Background(), []byte("%PDF-1.4 irrelevant"))
	require.NoError(t, err)

	assert.Equal(t, MethodSpecialized, result.Metadata.ExtractionMethod)
	assertFound(t, result.Name, "John Smith", 0.95)
	assertFound(t, result.Rent, "1500.00", 0.95)
}

func TestService_InsufficientTextInBothTiers(t *testing.T) {
	tests := []struct {
		name     string
		acquired string
		raw      string
	}{
		{"both empty", "", ""},
		{"short acquired and short raw", "abc", "x"},
		{"whitespace only", "   \n\t  ", "  \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(stubAcquirer{text: tt.acquired}, stubDecoder{text: tt.raw}, nil)

			result, err := svc.ExtractDocument(context.Background(), []byte("bytes"))
			require.ErrorIs(t, err, ErrInsufficientText)
			assert.Nil(t, result, "terminal failure must not carry partial data")
		})
	}
}

func TestService_TextThresholdBoundary(t *testing.T) {
	// Exactly the threshold length dispatches generic.
	atThreshold := strings.Repeat("a", DefaultMinTextLength)
	svc := NewService(stubAcquirer{text: atThreshold}, stubDecoder{text: "long enough raw text"}, nil)

	result, err := svc.ExtractDocument(context.Background(), []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, MethodGeneric, result.Metadata.ExtractionMethod)

	// One character below dispatches specialized.
	below := strings.Repeat("a", DefaultMinTextLength-1)
	svc = NewService(stubAcquirer{text: below}, stubDecoder{text: "long enough raw text"}, nil)

	result, err = svc.ExtractDocument(context.Background(), []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, MethodSpecialized, result.Metadata.ExtractionMethod)
}

func TestService_ThresholdsCountWhitespace(t *testing.T) {
	// Thresholds are plain character counts: padding counts toward the
	// length even though the parsers will find nothing in it.
	padded := "Phone: 555-987-6543" + strings.Repeat(" ", DefaultMinTextLength)
	svc := NewService(stubAcquirer{text: padded}, stubDecoder{text: "irrelevant raw text"}, nil)

	result, err := svc.ExtractDocument(context.Background(), []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, MethodGeneric, result.Metadata.ExtractionMethod)
	assertFound(t, result.Phone, "555-987-6543", 0.9)

	// Same for the raw tier: ten characters of anything clears the bar.
	svc = NewService(stubAcquirer{text: ""}, stubDecoder{text: strings.Repeat(" ", DefaultMinRawLength)}, nil)

	result, err = svc.ExtractDocument(context.Background(), []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, MethodSpecialized, result.Metadata.ExtractionMethod)
	assert.Zero(t, result.FieldsFound())
}

func TestService_Idempotence(t *testing.T) {
	svc := NewService(stubAcquirer{text: sampleApplicationText}, stubDecoder{}, nil)
	data := []byte("identical input bytes")

	first, err := svc.ExtractDocument(context.Background(), data)
	require.NoError(t, err)
	second, err := svc.ExtractDocument(context.Background(), data)
	require.NoError(t, err)

	// Everything except processing time and request identity must be
	// byte-identical.
	first.Metadata.ProcessingTimeMs = 0
	second.Metadata.ProcessingTimeMs = 0
	first.Metadata.RequestID = ""
	second.Metadata.RequestID = ""
	assert.Equal(t, first, second)
}

func TestService_ExtractText(t *testing.T) {
	svc := NewService(stubAcquirer{}, stubDecoder{}, nil)

	result := svc.ExtractText(sampleApplicationText)

	assert.Equal(t, MethodGeneric, result.Metadata.ExtractionMethod)
	assertFound(t, result.Name, "JANE DOE", 0.95)
	assert.NotEmpty(t, result.Metadata.RequestID)
}

func TestNewServiceWithThresholds_Defaults(t *testing.T) {
	svc := NewServiceWithThresholds(stubAcquirer{}, stubDecoder{}, nil, 0, -1)

	assert.Equal(t, DefaultMinTextLength, svc.minText)
	assert.Equal(t, DefaultMinRawLength, svc.minRaw)
}
