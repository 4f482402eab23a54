package extract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextAcquirer converts raw document bytes into plain text. Implementations
// must return an empty or short string on failure rather than an error, so
// the orchestrator can treat under-performance as "insufficient" instead of
// a hard failure.
type TextAcquirer interface {
	AcquireText(ctx context.Context, data []byte) string
}

// RawDecoder recovers whatever text can be read directly off the document
// bytes, bypassing the acquisition tier. Consumed only by the specialized
// path.
type RawDecoder interface {
	DecodeRaw(data []byte) string
}

// Tier dispatch thresholds.
const (
	DefaultMinTextLength = 50
	DefaultMinRawLength  = 10
)

// Service orchestrates the two extraction tiers. It is the only component
// aware of both: acquisition output at or above the text threshold goes to
// the generic extractor, anything below falls back to the specialized
// extractor on the original bytes. Each tier is attempted at most once.
//
// The service is stateless per call and safe for concurrent use; every
// result and intermediate buffer is owned by its own invocation.
type Service struct {
	acquirer    TextAcquirer
	decoder     RawDecoder
	generic     *GenericExtractor
	specialized *SpecializedExtractor
	minText     int
	minRaw      int
	logger      *zap.Logger
}

// NewService creates an extraction service with the default tier thresholds.
// A nil logger disables engine logging.
func NewService(acquirer TextAcquirer, decoder RawDecoder, logger *zap.Logger) *Service {
	return NewServiceWithThresholds(acquirer, decoder, logger,
		DefaultMinTextLength, DefaultMinRawLength)
}

// NewServiceWithThresholds creates an extraction service with explicit tier
// thresholds.
func NewServiceWithThresholds(
	acquirer TextAcquirer,
	decoder RawDecoder,
	logger *zap.Logger,
	minTextLength int,
	minRawLength int,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	if minRawLength <= 0 {
		minRawLength = DefaultMinRawLength
	}
	return &Service{
		acquirer:    acquirer,
		decoder:     decoder,
		generic:     NewGenericExtractor(),
		specialized: NewSpecializedExtractor(),
		minText:     minTextLength,
		minRaw:      minRawLength,
		logger:      logger,
	}
}

// ExtractDocument runs the full two-tier pipeline on raw document bytes.
// Processing time is measured end to end, from the first byte received to
// the final result. The only error is ErrInsufficientText.
func (s *Service) ExtractDocument(ctx context.Context, data []byte) (*ExtractedData, error) {
	start := time.Now()
	requestID := uuid.NewString()

	// Thresholds compare plain character counts, whitespace included.
	text := s.acquirer.AcquireText(ctx, data)
	if len(text) >= s.minText {
		s.logger.Debug("dispatching to generic extractor",
			zap.String("request_id", requestID),
			zap.Int("text_length", len(text)))
		result := s.generic.Extract(text)
		s.finalize(result, start, requestID)
		return result, nil
	}

	raw := s.decoder.DecodeRaw(data)
	if len(raw) < s.minRaw {
		s.logger.Warn("no recoverable text in either tier",
			zap.String("request_id", requestID),
			zap.Int("acquired_length", len(text)),
			zap.Int("raw_length", len(raw)))
		return nil, ErrInsufficientText
	}

	s.logger.Debug("dispatching to specialized extractor",
		zap.String("request_id", requestID),
		zap.Int("acquired_length", len(text)),
		zap.Int("raw_length", len(raw)))
	result := s.specialized.Extract(raw)
	s.finalize(result, start, requestID)
	return result, nil
}

// ExtractText runs the generic extractor over text a caller already
// acquired upstream, skipping the acquisition tier entirely.
func (s *Service) ExtractText(text string) *ExtractedData {
	start := time.Now()
	result := s.generic.Extract(text)
	s.finalize(result, start, uuid.NewString())
	return result
}

func (s *Service) finalize(result *ExtractedData, start time.Time, requestID string) {
	result.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()
	result.Metadata.RequestID = requestID
	s.logger.Info("extraction complete",
		zap.String("request_id", requestID),
		zap.String("method", string(result.Metadata.ExtractionMethod)),
		zap.Int("fields_found", result.FieldsFound()),
		zap.Float64("overall", result.Overall),
		zap.Int64("processing_ms", result.Metadata.ProcessingTimeMs))
}
