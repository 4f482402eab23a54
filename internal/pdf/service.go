package pdf

import "context"

// Service bundles the PDF components behind one facade. It satisfies the
// extraction engine's TextAcquirer and RawDecoder collaborator interfaces.
type Service struct {
	maxFileSize int64
	reader      *Reader
	raw         *RawText
	validator   *Validator
	stats       *Stats
}

// NewService creates a new PDF service with all components.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		reader:      NewReader(maxFileSize),
		raw:         NewRawText(),
		validator:   NewValidator(maxFileSize),
		stats:       NewStats(maxFileSize),
	}
}

// AcquireText extracts plain text from PDF bytes, empty on failure.
func (s *Service) AcquireText(ctx context.Context, data []byte) string {
	return s.reader.AcquireText(ctx, data)
}

// DecodeRaw recovers directly readable text from PDF bytes.
func (s *Service) DecodeRaw(data []byte) string {
	return s.raw.DecodeRaw(data)
}

// ReadFile reads the text content of a PDF file.
func (s *Service) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	return s.reader.ReadFile(req)
}

// ValidateFile performs validation on a PDF file.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// FileStats returns detailed statistics about a single PDF file.
func (s *Service) FileStats(req StatsFileRequest) (*StatsFileResult, error) {
	return s.stats.GetFileStats(req)
}

// IsValidPDF performs a quick validation check on a file.
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// GetMaxFileSize returns the maximum file size limit.
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}
