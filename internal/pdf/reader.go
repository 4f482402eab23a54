package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader is the text acquisition tier: it converts raw PDF bytes into plain
// text. Acquisition failures surface as empty text, never as errors, so the
// extraction orchestrator can treat them as "insufficient" and fall back.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// AcquireText extracts plain text from PDF bytes. It returns an empty
// string when the document cannot be parsed, has no text layer, or the
// context is already done.
func (r *Reader) AcquireText(ctx context.Context, data []byte) (text string) {
	select {
	case <-ctx.Done():
		return ""
	default:
	}

	if len(data) == 0 || int64(len(data)) > r.maxFileSize {
		return ""
	}

	// The underlying library can panic on malformed cross-reference
	// tables; a panic here is just an acquisition failure.
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	return r.collectText(reader)
}

// ReadFile extracts text content from a PDF file on disk.
func (r *Reader) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content := r.collectText(pdfReader)
	contentType := r.analyzeContentType(content, pdfReader)
	hasImages, imageCount := r.detectImages(pdfReader)

	return &ReadFileResult{
		Content:     content,
		Path:        req.Path,
		Pages:       pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: contentType,
		HasImages:   hasImages,
		ImageCount:  imageCount,
	}, nil
}

// validatePDFFile performs basic validation on a PDF file.
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// collectText walks every page and concatenates whatever plain text the
// library recovers. Individual page failures are skipped.
func (r *Reader) collectText(pdfReader *pdf.Reader) string {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// analyzeContentType determines what kind of content the PDF holds. A
// document with images but no meaningful text layer is most likely scanned.
func (r *Reader) analyzeContentType(textContent string, pdfReader *pdf.Reader) string {
	const minMeaningfulTextLength = 50

	cleanText := strings.TrimSpace(textContent)
	hasImages, _ := r.detectImages(pdfReader)

	if len(cleanText) < minMeaningfulTextLength {
		if hasImages {
			return "scanned_images"
		}
		return "no_content"
	}

	if hasImages {
		return "mixed"
	}

	return "text"
}

// detectImages scans the PDF for image objects.
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	imageCount := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts image XObjects on a specific page.
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) (count int) {
	defer func() {
		if recover() != nil {
			count = 0
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		count++
	}

	return count
}
