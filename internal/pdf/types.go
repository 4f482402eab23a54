package pdf

// ReadFileRequest asks for the plain-text content of a PDF file.
type ReadFileRequest struct {
	Path string `json:"path"`
}

// ReadFileResult carries the extracted text plus basic document facts.
type ReadFileResult struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Pages       int    `json:"pages"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"` // text, scanned_images, mixed, no_content
	HasImages   bool   `json:"has_images"`
	ImageCount  int    `json:"image_count"`
}

// ValidateFileRequest asks whether a file is a readable PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult reports the validation outcome. Validation failures
// land in Message, not in an error.
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// StatsFileRequest asks for document statistics.
type StatsFileRequest struct {
	Path string `json:"path"`
}

// StatsFileResult carries document statistics and metadata.
type StatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	ModifiedDate string `json:"modified_date"`
	PDFVersion   string `json:"pdf_version,omitempty"`
	Encrypted    bool   `json:"encrypted"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
}

// ToolInfo describes one tool on the serving surface.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
