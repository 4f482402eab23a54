package descriptions

// Tool descriptions with practical examples and use cases

const (
	ExtractFileDescription = `Extract structured applicant fields from a rental application PDF.

**When to use:** You have an uploaded rental application and need the applicant's name, email, phone, move-in date, property, unit, rent, and application date as structured data.

**Why it's useful:** Runs a two-tier heuristic engine: plain-text extraction with labeled-pattern matching, with an automatic fallback tuned to the common application layout when the text layer is unusable. Every field carries a confidence score so low-trust results can be routed to manual review.

**Examples:**
• Process an upload: "Extract applicant fields from application-2024-091.pdf"
• Pre-fill a lease record: "Get name, unit and rent from jane-doe-application.pdf"

**Common workflows:**
1. Intake: validate file → extract fields → review fields with low confidence
2. Bulk import: extract each application → store structured records downstream

**Best practices:** Check the overall confidence and the extractionMethod in the response; "specialized" results come from the fallback tier. An overall score near 0.5 usually means half the fields were not found.`

	ExtractTextDescription = `Run the field parsers over plain text that was already extracted upstream.

**When to use:** The document text was acquired elsewhere (for example by a separate OCR or parsing step) and only the field extraction is needed.

**Why it's useful:** Skips text acquisition entirely and applies the same ordered heuristic strategies as file extraction, returning the same confidence-scored result shape.

**Best practices:** Feed the complete document text; several heuristics rely on position (first lines, last email) and degrade on fragments.`

	ReadFileDescription = `Read the plain-text content of a rental application PDF without running field extraction.

**When to use:** You want the raw document text, or you want to triage a document before extraction.

**Why it's useful:** Reports the content type alongside the text: a "scanned_images" or "no_content" document has no usable text layer and field extraction will fail on it, so this tool answers "is this PDF worth extracting" in one call.

**Examples:**
• Inspect an upload: "Show me the text of application-2024-091.pdf"
• Triage a batch: "Which of these PDFs are scanned images?"

**Best practices:** For structured fields use 'rental_extract_file' instead; this tool returns unprocessed text.`

	ValidateFileDescription = `Verify PDF file integrity and readability before extraction.

**When to use:** Before attempting extraction, especially when handling user uploads.

**Why it's useful:** Enforces the upload boundary (PDF type, non-empty, size limit) and performs a structural check, so corrupted files are rejected early instead of failing mid-pipeline.

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`

	StatsFileDescription = `Get document statistics and metadata for a rental application PDF.

**When to use:** You need page count, file size, PDF version, encryption status, or document properties without running extraction.

**Best practices:** Useful for triaging why extraction under-performed; an encrypted or zero-page document will never yield fields.`

	ServerInfoDescription = `Get server information, available tools, and usage guidance.

**When to use:** First contact with the server, or when deciding which tool fits a task.`
)
