package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/rentalops/rental-extract/internal/config"
	"github.com/rentalops/rental-extract/internal/descriptions"
	"github.com/rentalops/rental-extract/internal/extract"
	"github.com/rentalops/rental-extract/internal/pdf"
)

// Server represents the MCP server instance.
type Server struct {
	config         *config.Config
	pdfService     *pdf.Service
	extractService *extract.Service
	mcpServer      *server.MCPServer
	logger         *zap.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, pdfService *pdf.Service, extractService *extract.Service, logger *zap.Logger) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if extractService == nil {
		return nil, fmt.Errorf("extractService cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:         cfg,
		pdfService:     pdfService,
		extractService: extractService,
		mcpServer:      mcpServer,
		logger:         logger,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"rental_extract_file",
		mcp.WithDescription(descriptions.ExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the rental application PDF"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractTextTool := mcp.NewTool(
		"rental_extract_text",
		mcp.WithDescription(descriptions.ExtractTextDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Already-extracted plain text of the application"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	readFileTool := mcp.NewTool(
		"rental_read_file",
		mcp.WithDescription(descriptions.ReadFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(readFileTool, s.handleReadFile)

	validateFileTool := mcp.NewTool(
		"rental_validate_file",
		mcp.WithDescription(descriptions.ValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	statsFileTool := mcp.NewTool(
		"rental_stats_file",
		mcp.WithDescription(descriptions.StatsFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(statsFileTool, s.handleStatsFile)

	serverInfoTool := mcp.NewTool(
		"rental_server_info",
		mcp.WithDescription(descriptions.ServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Upload-boundary checks are this layer's job, not the engine's.
	validation, err := s.pdfService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !validation.Valid {
		return mcp.NewToolResultError(fmt.Sprintf("invalid PDF: %s", validation.Message)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read file: %v", err)), nil
	}

	result, err := s.extractService.ExtractDocument(ctx, data)
	if err != nil {
		if errors.Is(err, extract.ErrInsufficientText) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	return s.formatExtractionResult(path, result), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.extractService.ExtractText(text)
	return s.formatExtractionResult("", result), nil
}

func (s *Server) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ReadFile(pdf.ReadFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatReadFileResult(result)), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.FileStats(pdf.StatsFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatStatsFileResult(result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods

func (s *Server) formatExtractionResult(path string, result *extract.ExtractedData) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err))
	}

	text := ""
	if path != "" {
		text = fmt.Sprintf("Extraction result for: %s\n", path)
	}
	text += fmt.Sprintf("Method: %s\n", result.Metadata.ExtractionMethod)
	text += fmt.Sprintf("Fields found: %d of %d\n", result.FieldsFound(), extract.FieldCount)
	text += fmt.Sprintf("Overall confidence: %.2f\n", result.Overall)
	if result.Overall < 0.5 {
		text += "\nNote: low overall confidence - manual review recommended.\n"
	}
	text += "\n" + string(payload)

	return mcp.NewToolResultText(text)
}

func (s *Server) formatReadFileResult(result *pdf.ReadFileResult) string {
	text := fmt.Sprintf("Successfully read PDF: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Content Type: %s\n", result.ContentType)
	text += fmt.Sprintf("Has Images: %t\n", result.HasImages)
	if result.HasImages {
		text += fmt.Sprintf("Image Count: %d\n", result.ImageCount)
	}

	switch result.ContentType {
	case "scanned_images":
		text += "\nNote: this PDF appears to be scanned images with little or no text layer. Field extraction will most likely fail with an insufficient-text error.\n"
	case "no_content":
		text += "\nNote: this PDF appears to have no readable content.\n"
	case "mixed":
		text += "\nNote: this PDF mixes text and images; extraction uses the text layer only.\n"
	}

	text += "\nContent:\n"
	text += result.Content

	return text
}

func (s *Server) formatStatsFileResult(result *pdf.StatsFileResult) string {
	text := "PDF File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)
	if result.PDFVersion != "" {
		text += fmt.Sprintf("PDF Version: %s\n", result.PDFVersion)
	}
	text += fmt.Sprintf("Encrypted: %t\n", result.Encrypted)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Subject != "" {
		text += fmt.Sprintf("Subject: %s\n", result.Subject)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}
	if result.CreatedDate != "" {
		text += fmt.Sprintf("Created: %s\n", result.CreatedDate)
	}

	return text
}

func (s *Server) formatServerInfo() string {
	tools := []pdf.ToolInfo{
		{
			Name:        "rental_extract_file",
			Description: "Extract structured applicant fields from a rental application PDF",
			Usage:       "Primary tool. Validates the file, then runs the two-tier extraction engine.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "rental_extract_text",
			Description: "Run the field parsers over already-extracted plain text",
			Usage:       "Use when text acquisition happened upstream.",
			Parameters:  "text (required): Complete plain text of the application",
		},
		{
			Name:        "rental_read_file",
			Description: "Read the plain-text content of a PDF and report its content type",
			Usage:       "Use to inspect a document or triage scanned files before extraction.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "rental_validate_file",
			Description: "Validate if a file is a readable PDF",
			Usage:       "Use before extraction when handling unknown files.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "rental_stats_file",
			Description: "Get detailed statistics about a PDF file",
			Usage:       "Use to triage documents without running extraction.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "rental_server_info",
			Description: "Get server information and usage guidance",
			Usage:       "Start here.",
			Parameters:  "none",
		},
	}

	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	text += "Available Tools:\n"
	for _, tool := range tools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += `
Usage Guide:

1. VALIDATE FIRST:
   - Use 'rental_validate_file' to check uploads before extraction
   - Use 'rental_read_file' to triage: a "scanned_images" or "no_content"
     content type means field extraction will not find usable text

2. EXTRACT FIELDS:
   - Use 'rental_extract_file' for PDFs, 'rental_extract_text' for pre-acquired text
   - Check 'extractionMethod' in the response:
     * "generic": the text layer was readable and the standard parsers ran
     * "specialized": the layout-specific fallback tier produced the result
   - Each field carries its own confidence; 0 with a null value means not found

3. HANDLE FAILURES:
   - "could not extract text" means neither tier found usable text,
     typically a scanned image or corrupted file; no partial data is returned`

	return text
}

// Run starts the MCP server in the configured mode.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode.
func (s *Server) runStdioMode(_ context.Context) error {
	s.logger.Debug("starting extraction server in stdio mode")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server over streamable HTTP.
func (s *Server) runServerMode(_ context.Context) error {
	addr := s.config.Address()
	s.logger.Info("starting extraction server", zap.String("addr", addr))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	if err := httpServer.Start(addr); err != nil {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}
