// Package api exposes the parse and analysis pipeline over HTTP.
package api

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/resumia/statement-analyzer/internal/analyzer"
	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/parser"
	"github.com/resumia/statement-analyzer/pkg/logger"
)

// maxUploadSize bounds statement uploads; real statements are well under
// this.
const maxUploadSize = 32 << 20

// ParseResponse is the JSON response from /api/parse.
type ParseResponse struct {
	ID               string                   `json:"id,omitempty"`
	Success          bool                     `json:"success"`
	Error            string                   `json:"error,omitempty"`
	Bank             string                   `json:"bank,omitempty"`
	Statement        *models.ParsedStatement  `json:"statement,omitempty"`
	ValidationIssues []models.ValidationIssue `json:"validationIssues"`
}

// AnalyzeResponse is the JSON response from /api/analyze: the parse
// result plus the derived analysis when parsing succeeded.
type AnalyzeResponse struct {
	ParseResponse
	Analysis *models.AnalysisResult `json:"analysis,omitempty"`
}

// Register mounts the API routes on the app.
func Register(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/parse", HandleParse)
	app.Post("/api/analyze", HandleAnalyze)
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleParse accepts a PDF upload in the "file" form field and returns
// the structured parse result. Parse failures are still 200s with
// success=false; only transport-level problems map to error statuses.
func HandleParse(c *fiber.Ctx) error {
	buf, status, msg := readUploadedPDF(c)
	if status != 0 {
		return rejectUpload(c, status, msg)
	}

	result := parser.ParseStatement(buf)
	return c.JSON(toParseResponse(result))
}

// HandleAnalyze parses the upload and, when it succeeds, runs the full
// analysis in the same request.
func HandleAnalyze(c *fiber.Ctx) error {
	buf, status, msg := readUploadedPDF(c)
	if status != 0 {
		return rejectUpload(c, status, msg)
	}

	result := parser.ParseStatement(buf)
	response := AnalyzeResponse{ParseResponse: toParseResponse(result)}
	if result.Success {
		response.Analysis = analyzer.Analyze(result.Statement)
	}

	return c.JSON(response)
}

func toParseResponse(result *models.ParseResult) ParseResponse {
	response := ParseResponse{
		Success:          result.Success,
		Error:            result.Error,
		Bank:             result.Bank,
		Statement:        result.Statement,
		ValidationIssues: result.ValidationIssues,
	}
	if response.ValidationIssues == nil {
		response.ValidationIssues = []models.ValidationIssue{}
	}
	if result.Success {
		response.ID = uuid.NewString()
		logger.WithFields(logger.Fields{
			"id":           response.ID,
			"bank":         result.Bank,
			"transactions": len(result.Statement.Transactions),
		}).Info("statement parsed")
	} else {
		logger.WithField("error", result.Error).Warn("statement rejected")
	}
	return response
}

// readUploadedPDF pulls the uploaded file out of the multipart form.
// On rejection it returns a non-zero HTTP status and a user-facing
// message instead of data; it never writes to the context itself.
func readUploadedPDF(c *fiber.Ctx) (buf []byte, status int, msg string) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.StatusBadRequest, "Falta el archivo. Usá el campo de formulario 'file'."
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, fiber.StatusBadRequest, "Solo se aceptan archivos PDF."
	}
	if header.Size > maxUploadSize {
		return nil, fiber.StatusRequestEntityTooLarge, "El archivo supera el tamaño máximo permitido."
	}

	file, err := header.Open()
	if err != nil {
		return nil, fiber.StatusInternalServerError, "No se pudo leer el archivo subido."
	}
	defer file.Close()

	buf, err = io.ReadAll(file)
	if err != nil {
		return nil, fiber.StatusInternalServerError, "No se pudo leer el archivo subido."
	}

	return buf, 0, ""
}

func rejectUpload(c *fiber.Ctx, status int, msg string) error {
	logger.WithFields(logger.Fields{
		"status": status,
		"reason": msg,
	}).Warn("upload rejected")
	return c.Status(status).JSON(ParseResponse{
		Success:          false,
		Error:            msg,
		ValidationIssues: []models.ValidationIssue{},
	})
}
