// Package parser reconstructs a structured statement from the
// positioned text of a Galicia account PDF: lines from fragments,
// columns from the header row, transaction blocks from dated lines,
// then classification, cancellation marking and validation.
package parser

import (
	"fmt"

	"github.com/resumia/statement-analyzer/internal/extractor"
	"github.com/resumia/statement-analyzer/internal/models"
)

// ParseStatement is the single entry point: raw PDF bytes in, a
// structured result out. All failure modes come back as result values
// with Success=false; nothing panics across this boundary.
func ParseStatement(buf []byte) (result *models.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &models.ParseResult{
				Success: false,
				Error:   fmt.Sprintf("Error inesperado al procesar el archivo: %v", r),
				ValidationIssues: []models.ValidationIssue{{
					Code:     CodeUnexpectedError,
					Severity: models.SeverityError,
					Message:  fmt.Sprintf("Error inesperado al procesar el archivo: %v", r),
				}},
			}
		}
	}()

	doc, err := extractor.Extract(buf)
	if err != nil || !doc.HasText() {
		// No recoverable text usually means a scanned image.
		return &models.ParseResult{
			Success: false,
			Error:   "No pudimos extraer texto del PDF",
			ValidationIssues: []models.ValidationIssue{{
				Code:       CodeInvalidPDF,
				Severity:   models.SeverityError,
				Message:    "El archivo no contiene texto legible",
				Suggestion: "Verificá que no sea una imagen escaneada",
			}},
		}
	}

	if !IsGaliciaStatement(doc.FullText) {
		return &models.ParseResult{
			Success: false,
			Bank:    "unknown",
			Error:   "No pudimos reconocer el formato de este extracto. Por ahora solo soportamos Banco Galicia.",
			ValidationIssues: []models.ValidationIssue{{
				Code:       CodeUnsupportedBank,
				Severity:   models.SeverityError,
				Message:    "Este extracto no es de Banco Galicia",
				Suggestion: "Por ahora solo soportamos extractos de cuenta de Galicia",
			}},
		}
	}

	statement := ParseGalicia(doc)
	issues := ValidateStatement(statement)

	if HasBlockingErrors(issues) {
		var errMsg string
		for _, issue := range issues {
			if issue.Severity == models.SeverityError {
				errMsg = issue.Message
				break
			}
		}
		return &models.ParseResult{
			Success:          false,
			Bank:             statement.Metadata.Bank,
			Error:            errMsg,
			ValidationIssues: issues,
		}
	}

	return &models.ParseResult{
		Success:          true,
		Statement:        statement,
		Bank:             statement.Metadata.Bank,
		ValidationIssues: issues,
	}
}
