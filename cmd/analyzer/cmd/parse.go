package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/resumia/statement-analyzer/internal/analyzer"
	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/parser"
	"github.com/resumia/statement-analyzer/internal/writer"
	"github.com/resumia/statement-analyzer/pkg/logger"
)

var (
	outputPath   string
	outputFormat string
	withAnalysis bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <statement.pdf> [more.pdf...]",
	Short: "Parse statement PDFs into structured transactions",
	Long: `Parse reads one or more Banco Galicia statement PDFs and writes the
structured result as JSON (default), CSV or XLSX. With --analyze the
output also carries the derived spending analysis; given two or more
statements it additionally includes cross-month trends.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout; with multiple inputs, a directory)")
	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, csv or xlsx")
	parseCmd.Flags().BoolVar(&withAnalysis, "analyze", false, "include the spending analysis")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	File             string                   `json:"file"`
	Success          bool                     `json:"success"`
	Error            string                   `json:"error,omitempty"`
	Bank             string                   `json:"bank,omitempty"`
	Statement        *models.ParsedStatement  `json:"statement,omitempty"`
	ValidationIssues []models.ValidationIssue `json:"validationIssues,omitempty"`
	Analysis         *models.AnalysisResult   `json:"analysis,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case "json", "csv", "xlsx":
	default:
		return errors.Errorf("unknown format %q, use json, csv or xlsx", outputFormat)
	}

	var outputs []parseOutput
	var stored []analyzer.StoredAnalysis

	for _, path := range args {
		log := logger.WithField("file", path)

		buf, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %q", path)
		}

		result := parser.ParseStatement(buf)
		out := parseOutput{
			File:             path,
			Success:          result.Success,
			Error:            result.Error,
			Bank:             result.Bank,
			Statement:        result.Statement,
			ValidationIssues: result.ValidationIssues,
		}

		if result.Success {
			log.WithField("transactions", len(result.Statement.Transactions)).Info("statement parsed")
			if withAnalysis {
				out.Analysis = analyzer.Analyze(result.Statement)
				stored = append(stored, analyzer.StoredAnalysis{
					PeriodTo: result.Statement.Metadata.PeriodTo,
					Analysis: out.Analysis,
				})
			}
		} else {
			log.WithField("error", result.Error).Warn("statement rejected")
		}

		outputs = append(outputs, out)
	}

	switch outputFormat {
	case "csv":
		return writeTabular(outputs, func(path string, out parseOutput) error {
			w := &writer.CSVWriter{IncludeMetadata: true}
			return writeTo(path, func(f *os.File) error { return w.Write(f, out.Statement) })
		})
	case "xlsx":
		return writeTabular(outputs, func(path string, out parseOutput) error {
			w := &writer.XLSXWriter{Analysis: out.Analysis}
			if path == "" {
				return errors.New("xlsx output needs --output")
			}
			return w.WriteToFile(path, out.Statement)
		})
	}

	return writeJSON(outputs, stored)
}

// writeJSON renders a single object for one input, an array for several,
// with trends appended when two or more statements analyzed cleanly.
func writeJSON(outputs []parseOutput, stored []analyzer.StoredAnalysis) error {
	var payload interface{}
	if len(outputs) == 1 {
		payload = outputs[0]
	} else {
		doc := map[string]interface{}{"statements": outputs}
		if len(stored) >= 2 {
			// Newest first for the trend comparison.
			sort.SliceStable(stored, func(i, j int) bool {
				return stored[i].PeriodTo > stored[j].PeriodTo
			})
			if trends := analyzer.CalculateTrends(stored); trends != nil {
				doc["trends"] = trends
				doc["dateRange"] = analyzer.GetDateRangeText(stored)
			}
		}
		payload = doc
	}

	return writeTo(outputPath, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	})
}

// writeTabular writes one CSV/XLSX artifact per successfully parsed
// statement. With multiple inputs --output names a directory.
func writeTabular(outputs []parseOutput, write func(path string, out parseOutput) error) error {
	parsed := 0
	for _, out := range outputs {
		if out.Success {
			parsed++
		}
	}
	if parsed == 0 {
		return errors.New("no statement parsed successfully")
	}

	if len(outputs) == 1 {
		if !outputs[0].Success {
			return errors.New(outputs[0].Error)
		}
		return write(outputPath, outputs[0])
	}

	if outputPath == "" {
		return errors.New("multiple inputs need --output <directory>")
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for _, out := range outputs {
		if !out.Success {
			continue
		}
		base := strings.TrimSuffix(filepath.Base(out.File), filepath.Ext(out.File))
		path := filepath.Join(outputPath, base+"."+outputFormat)
		if err := write(path, out); err != nil {
			return err
		}
	}
	return nil
}

// writeTo opens the output target, stdout when path is empty.
func writeTo(path string, write func(*os.File) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer f.Close()
	return write(f)
}
