package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"budget-engine/internal/engine"
	"budget-engine/internal/model"
	"budget-engine/internal/report"
)

const (
	formatJSON     = "json"
	formatText     = "text"
	formatMarkdown = "markdown"

	markdownWidth = 100
)

var (
	calcInput     string
	calcEdits     string
	calcPeriods   int
	calcFirstYear int
	calcFormat    string
	calcStyle     string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Derive a snapshot and print the result",
	Long: `Derives a snapshot once and prints the result.

The snapshot is read from --input (YAML or JSON, by extension). Fields the file
omits keep the built-in dashboard defaults; without --input the defaults are
used as they are. --edits names a JSON array of edits applied before deriving.`,
	Example: `  budget-engine calc --format text
  budget-engine calc --input snapshot.yaml --edits edits.json --periods 5 --format markdown`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "", "Snapshot file (.yaml, .yml or .json)")
	calcCmd.Flags().StringVarP(&calcEdits, "edits", "e", "", "JSON file with an array of edits")
	calcCmd.Flags().IntVarP(&calcPeriods, "periods", "p", 0, "Projection periods (default from config)")
	calcCmd.Flags().IntVar(&calcFirstYear, "first-year", 0, "First financial year (default from config)")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", formatText, "Output format: json, text or markdown")
	calcCmd.Flags().StringVar(&calcStyle, "style", "dark", "Markdown style: dark, light or notty")
}

func runCalc(cmd *cobra.Command, args []string) error {
	switch calcFormat {
	case formatJSON, formatText, formatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want json, text or markdown)", calcFormat)
	}

	snapshot, err := loadSnapshot(calcInput)
	if err != nil {
		return err
	}
	edits, err := loadEdits(calcEdits)
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetRegistryTimeout())
	snapshot = reg.Resolve(ctx, snapshot)
	cancel()

	opts := model.CalculationOptions{
		Periods:            cfg.Projection.Periods,
		FirstFinancialYear: cfg.Projection.FirstFinancialYear,
	}
	if cmd.Flags().Changed("periods") {
		opts.Periods = calcPeriods
		// an explicit zero asks for no projection periods
		if opts.Periods == 0 {
			opts.Periods = -1
		}
	}
	if cmd.Flags().Changed("first-year") {
		opts.FirstFinancialYear = calcFirstYear
	}

	req := &model.CalculationRequest{Snapshot: snapshot, Edits: edits, Options: opts}
	resp := engine.New(formatter()).Process(req)

	meta := resp.CalculationMetadata
	logger.Debug("calculation completed",
		zap.String("calculation_id", meta.CalculationID),
		zap.String("outcome", meta.CalculationOutcome),
		zap.Int("edits", len(edits)))

	if err := writeResult(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if meta.CalculationOutcome == model.OutcomeFailure {
		return fmt.Errorf("calculation %s failed", meta.CalculationID)
	}
	return nil
}

func writeResult(w io.Writer, resp *model.CalculationResponse) error {
	result := resp.CalculationResult

	switch calcFormat {
	case formatJSON:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatMarkdown:
		md := report.Markdown(result.Snapshot, result.Derivation, formatter())
		out, err := report.RenderMarkdown(md, calcStyle, markdownWidth)
		if err != nil {
			return err
		}
		writeMessages(w, result.Messages)
		_, err = io.WriteString(w, out)
		return err
	}

	writeMessages(w, result.Messages)
	_, err := io.WriteString(w, report.Text(result.Snapshot, result.Derivation, formatter(), report.DefaultStyles()))
	return err
}

func writeMessages(w io.Writer, msgs []model.CalculationMessage) {
	for _, m := range msgs {
		fmt.Fprintf(w, "[%s] %s: %s\n", m.Level, m.Code, m.Message)
	}
	if len(msgs) > 0 {
		fmt.Fprintln(w)
	}
}

// loadSnapshot reads a snapshot file over the default snapshot. An empty
// path returns the defaults.
func loadSnapshot(path string) (model.Snapshot, error) {
	s := model.DefaultSnapshot()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read snapshot: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}

func loadEdits(path string) ([]model.Edit, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edits: %w", err)
	}

	var edits []model.Edit
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, fmt.Errorf("failed to parse edits: %w", err)
	}
	return edits, nil
}
