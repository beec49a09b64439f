package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/terracart/terracart/internal/config"
	"github.com/terracart/terracart/internal/impact"
	"github.com/terracart/terracart/internal/impact/score"
)

// NewImpactScoreCmd creates the impact score command for catalog/admin
// tooling: it scores a single product impact record from a file.
func NewImpactScoreCmd() *cobra.Command {
	var recordPath string
	var format string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a product impact record",
		Long: `Computes the environmental score of a product impact record.

The record file holds raw, unit-bearing metrics (carbon footprint, water
usage, energy consumption, recycled materials, end-of-life impact). Values
are canonicalized and validated before scoring; malformed records are
rejected with the offending field named. Verification status is reported
next to the score, never folded into it.`,
		Example: `  # Score a record from YAML
  terracart impact score --record record.yaml

  # Score a record from JSON and emit JSON
  terracart impact score --record record.json --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImpactScore(cmd, recordPath, format)
		},
	}

	cmd.Flags().StringVar(&recordPath, "record", "", "path to the impact record file (YAML or JSON)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("record")

	return cmd
}

// runImpactScore loads, validates, and scores the record file.
func runImpactScore(cmd *cobra.Command, recordPath, format string) error {
	input, err := readRecordFile(recordPath)
	if err != nil {
		return err
	}

	rec, err := impact.NewRecord(input)
	if err != nil {
		return err
	}

	cfg := config.FromContext(cmd.Context())
	result, err := score.NewCalculator(cfg.Scoring).Score(rec)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal score result: %w", err)
		}
		cmd.Println(string(out))
	case "text":
		cmd.Printf("Product:      %s\n", rec.ProductID)
		cmd.Printf("Score:        %.0f / 100\n", result.Score)
		cmd.Printf("Verification: %s\n", result.Verification.Status)
		if result.Verification.VerifiedBy != "" {
			cmd.Printf("Verified by:  %s\n", result.Verification.VerifiedBy)
		}
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	return nil
}

// readRecordFile decodes a record input from YAML or JSON, chosen by file
// extension.
func readRecordFile(path string) (impact.RecordInput, error) {
	var input impact.RecordInput

	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("failed to read record file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("failed to parse record file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("failed to parse record file %s: %w", path, err)
		}
	}

	return input, nil
}
