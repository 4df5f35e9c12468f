package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/petri/config"
)

// OutputManager handles structured run output with CSV logging. A nil
// manager is valid and disables all output.
type OutputManager struct {
	dir   string
	runID string

	historyFile *os.File

	// Track if the CSV header has been written
	historyHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir:   dir,
		runID: uuid.NewString(),
	}

	historyPath := filepath.Join(dir, "history.csv")
	f, err := os.Create(historyPath)
	if err != nil {
		return nil, fmt.Errorf("creating history.csv: %w", err)
	}
	om.historyFile = f

	return om, nil
}

// RunID returns the unique identifier assigned to this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteGeneration appends a generation stats record to history.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.historyHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.historyFile); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		om.historyHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.historyFile); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
	}

	return nil
}

// runMeta is the summary.yaml document: the run identity plus aggregates.
type runMeta struct {
	RunID   string     `yaml:"run_id"`
	Summary RunSummary `yaml:"summary"`
}

// WriteSummary saves the run summary as summary.yaml.
func (om *OutputManager) WriteSummary(summary RunSummary) error {
	if om == nil {
		return nil
	}

	data, err := yaml.Marshal(runMeta{RunID: om.runID, Summary: summary})
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	summaryPath := filepath.Join(om.dir, "summary.yaml")
	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		return fmt.Errorf("writing summary.yaml: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	if om.historyFile != nil {
		if err := om.historyFile.Close(); err != nil {
			return err
		}
	}

	return nil
}
