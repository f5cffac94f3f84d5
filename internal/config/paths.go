package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the pipeline.
type Paths struct {
	BaseDir      string
	RawDir       string
	ProcessedDir string
	ResultsDir   string
	DocsDir      string
	LogsDir      string

	// Well-known files
	ProcessedCSV    string // pre-cleaned input table
	ProfileWorkbook string // Excel summary of schema/numeric/categorical profiles
}

const (
	processedCSVName    = "adult_cleaned.csv"
	profileWorkbookName = "profile_summary.xlsx"
)

// NewPaths resolves the directory layout against the configured base
// directory. Relative entries are joined onto BaseDir; absolute entries are
// kept as-is.
//
// Directory structure (defaults):
//
//	<base>/
//	  ├── data/
//	  │   ├── raw/          (original UCI Adult download)
//	  │   └── processed/    (adult_cleaned.csv, the pipeline input)
//	  ├── results/          (chart artifacts + tabular reports)
//	  ├── docs/             (narrative writeups)
//	  └── logs/
func NewPaths(cfg PathsConfig) *Paths {
	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(cfg.BaseDir, dir)
	}

	processedDir := resolve(cfg.ProcessedDir)
	resultsDir := resolve(cfg.ResultsDir)

	return &Paths{
		BaseDir:      cfg.BaseDir,
		RawDir:       resolve(cfg.RawDir),
		ProcessedDir: processedDir,
		ResultsDir:   resultsDir,
		DocsDir:      resolve(cfg.DocsDir),
		LogsDir:      resolve(cfg.LogsDir),

		ProcessedCSV:    filepath.Join(processedDir, processedCSVName),
		ProfileWorkbook: filepath.Join(resultsDir, profileWorkbookName),
	}
}

// EnsureDirectories creates all configured directories. Creation is
// idempotent; existing directories are left untouched.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.RawDir,
		p.ProcessedDir,
		p.ResultsDir,
		p.DocsDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ResultsFile returns the path of a named artifact inside the results
// directory.
func (p *Paths) ResultsFile(name string) string {
	return filepath.Join(p.ResultsDir, name)
}
