// Package pathutil provides centralized path management for the local data
// directory: the history database and exported ledger reports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths under the data directory.
type PathResolver struct {
	dataDir      string
	databasePath string
	reportDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the root for local files (e.g., ./data)
	DataDir string
	// DatabasePath is the SQLite database holding submission history
	DatabasePath string
	// ReportDir is where ledger reports are written
	ReportDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataDir}/jurnal.db
// If ReportDir is empty, it defaults to {DataDir}/reports
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir, "jurnal.db")
	}

	reportDir := config.ReportDir
	if reportDir == "" {
		reportDir = filepath.Join(config.DataDir, "reports")
	}

	return &PathResolver{
		dataDir:      config.DataDir,
		databasePath: dbPath,
		reportDir:    reportDir,
	}
}

// GetDataDir returns the data directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetReportDir returns the report directory.
func (p *PathResolver) GetReportDir() string {
	return p.reportDir
}

// GetLedgerReportPath returns the file path for a ledger report over the
// window [from, to]. Either bound may be empty.
// Example: reports/ledger_2024-02-01_2024-02-29.txt, reports/ledger_all.txt
func (p *PathResolver) GetLedgerReportPath(from, to string) (string, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		parts := strings.Split(d, "-")
		if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
			return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", d)
		}
	}

	name := "ledger_all.txt"
	switch {
	case from != "" && to != "":
		name = fmt.Sprintf("ledger_%s_%s.txt", from, to)
	case from != "":
		name = fmt.Sprintf("ledger_from_%s.txt", from)
	case to != "":
		name = fmt.Sprintf("ledger_until_%s.txt", to)
	}

	return filepath.Join(p.reportDir, name), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return p.EnsureDir(dir)
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
