package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/pkg/pathutil"
)

// Repository defines the interface for report file operations.
type Repository interface {
	// WriteLedgerReport writes a ledger report for [from, to] and returns its path
	WriteLedgerReport(from, to, content string) (string, error)

	// ReadLedgerReport reads a previously written report
	ReadLedgerReport(from, to string) (string, error)

	// ListReports lists report file names
	ListReports() ([]string, error)
}

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
	now          func() time.Time
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
		now:          time.Now,
	}
}

// WriteLedgerReport writes content to the report file for the window,
// replacing an earlier report of the same window.
func (r *FileSystemRepository) WriteLedgerReport(from, to, content string) (string, error) {
	filePath, err := r.pathResolver.GetLedgerReportPath(from, to)
	if err != nil {
		return "", fmt.Errorf("failed to get report path: %w", err)
	}

	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return "", fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	data := r.generateFileHeader(Period(from, to)) + content
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}

	if err := os.WriteFile(filePath, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// ReadLedgerReport reads the report for the window.
// Returns empty string if the report doesn't exist.
func (r *FileSystemRepository) ReadLedgerReport(from, to string) (string, error) {
	filePath, err := r.pathResolver.GetLedgerReportPath(from, to)
	if err != nil {
		return "", fmt.Errorf("failed to get report path: %w", err)
	}

	if !r.pathResolver.FileExists(filePath) {
		return "", nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// ListReports lists the report files in the report directory, sorted by name.
func (r *FileSystemRepository) ListReports() ([]string, error) {
	dir := r.pathResolver.GetReportDir()
	if !r.pathResolver.FileExists(dir) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var reports []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "ledger_") && filepath.Ext(name) == ".txt" {
			reports = append(reports, name)
		}
	}
	sort.Strings(reports)

	return reports, nil
}

func (r *FileSystemRepository) generateFileHeader(period string) string {
	now := r.now().Format(time.RFC3339)
	return fmt.Sprintf("# Ledger report for %s\n# Generated at %s\n\n", period, now)
}
