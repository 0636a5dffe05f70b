package output

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/growth-projector/internal/domain"
)

// extensions maps canonical formatter names to file extensions.
var extensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"html":         "html",
	"json":         "json",
}

// GenerateReport writes result in the given format to a timestamped file in
// dir and returns the paths written. "all" writes the verbose console report,
// the detailed CSV and the HTML report.
func GenerateReport(result *domain.ProjectionResult, format, dir string, loc Locale) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = []string{"console", "detailed-csv", "html"}
	}

	var written []string
	for _, name := range names {
		f, err := GetLocalizedFormatter(name, loc)
		if err != nil {
			return written, err
		}
		path, err := WriteFormatted(f, result, dir, extensions[f.Name()])
		if err != nil {
			return written, fmt.Errorf("write %s report: %w", f.Name(), err)
		}
		written = append(written, path)
	}
	return written, nil
}

// SaveConfiguration writes any YAML-serialisable configuration to filename.
func SaveConfiguration(config any, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filename, b, 0644)
}
