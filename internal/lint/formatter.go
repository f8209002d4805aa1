package lint

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter renders a lint result for the terminal or for tooling.
type Formatter interface {
	Format(w io.Writer, result *Result, contentDir string) error
}

// NewFormatter selects a formatter by name; anything but "json" is text.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter prints human-readable findings grouped by file.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, result *Result, contentDir string) error {
	if _, err := fmt.Fprintf(w, "Linting content in: %s\n\n", contentDir); err != nil {
		return err
	}

	for _, finding := range result.Findings {
		if err := f.formatFinding(w, finding); err != nil {
			return err
		}
	}
	if len(result.Findings) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Results:\n  %d files scanned\n", result.FilesTotal); err != nil {
		return err
	}
	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s (blocks publish)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s (advisory)\n", n, pluralize(n)); err != nil {
			return err
		}
	}

	switch {
	case result.HasErrors():
		_, err := fmt.Fprintln(w, "\n✗ Content has errors the generator will choke on.")
		return err
	case result.WarningCount() > 0:
		_, err := fmt.Fprintln(w, "\n⚠ Content builds, but look at the warnings.")
		return err
	default:
		_, err := fmt.Fprintln(w, "\n✓ Content passes linting.")
		return err
	}
}

func (f *TextFormatter) formatFinding(w io.Writer, finding Finding) error {
	var icon string
	switch finding.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	default:
		icon = "ℹ"
	}

	location := finding.Path
	if location == "" {
		location = "configuration"
	}
	if finding.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, finding.Line)
	}
	_, err := fmt.Fprintf(w, "%s %s\n  %s [%s]: %s\n", icon, location, finding.Severity, finding.Rule, finding.Message)
	return err
}

// JSONFormatter emits the result as a single JSON document.
type JSONFormatter struct{}

type jsonOutput struct {
	ContentDir   string        `json:"content_dir"`
	FilesTotal   int           `json:"files_total"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	Findings     []jsonFinding `json:"findings"`
}

type jsonFinding struct {
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

func (f *JSONFormatter) Format(w io.Writer, result *Result, contentDir string) error {
	out := jsonOutput{
		ContentDir:   contentDir,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Findings:     []jsonFinding{},
	}
	for _, finding := range result.Findings {
		out.Findings = append(out.Findings, jsonFinding{
			Path:     finding.Path,
			Line:     finding.Line,
			Severity: finding.Severity.String(),
			Rule:     finding.Rule,
			Message:  finding.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
