package lint

// Severity indicates how much a finding matters.
type Severity int

const (
	// SeverityInfo is informational only.
	SeverityInfo Severity = iota
	// SeverityWarning marks content that will build but probably not as intended.
	SeverityWarning
	// SeverityError marks content the generator will reject or mangle.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Finding is a single problem located in a content file or in the
// configuration ("" path means a configuration finding).
type Finding struct {
	Path     string
	Line     int // 0 for file-level findings
	Severity Severity
	Rule     string
	Message  string
}

// Result collects everything one lint run found.
type Result struct {
	Findings   []Finding
	FilesTotal int
}

func (r *Result) add(f Finding) { r.Findings = append(r.Findings, f) }

// HasErrors reports whether any error-level finding exists; only those make
// the lint command exit non-zero.
func (r *Result) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of error-level findings.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level findings.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }
