package models

// FileStatus is the outcome class of one processed file.
type FileStatus string

const (
	// StatusConverted means the file was read and its output written.
	StatusConverted FileStatus = "converted"
	// StatusSkipped means the file was intentionally not processed (unrecognized
	// suffix, or the output already exists and overwrite is off).
	StatusSkipped FileStatus = "skipped"
	// StatusFailed means reading or writing the file raised an error.
	StatusFailed FileStatus = "failed"
)

// FileOutcome records what happened to one source file during a batch run.
// Failures are values here, not log lines, so callers can assert on them.
type FileOutcome struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	Err    string     `json:"error,omitempty"`
	Output string     `json:"output,omitempty"`
	Rows   int        `json:"rows,omitempty"`
}

// BatchReport aggregates per-file outcomes of one directory conversion.
type BatchReport struct {
	InputDir  string        `json:"input_dir"`
	OutputDir string        `json:"output_dir"`
	Outcomes  []FileOutcome `json:"outcomes"`
}

// Counts returns how many files were converted, skipped, and failed.
func (r *BatchReport) Counts() (converted, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusConverted:
			converted++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return converted, skipped, failed
}
