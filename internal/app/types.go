package app

// Detection is the outcome of probing one input path.
type Detection struct {
	Path  string
	IsDir bool
	// Media found under Path, in natural order. Media[0] was probed.
	Media  []string
	Offset string
	DST    bool
	Err    error
}

func (d Detection) OK() bool {
	return d.Err == nil
}

func (d Detection) Label() string {
	if d.IsDir {
		return "Directory"
	}
	return "File"
}

// Failure is a per-item error that did not stop the run.
type Failure struct {
	Path  string
	Stage string
	Err   error
}

// Report collects the per-item failures of a run. Batch failures are
// returned as errors instead.
type Report struct {
	Failures []Failure
}

func (r *Report) Add(stage, path string, err error) {
	r.Failures = append(r.Failures, Failure{Path: path, Stage: stage, Err: err})
}

func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
