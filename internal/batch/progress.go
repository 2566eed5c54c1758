package batch

// Failure records one failed entry.
type Failure struct {
	URL     string
	Message string
}

// Progress tracks one batch run. Mutated only by the sequential executor,
// exactly once per processed entry.
type Progress struct {
	Total     int
	Completed int
	Succeeded int
	Failed    int
	Current   string
	Failures  []Failure
}

// NewProgress returns a progress tracker for a batch of the given size.
func NewProgress(total int) *Progress {
	return &Progress{Total: total}
}

// Update records one entry's outcome.
func (p *Progress) Update(url string, success bool, message string) {
	p.Completed++
	if success {
		p.Succeeded++
	} else {
		p.Failed++
		p.Failures = append(p.Failures, Failure{URL: url, Message: message})
	}
}
