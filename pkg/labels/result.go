package labels

// Outcome is the terminal state of an executed operation
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Result is the reporting unit for one operation against one repository
type Result struct {
	Repository string    `json:"repository"`
	Operation  Operation `json:"operation"`
	Err        error     `json:"-"`
}

// Succeeded reports whether the operation completed without error
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Outcome returns success or failure
func (r Result) Outcome() Outcome {
	if r.Err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Detail returns the failure detail, empty on success
func (r Result) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Summary aggregates result counts per repository
type Summary struct {
	Repository string
	Created    int
	Updated    int
	Deleted    int
	Failed     int
}

// Summarize folds results into per-repository counts. Repositories listed in
// repos keep their order and appear even without results; any other
// repository follows in first-seen order.
func Summarize(repos []string, results []Result) []Summary {
	index := make(map[string]int, len(repos))
	out := make([]Summary, 0, len(repos))
	for _, repo := range repos {
		if _, ok := index[repo]; ok {
			continue
		}
		index[repo] = len(out)
		out = append(out, Summary{Repository: repo})
	}

	for _, r := range results {
		i, ok := index[r.Repository]
		if !ok {
			i = len(out)
			index[r.Repository] = i
			out = append(out, Summary{Repository: r.Repository})
		}

		s := &out[i]
		if !r.Succeeded() {
			s.Failed++
			continue
		}
		switch r.Operation.Kind {
		case OperationCreate:
			s.Created++
		case OperationUpdate:
			s.Updated++
		case OperationDelete:
			s.Deleted++
		}
	}

	return out
}
