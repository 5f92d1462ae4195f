package jobfile

import (
	"fmt"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/canon"
	"github.com/roach88/enigma/internal/machine"
)

// Expectation outcomes in a Report.
const (
	ExpectNone = "none"
	ExpectMet  = "met"
	ExpectFail = "failed"
)

// Report is the machine-readable outcome of running a job. Its canonical
// JSON is stable, so reports can be compared byte for byte.
type Report struct {
	Name         string            `json:"name"`
	JobHash      string            `json:"job_hash"`
	SearchSpace  string            `json:"search_space"`
	Found        bool              `json:"found"`
	Plaintext    string            `json:"plaintext"`
	Score        int               `json:"score"`
	Tested       int64             `json:"tested"`
	Matched      int64             `json:"matched"`
	Settings     *machine.Settings `json:"settings,omitempty"`
	SettingsHash string            `json:"settings_hash,omitempty"`
	Expectation  string            `json:"expectation"`
	Mismatch     string            `json:"mismatch,omitempty"`
}

// NewReport summarizes res as the outcome of job. space may be nil, in
// which case it is computed.
func NewReport(job *Job, space *breaker.SearchSpace, res *breaker.Result) (*Report, error) {
	hash, err := job.Hash()
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", job.Name, err)
	}
	if space == nil {
		if space, err = job.SearchSpace(); err != nil {
			return nil, fmt.Errorf("report %s: %w", job.Name, err)
		}
	}

	r := &Report{
		Name:        job.Name,
		JobHash:     hash,
		SearchSpace: space.Total.String(),
		Found:       res.Found,
		Plaintext:   res.Plaintext,
		Score:       res.Score,
		Tested:      res.Tested,
		Matched:     res.Matched,
		Expectation: ExpectNone,
	}
	if res.Found {
		settings := res.Settings
		r.Settings = &settings
		if r.SettingsHash, err = canon.SettingsFingerprint(settings); err != nil {
			return nil, fmt.Errorf("report %s: %w", job.Name, err)
		}
	}
	if job.Expect != nil {
		r.Expectation = ExpectMet
		if err := job.Check(res); err != nil {
			r.Expectation = ExpectFail
			r.Mismatch = err.Error()
		}
	}
	return r, nil
}

// Canonical returns the report's canonical JSON.
func (r *Report) Canonical() ([]byte, error) {
	return canon.Marshal(r)
}
