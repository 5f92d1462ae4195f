package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/jobfile"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Jobs   []JobSummary      `json:"jobs,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// JobSummary describes a valid job.
type JobSummary struct {
	Path        string               `json:"path"`
	Name        string               `json:"name"`
	JobHash     string               `json:"job_hash"`
	SearchSpace *breaker.SearchSpace `json:"search_space"`
}

// ValidationError describes an invalid job file.
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <job-file>...",
		Short: "Validate job files and report their search space",
		Long: `Validate job files without searching.

Checks the file syntax, every field and the constraints the job describes,
then reports how many candidates a search would decode along each
dimension.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	result := ValidationResult{Valid: true}

	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		summary, err := validateJob(path)
		if err != nil {
			result.Valid = false
			msg := err.Error()
			var le *jobfile.LoadError
			if errors.As(err, &le) {
				msg = le.Message
			}
			result.Errors = append(result.Errors, ValidationError{Path: path, Code: errorCode(err), Message: msg})
			continue
		}
		result.Jobs = append(result.Jobs, *summary)
	}

	if err := formatter.Emit(result, func(w io.Writer) { writeValidateText(w, result) }); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitCommandError, fmt.Sprintf("%d of %d job file(s) invalid", len(result.Errors), len(paths)))
	}
	return nil
}

func validateJob(path string) (*JobSummary, error) {
	job, err := jobfile.Load(path)
	if err != nil {
		return nil, err
	}
	hash, err := job.Hash()
	if err != nil {
		return nil, err
	}
	space, err := job.SearchSpace()
	if err != nil {
		return nil, err
	}
	return &JobSummary{Path: path, Name: job.Name, JobHash: hash, SearchSpace: space}, nil
}

func writeValidateText(w io.Writer, result ValidationResult) {
	for _, j := range result.Jobs {
		s := j.SearchSpace
		fmt.Fprintf(w, "✓ %s (%s): %s candidates\n", j.Path, j.Name, s.Total)
		fmt.Fprintf(w, "    plugboard %s × reflectors %s × wirings %s × rotor orders %s × positions %s × rings %s\n",
			s.Plugboard, s.Reflectors, s.ReflectorWirings, s.RotorOrders, s.Positions, s.RingSettings)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(w, "✗ %s: [%s] %s\n", e.Path, e.Code, e.Message)
	}
}
