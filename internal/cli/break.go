package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/jobfile"
	"github.com/roach88/enigma/internal/store"
	"github.com/roach88/enigma/internal/wordlist"
)

// BreakOptions holds flags for the break command.
type BreakOptions struct {
	*RootOptions

	Workers       int
	Database      string
	Force         bool
	MaxCandidates int64
	Words         string
	Progress      time.Duration

	// IDs and Now allow overriding run identity and wall time (for testing).
	// If nil, UUIDv7 IDs and time.Now are used.
	IDs store.IDGenerator
	Now func() time.Time
}

// BreakOutput is the JSON payload of the break command.
type BreakOutput struct {
	*jobfile.Report
	RunID  string `json:"run_id,omitempty"`
	Cached bool   `json:"cached,omitempty"`
}

// NewBreakCommand creates the break command.
func NewBreakCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BreakOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "break <job-file>",
		Short: "Search for the settings that decode a ciphertext",
		Long: `Run the exhaustive search described by a job file (.yaml, .yml or .cue).

Every candidate decode containing a crib is scored against the dictionary
and the best one is reported with the settings that produce it. The result
does not depend on the number of workers.

With --db, finished runs are recorded. A job that already ran with the
same dictionary is answered from the database unless --force is given.

Exit codes: 0 on success, 1 when the job's expectation is not met or the
search is interrupted, 2 for invalid jobs and database errors.

Example:
  enigma break jobs/code1.yaml
  enigma break --workers 8 --db runs.db --format json jobs/code5.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreak(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "search workers (0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run history (optional)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "search again even if the job is in the run history")
	cmd.Flags().Int64Var(&opts.MaxCandidates, "max-candidates", 0, "refuse searches larger than this (0 = no limit)")
	cmd.Flags().StringVar(&opts.Words, "words", "", "dictionary file, one word per line (default: built-in list)")
	cmd.Flags().DurationVar(&opts.Progress, "progress", breaker.DefaultProgressInterval, "interval between progress log lines")

	return cmd
}

func runBreak(opts *BreakOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.logger()

	job, err := jobfile.Load(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load job", err)
	}
	formatter.VerboseLog("Loaded job %s from %s", job.Name, path)

	ct := job.NormalizedCiphertext()
	if ct.Modified() {
		log.Warn("ciphertext normalized", "job", job.Name, "folded", ct.Folded, "stripped", ct.Stripped)
	}
	hash, err := job.Hash()
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to hash job", err)
	}
	space, err := job.SearchSpace()
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid job", err)
	}

	scorer, err := loadScorer(opts.Words)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load dictionary", err)
	}
	dictHash, err := scorer.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to fingerprint dictionary", err)
	}

	ctx := commandContext(cmd)

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()

		if !opts.Force {
			prev, err := st.LatestByJobHash(ctx, hash, dictHash)
			switch {
			case err == nil:
				log.Info("serving cached run", "job", job.Name, "run", prev.ID)
				return outputBreak(opts, formatter, job, space, &prev.Result, prev.ID, true)
			case !errors.Is(err, store.ErrNotFound):
				return formatter.Fail(ExitCommandError, "failed to read run history", err)
			}
		}
	}

	b := breaker.New(scorer,
		breaker.WithWorkers(opts.Workers),
		breaker.WithLogger(log.With("job", job.Name)),
		breaker.WithCandidateLimit(opts.MaxCandidates),
		breaker.WithProgressInterval(opts.Progress),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := opts.now()
	start := now()
	res, err := b.Break(ctx, ct.Text, job.Cribs, job.Constraints())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			_ = formatter.Error(ErrCodeInterrupted, "search interrupted", nil)
			return WrapExitError(ExitFailure, "search interrupted", err)
		default:
			return formatter.Fail(ExitCommandError, "search failed", err)
		}
	}
	elapsed := now().Sub(start)

	runID := ""
	if st != nil {
		ids := opts.IDs
		if ids == nil {
			ids = store.UUIDv7Generator{}
		}
		run := &store.Run{
			ID:             ids.Generate(),
			JobHash:        hash,
			DictionaryHash: dictHash,
			Name:           job.Name,
			Ciphertext:     ct.Text,
			Cribs:          job.NormalizedCribs(),
			Constraints:    job.Constraints(),
			Result:         *res,
			Workers:        b.Workers(),
			Duration:       elapsed,
			CreatedAt:      start,
		}
		if err := st.WriteRun(ctx, run); err != nil {
			return formatter.Fail(ExitCommandError, "failed to record run", err)
		}
		runID = run.ID
		log.Info("run recorded", "run", runID)
	}

	return outputBreak(opts, formatter, job, space, res, runID, false)
}

func (o *BreakOptions) now() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

func loadScorer(path string) (*wordlist.Scorer, error) {
	if path == "" {
		return wordlist.NewScorer(wordlist.Default()), nil
	}
	dict, err := wordlist.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return wordlist.NewScorer(dict), nil
}

func outputBreak(opts *BreakOptions, formatter *OutputFormatter, job *jobfile.Job,
	space *breaker.SearchSpace, res *breaker.Result, runID string, cached bool) error {
	report, err := jobfile.NewReport(job, space, res)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to build report", err)
	}

	out := BreakOutput{Report: report, RunID: runID, Cached: cached}
	if err := formatter.Emit(out, func(w io.Writer) { writeBreakText(w, out) }); err != nil {
		return err
	}

	if report.Expectation == jobfile.ExpectFail {
		if opts.Format == "text" {
			_ = formatter.Error(ErrCodeExpectation, report.Mismatch, nil)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("job %s: %s", job.Name, report.Mismatch))
	}
	return nil
}

func writeBreakText(w io.Writer, out BreakOutput) {
	r := out.Report
	fmt.Fprintf(w, "Job:        %s\n", r.Name)
	fmt.Fprintf(w, "Candidates: %d tested, %d matched (search space %s)\n", r.Tested, r.Matched, r.SearchSpace)
	if out.Cached {
		fmt.Fprintf(w, "Cached:     run %s\n", out.RunID)
	} else if out.RunID != "" {
		fmt.Fprintf(w, "Run:        %s\n", out.RunID)
	}
	if !r.Found {
		fmt.Fprintln(w, "No candidate matched the cribs.")
		return
	}
	s := r.Settings
	fmt.Fprintf(w, "Plaintext:  %s\n", r.Plaintext)
	fmt.Fprintf(w, "Score:      %d\n", r.Score)
	fmt.Fprintf(w, "Rotors:     %v\n", s.Rotors)
	fmt.Fprintf(w, "Positions:  %s\n", s.Positions)
	fmt.Fprintf(w, "Rings:      %v\n", s.RingSettings)
	fmt.Fprintf(w, "Plugboard:  %v\n", s.Plugboard)
	fmt.Fprintf(w, "Reflector:  %s\n", s.Reflector)
	if len(s.ReflectorWiring) > 0 {
		fmt.Fprintf(w, "Rewired:    %v\n", s.ReflectorWiring)
	}
	if r.Expectation == jobfile.ExpectMet {
		fmt.Fprintln(w, "✓ Expectation met")
	}
}
