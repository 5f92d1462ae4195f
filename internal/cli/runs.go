package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/store"
)

// RunsOptions holds flags for the runs commands.
type RunsOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewRunsCommand creates the runs command and its show subcommand.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded searches",
		Long: `List the searches recorded with "enigma break --db", newest first.

Example:
  enigma runs --db runs.db --limit 10
  enigma runs show --db runs.db 0190a1b2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite run history (required)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to list (0 = all)")

	cmd.AddCommand(&cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show one recorded search",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(opts, args[0], cmd)
		},
	})

	return cmd
}

func (o *RunsOptions) open(formatter *OutputFormatter) (*store.Store, error) {
	if o.Database == "" {
		_ = formatter.Error(ErrCodeDatabase, "--db is required", nil)
		return nil, NewExitError(ExitCommandError, "--db is required")
	}
	st, err := store.Open(o.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runRunsList(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	st, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd), opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	if runs == nil {
		runs = []*store.Run{}
	}

	return formatter.Emit(runs, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tJOB\tFOUND\tSCORE\tTESTED\tDURATION\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%s\t%s\n",
				r.ID, r.Name, r.Result.Found, r.Result.Score, r.Result.Tested,
				r.Duration, r.CreatedAt.Format(time.RFC3339))
		}
		tw.Flush()
	})
}

func runRunsShow(opts *RunsOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	st, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(commandContext(cmd), id)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load run", err)
	}

	return formatter.Emit(run, func(w io.Writer) {
		fmt.Fprintf(w, "Run:        %s (#%d)\n", run.ID, run.Seq)
		fmt.Fprintf(w, "Job:        %s %s\n", run.Name, run.JobHash)
		fmt.Fprintf(w, "Ciphertext: %s\n", run.Ciphertext)
		fmt.Fprintf(w, "Cribs:      %v\n", run.Cribs)
		fmt.Fprintf(w, "Candidates: %d tested, %d matched\n", run.Result.Tested, run.Result.Matched)
		fmt.Fprintf(w, "Workers:    %d, %s\n", run.Workers, run.Duration)
		if !run.Result.Found {
			fmt.Fprintln(w, "No candidate matched the cribs.")
			return
		}
		s := run.Result.Settings
		fmt.Fprintf(w, "Plaintext:  %s\n", run.Result.Plaintext)
		fmt.Fprintf(w, "Score:      %d\n", run.Result.Score)
		fmt.Fprintf(w, "Settings:   %v %s rings %v plugs %v reflector %s %v\n",
			s.Rotors, s.Positions, s.RingSettings, s.Plugboard, s.Reflector, s.ReflectorWiring)
		fmt.Fprintf(w, "Fingerprint %s\n", run.SettingsHash)
	})
}
