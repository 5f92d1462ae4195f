package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/enigma/internal/machine"
	"github.com/roach88/enigma/internal/textfmt"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions

	SettingsFile    string
	Rotors          []string
	Positions       string
	Rings           []int
	Plugboard       []string
	Reflector       string
	ReflectorWiring []string
	Group           int
}

// EncodeResult is the JSON payload of the encode command.
type EncodeResult struct {
	Settings       machine.Settings `json:"settings"`
	Lines          []EncodedLine    `json:"lines"`
	FinalPositions string           `json:"final_positions"`
}

// EncodedLine is one input line and its encoding.
type EncodedLine struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Normalized bool   `json:"normalized,omitempty"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode [message...]",
		Short: "Encode or decode text",
		Long: `Encode text with the given machine settings. The machine is reciprocal,
so the same settings decode.

The message is taken from the arguments, or read line by line from stdin.
Rotor state carries over from one line to the next. Input is upper-cased,
diacritics are removed and everything outside A-Z is dropped; a warning is
logged when that changes the input.

Example:
  enigma encode --rotors I,II,III --positions AAZ --reflector B A
  enigma encode --settings key.yaml < message.txt
  echo HELLOWORLD | enigma encode --rotors I,II,III --reflector B --plugboard HL,MO`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SettingsFile, "settings", "", "YAML file with machine settings; flags override its fields")
	cmd.Flags().StringSliceVar(&opts.Rotors, "rotors", nil, "rotor names, leftmost first (e.g. I,II,III)")
	cmd.Flags().StringVar(&opts.Positions, "positions", "", "start positions, leftmost first (e.g. AAZ)")
	cmd.Flags().IntSliceVar(&opts.Rings, "rings", nil, "ring settings 1-26, leftmost first")
	cmd.Flags().StringSliceVar(&opts.Plugboard, "plugboard", nil, "plugboard leads (e.g. HL,MO)")
	cmd.Flags().StringVar(&opts.Reflector, "reflector", "", "reflector name (A, B or C)")
	cmd.Flags().StringSliceVar(&opts.ReflectorWiring, "reflector-wiring", nil, "reflector pairs that differ from the standard wiring")
	cmd.Flags().IntVar(&opts.Group, "group", 0, "split text output into groups of this many letters")

	return cmd
}

// machineSettings reads the settings file, if any, and overlays the flags
// that were set.
func (o *EncodeOptions) machineSettings(cmd *cobra.Command) (machine.Settings, error) {
	var s machine.Settings
	if o.SettingsFile != "" {
		data, err := os.ReadFile(o.SettingsFile)
		if err != nil {
			return s, fmt.Errorf("reading settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings %s: %w", o.SettingsFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("rotors") || s.Rotors == nil {
		s.Rotors = o.Rotors
	}
	if flags.Changed("positions") || s.Positions == "" {
		s.Positions = strings.ToUpper(o.Positions)
	}
	if flags.Changed("rings") || s.RingSettings == nil {
		s.RingSettings = o.Rings
	}
	if flags.Changed("plugboard") || s.Plugboard == nil {
		s.Plugboard = upperAll(o.Plugboard)
	}
	if flags.Changed("reflector") || s.Reflector == "" {
		s.Reflector = o.Reflector
	}
	if flags.Changed("reflector-wiring") || s.ReflectorWiring == nil {
		s.ReflectorWiring = upperAll(o.ReflectorWiring)
	}
	return s, nil
}

func runEncode(opts *EncodeOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.logger()

	settings, err := opts.machineSettings(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to read settings", err)
	}
	m, err := machine.NewFromSettings(settings)
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid machine settings", err)
	}
	if err := m.Validate(); err != nil {
		return formatter.Fail(ExitCommandError, "incomplete machine settings", err)
	}
	result := EncodeResult{Settings: m.Settings()}

	encodeLine := func(line string) error {
		rep := textfmt.Normalize(line)
		if rep.Modified() {
			log.Warn("input normalized", "folded", rep.Folded, "stripped", rep.Stripped)
		}
		out, err := m.Encode(rep.Text)
		if err != nil {
			return err
		}
		if opts.Format == "json" {
			result.Lines = append(result.Lines, EncodedLine{Input: line, Output: out, Normalized: rep.Modified()})
			return nil
		}
		fmt.Fprintln(formatter.Writer, group(out, opts.Group))
		return nil
	}

	if len(args) > 0 {
		err = encodeLine(strings.Join(args, " "))
	} else {
		err = eachLine(cmd.InOrStdin(), encodeLine)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, "encoding failed", err)
	}

	log.Debug("encoded", "lines", len(result.Lines), "positions", m.Rotors().Positions())
	if opts.Format == "json" {
		result.FinalPositions = m.Rotors().Positions()
		return formatter.Success(result)
	}
	return nil
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// group inserts a space every n letters. n <= 0 leaves s unchanged.
func group(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i:min(i+n, len(s))])
	}
	return b.String()
}

func upperAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}
