// Package cmd implements the germ Cobra command line interface.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/volks73/germ/internal/cast"
	"github.com/volks73/germ/internal/interactive"
	"github.com/volks73/germ/internal/logger"
	"github.com/volks73/germ/internal/sequence"
	"github.com/volks73/germ/internal/synth"
	"github.com/volks73/germ/internal/terminal"
	"github.com/volks73/germ/internal/termsheets"
)

// Version, Commit, and Date are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Output format names accepted by --output-format.
const (
	formatAsciicast  = "asciicast"
	formatGerm       = "germ"
	formatTermSheets = "termsheets"
)

var (
	outputFile      string
	outputFormat    string
	germShortcut    bool
	inputFile       string
	useFile         string
	interactiveMode bool
	stdinMirror     bool

	width     int
	height    int
	title     string
	shellPath string
	termType  string

	promptText  string
	commentText string
	beginDelay  float64
	endDelay    float64
	typeStart   int
	typeChar    int
	typeSubmit  int
	jitter      int
	seed        int64
	speed       float64

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "germ [flags] [INPUT [OUTPUT...]]",
	Short: "Synthesize terminal session recordings from declared commands",
	Long: `germ - Synthesize terminal session recordings from declared commands

Create asciicast v2 recordings from a declarative list of (input, output)
pairs instead of recording a live session. The input is replayed as a series
of typed keystrokes while each output is printed as a burst, with no
rehearsing and a consistent pace on playback.

Examples:
  # One command with one output line, written to stdout
  germ "echo 'Hello, World!'" "Hello, World!" > hello.cast

  # Several commands from a sequence file
  germ --input-file demo.json -o demo.cast

  # Continue an existing recording (chaining)
  germ "ls" "README.md" > part1.cast
  germ "cat README.md" "# Demo" < part1.cast > full.cast

  # Enter commands interactively
  germ --interactive -o session.cast`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Standard cobra pattern
	rootCmd.SetVersionTemplate(fmt.Sprintf("germ version {{.Version}} (commit: %s, built: %s)\n", Commit, Date))

	flags := rootCmd.Flags()
	flags.StringVarP(&outputFile, "output-file", "o", "", "write the result to this file instead of stdout")
	flags.StringVarP(&outputFormat, "output-format", "O", formatAsciicast, "output format: asciicast, germ, or termsheets")
	flags.BoolVarP(&germShortcut, "germ-format", "G", false, "shortcut for --output-format germ")
	flags.StringVarP(&inputFile, "input-file", "i", "", "read commands from a germ (JSON/YAML) or TermSheets file")
	flags.StringVar(&useFile, "use-file", "", "continue the recording in this asciicast file")
	flags.BoolVar(&interactiveMode, "interactive", false, "enter commands interactively")
	flags.BoolVar(&stdinMirror, "stdin", false, "mimic the keypress logging of asciinema recordings")

	flags.IntVarP(&width, "width", "W", 0, "number of terminal columns (default: detected, else 80)")
	flags.IntVarP(&height, "height", "H", 0, "number of terminal rows (default: detected, else 24)")
	flags.StringVarP(&title, "title", "t", "", "title for the recording")
	flags.StringVarP(&shellPath, "shell", "S", envOr("SHELL", terminal.DefaultShell), "SHELL environment variable for the recording")
	flags.StringVarP(&termType, "term", "T", envOr("TERM", terminal.DefaultTerm), "TERM environment variable for the recording")

	flags.StringVarP(&promptText, "prompt", "p", envOr("GERM_PROMPT", sequence.DefaultPrompt), "prompt shown before each simulated command")
	flags.StringVarP(&commentText, "comment", "c", "", "comment line shown above the command's prompt")
	flags.Float64VarP(&beginDelay, "begin-delay", "b", envOrFloat("GERM_BEGIN_DELAY", sequence.DefaultBeginDelay), "delay in seconds before the animation starts")
	flags.Float64VarP(&endDelay, "end-delay", "e", envOrFloat("GERM_END_DELAY", sequence.DefaultEndDelay), "hold in seconds on the final screen (0 omits the hold)")
	flags.IntVar(&typeStart, "delay-type-start", envOrInt("GERM_DELAY_TYPE_START", sequence.DefaultTypeStart), "delay in ms before typing begins")
	flags.IntVar(&typeChar, "delay-type-char", envOrInt("GERM_DELAY_TYPE_CHAR", sequence.DefaultTypeChar), "delay in ms between keystrokes")
	flags.IntVar(&typeSubmit, "delay-type-submit", envOrInt("GERM_DELAY_TYPE_SUBMIT", sequence.DefaultTypeSubmit), "delay in ms between the last keystroke and the newline")
	flags.IntVar(&jitter, "jitter", envOrInt("GERM_JITTER", sequence.DefaultJitter), "keystroke jitter bound in ms (0 disables)")
	flags.Int64Var(&seed, "seed", 0, "jitter random seed (default: time-based)")
	flags.Float64VarP(&speed, "speed", "s", sequence.DefaultSpeed, "speed the animation up or down by this factor")

	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger.Configure(logLevel)

	seq, err := gatherCommands(cmd.Flags(), args)
	if err != nil {
		return err
	}

	format := resolveFormat()
	prior, err := readPrior()
	if err != nil {
		return err
	}
	if prior != nil && format != formatAsciicast {
		return fmt.Errorf("continuing a recording requires asciicast output, got %s", format)
	}

	// Render fully before writing so a failed synthesis produces no output.
	var buf bytes.Buffer
	switch format {
	case formatAsciicast:
		if err := renderCast(&buf, seq, prior, cmd.Flags()); err != nil {
			return err
		}
	case formatGerm:
		if err := seq.Encode(&buf, sequence.FormatForPath(outputFile)); err != nil {
			return err
		}
	case formatTermSheets:
		if err := termsheets.Encode(&buf, termsheets.FromSequence(seq)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (want asciicast, germ, or termsheets)", format)
	}

	return writeOutput(buf.Bytes())
}

// gatherCommands assembles the sequence to synthesize from, in order: the
// input file, the positional INPUT/OUTPUT arguments, and the interactive
// session. Pacing comes from the input file when given, with explicitly set
// flags overriding it.
func gatherCommands(flags *pflag.FlagSet, args []string) (*sequence.Sequence, error) {
	seq := sequence.New()
	seq.Timings = flagTimings()

	if inputFile != "" {
		loaded, err := loadInputFile(inputFile)
		if err != nil {
			return nil, err
		}
		seq.Commands = loaded.Commands
		seq.Timings = overlayTimings(loaded.Timings, flags)
	}

	if len(args) > 0 {
		command := sequence.Command{
			Comment: commentText,
			Prompt:  promptText,
			Input:   args[0],
			Outputs: args[1:],
		}
		seq.Add(command)
	}

	if interactiveMode {
		if terminal.StdinIsPiped() {
			return nil, fmt.Errorf("interactive mode requires a terminal on stdin")
		}
		rl, err := interactive.NewReadline()
		if err != nil {
			return nil, fmt.Errorf("open interactive session: %w", err)
		}
		defer func() { _ = rl.Close() }()
		entered, err := interactive.Collect(rl, promptText)
		if err != nil {
			return nil, fmt.Errorf("interactive session: %w", err)
		}
		for _, c := range entered {
			seq.Add(c)
		}
	}

	if len(seq.Commands) == 0 {
		return nil, fmt.Errorf("no commands: provide an INPUT argument, --input-file, or --interactive")
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("gathered commands", "count", len(seq.Commands))
	return seq, nil
}

// loadInputFile reads either a germ sequence document or a TermSheets
// command list, sniffing TermSheets by its top-level JSON array.
func loadInputFile(path string) (*sequence.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		commands, err := termsheets.Load(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return termsheets.ToSequence(commands), nil
	}
	return sequence.Load(bytes.NewReader(data), sequence.FormatForPath(path))
}

// renderCast synthesizes and encodes the recording, continuing the prior
// recording when one was supplied.
func renderCast(w io.Writer, seq *sequence.Sequence, prior *cast.Cast, flags *pflag.FlagSet) error {
	c := cast.New(buildHeader(prior != nil))
	if prior != nil {
		if _, err := c.Merge(prior); err != nil {
			return fmt.Errorf("continue recording: %w", err)
		}
	}
	opts := synth.Options{
		Timings: seq.Timings,
		Rand:    jitterSource(seq.Timings.Jitter, flags),
		Stdin:   stdinMirror,
	}
	if err := synth.Run(c, seq.Commands, opts); err != nil {
		return err
	}
	return c.Encode(w)
}

// buildHeader constructs a fresh recording header from flags and the
// environment. When continuing a prior recording, geometry that was not
// explicitly flagged is left unset so the prior geometry wins at merge.
func buildHeader(chaining bool) cast.Header {
	w, h := width, height
	if w == 0 && h == 0 && !chaining {
		w, h = terminal.Size(os.Stdout.Fd())
	}
	return cast.Header{
		Version:   cast.Version,
		Width:     w,
		Height:    h,
		Timestamp: time.Now().Unix(),
		Title:     title,
		Env:       cast.Env{Shell: shellPath, Term: termType},
	}
}

// readPrior returns the recording to continue: --use-file when given,
// otherwise piped stdin. Empty piped stdin is treated as no prior.
func readPrior() (*cast.Cast, error) {
	if useFile != "" {
		f, err := os.Open(useFile)
		if err != nil {
			return nil, fmt.Errorf("open recording: %w", err)
		}
		defer func() { _ = f.Close() }()
		prior, err := cast.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("parse recording %s: %w", useFile, err)
		}
		return prior, nil
	}
	if interactiveMode || !terminal.StdinIsPiped() {
		return nil, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	prior, err := cast.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piped recording: %w", err)
	}
	return prior, nil
}

func resolveFormat() string {
	if germShortcut {
		return formatGerm
	}
	return strings.ToLower(outputFormat)
}

// flagTimings collects the pacing flags into a Timings value.
func flagTimings() sequence.Timings {
	return sequence.Timings{
		Begin:      beginDelay,
		End:        endDelay,
		TypeStart:  typeStart,
		TypeChar:   typeChar,
		TypeSubmit: typeSubmit,
		Jitter:     jitter,
		Speed:      speed,
	}
}

// overlayTimings starts from a file's pacing and applies only the flags the
// user explicitly set.
func overlayTimings(base sequence.Timings, flags *pflag.FlagSet) sequence.Timings {
	if flags.Changed("begin-delay") {
		base.Begin = beginDelay
	}
	if flags.Changed("end-delay") {
		base.End = endDelay
	}
	if flags.Changed("delay-type-start") {
		base.TypeStart = typeStart
	}
	if flags.Changed("delay-type-char") {
		base.TypeChar = typeChar
	}
	if flags.Changed("delay-type-submit") {
		base.TypeSubmit = typeSubmit
	}
	if flags.Changed("jitter") {
		base.Jitter = jitter
	}
	if flags.Changed("speed") || base.Speed == 0 {
		base.Speed = speed
	}
	return base
}

// jitterSource returns the seeded random source for keystroke jitter, or
// nil when jitter is disabled. Without --seed the source is time-seeded.
func jitterSource(bound int, flags *pflag.FlagSet) *rand.Rand {
	if bound <= 0 {
		return nil
	}
	s := seed
	if !flags.Changed("seed") {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

func writeOutput(data []byte) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// Environment-backed flag defaults, mirroring the GERM_* variables.

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
