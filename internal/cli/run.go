package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	flag "github.com/spf13/pflag"

	"rangedump/internal/daterange"
	"rangedump/internal/dump"
	"rangedump/internal/query"
)

const summaryLayout = "2006-01-02 15:04:05"

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) (code int) {
	// Backstop for genuinely unexpected failures. Expected errors are
	// reported through the normal paths below and never travel this one.
	defer func() {
		if r := recover(); r != nil {
			fprintln(errOut, "error: something went wrong:", r)
			fprintln(errOut, string(debug.Stack()))

			code = 1
		}
	}()

	var opts options

	flagSet := newFlagSet(&opts)

	err := flagSet.Parse(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out)

			return 0
		}

		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flagSet.Args()) > 0 {
		fprintln(errOut, "error: unexpected argument:", flagSet.Args()[0])
		printUsage(errOut)

		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		fprintln(errOut, "error: cannot get working directory:", err)

		return 1
	}

	cfg, err := dump.LoadConfig(workDir, opts.configPath, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if opts.printConfig {
		return printConfig(out, errOut, cfg)
	}

	ref, err := resolveReference(opts)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	rng := daterange.Compute(ref, opts.numDays)

	field := opts.field
	if field == "" {
		field = cfg.Field
	}

	filter := query.RangeFilter(field, rng)

	if opts.fragment != "" {
		filter, err = query.Merge(filter, opts.fragment)
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}
	}

	passthru := cfg.ApplyConnectionDefaults(opts.passthru)
	cmdLine := dump.CommandLine(cfg.Tool, passthru, filter)

	fprintln(out, "Dumping documents with "+field+" in ["+
		rng.Start.Format(summaryLayout)+", "+rng.End.Format(summaryLayout)+")")
	fprintln(out, "Running:", cmdLine)

	if opts.dryRun {
		return 0
	}

	exitCode, invokeErr := dump.Invoke(context.Background(), cmdLine, in, out, errOut)
	if invokeErr != nil {
		fprintln(errOut, "error:", invokeErr)

		return 1
	}

	// The child reports its own diagnostics; propagate its code silently.
	if exitCode != 0 {
		return exitCode
	}

	if opts.manifest != "" {
		manifest := dump.NewManifest(cfg.Tool, field, rng.Start, rng.End, filter, cmdLine)

		writeErr := dump.WriteManifest(opts.manifest, manifest)
		if writeErr != nil {
			fprintln(errOut, "error:", writeErr)

			return 1
		}
	}

	return 0
}

// resolveReference picks the reference instant: --datetime wins over --date,
// and the default is today at local midnight.
func resolveReference(opts options) (time.Time, error) {
	if opts.datetime != "" {
		return daterange.ParseDateTime(opts.datetime)
	}

	if opts.date != "" {
		return daterange.ParseDate(opts.date)
	}

	return daterange.Today(), nil
}

func printConfig(out io.Writer, errOut io.Writer, cfg dump.Config) int {
	formatted, err := dump.FormatConfig(cfg)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	fprintln(out, formatted)

	// Print sources
	fprintln(out, "")
	fprintln(out, "# Sources:")

	if cfg.Sources.Global != "" {
		fprintln(out, "#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		fprintln(out, "#   project:", cfg.Sources.Project)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		fprintln(out, "#   (using defaults only)")
	}

	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `rangedump - date-windowed front end for a database dump tool

Usage: rangedump [options]

Builds a [start, end) date filter from a reference date and a signed day
count, then runs the dump tool with that filter.

Options:
  --date <YYYY-MM-DD>      Reference date [default: today]
  --datetime <ISO8601>     Reference datetime with literal Z suffix,
                           overrides --date
  --numdays <n>            Signed day count [default: 1]; negative counts
                           back from the reference
  --field <name>           Filter field [default: date]
  -q, --query <filter>     Extra { ... } filter merged with the range filter
  -c, --config <path>      Use specified config file
  --manifest <path>        Write a run manifest after a successful dump
  --dry-run                Print the command without running it
  --print-config           Show resolved configuration

Forwarded to the dump tool:
  --host, --port, --username, --password, --db, --collection, --out,
  --forceTableScan`)
}
