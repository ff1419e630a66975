package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"rangedump/internal/dump"
)

// options holds the parsed command line. Immutable once parsing returns.
type options struct {
	date        string
	datetime    string
	numDays     int
	field       string
	fragment    string
	configPath  string
	manifest    string
	dryRun      bool
	printConfig bool
	passthru    dump.Passthru
}

// passthruValue appends a (flag, value) record to the shared list every time
// pflag encounters its flag, so repetition and encounter order survive.
type passthruValue struct {
	flag string
	list *dump.Passthru
}

func (v *passthruValue) Set(value string) error {
	*v.list = append(*v.list, dump.Token{Flag: v.flag, Value: value, HasValue: true})

	return nil
}

func (v *passthruValue) String() string { return "" }

func (v *passthruValue) Type() string { return "string" }

// passthruBoolValue appends a bare flag record when its flag is given.
type passthruBoolValue struct {
	flag string
	list *dump.Passthru
}

func (v *passthruBoolValue) Set(value string) error {
	if value == "true" {
		*v.list = append(*v.list, dump.Token{Flag: v.flag})
	}

	return nil
}

func (v *passthruBoolValue) String() string { return "false" }

func (v *passthruBoolValue) Type() string { return "bool" }

func newFlagSet(opts *options) *flag.FlagSet {
	flagSet := flag.NewFlagSet("rangedump", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	flagSet.StringVar(&opts.date, "date", "", "Reference date (YYYY-MM-DD) [default: today]")
	flagSet.StringVar(&opts.datetime, "datetime", "",
		"Reference datetime (YYYY-MM-DDTHH:MM:SS.mmmZ), overrides --date")
	flagSet.IntVar(&opts.numDays, "numdays", 1, "Signed day count; negative counts back from the reference")
	flagSet.StringVar(&opts.field, "field", "", "Document field for the range filter [default: date]")
	flagSet.StringVarP(&opts.fragment, "query", "q", "", "Extra filter document merged with the range filter")
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "Use specified config file")
	flagSet.StringVar(&opts.manifest, "manifest", "", "Write a run manifest to this path after a successful dump")
	flagSet.BoolVar(&opts.dryRun, "dry-run", false, "Print the command without running it")
	flagSet.BoolVar(&opts.printConfig, "print-config", false, "Show resolved configuration and exit")

	for _, name := range dump.ConnectionFlags {
		flagSet.Var(&passthruValue{flag: "--" + name, list: &opts.passthru}, name, "Forwarded to the dump tool")
	}

	flagSet.Var(&passthruBoolValue{flag: "--forceTableScan", list: &opts.passthru},
		"forceTableScan", "Forwarded to the dump tool")
	flagSet.Lookup("forceTableScan").NoOptDefVal = "true"

	return flagSet
}
