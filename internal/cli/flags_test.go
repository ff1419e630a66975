package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rangedump/internal/dump"
)

func parseArgs(t *testing.T, args ...string) (options, error) {
	t.Helper()

	var opts options

	flagSet := newFlagSet(&opts)

	return opts, flagSet.Parse(args)
}

func TestFlagDefaults(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if opts.numDays != 1 {
		t.Errorf("numDays = %d, want 1", opts.numDays)
	}

	if opts.date != "" || opts.datetime != "" || opts.field != "" || opts.fragment != "" {
		t.Errorf("unexpected non-zero defaults: %+v", opts)
	}

	if len(opts.passthru) != 0 {
		t.Errorf("passthru = %v, want empty", opts.passthru)
	}
}

func TestPassthruEncounterOrder(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t, "--host", "localhost", "--port", "27017")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := dump.Passthru{
		{Flag: "--host", Value: "localhost", HasValue: true},
		{Flag: "--port", Value: "27017", HasValue: true},
	}

	if diff := cmp.Diff(want, opts.passthru); diff != "" {
		t.Errorf("passthru mismatch (-want +got):\n%s", diff)
	}
}

func TestPassthruRepeatedFlagsAllForward(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t, "--host", "a", "--db", "events", "--host", "b")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := dump.Passthru{
		{Flag: "--host", Value: "a", HasValue: true},
		{Flag: "--db", Value: "events", HasValue: true},
		{Flag: "--host", Value: "b", HasValue: true},
	}

	if diff := cmp.Diff(want, opts.passthru); diff != "" {
		t.Errorf("passthru mismatch (-want +got):\n%s", diff)
	}
}

func TestForceTableScanIsBareToken(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t, "--host", "h", "--forceTableScan", "--out", "dir")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := dump.Passthru{
		{Flag: "--host", Value: "h", HasValue: true},
		{Flag: "--forceTableScan"},
		{Flag: "--out", Value: "dir", HasValue: true},
	}

	if diff := cmp.Diff(want, opts.passthru); diff != "" {
		t.Errorf("passthru mismatch (-want +got):\n%s", diff)
	}
}

func TestNegativeNumdaysAsSeparateArg(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t, "--numdays", "-5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if opts.numDays != -5 {
		t.Errorf("numDays = %d, want -5", opts.numDays)
	}
}

func TestQueryShorthand(t *testing.T) {
	t.Parallel()

	opts, err := parseArgs(t, "-q", `{ "a" : 1 }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if opts.fragment != `{ "a" : 1 }` {
		t.Errorf("fragment = %q", opts.fragment)
	}
}

func TestUnknownFlagRejected(t *testing.T) {
	t.Parallel()

	_, err := parseArgs(t, "--bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("error = %v, want unknown flag", err)
	}
}

func TestNumdaysRejectsNonInteger(t *testing.T) {
	t.Parallel()

	_, err := parseArgs(t, "--numdays", "frog")
	if err == nil || !strings.Contains(err.Error(), "frog") {
		t.Errorf("error = %v, want diagnostic naming frog", err)
	}
}
