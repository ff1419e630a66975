package dump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPassthruArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		list Passthru
		want []string
	}{
		{
			name: "empty",
			list: nil,
			want: []string{},
		},
		{
			name: "flag value pairs in encounter order",
			list: Passthru{
				{Flag: "--host", Value: "localhost", HasValue: true},
				{Flag: "--port", Value: "27017", HasValue: true},
			},
			want: []string{"--host", "localhost", "--port", "27017"},
		},
		{
			name: "bare flag between pairs",
			list: Passthru{
				{Flag: "--db", Value: "events", HasValue: true},
				{Flag: "--forceTableScan"},
				{Flag: "--out", Value: "dump", HasValue: true},
			},
			want: []string{"--db", "events", "--forceTableScan", "--out", "dump"},
		},
		{
			name: "repeated flags all forward",
			list: Passthru{
				{Flag: "--host", Value: "a", HasValue: true},
				{Flag: "--host", Value: "b", HasValue: true},
			},
			want: []string{"--host", "a", "--host", "b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, tc.list.Args()); diff != "" {
				t.Errorf("Args() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPassthruHas(t *testing.T) {
	t.Parallel()

	list := Passthru{
		{Flag: "--host", Value: "localhost", HasValue: true},
		{Flag: "--forceTableScan"},
	}

	if !list.Has("--host") {
		t.Error("Has(--host) = false, want true")
	}

	if !list.Has("--forceTableScan") {
		t.Error("Has(--forceTableScan) = false, want true")
	}

	if list.Has("--port") {
		t.Error("Has(--port) = true, want false")
	}
}
