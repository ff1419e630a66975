package dump

// Token is one pass-through record forwarded verbatim to the dump tool:
// either a flag with its value or a bare flag.
type Token struct {
	Flag     string
	Value    string
	HasValue bool
}

// Passthru is the ordered pass-through list. Records accumulate in encounter
// order; repeated flags are forwarded as-is, never deduplicated.
type Passthru []Token

// ConnectionFlags are the value-taking options forwarded to the dump tool,
// in the canonical order used for config-supplied defaults.
var ConnectionFlags = []string{
	"host",
	"port",
	"username",
	"password",
	"db",
	"collection",
	"out",
}

// Args flattens the records into command-line tokens.
func (p Passthru) Args() []string {
	args := make([]string, 0, 2*len(p))

	for _, t := range p {
		args = append(args, t.Flag)
		if t.HasValue {
			args = append(args, t.Value)
		}
	}

	return args
}

// Has reports whether any record carries the given flag.
func (p Passthru) Has(flag string) bool {
	for _, t := range p {
		if t.Flag == flag {
			return true
		}
	}

	return false
}
