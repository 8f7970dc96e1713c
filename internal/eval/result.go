package eval

import "strings"

type ResultKind int

const (
	// Suppressed results have nothing to show: assignments, comments and
	// if statements whose condition was false.
	Suppressed ResultKind = iota
	// Plain results come from expression statements. Only the REPL shows
	// them.
	Plain
	// Displayable results come from out statements.
	Displayable
	// Buffered results carry the results of a taken if body.
	Buffered
)

func (k ResultKind) String() string {
	switch k {
	case Suppressed:
		return "suppressed"
	case Plain:
		return "plain"
	case Displayable:
		return "displayable"
	case Buffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// Result is the outcome of evaluating one statement.
type Result struct {
	Kind   ResultKind
	Value  Value
	Buffer []Result
}

var suppressed = Result{Kind: Suppressed}

func plain(v Value) Result {
	return Result{Kind: Plain, Value: v}
}

func displayable(v Value) Result {
	return Result{Kind: Displayable, Value: v}
}

// IsOutput reports whether r was produced by an out statement.
func (r Result) IsOutput() bool {
	return r.Kind == Displayable
}

func (r Result) IsSuppressed() bool {
	return r.Kind == Suppressed
}

// Unwrap returns the carried value, or Undefined for results without one.
func (r Result) Unwrap() Value {
	switch r.Kind {
	case Plain, Displayable:
		if r.Value != nil {
			return r.Value
		}
	}
	return Undefined{}
}

func (r Result) String() string {
	switch r.Kind {
	case Suppressed:
		return ""
	case Buffered:
		parts := make([]string, len(r.Buffer))
		for i := range r.Buffer {
			parts[i] = r.Buffer[i].String()
		}
		return strings.Join(parts, "\n")
	default:
		return r.Unwrap().String()
	}
}
