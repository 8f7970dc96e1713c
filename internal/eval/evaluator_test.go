package eval_test

import (
	"errors"
	"math"
	"testing"

	jolterrors "jolt/internal/errors"
	"jolt/internal/eval"
)

func emit(t *testing.T, ev *eval.Evaluator, src string) []eval.Result {
	t.Helper()
	results, err := ev.EmitSource(src)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", src, err)
	}
	return results
}

// outputs returns what a file runner would print for src.
func outputs(t *testing.T, ev *eval.Evaluator, src string) []string {
	t.Helper()
	var out []string
	for _, r := range emit(t, ev, src) {
		if r.IsOutput() {
			out = append(out, r.Value.String())
		}
	}
	return out
}

func assertStrings(t *testing.T, src string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%q: expected %q, got %q", src, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: result %d: expected %q, got %q", src, i, want[i], got[i])
		}
	}
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"precedence", "out (2 + 3 * 4);", []string{"14"}},
		{"grouping", "out (2 + 3) * 4;", []string{"20"}},
		{"subtraction", "out 10 - 4 - 3;", []string{"3"}},
		{"division", "out 7 / 2;", []string{"3.5"}},
		{"division by zero", "out 1 / 0;", []string{"Infinity"}},
		{"decimals", "out 0.1 + 0.2;", []string{"0.30000000000000004"}},
		{"compound assignment", "x = 5; x += 3; out x;", []string{"8"}},
		{"compound chain", "x = 5; x += 3; out x; x -= 10; out x;", []string{"8", "-2"}},
		{"multiply and divide assign", "x = 6; x *= 2; x /= 3; out x;", []string{"4"}},
		{"compound on undefined sets", "y += 4; out y;", []string{"4"}},
		{"compound on undefined value sets", "z = q; z += 2; out z;", []string{"2"}},
		{"reassignment changes type", `v = 1; v = "one"; out type v;`, []string{"string"}},
		{"concatenation", `out ("a" + "b");`, []string{"ab"}},
		{"string append", `s = "a"; s += "b"; out s;`, []string{"ab"}},
		{"mixed plus", `out "n" + 1; out 2 + "n";`, []string{"n1", "2n"}},
		{"mixed plus assign", `s = "v"; s += 2; out s;`, []string{"v2"}},
		{"mixed minus", `out "a" - 1;`, []string{"undefined"}},
		{"mixed multiply", `out "a" * 2;`, []string{"undefined"}},
		{"string divide", `out "a" / "b";`, []string{"undefined"}},
		{"string minus assign", `s = "a"; s -= 1; out type s;`, []string{"undefined"}},
		{"undefined variable", "out nope;", []string{"undefined"}},
		{"undefined arithmetic", "out nope + 1;", []string{"undefined"}},
		{"comparisons", "out 1 > 2; out 2 == 2; out 2 == 3; out 1 < 2;", []string{"false", "true", "false", "true"}},
		{"less than swallowed by a later greater than", "out 1 < 2; out 3 > 4;", []string{"1"}},
		{"string comparison", `out "a" == "a"; out ("b" > "a");`, []string{"true", "true"}},
		{"mixed equality", `out 1 == "1"; out 1 == "one";`, []string{"true", "false"}},
		{"boolean equality", "out (1 == 1) == 1; out (1 == 2) == 0;", []string{"true", "true"}},
		{"numeric string ordering", `out 2 > "1"; out "12" > 3;`, []string{"true", "true"}},
		{"string ordering is lexicographic", `out "10" > "9";`, []string{"false"}},
		{"non-numeric string ordering", `out 1 > "a"; out "a" > 1;`, []string{"false", "false"}},
		{"undefined comparisons", "out nope == nope; out nope == 0; out nope > 0;", []string{"true", "false", "false"}},
		{"if on a mixed comparison", `if 2 > "1" { out "taken"; }`, []string{"taken"}},
		{"ternary true", `out (1 < 2 ? "yes" : "no");`, []string{"yes"}},
		{"ternary false", `out (2 == 3 ? "yes" : "no");`, []string{"no"}},
		{"ternary truthiness", `out 0 ? "t" : "f"; out "" ? "t" : "f"; out "x" ? "t" : "f";`, []string{"f", "f", "t"}},
		{"type number", "out type 5;", []string{"number"}},
		{"type string", `out type "a";`, []string{"string"}},
		{"type boolean", "out type (1 == 1);", []string{"boolean"}},
		{"type undefined", "out type nope;", []string{"undefined"}},
		{"type of type", "out type (type 1);", []string{"string"}},
		{"if taken", `x = 1; if (x == 1) { out "hit"; x = 2; } out x;`, []string{"hit", "2"}},
		{"if not taken", `x = 1; if (x == 2) { out "hit"; x = 2; } out x;`, []string{"1"}},
		{"nested if", `if 1 { out "a"; if 2 { out "b"; } out "c"; }`, []string{"a", "b", "c"}},
		{"nested if not taken", `if 1 { out "a"; if 0 { out "b"; } out "c"; }`, []string{"a", "c"}},
		{"comments", `<header> out 1; <between> out 2;`, []string{"1", "2"}},
		{"chained assignment stores nothing", "a = b = 3; out a; out b;", []string{"undefined", "undefined"}},
		{"assigning an output", "x = out 5; out x;", []string{"5"}},
		{"out of a statement", "out if 1 { x = 1; } out x;", []string{"undefined", "undefined"}},
		{"large number", "out 1000000 * 1000000 * 1000000 * 1000;", []string{"1e+21"}},
		{"integral result", "out 2.5 * 2;", []string{"5"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := outputs(t, eval.New(nil), test.src)
			assertStrings(t, test.src, got, test.want)
		})
	}
}

func TestTernaryShortCircuit(t *testing.T) {
	ev := eval.New(nil)
	assertStrings(t, "false branch", outputs(t, ev, `y = 0; out (1 < 2 ? "yes" : (y = 5)); out y;`), []string{"yes", "0"})
	assertStrings(t, "true branch", outputs(t, ev, `out (1 > 2 ? (y = 7) : "no"); out y;`), []string{"no", "0"})
	assertStrings(t, "taken branch", outputs(t, ev, `z = (1 > 2 ? "x" : (y = 9)); out y; out type z;`), []string{"9", "undefined"})
}

func TestFalseIfHasNoSideEffects(t *testing.T) {
	ev := eval.New(nil)
	results := emit(t, ev, `x = 1; if (x > 5) { out "hit"; x = 2; }`)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
	v, err := ev.Env().Resolve("x")
	if err != nil || v != eval.Number(1) {
		t.Errorf("expected x to stay 1, got %v (%v)", v, err)
	}
}

func TestResultKinds(t *testing.T) {
	ev := eval.New(nil)
	results := emit(t, ev, `x = 2; x; out x; <c> if 1 { x + 1; out "in"; }`)
	want := []struct {
		kind  eval.ResultKind
		value string
	}{
		{eval.Plain, "2"},
		{eval.Displayable, "2"},
		{eval.Plain, "3"},
		{eval.Displayable, "in"},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %v", len(want), len(results), results)
	}
	for i, w := range want {
		if results[i].Kind != w.kind || results[i].String() != w.value {
			t.Errorf("result %d: expected %s %q, got %s %q", i, w.kind, w.value, results[i].Kind, results[i].String())
		}
	}
}

func TestStatementResults(t *testing.T) {
	ev := eval.New(nil)
	results := emit(t, ev, "if 1 { if 1 { out 1; } x = 1; out 2; }")
	if len(results) != 2 {
		t.Fatalf("expected flattened results, got %v", results)
	}
	for _, r := range results {
		if r.Kind == eval.Buffered {
			t.Errorf("unexpected nested buffer %v", r)
		}
	}
}

func TestExtraSeparatorsProduceNothing(t *testing.T) {
	ev := eval.New(nil)
	for _, src := range []string{"x = 1;;", ";", "if 1 { x = 2;; }"} {
		if results := emit(t, ev, src); len(results) != 0 {
			t.Errorf("%q: expected no results, got %v", src, results)
		}
	}
	assertStrings(t, "after separators", outputs(t, ev, ";; out x;;"), []string{"2"})
}

func TestIdempotence(t *testing.T) {
	shared := eval.New(nil)
	for i := 0; i < 5; i++ {
		assertStrings(t, "shared", outputs(t, shared, "out 2 + 2;"), []string{"4"})
		assertStrings(t, "fresh", outputs(t, eval.New(nil), "out 2 + 2;"), []string{"4"})
	}
	if shared.Env().Len() != 0 {
		t.Errorf("expected no variables, got %v", shared.Env().Names())
	}
}

func TestStatePersistsAcrossUnits(t *testing.T) {
	ev := eval.New(nil)
	emit(t, ev, "x = 5;")
	emit(t, ev, "x += 3;")
	assertStrings(t, "persist", outputs(t, ev, "out x;"), []string{"8"})
}

func TestSessionsAreIndependent(t *testing.T) {
	a, b := eval.New(nil), eval.New(nil)
	emit(t, a, "x = 1;")
	assertStrings(t, "other session", outputs(t, b, "out x;"), []string{"undefined"})
}

func TestSyntaxErrorLeavesStateUntouched(t *testing.T) {
	ev := eval.New(nil)
	emit(t, ev, "x = 1;")
	results, err := ev.EmitSource("x = 2; out (x;")
	if err == nil {
		t.Fatalf("expected a syntax error, got %v", results)
	}
	if !jolterrors.IsSyntax(err) {
		t.Errorf("expected a syntax error, got %T", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %v", results)
	}
	assertStrings(t, "after error", outputs(t, ev, "out x;"), []string{"1"})
}

func TestEmitFile(t *testing.T) {
	_, err := eval.New(nil).EmitFile("out @;", "bad.jolt")
	var je *jolterrors.JoltError
	if !errors.As(err, &je) || je.Location.File != "bad.jolt" {
		t.Errorf("expected a located syntax error, got %v", err)
	}
}

func TestInjectedEnvironment(t *testing.T) {
	env := eval.NewEnvironment()
	env.Define("greeting", eval.String("hi"))
	assertStrings(t, "env", outputs(t, eval.New(env), `out greeting + "!";`), []string{"hi!"})
	if _, err := env.Resolve("missing"); !errors.Is(err, eval.ErrNotDefined) {
		t.Errorf("expected ErrNotDefined, got %v", err)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value eval.Value
		want  bool
	}{
		{eval.Bool(true), true},
		{eval.Bool(false), false},
		{eval.Number(1), true},
		{eval.Number(0), false},
		{eval.Number(math.NaN()), false},
		{eval.String("a"), true},
		{eval.String(""), false},
		{eval.Undefined{}, false},
	}
	for _, test := range tests {
		if got := eval.Truthy(test.value); got != test.want {
			t.Errorf("Truthy(%#v): expected %v, got %v", test.value, test.want, got)
		}
	}
}
