// Package script implements §4.N: a sandboxed, user-editable post-analysis
// stage run over parsed booklet text. Each of the eleven documented
// functions is a small Go source fragment — a top-level `var Run = func(...)
// ...` — interpreted by a fresh `github.com/traefik/yaegi` instance per
// call, given a compiled regex registry and the handful of domain value
// types (RegexMap, Betrag, RechteArt, SchuldenArt, Spalte1Eintrag) a script
// may return. Results are memoised under a content hash of the script
// source, the regex sources, and the call's arguments, so a deterministic
// re-run of an unedited script never re-interprets anything. A script that
// fails to compile or returns the wrong shape becomes a *Fehler, which
// callers surface as a per-entry Warnung rather than a fatal error.
package script

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
)

// Fehler wraps a script execution or result-shape failure, tagged with the
// function name it occurred in (§4.N: "a failing script returns a
// structured error that is surfaced as a per-entry warning").
type Fehler struct {
	Funktion string
	Ursache  error
}

func (e *Fehler) Error() string {
	return "script " + e.Funktion + ": " + e.Ursache.Error()
}
func (e *Fehler) Unwrap() error { return e.Ursache }

func fehler(funktion string, ursache error) *Fehler {
	return &Fehler{Funktion: funktion, Ursache: ursache}
}

// gbxscriptSymbols is the host binding surface exposed to every script as
// `import "gbxscript"`, mirroring original_source/src/python.rs's fixed set
// of Python builtins (re/Regex wrapper/domain dataclasses) bound before a
// script runs.
var gbxscriptSymbols = interp.Exports{
	"gbxscript/gbxscript": map[string]reflect.Value{
		"RegexMap":       reflect.ValueOf((*RegexMap)(nil)),
		"Betrag":         reflect.ValueOf((*model.Betrag)(nil)),
		"RechteArt":      reflect.ValueOf((*model.RechteArt)(nil)),
		"SchuldenArt":    reflect.ValueOf((*model.SchuldenArt)(nil)),
		"Spalte1Eintrag": reflect.ValueOf((*model.Spalte1Eintrag)(nil)),
		"Waehrung":       reflect.ValueOf((*model.Waehrung)(nil)),
	},
}

// eval interprets source in a fresh sandbox preloaded with the Go standard
// library and the gbxscript host package, then returns its exported Run
// symbol ready to be called by reflection.
func eval(source string) (reflect.Value, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return reflect.Value{}, errors.Wrap(err, "load stdlib symbols")
	}
	if err := i.Use(gbxscriptSymbols); err != nil {
		return reflect.Value{}, errors.Wrap(err, "load gbxscript symbols")
	}
	if _, err := i.Eval(`import "gbxscript"`); err != nil {
		return reflect.Value{}, errors.Wrap(err, "import gbxscript")
	}
	if _, err := i.Eval(source); err != nil {
		return reflect.Value{}, errors.Wrap(err, "compile script")
	}
	run, err := i.Eval("Run")
	if err != nil {
		return reflect.Value{}, errors.Wrap(err, "script does not export Run")
	}
	if run.Kind() != reflect.Func {
		return reflect.Value{}, errors.New("Run is not a function")
	}
	return run, nil
}

// call evaluates source and invokes its Run function with args, returning
// the single result value Run produced.
func call(source string, args ...interface{}) (reflect.Value, error) {
	run, err := eval(source)
	if err != nil {
		return reflect.Value{}, err
	}
	in := make([]reflect.Value, len(args))
	for idx, a := range args {
		in[idx] = reflect.ValueOf(a)
	}
	out := run.Call(in)
	if len(out) == 0 {
		return reflect.Value{}, errors.New("Run returned no value")
	}
	return out[0], nil
}
