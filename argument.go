package virtopt

import (
	"fmt"
)

// Argument is the static descriptor for one recognized sub-option, like
// path= for --disk or mac= for --network. It is immutable once its
// Family has been registered.
//
// Name is a literal canonical name or a pattern with '#' numeric index
// placeholders ("cell#.id"). Prop is the dot-separated attribute path
// the option maps to on the (resolved) target entity. When Convert is
// set it runs instead of the direct assignment; Prop is then still used
// for the default match-mode equality test, so an Argument without Prop
// must make its match behavior explicit via WithLookup or NoLookup.
type Argument struct {
	Name        string
	Prop        string
	Convert     ConvertFunc
	Lookup      LookupFunc
	Resolve     ResolveFunc
	Aliases     []string
	CanComma    bool
	IsOnOff     bool
	SkipDefault bool

	noLookup  bool
	lookupSet bool
	patterns  []*namePattern
}

// NewArg describes one sub-option. name and prop mirror the most common
// case; everything else is supplied through option functions.
func NewArg(name, prop string, configs ...ConfigureArgumentFunc) *Argument {
	arg := &Argument{Name: name, Prop: prop}
	for _, config := range configs {
		config(arg, nil)
	}

	return arg
}

// compile validates the registration invariants and builds the name
// patterns for the canonical name and all aliases.
func (a *Argument) compile() error {
	if a.Name == "" {
		return fmt.Errorf("%w: empty option name", ErrBadArgument)
	}
	if a.Prop == "" && a.Convert == nil {
		return fmt.Errorf("%w: %s: prop or convert callback must be specified",
			ErrBadArgument, a.Name)
	}
	if a.Prop == "" && !a.lookupSet {
		// Even with a convert callback, Prop is still what match mode
		// compares against. An argument without one must spell out its
		// match behavior: WithLookup for a custom test, NoLookup to
		// document that no equality test exists.
		return fmt.Errorf("%w: %s: prop is empty but no lookup behavior was specified",
			ErrBadArgument, a.Name)
	}

	a.patterns = make([]*namePattern, 0, 1+len(a.Aliases))
	a.patterns = append(a.patterns, compilePattern(a.Name))
	for _, alias := range a.Aliases {
		a.patterns = append(a.patterns, compilePattern(alias))
	}

	return nil
}

// matchName reports whether cliname addresses this argument, either by
// canonical name or alias, and returns the extracted pattern indices.
func (a *Argument) matchName(cliname string) ([]int, bool) {
	for _, p := range a.patterns {
		if indices, ok := p.match(cliname); ok {
			return indices, true
		}
	}

	return nil, false
}

func (a *Argument) overlapsWith(other *Argument) bool {
	for _, p := range a.patterns {
		for _, o := range other.patterns {
			if p.overlaps(o) {
				return true
			}
		}
	}

	return false
}
