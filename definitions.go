// Package virtopt parses compound command-line option strings like
// "path=foo,size=5,bus=virtio" into structured mutations on a target
// configuration graph, and symmetrically matches existing graph nodes
// against the same syntax so they can be located and edited in place.
//
// A Family describes the recognized sub-options of one flag (--disk,
// --network, ...). Families are registered once at startup; a Parser is
// then constructed per raw option string and used for a single Parse or
// Match call.
package virtopt

import (
	"errors"
	"fmt"
)

// ConvertFunc is invoked instead of direct attribute assignment. It
// receives the resolved target entity and the normalized value and may
// perform arbitrary mutation.
type ConvertFunc func(p *Parser, target Target, val any, arg *BoundArg) error

// LookupFunc performs a custom equality test in match mode. It should
// report whether the target still satisfies the given criterion.
type LookupFunc func(p *Parser, target Target, val any, arg *BoundArg) (bool, error)

// ResolveFunc maps the bound argument to the actual sub-entity to
// operate on, typically an element of a repeating child collection
// addressed by an index embedded in the option name (cell3.id). In
// construct mode (canEdit true) the resolver may grow the collection
// until the index is reachable; in match mode it must return nil for an
// out-of-range index so the candidate is rejected without mutation.
type ResolveFunc func(p *Parser, target Target, arg *BoundArg, canEdit bool) (Target, error)

// PreProcessFunc is a per-family hook run on the option mapping before
// construct-mode binding. Families use it for shorthand expansion and
// for aggregating repeated names into list values.
type PreProcessFunc func(p *Parser, dict *OptDict) error

// ConfigureArgumentFunc is used when defining Argument descriptors.
type ConfigureArgumentFunc func(arg *Argument, err *error)

// ConfigureFamilyFunc is used when defining Family options.
type ConfigureFamilyFunc func(f *Family, err *error)

var (
	// ErrMalformedOption indicates bad quoting in the raw option string.
	ErrMalformedOption = errors.New("malformed option string")
	// ErrNoValue indicates a sub-option name was given without any value.
	ErrNoValue = errors.New("option had no value set")
	// ErrUnknownOption reports sub-option names no descriptor claimed.
	ErrUnknownOption = errors.New("unknown options")
	// ErrUnknownFamily indicates the family name was never registered.
	ErrUnknownFamily = errors.New("unknown option family")
	// ErrConversion indicates a value failed boolean or type normalization.
	ErrConversion = errors.New("conversion failed")
	// ErrAttrResolution indicates a descriptor references an attribute
	// path the target does not have. This is a registry defect, never a
	// user input error.
	ErrAttrResolution = errors.New("programming error: attribute path not resolvable")
	// ErrBadArgument indicates an invalid descriptor registration.
	ErrBadArgument = errors.New("programming error: invalid argument registration")
	// ErrNoMatchRule indicates match mode was asked to test a descriptor
	// that has neither an attribute path nor a lookup callback.
	ErrNoMatchRule = errors.New("don't know how to match")
)

// ParseError is the only error kind surfaced to end users by Parse and
// Match. It carries the owning family's flag name and the raw option
// string alongside the underlying cause.
type ParseError struct {
	Flag   string
	Optstr string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Flag, e.Optstr, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
