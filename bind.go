package virtopt

import (
	"fmt"
	"strings"
)

// BoundArg combines a static Argument descriptor with the actual
// key/value pair given on the command line.
//
// Val holds the normalized value: string, bool (after on/off
// normalization), []string (after per-family aggregation), or nil when
// the user passed an explicit empty value to clear the attribute.
type BoundArg struct {
	Key string
	Val any
	Arg *Argument

	indices []int
}

// Index returns the numeric index extracted from the option name for the
// pattern placeholder at pos, e.g. 3 for "cell3.id". A placeholder with
// no digits ("cell.id") yields 0.
func (b *BoundArg) Index(pos int) int {
	if pos < len(b.indices) {
		return b.indices[pos]
	}

	return 0
}

func newBoundArg(arg *Argument, key string, val OptValue, indices []int) (*BoundArg, error) {
	if !val.HasValue {
		// --disk bus=virtio,readonly is an error: readonly got no value.
		// Distinct from readonly=, which is an explicit unset.
		return nil, fmt.Errorf("%w: option %q", ErrNoValue, key)
	}

	b := &BoundArg{Key: key, Arg: arg, indices: indices}
	switch {
	case val.List != nil:
		b.Val = val.List
	case val.Raw == "":
		b.Val = nil
	default:
		b.Val = val.Raw
	}

	if arg.IsOnOff && b.Val != nil {
		s, ok := b.Val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not take a list value", ErrConversion, key)
		}
		on, err := onOffToBool(key, s)
		if err != nil {
			return nil, err
		}
		b.Val = on
	}

	return b, nil
}

var (
	onValues  = []string{"y", "yes", "1", "true", "t", "on"}
	offValues = []string{"n", "no", "0", "false", "f", "off"}
)

func onOffToBool(key, val string) (bool, error) {
	lowered := strings.ToLower(val)
	for _, v := range onValues {
		if lowered == v {
			return true, nil
		}
	}
	for _, v := range offValues {
		if lowered == v {
			return false, nil
		}
	}

	return false, fmt.Errorf("%w: %s must be 'yes' or 'no', got %q", ErrConversion, key, val)
}

// claimBoundArgs walks the family descriptors in registration order and
// claims every mapping entry whose key they match, removing claimed keys
// from the dict. Iteration in descriptor order (not mapping order) lets
// a family place dependent descriptors after the ones they rely on.
func (p *Parser) claimBoundArgs(dict *OptDict) ([]*BoundArg, error) {
	var bound []*BoundArg
	for _, arg := range p.family.args {
		for _, key := range dict.Keys() {
			indices, ok := arg.matchName(key)
			if !ok {
				continue
			}
			val, _ := dict.Pop(key)
			b, err := newBoundArg(arg, key, val, indices)
			if err != nil {
				return nil, err
			}
			bound = append(bound, b)
		}
	}

	return bound, nil
}

// checkLeftovers reports every mapping key no descriptor claimed, all at
// once rather than just the first.
func (p *Parser) checkLeftovers(dict *OptDict) error {
	if dict.Len() == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(dict.Keys(), ", "))
}

// parseParam applies one bound argument to the target entity in
// construct mode.
func (p *Parser) parseParam(b *BoundArg, target Target) error {
	if s, ok := b.Val.(string); ok && s == "default" && b.Arg.SkipDefault {
		return nil
	}

	inst := target
	if b.Arg.Resolve != nil {
		resolved, err := b.Arg.Resolve(p, target, b, true)
		if err != nil {
			return err
		}
		inst = resolved
	}

	// Verify the attribute path up front so a registry typo fails loudly
	// instead of vanishing inside a convert callback.
	if b.Arg.Prop != "" {
		if _, err := getPropPath(inst, b.Arg.Prop); err != nil {
			return err
		}
	}

	if b.Arg.Convert != nil {
		return b.Arg.Convert(p, inst, b.Val, b)
	}

	return setPropPath(inst, b.Arg.Prop, b.Val)
}

// lookupParam tests one bound argument against a candidate entity in
// match mode, reporting whether the candidate still qualifies.
func (p *Parser) lookupParam(b *BoundArg, target Target) (bool, error) {
	if b.Arg.noLookup {
		return false, fmt.Errorf("%w: option %q is write-only", ErrNoMatchRule, b.Key)
	}
	if b.Arg.Prop == "" && b.Arg.Lookup == nil {
		return false, fmt.Errorf("%w: property %q", ErrNoMatchRule, b.Key)
	}

	inst := target
	if b.Arg.Resolve != nil {
		resolved, err := b.Arg.Resolve(p, target, b, false)
		if err != nil {
			return false, err
		}
		if resolved == nil {
			return false, nil
		}
		inst = resolved
	}

	if b.Arg.Lookup != nil {
		return b.Arg.Lookup(p, inst, b.Val, b)
	}

	current, err := getPropPath(inst, b.Arg.Prop)
	if err != nil {
		return false, err
	}

	return boundValueEqual(current, b.Val), nil
}

func boundValueEqual(current, val any) bool {
	switch v := val.(type) {
	case nil:
		return current == nil
	case string:
		c, ok := current.(string)
		return ok && c == v
	case bool:
		c, ok := current.(bool)
		return ok && c == v
	case []string:
		c, ok := current.([]string)
		if !ok || len(c) != len(v) {
			return false
		}
		for i := range v {
			if c[i] != v[i] {
				return false
			}
		}
		return true
	default:
		return current == val
	}
}
