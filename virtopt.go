package virtopt

import (
	"fmt"
)

// Parser binds one raw compound option string against one registered
// family. A Parser is built per option string, used for a single Parse
// or Match call, and discarded; it holds no state beyond that call.
type Parser struct {
	family *Family
	optstr string
	dict   *OptDict
	graph  Target
}

// NewParser tokenizes optstr against the named family's descriptor
// table. Tokenization and mapping problems (bad quoting) surface here;
// unknown option names are deferred to Parse/Match so they can all be
// reported together.
func NewParser(familyName, optstr string) (*Parser, error) {
	f, ok := LookupFamily(familyName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
	}

	p := &Parser{family: f, optstr: optstr}
	dict, err := buildOptDict(f, optstr)
	if err != nil {
		return nil, p.wrap(err)
	}
	p.dict = dict

	return p, nil
}

// Optstr returns the raw option string the parser was built from.
func (p *Parser) Optstr() string {
	return p.optstr
}

// Graph returns the root graph object of the current Parse call, for
// conversion callbacks that need context beyond the resolved entity.
func (p *Parser) Graph() Target {
	return p.graph
}

// Describe lists the family's canonical sub-option names in the stable
// help ordering: clearxml first, address.* last, the rest sorted.
func (p *Parser) Describe() []string {
	return p.family.Describe()
}

// Parse runs construct mode: it binds the option string onto an entity
// and returns the entities it touched. Pass inst to edit an existing
// entity in place; with inst nil the family's Prop on graph decides:
// a repeating collection gets a new child created and attached, a
// singleton is edited in place, and a family without Prop binds directly
// onto graph.
//
// An empty option string, or "none" for StubNone families, is a no-op
// returning no entities. On failure the graph may be partially mutated;
// callers abort the surrounding operation.
func (p *Parser) Parse(graph, inst Target) ([]Target, error) {
	if p.optstr == "" {
		return nil, nil
	}
	if p.family.StubNone && p.optstr == "none" {
		return nil, nil
	}

	p.graph = graph
	if p.family.Prop != "" && inst == nil {
		resolved, err := p.newOrSingletonInst(graph)
		if err != nil {
			return nil, p.wrap(err)
		}
		inst = resolved
	}
	if inst == nil {
		inst = graph
	}

	if p.family.PreProcess != nil {
		if err := p.family.PreProcess(p, p.dict); err != nil {
			return nil, p.wrap(err)
		}
	}

	working := p.dict.copy()
	bound, err := p.claimBoundArgs(working)
	if err != nil {
		return nil, p.wrap(err)
	}
	for _, b := range bound {
		if err := p.parseParam(b, inst); err != nil {
			return nil, p.wrap(err)
		}
	}
	if err := p.checkLeftovers(working); err != nil {
		return nil, p.wrap(err)
	}

	return []Target{inst}, nil
}

// newOrSingletonInst resolves the family Prop on the graph: a ChildList
// means the family backs a repeating collection and every Parse creates
// and attaches a fresh child; anything else is a singleton edited in
// place.
func (p *Parser) newOrSingletonInst(graph Target) (Target, error) {
	val, err := getPropPath(graph, p.family.Prop)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case ChildList:
		return v.AppendNew(), nil
	case Target:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: family prop %s resolves to neither child list nor target",
			ErrAttrResolution, p.family.Prop)
	}
}

// Match runs match mode: it tests each candidate against every criterion
// in the option string and returns the candidates satisfying all of
// them. Nothing is created or mutated.
func (p *Parser) Match(candidates []Target) ([]Target, error) {
	var matched []Target
	for _, inst := range candidates {
		working := p.dict.copy()
		bound, err := p.claimBoundArgs(working)
		if err != nil {
			return nil, p.wrap(err)
		}

		valid := true
		for _, b := range bound {
			ok, err := p.lookupParam(b, inst)
			if err != nil {
				return nil, p.wrap(err)
			}
			if !ok {
				valid = false
				break
			}
		}
		if err := p.checkLeftovers(working); err != nil {
			return nil, p.wrap(err)
		}
		if valid {
			matched = append(matched, inst)
		}
	}

	return matched, nil
}

// MatchChildren resolves the family's backing collection on the graph
// and matches against its members, the --edit device lookup workflow.
func (p *Parser) MatchChildren(graph Target) ([]Target, error) {
	if p.family.Prop == "" {
		return nil, p.wrap(fmt.Errorf("%w: family %s has no backing prop",
			ErrNoMatchRule, p.family.Name))
	}

	p.graph = graph
	val, err := getPropPath(graph, p.family.Prop)
	if err != nil {
		return nil, p.wrap(err)
	}

	var candidates []Target
	switch v := val.(type) {
	case ChildList:
		for i := 0; i < v.Len(); i++ {
			candidates = append(candidates, v.At(i))
		}
	case Target:
		candidates = []Target{v}
	}

	return p.Match(candidates)
}

func (p *Parser) wrap(err error) error {
	return &ParseError{Flag: p.family.FlagName(), Optstr: p.optstr, Err: err}
}
