package virtopt

import (
	"fmt"
	"strings"
)

// Target is the capability interface entity types implement so the
// engine can navigate and mutate them without reflection. GetProp
// returns the current value of a property; intermediate path segments
// must return a value that is itself a Target. SetProp assigns a bound
// value: string, bool, []string, or nil to clear.
type Target interface {
	GetProp(name string) (any, error)
	SetProp(name string, val any) error
}

// ChildList is a repeating child collection on a Target, like the
// seclabels of a disk. AppendNew creates a default entry, attaches it
// and returns it.
type ChildList interface {
	Len() int
	At(i int) Target
	AppendNew() Target
}

// Clearer is implemented by entities that support the clearxml= magic:
// reset all configuration, optionally leaving a stub in place so that
// sibling options in the same option string still apply in place.
type Clearer interface {
	ClearProps(leaveStub bool)
}

// getPropPath walks a dot-separated attribute path over Target values
// and returns the final property value.
func getPropPath(target Target, path string) (any, error) {
	target, last, err := walkPropPath(target, path)
	if err != nil {
		return nil, err
	}

	val, err := target.GetProp(last)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAttrResolution, path, err)
	}

	return val, nil
}

// setPropPath assigns val at the final segment of a dot-separated path.
func setPropPath(target Target, path string, val any) error {
	target, last, err := walkPropPath(target, path)
	if err != nil {
		return err
	}

	if err := target.SetProp(last, val); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAttrResolution, path, err)
	}

	return nil
}

func walkPropPath(target Target, path string) (Target, string, error) {
	segments := strings.Split(path, ".")
	for _, seg := range segments[:len(segments)-1] {
		val, err := target.GetProp(seg)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", ErrAttrResolution, path, err)
		}
		next, ok := val.(Target)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s: segment %q is not navigable",
				ErrAttrResolution, path, seg)
		}
		target = next
	}

	return target, segments[len(segments)-1], nil
}

// ChildResolver builds a ResolveFunc for indexed repeating options. The
// option name's pattern index at indexPos selects an element of the
// ChildList found at listProp on the target. In construct mode the list
// grows with default entries until the index is reachable; in match mode
// an out-of-range index resolves to nil, rejecting the candidate.
//
// For --disk seclabel#.model mapping to disk.seclabels, use
// ChildResolver("seclabels", 0).
func ChildResolver(listProp string, indexPos int) ResolveFunc {
	return func(p *Parser, target Target, arg *BoundArg, canEdit bool) (Target, error) {
		val, err := getPropPath(target, listProp)
		if err != nil {
			return nil, err
		}
		list, ok := val.(ChildList)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a child list", ErrAttrResolution, listProp)
		}

		idx := arg.Index(indexPos)
		if canEdit {
			for list.Len() < idx+1 {
				list.AppendNew()
			}
		}
		if idx >= list.Len() {
			return nil, nil
		}

		return list.At(idx), nil
	}
}

// ChainResolve composes two resolvers: outer locates an intermediate
// entity, inner runs against it. Used for doubly indexed options like
// cell#.distances.sibling#.id.
func ChainResolve(outer, inner ResolveFunc) ResolveFunc {
	return func(p *Parser, target Target, arg *BoundArg, canEdit bool) (Target, error) {
		mid, err := outer(p, target, arg, canEdit)
		if err != nil || mid == nil {
			return nil, err
		}

		return inner(p, mid, arg, canEdit)
	}
}
