package virtopt

import (
	"fmt"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Family is the ordered descriptor table for one option family, i.e. all
// recognized sub-options of one command-line flag.
//
// Prop is the dot-separated path on the root graph object that backs the
// family; when it resolves to a ChildList, Parse creates and attaches a
// new child per invocation. RemoveFirst names leading positional values:
// RemoveFirst ["path"] turns "--disk /tmp/x,size=5" into path=/tmp/x.
// StubNone makes the literal option string "none" a no-op so callers can
// suppress a default entity.
type Family struct {
	Name        string
	Prop        string
	RemoveFirst []string
	StubNone    bool
	PreProcess  PreProcessFunc

	args []*Argument
	err  error
}

// NewFamily starts a family definition. Descriptors are added with
// AddArg and the result handed to Register.
func NewFamily(name string, configs ...ConfigureFamilyFunc) *Family {
	f := &Family{Name: name, StubNone: true}
	for _, config := range configs {
		config(f, &f.err)
	}

	return f
}

// AddArg appends a descriptor to the family. Registration order is
// binding order, which matters when a descriptor must run after its
// siblings. The first definition error is kept and reported by Register.
func (f *Family) AddArg(name, prop string, configs ...ConfigureArgumentFunc) *Family {
	if f.err != nil {
		return f
	}

	arg := NewArg(name, prop, configs...)
	if err := arg.compile(); err != nil {
		f.err = err
		return f
	}
	for _, existing := range f.args {
		if existing.overlapsWith(arg) {
			f.err = fmt.Errorf("%w: %s: name %q overlaps with %q",
				ErrBadArgument, f.Name, arg.Name, existing.Name)
			return f
		}
	}

	f.args = append(f.args, arg)

	return f
}

// FlagName renders the user-facing flag, e.g. "--qemu-commandline" for
// the qemu_commandline family.
func (f *Family) FlagName() string {
	return "--" + strings.ReplaceAll(f.Name, "_", "-")
}

func (f *Family) lookupArg(cliname string) (*Argument, []int) {
	for _, arg := range f.args {
		if indices, ok := arg.matchName(cliname); ok {
			return arg, indices
		}
	}

	return nil, nil
}

// Describe returns the canonical sub-option names with the stable help
// ordering: clearxml first, address.* last, the rest sorted.
func (f *Family) Describe() []string {
	var first, middle, last []string
	for _, arg := range f.args {
		switch {
		case arg.Name == clearXMLName:
			first = append(first, arg.Name)
		case strings.HasPrefix(arg.Name, "address."):
			last = append(last, arg.Name)
		default:
			middle = append(middle, arg.Name)
		}
	}
	sort.Strings(middle)
	sort.Strings(last)

	return append(append(first, middle...), last...)
}

const clearXMLName = "clearxml"

// clearXMLArg builds the implicit leading descriptor every Prop-backed
// family gets: clearxml=yes resets the resolved entity before the other
// options apply. A stub is left in place when other options accompany it
// in the same string, so edits land on the fresh entity instead of a
// new trailing one.
func clearXMLArg() *Argument {
	return NewArg(clearXMLName, "",
		SetOnOff(true),
		NoLookup(),
		WithConvert(func(p *Parser, target Target, val any, arg *BoundArg) error {
			if val != true {
				return nil
			}
			c, ok := target.(Clearer)
			if !ok {
				return fmt.Errorf("%w: don't know how to clearxml %s",
					ErrBadArgument, p.family.FlagName())
			}
			c.ClearProps(strings.Contains(p.optstr, ","))

			return nil
		}))
}

var families = orderedmap.New[string, *Family]()

// Register adds a family to the process-wide registry. It is meant to be
// called once per family at startup, before any parsing; re-registering
// the same family name is a no-op. Definition errors accumulated by
// AddArg are surfaced here.
func Register(f *Family) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := families.Get(f.Name); exists {
		return nil
	}

	if f.Prop != "" {
		arg := clearXMLArg()
		if err := arg.compile(); err != nil {
			return err
		}
		f.args = append([]*Argument{arg}, f.args...)
	}
	families.Set(f.Name, f)

	return nil
}

// LookupFamily returns a registered family by name.
func LookupFamily(name string) (*Family, bool) {
	return families.Get(name)
}

// Families lists the registered family names in registration order.
func Families() []string {
	names := make([]string, 0, families.Len())
	for pair := families.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}
