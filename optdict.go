package virtopt

import (
	"fmt"

	"github.com/ef-ds/deque/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/coreyberla/virtopt/parse"
)

// OptValue is one entry of the option mapping. HasValue false means the
// name appeared with no '=' at all, which is an error for any descriptor
// that takes a value; Raw "" with HasValue true is an intentional
// unset/default signal. List is populated when a family PreProcess hook
// aggregated repeated names into a list value.
type OptValue struct {
	Raw      string
	HasValue bool
	List     []string
}

// OptDict is the ordered mapping from canonical option name to raw
// value, built once per parse. Later writes to the same name overwrite
// the earlier value but keep its position.
type OptDict struct {
	om *orderedmap.OrderedMap[string, OptValue]
}

func newOptDict() *OptDict {
	return &OptDict{om: orderedmap.New[string, OptValue]()}
}

// Get returns the value stored under key.
func (d *OptDict) Get(key string) (OptValue, bool) {
	return d.om.Get(key)
}

// Set stores a value under key, overwriting any previous value.
func (d *OptDict) Set(key string, val OptValue) {
	d.om.Set(key, val)
}

// SetRaw stores a plain string value under key.
func (d *OptDict) SetRaw(key, raw string) {
	d.om.Set(key, OptValue{Raw: raw, HasValue: true})
}

// SetList stores an aggregated list value under key.
func (d *OptDict) SetList(key string, list []string) {
	d.om.Set(key, OptValue{HasValue: true, List: list})
}

// Pop removes and returns the value stored under key.
func (d *OptDict) Pop(key string) (OptValue, bool) {
	return d.om.Delete(key)
}

// Len returns the number of entries.
func (d *OptDict) Len() int {
	return d.om.Len()
}

// Keys returns the keys in insertion order.
func (d *OptDict) Keys() []string {
	keys := make([]string, 0, d.om.Len())
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

func (d *OptDict) copy() *OptDict {
	cp := newOptDict()
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		cp.om.Set(pair.Key, pair.Value)
	}

	return cp
}

// buildOptDict tokenizes the raw option string and folds the tuples into
// the ordered mapping with respect to the family's descriptors:
// positional-name substitution, comma-continuation absorption, and
// verbatim pass-through of unknown names (reported later, at bind stage,
// so all of them surface together).
func buildOptDict(f *Family, optstr string) (*OptDict, error) {
	tuples, err := parse.OptionTuples(optstr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOption, err)
	}

	// Splice the RemoveFirst positional names onto leading bare words.
	positionals := deque.New[string]()
	for _, name := range f.RemoveFirst {
		positionals.PushBack(name)
	}
	for i := range tuples {
		if tuples[i].HasValue || positionals.Len() == 0 {
			break
		}
		name, _ := positionals.PopFront()
		tuples[i] = parse.Tuple{Name: name, Value: tuples[i].Name, HasValue: true}
	}

	stream := deque.New[parse.Tuple]()
	for _, t := range tuples {
		stream.PushBack(t)
	}

	dict := newOptDict()
	for stream.Len() > 0 {
		t, _ := stream.PopFront()
		arg, _ := f.lookupArg(t.Name)
		if arg == nil {
			dict.Set(t.Name, OptValue{Raw: t.Value, HasValue: t.HasValue})
			continue
		}

		if arg.CanComma {
			t = absorbCommaValue(f, t, stream)
		}

		dict.Set(t.Name, OptValue{Raw: t.Value, HasValue: t.HasValue})
	}

	return dict, nil
}

// absorbCommaValue re-joins tokens the tokenizer split apart because the
// option's value legitimately contains commas. Tokens are consumed until
// one matches another known descriptor name.
func absorbCommaValue(f *Family, t parse.Tuple, stream *deque.Deque[parse.Tuple]) parse.Tuple {
	for stream.Len() > 0 {
		next, _ := stream.Front()
		if arg, _ := f.lookupArg(next.Name); arg != nil {
			break
		}

		stream.PopFront()
		t.Value += "," + next.Name
		if next.HasValue && next.Value != "" {
			t.Value += "=" + next.Value
		}
		t.HasValue = true
	}

	return t
}
