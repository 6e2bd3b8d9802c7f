package restapi

// Params is an ordered parameter bag. Keys remember the order in which they
// were first set so that serialization is deterministic. A key set to nil is
// present but null: it fails a required check and is omitted on the wire.
//
// The zero value is an empty bag ready to use. Params is not safe for
// concurrent mutation; the pipeline never mutates a caller's bag.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams returns an empty parameter bag.
func NewParams() *Params {
	return &Params{}
}

// Set stores value under key and returns the bag for chaining. Setting an
// existing key replaces its value but keeps its original position.
//
// Supported values are strings, integer and float kinds, bools,
// decimal.Decimal, fmt.Stringer, and slices of those for multi-valued
// parameters. Anything else fails at serialization time with an *EncodeError.
// A slice with no non-nil items is not sent at all and does not satisfy a
// required key.
func (p *Params) Set(key string, value any) *Params {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// SetIf stores value under key only when cond is true. Handy for optional
// parameters whose zero value should not be sent.
func (p *Params) SetIf(cond bool, key string, value any) *Params {
	if cond {
		p.Set(key, value)
	}
	return p
}

// Get returns the value stored under key and whether the key is present.
// A present key may still hold nil.
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present with a value that will be sent: not
// nil, and for a slice, holding at least one non-nil item.
func (p *Params) Has(key string) bool {
	v, ok := p.Get(key)
	if !ok || isNil(v) {
		return false
	}
	if list, ok := asList(v); ok {
		for _, item := range list {
			if !isNil(item) {
				return true
			}
		}
		return false
	}
	return true
}

// Delete removes key from the bag.
func (p *Params) Delete(key string) {
	if p == nil || p.values == nil {
		return
	}
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of keys, including keys holding nil.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a shallow copy of the bag. Slice values are shared.
func (p *Params) Clone() *Params {
	c := NewParams()
	if p == nil {
		return c
	}
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}
	return c
}
