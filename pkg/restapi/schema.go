package restapi

// Param declares one key of a parameter schema.
type Param struct {
	Key      string
	Required bool

	arrays ArrayEncoding
	pinned bool
}

// WithArrays pins the query encoding of a list value for this key, overriding
// the Serializer's default.
func (p Param) WithArrays(arrays ArrayEncoding) Param {
	p.arrays = arrays
	p.pinned = true
	return p
}

// Required declares a key that must be present with a non-nil value.
func Required(key string) Param { return Param{Key: key, Required: true} }

// Optional declares a key that may be omitted.
func Optional(key string) Param { return Param{Key: key} }

// Schema is an ordered list of declared parameters. Validation is key-set
// based; the order drives serialization.
type Schema []Param

// ExtraKeyPolicy decides what happens to keys present in a bag but not
// declared by its schema.
type ExtraKeyPolicy int

const (
	// PassExtraKeys sends undeclared keys unchanged, after the declared ones.
	PassExtraKeys ExtraKeyPolicy = iota
	// StripExtraKeys silently drops undeclared keys.
	StripExtraKeys
	// RejectExtraKeys fails validation, listing undeclared keys in
	// ValidationError.Unknown.
	RejectExtraKeys
)

func (p ExtraKeyPolicy) String() string {
	switch p {
	case PassExtraKeys:
		return "pass"
	case StripExtraKeys:
		return "strip"
	case RejectExtraKeys:
		return "reject"
	}
	return "unknown"
}

// Declares reports whether key is part of the schema.
func (s Schema) Declares(key string) bool {
	for _, p := range s {
		if p.Key == key {
			return true
		}
	}
	return false
}

// arraysFor returns the encoding pinned on key, falling back to def.
func (s Schema) arraysFor(key string, def ArrayEncoding) ArrayEncoding {
	for _, p := range s {
		if p.Key == key && p.pinned {
			return p.arrays
		}
	}
	return def
}

// Validate checks params against schema and returns a *ValidationError naming
// every required key that is absent, nil or an empty list. Undeclared keys are ignored. A
// nil schema accepts anything.
func Validate(params *Params, schema Schema) error {
	var missing []string
	for _, p := range schema {
		if p.Required && !params.Has(p.Key) {
			missing = append(missing, p.Key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Apply validates params and applies policy to undeclared keys, returning the
// bag that should be serialized. The input bag is never modified; under
// StripExtraKeys a filtered copy is returned.
//
// A nil schema means the endpoint takes no declared parameters, so under
// StripExtraKeys or RejectExtraKeys every key counts as undeclared.
func (s Schema) Apply(params *Params, policy ExtraKeyPolicy) (*Params, error) {
	err := Validate(params, s)
	verr, _ := err.(*ValidationError)

	var unknown []string
	for _, k := range params.Keys() {
		if !s.Declares(k) {
			unknown = append(unknown, k)
		}
	}

	if policy == RejectExtraKeys && len(unknown) > 0 {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.Unknown = unknown
	}
	if verr != nil {
		return nil, verr
	}

	if policy == StripExtraKeys && len(unknown) > 0 {
		stripped := params.Clone()
		for _, k := range unknown {
			stripped.Delete(k)
		}
		return stripped, nil
	}
	if params == nil {
		return NewParams(), nil
	}
	return params, nil
}
