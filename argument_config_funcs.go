package virtopt

// WithConvert sets a conversion callback which runs instead of the
// direct attribute assignment. The callback receives the resolved target
// entity and may perform arbitrary mutation.
func WithConvert(cb ConvertFunc) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.Convert = cb
	}
}

// WithAliases registers alternative cli names for the argument, useful
// to keep old spellings working after a rename. The canonical name is
// what ends up in the option mapping and in Describe output.
func WithAliases(aliases ...string) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.Aliases = append(arg.Aliases, aliases...)
	}
}

// SetCanComma marks the value as comma-bearing free text. The dict
// builder keeps absorbing tokens after this option until it sees another
// known option name, reconstituting commas the tokenizer split. Use
// sparingly.
func SetCanComma(canComma bool) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.CanComma = canComma
	}
}

// SetOnOff normalizes the value as a boolean: yes/no, on/off, true/false,
// y/n, t/f, 1/0, case-insensitive. Anything else is a conversion error.
func SetOnOff(onOff bool) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.IsOnOff = onOff
	}
}

// SetSkipDefault drops the entry without effect when the user passes the
// literal value "default".
func SetSkipDefault(skip bool) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.SkipDefault = skip
	}
}

// WithLookup sets a custom equality test for match mode.
func WithLookup(cb LookupFunc) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.Lookup = cb
		arg.lookupSet = true
	}
}

// NoLookup documents that the argument has no match-mode equality test.
// Required for arguments without a Prop so the omission is deliberate;
// exercising such an argument in match mode is an error.
func NoLookup() ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.noLookup = true
		arg.lookupSet = true
	}
}

// WithResolve sets the callback that locates the sub-entity an indexed
// option like seclabel1.model operates on. See ChildResolver.
func WithResolve(cb ResolveFunc) ConfigureArgumentFunc {
	return func(arg *Argument, err *error) {
		arg.Resolve = cb
	}
}
