package virtopt

// WithProp sets the dot-separated path on the root graph object that
// backs the family, e.g. "devices.disk" for --disk.
func WithProp(prop string) ConfigureFamilyFunc {
	return func(f *Family, err *error) {
		f.Prop = prop
	}
}

// WithRemoveFirst names the leading positional values: bare words at the
// front of the option string become values for these names, in order.
func WithRemoveFirst(names ...string) ConfigureFamilyFunc {
	return func(f *Family, err *error) {
		f.RemoveFirst = append(f.RemoveFirst, names...)
	}
}

// SetStubNone controls whether the literal option string "none" is a
// no-op for this family. Defaults to true; families that give "none" a
// real meaning turn it off.
func SetStubNone(stub bool) ConfigureFamilyFunc {
	return func(f *Family, err *error) {
		f.StubNone = stub
	}
}

// WithPreProcess sets the hook run on the option mapping before
// construct-mode binding.
func WithPreProcess(hook PreProcessFunc) ConfigureFamilyFunc {
	return func(f *Family, err *error) {
		f.PreProcess = hook
	}
}
