package inputs

// Source is a source of named inputs.
type Source interface {
	// Lookup tries to look up a value based on name and returns that value as
	// well as true on success, or false if the input was not found.
	Lookup(name string) (Input, bool)
}

// Input is a single named input value, together with a human-readable label
// of where the value came from.
type Input struct {
	Name   string
	Value  string
	Source string
}

func (i Input) String() string {
	return i.Value
}

// SourceSlice is a slice of input sources that act as a source itself by
// returning the first successful lookup.
type SourceSlice []Source

// Lookup tries to look up a value based on name and returns that value as
// well as true on success, or false if the input was not found.
func (s SourceSlice) Lookup(name string) (Input, bool) {
	for _, inner := range s {
		if inner == nil {
			continue
		}
		val, ok := inner.Lookup(name)
		if ok {
			return val, true
		}
	}
	return Input{}, false
}

// ensure it conforms to interface
var _ Source = SourceSlice{}

// SourceMap is an input source based on a map where it uses the underlying
// map as the input source. The map values are the input values.
type SourceMap struct {
	Values map[string]string
	Label  string
}

// Lookup tries to look up a value based on name and returns that value as
// well as true on success, or false if the input was not found.
func (s SourceMap) Lookup(name string) (Input, bool) {
	v, ok := s.Values[name]
	if !ok {
		return Input{}, false
	}
	return Input{
		Name:   name,
		Value:  v,
		Source: s.Label,
	}, true
}

// ensure it conforms to interface
var _ Source = SourceMap{}
