package animation

// StatesBuilderOption is a functional option for configuring a state
// manager.
type StatesBuilderOption func(*states)

// WithIDProperty sets the feature property consulted first when resolving
// feature identities. Features without the property fall back to their
// GeoJSON id, then to their positional index.
//
// Parameters:
//   - name: the property name, empty to skip the property lookup
//
// Returns:
//   - StatesBuilderOption: the option function
func WithIDProperty(name string) StatesBuilderOption {
	return func(s *states) {
		s.idProperty = name
	}
}
