package plugins

// Registry maps plugin names to their records and remembers load order. A
// name appears at most once. The registry performs no locking: like every
// other piece of the plugin subsystem it belongs to the host's UI goroutine.
type Registry struct {
	records map[string]*Record
	order   []string
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*Record),
	}
}

// Insert adds a record under name. The caller must have checked Contains.
func (r *Registry) Insert(name string, rec *Record) {
	if _, exists := r.records[name]; exists {
		return
	}
	r.records[name] = rec
	r.order = append(r.order, name)
}

// Get retrieves a record by plugin name.
func (r *Registry) Get(name string) (*Record, bool) {
	rec, ok := r.records[name]

	return rec, ok
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.records[name]

	return ok
}

// Remove deletes the record for name, if present.
func (r *Registry) Remove(name string) {
	if _, ok := r.records[name]; !ok {
		return
	}
	delete(r.records, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered plugin names in load order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Records returns the registered records in load order.
func (r *Registry) Records() []*Record {
	out := make([]*Record, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name])
	}

	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.records)
}
