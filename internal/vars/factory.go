package vars

// Index is the dense identifier assigned to an interned name.
type Index uint64

// Factory interns opaque string keys into indexed names. Two look-ups of the
// same key return names with the same index; distinct keys get distinct
// indices, assigned monotonically from the configured start. Factories do not
// share index space, so names from different factories must not be mixed.
//
// The factory is not safe for concurrent use.
type Factory struct {
	next  Index
	names map[string]Name
}

// NewFactory returns a factory whose first index is 1.
func NewFactory() *Factory {
	return NewFactoryFrom(1)
}

// NewFactoryFrom returns a factory whose first index is start.
func NewFactoryFrom(start Index) *Factory {
	return &Factory{
		next:  start,
		names: make(map[string]Name),
	}
}

// Lookup returns the name bound to key, interning it on first use.
func (f *Factory) Lookup(key string) Name {
	if n, ok := f.names[key]; ok {
		return n
	}
	n := Name{key: key, idx: f.next, fac: f}
	f.next++
	f.names[key] = n
	return n
}

// Len returns the number of interned names.
func (f *Factory) Len() int {
	return len(f.names)
}

// Name is an interned variable name. Equality and ordering are by index; the
// key and the factory back-pointer exist for display only. The factory must
// outlive every name derived from it.
type Name struct {
	key string
	idx Index
	fac *Factory
}

// Index returns the dense index assigned by the factory.
func (n Name) Index() Index { return n.idx }

// Key returns the original key the name was interned from.
func (n Name) Key() string { return n.key }

// Factory returns the owning factory.
func (n Name) Factory() *Factory { return n.fac }

func (n Name) String() string { return n.key }

// Equal reports index equality.
func (n Name) Equal(o Name) bool { return n.idx == o.idx }

// Less orders names by index.
func (n Name) Less(o Name) bool { return n.idx < o.idx }
