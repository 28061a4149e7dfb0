package piwik

// Params is the loosely-typed parameter bag handed to an API call. The
// builder consumes control keys as it folds them into the query, so the
// map is mutated by the call; callers must not reuse a bag and expect it
// to be intact afterwards.
type Params map[string]Value

// take returns the value for key and removes it from the bag.
func (p Params) take(key string) (Value, bool) {
	v, ok := p[key]
	if ok {
		delete(p, key)
	}
	return v, ok
}

// drop removes the given keys from the bag.
func (p Params) drop(keys ...string) {
	for _, k := range keys {
		delete(p, k)
	}
}

// Clone returns a shallow copy, useful when a caller wants to keep the
// original bag across calls.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	cp := make(Params, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}
