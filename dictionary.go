package av

// Dictionary wraps a native key/value map. The zero value is an empty,
// owned dictionary; the native allocation happens on first Set.
//
// Ownership matters: operations that hand the dictionary to the native
// layer (OpenInputWithOptions, Muxer setup) may reallocate or consume it.
// Those paths go through withOptions, which re-wraps whatever handle comes
// back so the caller's Dictionary stays valid on success and on failure.
type Dictionary struct {
	handle uintptr
	owned  bool
}

// NewDictionary returns an empty owned dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{owned: true}
}

// DictionaryOf builds a dictionary from pairs. Odd trailing entries are
// ignored.
func DictionaryOf(pairs ...string) (*Dictionary, error) {
	d := NewDictionary()
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := d.Set(pairs[i], pairs[i+1]); err != nil {
			d.Free()
			return nil, err
		}
	}
	return d, nil
}

// borrowDictionary wraps a native handle the caller does not own, such as a
// container's metadata view. Free is a no-op on borrowed dictionaries.
func borrowDictionary(handle uintptr) *Dictionary {
	return &Dictionary{handle: handle}
}

// Set stores value under key, replacing any previous entry.
func (d *Dictionary) Set(key, value string) error {
	if !d.owned {
		return ErrInvalidState
	}
	return errorFromCode(nav.DictSet(&d.handle, key, value, 0))
}

// Get returns the value for key and whether it was present.
func (d *Dictionary) Get(key string) (string, bool) {
	if d.handle == 0 {
		return "", false
	}
	entry := nav.DictGet(d.handle, key, 0, dictMatchCase)
	if entry == 0 {
		return "", false
	}
	return nav.DictEntryValue(entry), true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d.handle == 0 {
		return 0
	}
	return int(nav.DictCount(d.handle))
}

// Each calls fn for every entry until fn returns false.
func (d *Dictionary) Each(fn func(key, value string) bool) {
	if d.handle == 0 {
		return
	}
	var entry uintptr
	for {
		entry = nav.DictGet(d.handle, "", entry, dictIgnoreSuffix)
		if entry == 0 {
			return
		}
		if !fn(nav.DictEntryKey(entry), nav.DictEntryValue(entry)) {
			return
		}
	}
}

// Map copies all entries into a Go map.
func (d *Dictionary) Map() map[string]string {
	out := make(map[string]string, d.Len())
	d.Each(func(k, v string) bool {
		out[k] = v
		return true
	})
	return out
}

// Copy returns an owned deep copy, usable on borrowed dictionaries too.
func (d *Dictionary) Copy() (*Dictionary, error) {
	dst := NewDictionary()
	if d.handle == 0 {
		return dst, nil
	}
	if err := errorFromCode(nav.DictCopy(&dst.handle, d.handle, 0)); err != nil {
		dst.Free()
		return nil, err
	}
	return dst, nil
}

// Free releases an owned dictionary. Safe to call repeatedly; borrowed
// dictionaries are left alone.
func (d *Dictionary) Free() {
	if d == nil || !d.owned || d.handle == 0 {
		return
	}
	nav.DictFree(&d.handle)
	d.handle = 0
}

const (
	dictMatchCase    = 1
	dictIgnoreSuffix = 2
)

// withOptions lends d's handle to fn. The native side may consume entries
// it recognizes and reallocate the map, so the handle fn leaves behind is
// re-adopted into d no matter how fn returns. A nil d lends a NULL handle.
func withOptions(d *Dictionary, fn func(pm *uintptr) error) error {
	if d == nil {
		var null uintptr
		return fn(&null)
	}
	if !d.owned {
		return ErrInvalidState
	}
	handle := d.handle
	d.handle = 0
	// Re-adopt whatever handle fn leaves behind even if it unwinds, so the
	// wrapper never ends up disowned with a live native map.
	defer func() { d.handle = handle }()
	return fn(&handle)
}
