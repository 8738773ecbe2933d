package tree

import "slices"

// Disclosure reports and flips whether a node's children take part in layout.
type Disclosure interface {
	// IsDisclosed reports whether the node with the given id is expanded.
	IsDisclosed(id string) bool
	// Toggle flips the node's state and returns the new state.
	Toggle(id string) bool
}

// KeySet is a minimal set capability, modelled on host key-set objects.
type KeySet interface {
	Has(key string) bool
	Add(key string)
	Delete(key string)
}

// MapKeySet is a KeySet backed by a map.
type MapKeySet map[string]struct{}

// NewMapKeySet returns a key set containing keys.
func NewMapKeySet(keys ...string) MapKeySet {
	s := make(MapKeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s MapKeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s MapKeySet) Add(key string)    { s[key] = struct{}{} }
func (s MapKeySet) Delete(key string) { delete(s, key) }

// Keys returns the members sorted.
func (s MapKeySet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// AllDisclosure expands every node except the ones explicitly collapsed.
type AllDisclosure struct {
	collapsed MapKeySet
}

// All returns a disclosure where every node starts expanded.
func All() *AllDisclosure {
	return &AllDisclosure{collapsed: MapKeySet{}}
}

func (a *AllDisclosure) IsDisclosed(id string) bool { return !a.collapsed.Has(id) }

func (a *AllDisclosure) Toggle(id string) bool {
	if a.collapsed.Has(id) {
		a.collapsed.Delete(id)
		return true
	}
	a.collapsed.Add(id)
	return false
}

// Collapsed returns the ids collapsed since creation, sorted.
func (a *AllDisclosure) Collapsed() []string { return a.collapsed.Keys() }

// IDList is an ordered list of expanded ids. Toggling appends or splices.
type IDList struct {
	IDs []string
}

func (l *IDList) IsDisclosed(id string) bool { return slices.Contains(l.IDs, id) }

func (l *IDList) Toggle(id string) bool {
	if i := slices.Index(l.IDs, id); i >= 0 {
		l.IDs = slices.Delete(l.IDs, i, i+1)
		return false
	}
	l.IDs = append(l.IDs, id)
	return true
}

// KeySetDisclosure adapts a KeySet of expanded ids.
type KeySetDisclosure struct {
	Set KeySet
}

func (k KeySetDisclosure) IsDisclosed(id string) bool { return k.Set.Has(id) }

func (k KeySetDisclosure) Toggle(id string) bool {
	if k.Set.Has(id) {
		k.Set.Delete(id)
		return false
	}
	k.Set.Add(id)
	return true
}

// BoolMap maps ids to their expanded state. Missing ids use Default.
type BoolMap struct {
	States  map[string]bool
	Default bool
}

func (b *BoolMap) IsDisclosed(id string) bool {
	if v, ok := b.States[id]; ok {
		return v
	}
	return b.Default
}

func (b *BoolMap) Toggle(id string) bool {
	if b.States == nil {
		b.States = make(map[string]bool)
	}
	v := !b.IsDisclosed(id)
	b.States[id] = v
	return v
}

// Snapshot reports the expanded ids known to d among ids, preserving order.
// It is used to serialize disclosure state independent of representation.
func Snapshot(d Disclosure, ids []string) []string {
	var out []string
	for _, id := range ids {
		if d.IsDisclosed(id) {
			out = append(out, id)
		}
	}
	return out
}

var (
	_ Disclosure = (*AllDisclosure)(nil)
	_ Disclosure = (*IDList)(nil)
	_ Disclosure = KeySetDisclosure{}
	_ Disclosure = (*BoolMap)(nil)
	_ KeySet     = MapKeySet(nil)
)
