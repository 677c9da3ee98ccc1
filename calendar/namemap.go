package calendar

import (
	"fmt"
	"sort"
)

// DoubleInsertError reports an insertion under a name already in use.
type DoubleInsertError struct {
	Key string
}

func (e *DoubleInsertError) Error() string {
	return fmt.Sprintf("`%s` already exists", e.Key)
}

// NameMap is a name-keyed collection. The zero value is empty and ready to
// use.
type NameMap[T any] struct {
	contents map[string]T
}

// Contains reports whether key is present.
func (n *NameMap[T]) Contains(key string) bool {
	_, ok := n.contents[key]
	return ok
}

// UniqueInsert inserts val under key, failing if the key is taken.
func (n *NameMap[T]) UniqueInsert(key string, val T) error {
	if n.Contains(key) {
		return &DoubleInsertError{Key: key}
	}
	n.Insert(key, val)
	return nil
}

// Insert stores val under key, replacing any previous value.
func (n *NameMap[T]) Insert(key string, val T) {
	if n.contents == nil {
		n.contents = make(map[string]T)
	}
	n.contents[key] = val
}

// Get looks up the value stored under key.
func (n *NameMap[T]) Get(key string) (T, bool) {
	val, ok := n.contents[key]
	return val, ok
}

// Remove deletes key, reporting whether it was present.
func (n *NameMap[T]) Remove(key string) bool {
	if !n.Contains(key) {
		return false
	}
	delete(n.contents, key)
	return true
}

// Len returns the number of entries.
func (n *NameMap[T]) Len() int { return len(n.contents) }

// Names returns all keys in sorted order.
func (n *NameMap[T]) Names() []string {
	names := make([]string, 0, len(n.contents))
	for name := range n.contents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
