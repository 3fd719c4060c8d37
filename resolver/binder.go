package resolver

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/TheVinhLuong102/thinc/conf"
)

// BindArguments separates a promise node's entries into positional arguments
// (digit-string keys, ordered by their integer value) and keyword arguments
// (all other keys). Positional keys must be contiguous from 0: a gap would
// silently shift argument positions, so it is rejected as malformed.
func BindArguments(n *conf.Node) ([]*conf.Node, map[string]*conf.Node, error) {
	return bindArguments(n, conf.Path{})
}

func bindArguments(n *conf.Node, path conf.Path) ([]*conf.Node, map[string]*conf.Node, error) {
	if !n.IsPromise() {
		return nil, nil, fmt.Errorf("node at %s is not a promise", path)
	}

	type entry struct {
		index int
		node  *conf.Node
	}
	var entries []entry
	kwargs := make(map[string]*conf.Node)

	for _, key := range n.Keys() {
		if index, ok := positionalIndex(key); ok {
			entries = append(entries, entry{index: index, node: n.Child(key)})
		} else {
			kwargs[key] = n.Child(key)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })
	positional := make([]*conf.Node, 0, len(entries))
	for i, e := range entries {
		if e.index != i {
			reason := fmt.Sprintf("positional argument keys must be contiguous from 0, got %d at position %d", e.index, i)
			if i > 0 && entries[i-1].index == e.index {
				reason = fmt.Sprintf("duplicate positional argument key %d", e.index)
			}
			return nil, nil, &conf.MalformedPromiseError{Path: path, Reason: reason}
		}
		positional = append(positional, e.node)
	}
	return positional, kwargs, nil
}

// positionalIndex reports whether key is a digit string and, if so, its
// integer value.
func positionalIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return index, true
}
