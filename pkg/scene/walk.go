package scene

import (
	"sort"
)

// WalkFunc is called for every node reached by Walk. depth is 0 for the
// children of the starting group. Returning false skips the children of a group.
type WalkFunc func(n Node, depth int) bool

// Walk visits the children of g depth-first, in drawing order.
func Walk(g *Group, fn WalkFunc) {
	walk(g, 0, fn)
}

func walk(g *Group, depth int, fn WalkFunc) {
	for _, n := range g.Children {
		if !fn(n, depth) {
			continue
		}
		if child, ok := n.(*Group); ok {
			walk(child, depth+1, fn)
		}
	}
}

// Stats counts the contents of a scene.
type Stats struct {
	Groups int              // groups including the root
	Marks  int              // marks at any depth
	Items  int              // items across all marks
	ByType map[MarkType]int // items per mark type
	Depth  int              // deepest group nesting below the root
}

// Types returns the mark types present, sorted by name.
func (s Stats) Types() []MarkType {
	out := make([]MarkType, 0, len(s.ByType))
	for t := range s.ByType {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Summarize returns the counts for s.
func Summarize(s *Scene) Stats {
	st := Stats{Groups: 1, ByType: make(map[MarkType]int)}
	Walk(&s.Root, func(n Node, depth int) bool {
		switch n := n.(type) {
		case *Group:
			st.Groups++
			if depth+1 > st.Depth {
				st.Depth = depth + 1
			}
		case *Mark:
			st.Marks++
			st.Items += len(n.Items)
			st.ByType[n.Type] += len(n.Items)
		}
		return true
	})
	return st
}
