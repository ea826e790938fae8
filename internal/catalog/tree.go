package catalog

import (
	"sort"

	"github.com/fekuna/metalmarket-service/internal/model"
)

// Expand returns id followed by every category below it, breadth first.
// Each category appears once even when parent links form a cycle.
// An id missing from categories yields an empty slice.
func Expand(categories []model.Category, id string) []string {
	known := false
	children := make(map[string][]string, len(categories))
	for i := range categories {
		c := &categories[i]
		if c.ID == id {
			known = true
		}
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	if !known {
		return []string{}
	}

	visited := map[string]bool{id: true}
	out := []string{id}
	for queue := []string{id}; len(queue) > 0; queue = queue[1:] {
		for _, child := range children[queue[0]] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// IsDescendant reports whether candidate lies strictly below ancestor.
func IsDescendant(categories []model.Category, ancestor, candidate string) bool {
	if ancestor == candidate {
		return false
	}
	for _, id := range Expand(categories, ancestor) {
		if id == candidate {
			return true
		}
	}
	return false
}

type Node struct {
	model.Category
	Children []*Node `json:"children"`
}

// BuildTree arranges a flat category list into a forest. Categories whose parent
// is missing become roots; categories only reachable through a cycle are dropped.
func BuildTree(categories []model.Category) []*Node {
	nodes := make(map[string]*Node, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &Node{Category: c, Children: []*Node{}}
	}

	var roots []*Node
	for _, c := range categories {
		n := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	// Walk from roots so nodes on a parent cycle never get emitted twice.
	visited := make(map[string]bool, len(nodes))
	var prune func(list []*Node) []*Node
	prune = func(list []*Node) []*Node {
		out := list[:0]
		for _, n := range list {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			n.Children = prune(n.Children)
			out = append(out, n)
		}
		sortNodes(out)
		return out
	}
	if roots == nil {
		return []*Node{}
	}
	return prune(roots)
}

func sortNodes(list []*Node) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Name < list[j].Name
	})
}
