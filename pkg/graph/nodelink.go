package graph

// NodeLink is the node-link representation of a graph.
type NodeLink struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a package in a [NodeLink]. Expanded is false for names that only
// appear as dependencies.
type Node struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded,omitempty"`
}

// Edge is a dependency relation: From depends on To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NodeLink converts g to node-link form. Nodes follow [Graph.Nodes];
// duplicate dependency tokens within one list yield a single edge.
func (g *Graph) NodeLink() NodeLink {
	out := NodeLink{Nodes: []Node{}, Edges: []Edge{}}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{ID: id, Expanded: g.Has(id)})
	}
	for from, deps := range g.All() {
		seen := make(map[string]bool, len(deps))
		for _, to := range deps {
			if seen[to] {
				continue
			}
			seen[to] = true
			out.Edges = append(out.Edges, Edge{From: from, To: to})
		}
	}
	return out
}
