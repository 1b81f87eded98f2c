// Package graph provides the deterministic graph algorithms behind axis
// clustering, conflict-cluster counting, and articulation-point detection.
//
// Determinism matters here: the filter's gate and ceiling decisions are
// order-sensitive, so every traversal iterates nodes and neighbors in
// insertion order rather than map order.
package graph

// Undirected is an unweighted, undirected graph with insertion-order
// deterministic iteration.
type Undirected struct {
	nodes     []string
	nodeIndex map[string]int
	adjacency map[string][]string
	edgeSeen  map[[2]string]bool
}

// NewUndirected creates an empty graph.
func NewUndirected() *Undirected {
	return &Undirected{
		nodeIndex: make(map[string]int),
		adjacency: make(map[string][]string),
		edgeSeen:  make(map[[2]string]bool),
	}
}

// AddNode registers a node. Re-adding is a no-op; first insertion fixes the
// node's position in iteration order.
func (g *Undirected) AddNode(id string) {
	if _, ok := g.nodeIndex[id]; ok {
		return
	}
	g.nodeIndex[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
}

// AddEdge links two nodes, registering them if needed. Self-loops and
// duplicate edges are ignored.
func (g *Undirected) AddEdge(a, b string) {
	if a == b {
		return
	}
	g.AddNode(a)
	g.AddNode(b)

	key := [2]string{a, b}
	if a > b {
		key = [2]string{b, a}
	}
	if g.edgeSeen[key] {
		return
	}
	g.edgeSeen[key] = true

	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
}

// Nodes returns node ids in insertion order.
func (g *Undirected) Nodes() []string {
	return g.nodes
}

// Len returns the node count.
func (g *Undirected) Len() int {
	return len(g.nodes)
}

// Components returns the connected components. Components appear in order of
// their earliest-inserted node; members within a component appear in
// depth-first discovery order from that node.
func (g *Undirected) Components() [][]string {
	visited := make(map[string]bool, len(g.nodes))
	var components [][]string

	for _, start := range g.nodes {
		if visited[start] {
			continue
		}

		var component []string
		stack := []string{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[n] {
				continue
			}
			visited[n] = true
			component = append(component, n)

			// Push neighbors in reverse so they pop in insertion order.
			adj := g.adjacency[n]
			for i := len(adj) - 1; i >= 0; i-- {
				if !visited[adj[i]] {
					stack = append(stack, adj[i])
				}
			}
		}
		components = append(components, component)
	}

	return components
}

// ArticulationPoints returns the cut vertices: nodes whose removal increases
// the number of connected components. Standard Tarjan low-link computation,
// iterative to stay safe on deep graphs.
func (g *Undirected) ArticulationPoints() []string {
	disc := make(map[string]int, len(g.nodes))
	low := make(map[string]int, len(g.nodes))
	parent := make(map[string]string, len(g.nodes))
	isCut := make(map[string]bool)
	timer := 0

	type frame struct {
		node     string
		neighbor int // Next adjacency index to inspect
		children int
	}

	for _, root := range g.nodes {
		if _, seen := disc[root]; seen {
			continue
		}

		timer++
		disc[root] = timer
		low[root] = timer
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			adj := g.adjacency[f.node]

			if f.neighbor < len(adj) {
				next := adj[f.neighbor]
				f.neighbor++

				if _, seen := disc[next]; !seen {
					parent[next] = f.node
					f.children++
					timer++
					disc[next] = timer
					low[next] = timer
					stack = append(stack, frame{node: next})
				} else if next != parent[f.node] && disc[next] < low[f.node] {
					low[f.node] = disc[next]
				}
				continue
			}

			// Done with this node; fold its low-link into the parent.
			stack = stack[:len(stack)-1]
			if p, ok := parent[f.node]; ok {
				if low[f.node] < low[p] {
					low[p] = low[f.node]
				}
				if p != root && low[f.node] >= disc[p] {
					isCut[p] = true
				}
			}
			if f.node == root && f.children > 1 {
				isCut[root] = true
			}
		}
	}

	var cuts []string
	for _, n := range g.nodes {
		if isCut[n] {
			cuts = append(cuts, n)
		}
	}
	return cuts
}
