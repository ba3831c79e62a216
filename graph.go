package main

// Graph is the navigation graph used both as the cached visibility graph of
// routing corners and as the per-query working graph.
type Graph struct {
	Nodes []Point
	Edges [][]GraphEdge // Edges[i] holds only edges with From == i

	// ConcaveVertices are the routing corners the graph was built from.
	ConcaveVertices []Point
}

// GraphEdge connects two nodes with a cost
type GraphEdge struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Cost float64 `json:"cost"` // Euclidean distance
}

// NewGraph creates an empty graph with room for n nodes.
func NewGraph(n int) *Graph {
	return &Graph{
		Nodes: make([]Point, 0, n),
		Edges: make([][]GraphEdge, 0, n),
	}
}

// AddNode appends a node and returns its index.
func (g *Graph) AddNode(p Point) int {
	g.Nodes = append(g.Nodes, p)
	g.Edges = append(g.Edges, nil)
	return len(g.Nodes) - 1
}

// AddEdge appends edge to the adjacency row of edge.From.
func (g *Graph) AddEdge(edge GraphEdge) {
	g.Edges[edge.From] = append(g.Edges[edge.From], edge)
}

// Link adds an edge from a to b costed by the distance between them.
func (g *Graph) Link(from, to int) {
	g.AddEdge(GraphEdge{From: from, To: to, Cost: g.Nodes[from].Distance(g.Nodes[to])})
}

// GetEdge returns the edge from -> to if there is one.
func (g *Graph) GetEdge(from, to int) (GraphEdge, bool) {
	if from < 0 || from >= len(g.Edges) {
		return GraphEdge{}, false
	}
	for _, e := range g.Edges[from] {
		if e.To == to {
			return e, true
		}
	}
	return GraphEdge{}, false
}

// NumEdges counts directed edges.
func (g *Graph) NumEdges() int {
	n := 0
	for _, row := range g.Edges {
		n += len(row)
	}
	return n
}

// Clone deep-copies the graph. The clone has spare capacity for the two
// transient nodes a path query adds.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes:           make([]Point, len(g.Nodes), len(g.Nodes)+2),
		Edges:           make([][]GraphEdge, len(g.Edges), len(g.Edges)+2),
		ConcaveVertices: g.ConcaveVertices,
	}
	copy(c.Nodes, g.Nodes)
	for i, row := range g.Edges {
		// +1 leaves room for the edge towards the end node
		c.Edges[i] = make([]GraphEdge, len(row), len(row)+1)
		copy(c.Edges[i], row)
	}
	return c
}
