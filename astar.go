package main

// AStar is a single search over a graph. The heuristic is the Euclidean
// distance to the target, which never overestimates on this metric.
type AStar struct {
	graph  *Graph
	source int
	target int

	gCosts []float64 // Cost from source to node
	fCosts []float64 // gCost + heuristic

	shortestPathTree []*GraphEdge // Settled edge into each node
	searchFrontier   []*GraphEdge // Best known edge into each node
}

// NewAStar prepares a search from source to target. Call Search to run it.
func NewAStar(graph *Graph, source, target int) *AStar {
	n := len(graph.Nodes)
	return &AStar{
		graph:            graph,
		source:           source,
		target:           target,
		gCosts:           make([]float64, n),
		fCosts:           make([]float64, n),
		shortestPathTree: make([]*GraphEdge, n),
		searchFrontier:   make([]*GraphEdge, n),
	}
}

// Search runs the search and reports whether target was reached.
func (a *AStar) Search() bool {
	n := len(a.graph.Nodes)
	if a.source < 0 || a.source >= n || a.target < 0 || a.target >= n {
		return false
	}

	targetPoint := a.graph.Nodes[a.target]
	pq := NewIndexedPriorityQueue(a.fCosts)
	a.fCosts[a.source] = a.graph.Nodes[a.source].Distance(targetPoint)
	pq.Insert(a.source)

	for !pq.IsEmpty() {
		current := pq.Pop()
		a.shortestPathTree[current] = a.searchFrontier[current]
		if current == a.target {
			return true
		}

		for i := range a.graph.Edges[current] {
			edge := &a.graph.Edges[current][i]
			to := edge.To
			gCost := a.gCosts[current] + edge.Cost
			hCost := a.graph.Nodes[to].Distance(targetPoint)

			if to == a.source {
				continue
			}
			if a.searchFrontier[to] == nil {
				a.fCosts[to] = gCost + hCost
				a.gCosts[to] = gCost
				pq.Insert(to)
				a.searchFrontier[to] = edge
			} else if gCost < a.gCosts[to] && a.shortestPathTree[to] == nil {
				a.fCosts[to] = gCost + hCost
				a.gCosts[to] = gCost
				pq.ReorderUp(to)
				a.searchFrontier[to] = edge
			}
		}
	}
	return false
}

// Path returns the node indices from source to target, or nil when the
// target was not reached.
func (a *AStar) Path() []int {
	if a.target < 0 || a.target >= len(a.shortestPathTree) {
		return nil
	}
	if a.target == a.source {
		return []int{a.source}
	}
	if a.shortestPathTree[a.target] == nil {
		return nil
	}

	path := []int{a.target}
	node := a.target
	for node != a.source {
		edge := a.shortestPathTree[node]
		if edge == nil {
			return nil
		}
		node = edge.From
		path = append(path, node)
	}

	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// AStarPathOnGraph computes the shortest path between two nodes and maps it
// back to points.
func AStarPathOnGraph(graph *Graph, startIdx, endIdx int) ([]Point, bool) {
	if graph == nil || len(graph.Nodes) == 0 {
		return []Point{}, false
	}

	search := NewAStar(graph, startIdx, endIdx)
	if !search.Search() {
		return []Point{}, false
	}

	indices := search.Path()
	path := make([]Point, 0, len(indices))
	for _, idx := range indices {
		path = append(path, graph.Nodes[idx])
	}
	return path, true
}
