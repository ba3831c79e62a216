package main

import (
	"container/heap"
)

// IndexedPriorityQueue is a min-queue of node indices ordered by a key slice
// owned by the caller. When the caller lowers a key it must call ReorderUp
// for that node.
type IndexedPriorityQueue struct {
	h nodeHeap
}

// NewIndexedPriorityQueue creates a queue over keys; keys[i] is the priority
// of node i.
func NewIndexedPriorityQueue(keys []float64) *IndexedPriorityQueue {
	pos := make([]int, len(keys))
	for i := range pos {
		pos[i] = -1
	}
	return &IndexedPriorityQueue{h: nodeHeap{keys: keys, pos: pos}}
}

// Insert queues node. Inserting a node twice is a no-op.
func (q *IndexedPriorityQueue) Insert(node int) {
	if q.Contains(node) {
		return
	}
	heap.Push(&q.h, node)
}

// Pop removes and returns the node with the smallest key.
func (q *IndexedPriorityQueue) Pop() int {
	return heap.Pop(&q.h).(int)
}

// ReorderUp restores ordering after the key of node was decreased.
func (q *IndexedPriorityQueue) ReorderUp(node int) {
	if i := q.h.pos[node]; i >= 0 {
		heap.Fix(&q.h, i)
	}
}

func (q *IndexedPriorityQueue) Contains(node int) bool {
	return node >= 0 && node < len(q.h.pos) && q.h.pos[node] >= 0
}

func (q *IndexedPriorityQueue) IsEmpty() bool { return len(q.h.items) == 0 }

func (q *IndexedPriorityQueue) Len() int { return len(q.h.items) }

// nodeHeap implements heap.Interface for IndexedPriorityQueue
type nodeHeap struct {
	keys  []float64
	items []int
	pos   []int // Index in items, -1 when not queued
}

func (h nodeHeap) Len() int { return len(h.items) }

func (h nodeHeap) Less(i, j int) bool {
	return h.keys[h.items[i]] < h.keys[h.items[j]]
}

func (h nodeHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i]] = i
	h.pos[h.items[j]] = j
}

func (h *nodeHeap) Push(x interface{}) {
	node := x.(int)
	h.pos[node] = len(h.items)
	h.items = append(h.items, node)
}

func (h *nodeHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	node := old[n-1]
	h.items = old[0 : n-1]
	h.pos[node] = -1
	return node
}
