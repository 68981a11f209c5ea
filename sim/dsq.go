// sim/dsq.go
package sim

import "container/heap"

// DsqKind distinguishes the two dispatch-queue variants a policy may create.
type DsqKind int

const (
	DsqFIFO DsqKind = iota
	DsqPRIQ
)

// Dsq is a named queue of runnable tasks awaiting a CPU.
type Dsq interface {
	Kind() DsqKind
	Len() int
	Contains(task TaskId) bool
	// push inserts task with the given priority key (ignored by FIFO DSQs).
	push(task TaskId, vtime Ticks)
	// pop removes and returns the task at the head of the queue's ordering.
	pop() (TaskId, bool)
	// updateKey adjusts the priority key of an already-queued task in place
	// (panics on a FIFO DSQ — see KernelCtx.TaskAddVtime).
	updateKey(task TaskId, vtime Ticks)
}

// fifoDsq is an insertion-ordered queue. Pop yields the head.
type fifoDsq struct {
	order []TaskId
	pos   map[TaskId]int // index into order, for O(1) Contains
}

func newFifoDsq() *fifoDsq {
	return &fifoDsq{pos: make(map[TaskId]int)}
}

func (q *fifoDsq) Kind() DsqKind { return DsqFIFO }
func (q *fifoDsq) Len() int      { return len(q.order) }

func (q *fifoDsq) Contains(task TaskId) bool {
	_, ok := q.pos[task]
	return ok
}

func (q *fifoDsq) push(task TaskId, _ Ticks) {
	q.pos[task] = len(q.order)
	q.order = append(q.order, task)
}

func (q *fifoDsq) pop() (TaskId, bool) {
	if len(q.order) == 0 {
		return 0, false
	}
	task := q.order[0]
	q.order = q.order[1:]
	delete(q.pos, task)
	// Re-index the remaining entries; DSQs are expected to stay small
	// (bounded by runnable tasks per CPU/global queue), so a linear
	// re-index on pop is not a hot-path concern here.
	for t, i := range q.pos {
		q.pos[t] = i - 1
	}
	return task, true
}

func (q *fifoDsq) updateKey(TaskId, Ticks) {
	panic("dsq: updateKey called on a FIFO dispatch queue")
}

// priqEntry is one element of the priority heap.
type priqEntry struct {
	task  TaskId
	vtime Ticks
	index int // maintained by heap.Interface for O(log n) updateKey
}

// priqHeap is a min-heap keyed on Vtime; smaller vtime pops first.
type priqHeap []*priqEntry

func (h priqHeap) Len() int            { return len(h) }
func (h priqHeap) Less(i, j int) bool  { return h[i].vtime < h[j].vtime }
func (h priqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *priqHeap) Push(x any)         { e := x.(*priqEntry); e.index = len(*h); *h = append(*h, e) }
func (h *priqHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// priqDsq is a min-heap DSQ keyed on Vtime, supporting keyed in-place
// priority update (required by task_add_vtime — see §9 of the spec).
type priqDsq struct {
	h       priqHeap
	entries map[TaskId]*priqEntry
}

func newPriqDsq() *priqDsq {
	return &priqDsq{entries: make(map[TaskId]*priqEntry)}
}

func (q *priqDsq) Kind() DsqKind { return DsqPRIQ }
func (q *priqDsq) Len() int      { return len(q.h) }

func (q *priqDsq) Contains(task TaskId) bool {
	_, ok := q.entries[task]
	return ok
}

func (q *priqDsq) push(task TaskId, vtime Ticks) {
	e := &priqEntry{task: task, vtime: vtime}
	heap.Push(&q.h, e)
	q.entries[task] = e
}

func (q *priqDsq) pop() (TaskId, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	e := heap.Pop(&q.h).(*priqEntry)
	delete(q.entries, e.task)
	return e.task, true
}

func (q *priqDsq) updateKey(task TaskId, vtime Ticks) {
	e, ok := q.entries[task]
	if !ok {
		panic("dsq: updateKey on a task not present in this priority queue")
	}
	e.vtime = vtime
	heap.Fix(&q.h, e.index)
}
