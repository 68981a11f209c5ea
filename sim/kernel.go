// sim/kernel.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// weightMin and weightMax bound a task's scheduling weight; values outside
// this range are clamped rather than rejected.
const (
	weightMin uint32 = 1
	weightMax uint32 = 10000
)

// KernelCtx owns tasks, CPUs and dispatch queues, and enforces the
// lifecycle invariants I1-I6 described in the data model. All operations
// are synchronous; there is no concurrency within a KernelCtx (§5).
type KernelCtx struct {
	now  Ticks
	cpus []CPU

	tasks      map[TaskId]*Task
	nextTaskID TaskId

	dsqs      map[DsqId]Dsq
	nextDsqID DsqId

	taskToDsq map[TaskId]DsqId

	globalDsqID  DsqId
	perCPUDsqIDs []DsqId
}

// NewKernelCtx builds a kernel context with numCPUs CPUs and the mandatory
// per-CPU and global FIFO dispatch queues pre-created (§3).
func NewKernelCtx(numCPUs int) *KernelCtx {
	if numCPUs <= 0 {
		panic("kernel: numCPUs must be positive")
	}
	ctx := &KernelCtx{
		cpus:         make([]CPU, numCPUs),
		tasks:        make(map[TaskId]*Task),
		dsqs:         make(map[DsqId]Dsq),
		taskToDsq:    make(map[TaskId]DsqId),
		perCPUDsqIDs: make([]DsqId, 0, numCPUs),
	}
	for i := range ctx.cpus {
		ctx.cpus[i] = CPU{ID: CpuId(i)}
	}
	ctx.globalDsqID = ctx.CreateDsqFifo()
	for i := 0; i < numCPUs; i++ {
		ctx.perCPUDsqIDs = append(ctx.perCPUDsqIDs, ctx.CreateDsqFifo())
	}
	return ctx
}

// Now returns the current tick.
func (k *KernelCtx) Now() Ticks { return k.now }

// NumCPUs returns the number of CPUs.
func (k *KernelCtx) NumCPUs() int { return len(k.cpus) }

// AdvanceTime moves the clock forward by delta ticks, saturating.
func (k *KernelCtx) AdvanceTime(delta Ticks) {
	k.now = saturatingAdd(k.now, delta)
}

// CreateTask inserts a new task in the Blocked state. Panics if
// requiredService is zero.
func (k *KernelCtx) CreateTask(requiredService Ticks, weight uint32) TaskId {
	if requiredService == 0 {
		panic("kernel: CreateTask requires requiredService > 0")
	}
	if weight < weightMin {
		logrus.Warnf("kernel: task weight %d below minimum, clamped to %d", weight, weightMin)
		weight = weightMin
	} else if weight > weightMax {
		logrus.Warnf("kernel: task weight %d above maximum, clamped to %d", weight, weightMax)
		weight = weightMax
	}
	id := k.nextTaskID
	k.nextTaskID++
	k.tasks[id] = &Task{
		ID:              id,
		State:           Blocked,
		RequiredService: requiredService,
		Weight:          weight,
	}
	return id
}

// Task returns a pointer to a task's live state; the driver and policies
// update fields such as ConsumedService and Vtime through it. Panics on
// unknown task.
func (k *KernelCtx) Task(id TaskId) *Task {
	t, ok := k.tasks[id]
	if !ok {
		panic(fmt.Sprintf("kernel: unknown task %d", id))
	}
	return t
}

// CPU returns a read-only view of a CPU. Panics on an out-of-range id.
func (k *KernelCtx) CPU(id CpuId) CPU {
	if int(id) < 0 || int(id) >= len(k.cpus) {
		panic(fmt.Sprintf("kernel: unknown CPU %d", id))
	}
	return k.cpus[id]
}

// GlobalDsq returns the mandatory global FIFO DSQ id.
func (k *KernelCtx) GlobalDsq() DsqId { return k.globalDsqID }

// PerCPUDsq returns the mandatory per-CPU FIFO DSQ id for cpu.
func (k *KernelCtx) PerCPUDsq(cpu CpuId) DsqId {
	return k.perCPUDsqIDs[cpu]
}

// CreateDsqFifo registers a new FIFO dispatch queue and returns its id.
func (k *KernelCtx) CreateDsqFifo() DsqId {
	id := k.nextDsqID
	k.nextDsqID++
	k.dsqs[id] = newFifoDsq()
	return id
}

// CreateDsqPriq registers a new priority (vtime-keyed) dispatch queue.
func (k *KernelCtx) CreateDsqPriq() DsqId {
	id := k.nextDsqID
	k.nextDsqID++
	k.dsqs[id] = newPriqDsq()
	return id
}

func (k *KernelCtx) dsq(id DsqId) Dsq {
	d, ok := k.dsqs[id]
	if !ok {
		panic(fmt.Sprintf("kernel: unknown DSQ %d", id))
	}
	return d
}

// DsqContains reports whether task is queued on dsq (the §3 `contains` predicate).
func (k *KernelCtx) DsqContains(dsq DsqId, task TaskId) bool {
	return k.dsq(dsq).Contains(task)
}

func (k *KernelCtx) checkEnqueuable(task *Task, dsqID DsqId, wantKind DsqKind) {
	if _, onDsq := k.taskToDsq[task.ID]; onDsq {
		panic(fmt.Sprintf("kernel: task %d is already on a DSQ", task.ID))
	}
	if task.State == Running || task.State == Completed {
		panic(fmt.Sprintf("kernel: task %d must not be Running or Completed when enqueued", task.ID))
	}
	if k.dsq(dsqID).Kind() != wantKind {
		panic(fmt.Sprintf("kernel: DSQ %d kind mismatch for this push operation", dsqID))
	}
}

// DsqPushFifo appends task to the tail of dsq, which must be a FIFO DSQ.
func (k *KernelCtx) DsqPushFifo(dsq DsqId, task TaskId, slice Ticks) {
	t := k.Task(task)
	k.checkEnqueuable(t, dsq, DsqFIFO)
	t.AllocatedTimeslice = slice
	t.HasTimeslice = true
	k.dsq(dsq).push(task, 0)
	k.taskToDsq[task] = dsq
}

// DsqPushPriq appends task to dsq with priority key vtime; dsq must be a PRIQ DSQ.
func (k *KernelCtx) DsqPushPriq(dsq DsqId, task TaskId, slice Ticks, vtime Ticks) {
	t := k.Task(task)
	k.checkEnqueuable(t, dsq, DsqPRIQ)
	t.AllocatedTimeslice = slice
	t.HasTimeslice = true
	k.dsq(dsq).push(task, vtime)
	k.taskToDsq[task] = dsq
}

// DsqPop removes and returns the head of dsq's ordering (FIFO: insertion
// order; PRIQ: minimum vtime). Returns (0, false) if dsq is empty.
func (k *KernelCtx) DsqPop(dsq DsqId) (TaskId, bool) {
	task, ok := k.dsq(dsq).pop()
	if !ok {
		return 0, false
	}
	delete(k.taskToDsq, task)
	return task, true
}

// DsqMoveToLocal pops one task from dsq and pushes it onto cpu's local DSQ,
// preserving its allocated timeslice.
func (k *KernelCtx) DsqMoveToLocal(dsq DsqId, cpu CpuId) {
	task, ok := k.DsqPop(dsq)
	if !ok {
		return
	}
	slice := k.Task(task).AllocatedTimeslice
	k.DsqPushFifo(k.PerCPUDsq(cpu), task, slice)
}

// TaskAddVtime mutates a PRIQ-enqueued task's priority key in place. Panics
// if the task is not currently on a PRIQ DSQ.
func (k *KernelCtx) TaskAddVtime(task TaskId, delta Ticks) {
	dsqID, ok := k.taskToDsq[task]
	if !ok {
		panic(fmt.Sprintf("kernel: task %d is not enqueued on any DSQ", task))
	}
	d := k.dsq(dsqID)
	if d.Kind() != DsqPRIQ {
		panic(fmt.Sprintf("kernel: task %d is not on a priority DSQ", task))
	}
	t := k.Task(task)
	t.Vtime = saturatingAdd(t.Vtime, delta)
	d.updateKey(task, t.Vtime)
}

// MarkRunnable transitions task to Runnable, clearing its CPU assignment.
// Panics if task is Completed.
func (k *KernelCtx) MarkRunnable(task TaskId) {
	t := k.Task(task)
	if t.State == Completed {
		panic(fmt.Sprintf("kernel: completed task %d cannot become runnable", task))
	}
	t.State = Runnable
	t.CurrentCPU = nil
}

// MarkBlocked transitions task to Blocked. Panics if task is still enqueued.
func (k *KernelCtx) MarkBlocked(task TaskId) {
	if _, onDsq := k.taskToDsq[task]; onDsq {
		panic(fmt.Sprintf("kernel: task %d is still enqueued, cannot block", task))
	}
	t := k.Task(task)
	t.State = Blocked
	t.CurrentCPU = nil
}

// MarkCompleted transitions task from Running to Completed, clamping
// ConsumedService to RequiredService and recording completionTime.
func (k *KernelCtx) MarkCompleted(task TaskId, completionTime Ticks) {
	if _, onDsq := k.taskToDsq[task]; onDsq {
		panic(fmt.Sprintf("kernel: task %d is still enqueued, cannot complete", task))
	}
	t := k.Task(task)
	if t.State != Running {
		panic(fmt.Sprintf("kernel: task %d must be Running to complete, got %s", task, t.State))
	}
	t.State = Completed
	t.CurrentCPU = nil
	t.ConsumedService = t.RequiredService
	t.CompletionTime = completionTime
	t.HasCompletionTime = true
}

// SetRunning transitions task to Running on cpu and returns its previous
// state. Panics if task is still enqueued or cpu is already running a task.
func (k *KernelCtx) SetRunning(cpu CpuId, task TaskId) TaskState {
	if _, onDsq := k.taskToDsq[task]; onDsq {
		panic(fmt.Sprintf("kernel: task %d must not be enqueued when set running", task))
	}
	c := &k.cpus[cpu]
	if c.Current != nil {
		panic(fmt.Sprintf("kernel: CPU %d is already running a task", cpu))
	}
	prev := k.Task(task).State
	id := task
	c.Current = &id
	t := k.Task(task)
	t.State = Running
	t.CurrentCPU = &cpu
	t.ConsumedTimeslice = 0
	return prev
}

// ClearCpu clears cpu's current task pointer (the task's own state is
// updated by the caller via MarkRunnable/MarkCompleted).
func (k *KernelCtx) ClearCpu(cpu CpuId) {
	k.cpus[cpu].Current = nil
}

// CpuIsIdle reports whether cpu has no current task.
func (k *KernelCtx) CpuIsIdle(cpu CpuId) bool {
	return k.cpus[cpu].Current == nil
}

// PickIdleCpu returns the first idle CPU found, or false if all are busy.
func (k *KernelCtx) PickIdleCpu() (CpuId, bool) {
	for i := range k.cpus {
		if k.cpus[i].Current == nil {
			return k.cpus[i].ID, true
		}
	}
	return 0, false
}
