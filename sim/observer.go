// sim/observer.go
package sim

import "fmt"

// Observer is a read-only pass that asserts kernel invariants I1-I5 after
// every driver tick (§4.4); see Observe for exactly what is checked. It
// never mutates kernel state. Failures
// are programmer errors: they panic rather than return an error, the same
// treatment every other precondition violation in this package gets (§7).
type Observer struct {
	Enabled bool
	steps   uint64
}

// NewObserver builds an Observer. enabled gates whether Observe does any
// work; disable in release-style runs where the invariant cost is unwanted.
func NewObserver(enabled bool) *Observer {
	return &Observer{Enabled: enabled}
}

// Observe checks ctx's current state: every busy CPU's task is Running on
// that CPU (I1), and every task_to_dsq entry names a DSQ that contains the
// task, which is neither Running nor Completed and has a timeslice (I2-I5).
// It checks these from the CPU and task_to_dsq side only: DSQ contents and
// Running tasks are not scanned for entries missing there, and I6 (ID
// density and uniqueness) is not checked.
func (o *Observer) Observe(ctx *KernelCtx) {
	if !o.Enabled {
		return
	}
	o.steps++

	for i := range ctx.cpus {
		cpu := ctx.cpus[i]
		if cpu.Current == nil {
			continue
		}
		task := ctx.Task(*cpu.Current)
		if task.State != Running {
			panic(fmt.Sprintf("observer: CPU %d current task %d must be Running, got %s", cpu.ID, task.ID, task.State))
		}
		if task.CurrentCPU == nil || *task.CurrentCPU != cpu.ID {
			panic(fmt.Sprintf("observer: task %d metadata current_cpu mismatch with CPU %d", task.ID, cpu.ID))
		}
	}

	for taskID, dsqID := range ctx.taskToDsq {
		task := ctx.Task(taskID)
		if task.State == Completed {
			panic(fmt.Sprintf("observer: completed task %d still present in DSQ %d", taskID, dsqID))
		}
		if task.State == Running {
			panic(fmt.Sprintf("observer: running task %d must not appear in any DSQ", taskID))
		}
		if !ctx.DsqContains(dsqID, taskID) {
			panic(fmt.Sprintf("observer: task_to_dsq claims task %d in DSQ %d, but the queue does not contain it", taskID, dsqID))
		}
		if !task.HasTimeslice {
			panic(fmt.Sprintf("observer: enqueued task %d has no allocated timeslice", taskID))
		}
	}
}

// Steps reports how many times Observe has run.
func (o *Observer) Steps() uint64 { return o.steps }
