// sim/policy.go
package sim

// SelectCpuDecisionKind tags the three possible outcomes of
// SchedPolicy.SelectCpu.
type SelectCpuDecisionKind int

const (
	// DecisionDirectDispatch: the driver pushes the task directly onto the
	// named CPU's local DSQ with the given slice.
	DecisionDirectDispatch SelectCpuDecisionKind = iota
	// DecisionEnqueueOn: the driver calls Enqueue(task, flags, cpu).
	DecisionEnqueueOn
	// DecisionEnqueueOnDefault: the driver calls Enqueue(task, flags, wakeupCPU).
	DecisionEnqueueOnDefault
)

// SelectCpuDecision is the tagged-union result of SchedPolicy.SelectCpu.
type SelectCpuDecision struct {
	Kind  SelectCpuDecisionKind
	CPU   CpuId // meaningful for DecisionDirectDispatch and DecisionEnqueueOn
	Slice Ticks // meaningful for DecisionDirectDispatch
}

// DirectDispatch builds a SelectCpuDecision that places the task directly
// onto cpu's local DSQ with the given slice.
func DirectDispatch(cpu CpuId, slice Ticks) SelectCpuDecision {
	return SelectCpuDecision{Kind: DecisionDirectDispatch, CPU: cpu, Slice: slice}
}

// EnqueueOn builds a SelectCpuDecision that routes the enqueue through cpu.
func EnqueueOn(cpu CpuId) SelectCpuDecision {
	return SelectCpuDecision{Kind: DecisionEnqueueOn, CPU: cpu}
}

// EnqueueOnDefault builds a SelectCpuDecision that routes the enqueue
// through the wakeup CPU.
func EnqueueOnDefault() SelectCpuDecision {
	return SelectCpuDecision{Kind: DecisionEnqueueOnDefault}
}

// SchedPolicy is the contract between the driver and a scheduler
// implementation (§4.2). The driver invokes these hooks at the exact
// moments documented on each method; implementations must not assume any
// other invocation order.
type SchedPolicy interface {
	// Init runs once at core construction. May create policy-owned DSQs.
	Init(ctx *KernelCtx)
	// Enable runs once after CreateTask, before the task's first wake.
	Enable(ctx *KernelCtx, task TaskId)
	// SelectCpu runs on wake.
	SelectCpu(ctx *KernelCtx, task TaskId, wakeupCPU CpuId) SelectCpuDecision
	// Enqueue must place task on exactly one DSQ before returning.
	Enqueue(ctx *KernelCtx, task TaskId, flags EnqueueFlags, prevCPU CpuId)
	// Dispatch runs when an idle CPU finds both its local and the global
	// DSQ empty. May move tasks from policy-owned DSQs to cpu's local DSQ.
	Dispatch(ctx *KernelCtx, cpu CpuId)
	// Tick runs once per tick for the currently running task, after
	// service accrual.
	Tick(ctx *KernelCtx, task TaskId)
	// Running runs when task transitions to Running.
	Running(ctx *KernelCtx, task TaskId)
	// Stopping runs when task leaves Running. stillRunnable is false iff
	// the task completed.
	Stopping(ctx *KernelCtx, task TaskId, stillRunnable bool)
	// Exit runs at core teardown. KernelCtx has no operation that removes a
	// DSQ, so policy-owned DSQs stay registered after Exit.
	Exit(ctx *KernelCtx)
}

// SliceDefault (SLICE_DFL) is the default timeslice, in ticks (§4.2.2, §6).
const SliceDefault Ticks = 3
