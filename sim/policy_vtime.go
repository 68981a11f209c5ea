// sim/policy_vtime.go
package sim

// VTimeScheduler is a weighted-fair-queuing style policy: tasks are kept in
// a policy-owned priority DSQ keyed on virtual time, so lower-vtime (i.e.
// more "behind") tasks run first. Heavier-weight tasks accrue vtime more
// slowly, so they are scheduled more often (§4.2.2).
type VTimeScheduler struct {
	priq     DsqId
	vtimeNow Ticks
}

var _ SchedPolicy = (*VTimeScheduler)(nil)

func (s *VTimeScheduler) Init(ctx *KernelCtx) {
	s.priq = ctx.CreateDsqPriq()
	s.vtimeNow = SliceDefault
}

func (s *VTimeScheduler) Enable(ctx *KernelCtx, task TaskId) {
	ctx.Task(task).Vtime = s.vtimeNow
}

func (s *VTimeScheduler) SelectCpu(ctx *KernelCtx, task TaskId, wakeupCPU CpuId) SelectCpuDecision {
	if cpu, ok := ctx.PickIdleCpu(); ok {
		return DirectDispatch(cpu, SliceDefault)
	}
	return EnqueueOnDefault()
}

func (s *VTimeScheduler) Enqueue(ctx *KernelCtx, task TaskId, flags EnqueueFlags, prevCPU CpuId) {
	t := ctx.Task(task)
	v := t.Vtime
	// Clamp against vtimeNow - SliceDefault so a newly-waking low-vtime
	// task cannot monopolize the CPU against incumbents.
	floor := Ticks(0)
	if s.vtimeNow > SliceDefault {
		floor = s.vtimeNow - SliceDefault
	}
	if floor > v {
		v = floor
	}
	ctx.DsqPushPriq(s.priq, task, SliceDefault, v)
}

func (s *VTimeScheduler) Dispatch(ctx *KernelCtx, cpu CpuId) {
	ctx.DsqMoveToLocal(s.priq, cpu)
}

func (s *VTimeScheduler) Tick(ctx *KernelCtx, task TaskId) {}

func (s *VTimeScheduler) Running(ctx *KernelCtx, task TaskId) {
	v := ctx.Task(task).Vtime
	if v > s.vtimeNow {
		s.vtimeNow = v
	}
}

func (s *VTimeScheduler) Stopping(ctx *KernelCtx, task TaskId, stillRunnable bool) {
	t := ctx.Task(task)
	t.Vtime = saturatingAdd(t.Vtime, (t.ConsumedTimeslice*100)/Ticks(t.Weight))
}

func (s *VTimeScheduler) Exit(ctx *KernelCtx) {}
