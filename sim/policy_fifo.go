// sim/policy_fifo.go
package sim

// FIFOScheduler is the simplest policy: a single global FIFO DSQ, no
// per-task bookkeeping. Dispatch order is pure arrival order.
type FIFOScheduler struct{}

var _ SchedPolicy = (*FIFOScheduler)(nil)

func (s *FIFOScheduler) Init(ctx *KernelCtx)               {}
func (s *FIFOScheduler) Enable(ctx *KernelCtx, task TaskId) {}

func (s *FIFOScheduler) SelectCpu(ctx *KernelCtx, task TaskId, wakeupCPU CpuId) SelectCpuDecision {
	return EnqueueOnDefault()
}

func (s *FIFOScheduler) Enqueue(ctx *KernelCtx, task TaskId, flags EnqueueFlags, prevCPU CpuId) {
	ctx.DsqPushFifo(ctx.GlobalDsq(), task, SliceDefault)
}

func (s *FIFOScheduler) Dispatch(ctx *KernelCtx, cpu CpuId) {}
func (s *FIFOScheduler) Tick(ctx *KernelCtx, task TaskId)    {}
func (s *FIFOScheduler) Running(ctx *KernelCtx, task TaskId) {}
func (s *FIFOScheduler) Stopping(ctx *KernelCtx, task TaskId, stillRunnable bool) {}
func (s *FIFOScheduler) Exit(ctx *KernelCtx) {}
