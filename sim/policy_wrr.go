// sim/policy_wrr.go
package sim

// WeightedRoundRobinScheduler is a simpler weighted alternative to
// VTimeScheduler: every task shares the single global FIFO DSQ (so
// dispatch order is pure arrival order, like FIFOScheduler), but each
// task's granted timeslice scales with its weight instead of being fixed
// at SliceDefault.
type WeightedRoundRobinScheduler struct {
	// MaxSliceMultiple bounds how many multiples of SliceDefault a single
	// task may be granted, so one very heavy task cannot starve the queue
	// for an unbounded number of ticks. Defaults to 10 if unset (use
	// NewWeightedRoundRobinScheduler).
	MaxSliceMultiple Ticks
}

var _ SchedPolicy = (*WeightedRoundRobinScheduler)(nil)

// NewWeightedRoundRobinScheduler builds a WeightedRoundRobinScheduler with
// the default slice-multiple cap.
func NewWeightedRoundRobinScheduler() *WeightedRoundRobinScheduler {
	return &WeightedRoundRobinScheduler{MaxSliceMultiple: 10}
}

func (s *WeightedRoundRobinScheduler) slice(weight uint32) Ticks {
	// weight is in [1, 10000]; grant one extra SliceDefault per 100 points
	// of weight above the baseline, capped by MaxSliceMultiple.
	multiple := Ticks(1 + (weight-1)/100)
	maxMultiple := s.MaxSliceMultiple
	if maxMultiple == 0 {
		maxMultiple = 10
	}
	if multiple > maxMultiple {
		multiple = maxMultiple
	}
	return SliceDefault * multiple
}

func (s *WeightedRoundRobinScheduler) Init(ctx *KernelCtx)               {}
func (s *WeightedRoundRobinScheduler) Enable(ctx *KernelCtx, task TaskId) {}

func (s *WeightedRoundRobinScheduler) SelectCpu(ctx *KernelCtx, task TaskId, wakeupCPU CpuId) SelectCpuDecision {
	return EnqueueOnDefault()
}

func (s *WeightedRoundRobinScheduler) Enqueue(ctx *KernelCtx, task TaskId, flags EnqueueFlags, prevCPU CpuId) {
	weight := ctx.Task(task).Weight
	ctx.DsqPushFifo(ctx.GlobalDsq(), task, s.slice(weight))
}

func (s *WeightedRoundRobinScheduler) Dispatch(ctx *KernelCtx, cpu CpuId) {}
func (s *WeightedRoundRobinScheduler) Tick(ctx *KernelCtx, task TaskId)    {}
func (s *WeightedRoundRobinScheduler) Running(ctx *KernelCtx, task TaskId) {}
func (s *WeightedRoundRobinScheduler) Stopping(ctx *KernelCtx, task TaskId, stillRunnable bool) {}
func (s *WeightedRoundRobinScheduler) Exit(ctx *KernelCtx) {}
