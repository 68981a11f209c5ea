// sim/driver.go
package sim

import "github.com/sirupsen/logrus"

// Driver is the per-tick control loop: it schedules idle CPUs, advances
// running tasks, invokes policy hooks at the moments defined in §4.3, and
// emits a SchedCoreEvent stream. It owns the KernelCtx and the policy.
type Driver struct {
	Ctx      *KernelCtx
	Policy   SchedPolicy
	Observer *Observer

	events []SchedCoreEvent
}

// NewDriver constructs a scheduler core with numCPUs CPUs running policy.
// observeInvariants enables the debug-time Observer pass (§4.4).
func NewDriver(numCPUs int, policy SchedPolicy, observeInvariants bool) *Driver {
	ctx := NewKernelCtx(numCPUs)
	policy.Init(ctx)
	return &Driver{
		Ctx:      ctx,
		Policy:   policy,
		Observer: NewObserver(observeInvariants),
	}
}

// Now returns the current simulated tick.
func (d *Driver) Now() Ticks { return d.Ctx.Now() }

// CreateTask creates a task via the kernel context and runs the policy's
// Enable hook. The task remains Blocked until the caller calls WakeTask.
func (d *Driver) CreateTask(requiredService Ticks, weight uint32) TaskId {
	task := d.Ctx.CreateTask(requiredService, weight)
	d.Policy.Enable(d.Ctx, task)
	return task
}

// WakeTask transitions task to Runnable and routes it to a CPU per the
// policy's SelectCpu decision (§4.3 "Wake path").
func (d *Driver) WakeTask(task TaskId, wakeupCPU CpuId) {
	d.Ctx.MarkRunnable(task)

	switch decision := d.Policy.SelectCpu(d.Ctx, task, wakeupCPU); decision.Kind {
	case DecisionDirectDispatch:
		d.Ctx.DsqPushFifo(d.Ctx.PerCPUDsq(decision.CPU), task, decision.Slice)
	case DecisionEnqueueOn:
		d.Policy.Enqueue(d.Ctx, task, EnqWakeup|EnqCPUSelected, decision.CPU)
	case DecisionEnqueueOnDefault:
		d.Policy.Enqueue(d.Ctx, task, EnqWakeup, wakeupCPU)
	default:
		panic("driver: unknown SelectCpuDecision kind")
	}
}

// Tick advances the simulation by exactly one tick and returns the events
// emitted during it. Order (§4.3, §5): schedule pass, then service pass (in
// ascending CPU id order within each pass), then the observer pass, then
// advance_time(1).
func (d *Driver) Tick() []SchedCoreEvent {
	now := d.Ctx.Now()
	for cpu := 0; cpu < d.Ctx.NumCPUs(); cpu++ {
		d.scheduleCPU(CpuId(cpu))
	}
	for cpu := 0; cpu < d.Ctx.NumCPUs(); cpu++ {
		d.serviceCPU(CpuId(cpu))
	}

	d.Observer.Observe(d.Ctx)

	d.Ctx.AdvanceTime(1)

	events := d.events
	d.events = nil

	logrus.Debugf("tick %d: %d events emitted", now, len(events))

	return events
}

// scheduleCPU implements the idle-CPU fallback chain (§4.3 step 1):
// local DSQ -> global DSQ -> policy.Dispatch then local DSQ again.
func (d *Driver) scheduleCPU(cpu CpuId) {
	if !d.Ctx.CpuIsIdle(cpu) {
		return
	}

	task, ok := d.Ctx.DsqPop(d.Ctx.PerCPUDsq(cpu))
	if !ok {
		task, ok = d.Ctx.DsqPop(d.Ctx.GlobalDsq())
	}
	if !ok {
		d.Policy.Dispatch(d.Ctx, cpu)
		task, ok = d.Ctx.DsqPop(d.Ctx.PerCPUDsq(cpu))
	}
	if !ok {
		return
	}

	prevState := d.Ctx.Task(task).State
	d.Ctx.SetRunning(cpu, task)
	d.Policy.Running(d.Ctx, task)

	d.events = append(d.events,
		taskStateChange(task, prevState, Running),
		cpuCurrentChange(cpu, nil, taskPtr(task)),
	)
}

// serviceCPU implements the per-tick service accrual and
// completion/slice-expiry handling (§4.3 step 2).
func (d *Driver) serviceCPU(cpu CpuId) {
	current := d.Ctx.cpus[cpu].Current
	if current == nil {
		d.events = append(d.events, cpuIdle(cpu))
		return
	}
	task := *current

	t := d.Ctx.Task(task)
	t.ConsumedService = saturatingAdd(t.ConsumedService, 1)
	t.ConsumedTimeslice = saturatingAdd(t.ConsumedTimeslice, 1)

	d.Policy.Tick(d.Ctx, task)

	completed := t.ConsumedService >= t.RequiredService
	sliceExpired := !completed && t.ConsumedTimeslice == t.AllocatedTimeslice

	if !completed && !sliceExpired {
		return
	}

	d.Policy.Stopping(d.Ctx, task, !completed)
	d.Ctx.ClearCpu(cpu)
	d.events = append(d.events, cpuCurrentChange(cpu, taskPtr(task), nil))

	if completed {
		d.Ctx.MarkCompleted(task, d.Ctx.Now())
		d.events = append(d.events, taskStateChange(task, Running, Completed))
		return
	}

	d.Ctx.MarkRunnable(task)
	d.events = append(d.events, taskStateChange(task, Running, Runnable))
	d.Policy.Enqueue(d.Ctx, task, EnqReenq, cpu)
}

func taskPtr(t TaskId) *TaskId { return &t }

// Exit tears down the core by calling the policy's Exit hook. The shipped
// policies' Exit hooks do nothing, and policy-owned DSQs are not removed
// from the KernelCtx.
func (d *Driver) Exit() {
	d.Policy.Exit(d.Ctx)
}
