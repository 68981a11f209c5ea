// Package sim provides the core discrete-event simulation engine for schedsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - task.go: Task/CPU state and the TaskState lifecycle (Blocked → Runnable → Running → Completed)
//   - dsq.go: dispatch queues (FIFO and priority-heap) tasks wait on before running
//   - kernel.go: KernelCtx, the single owner of tasks, CPUs and DSQs
//   - policy.go: the SchedPolicy contract the driver calls into
//   - driver.go: the tick loop that ties kernel state and policy together
//   - harness.go: the per-step simulation harness that injects job arrivals
//
// # Architecture
//
// The sim package defines the scheduler core (kernel context, driver,
// observer) and the policy contract; concrete policies live alongside it
// (policy_fifo.go, policy_vtime.go, policy_wrr.go) since they hold only
// DsqId handles into kernel-owned state — no separate package boundary is
// needed. Supporting concerns live in sub-packages:
//   - sim/workload/: synthetic job generation (arrival processes, run-time
//     and weight sampling)
//   - sim/trace/: decision trace recording and summary statistics
//   - sim/policy/: admission control at the harness boundary
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - SchedPolicy: select-CPU, enqueue, dispatch, tick, running/stopping hooks
//   - Dsq: FIFO or priority-keyed dispatch queue
//   - PriorityPolicy: compute an observability priority score for a job
//   - policy.AdmissionPolicy: accept or reject an arriving job
package sim
