// sim/flags.go
package sim

// EnqueueFlags is a 64-bit bitmask passed to SchedPolicy.Enqueue. Bit
// positions are SCX-compatible so that any external tooling consuming
// event/decision logs from this simulator can reuse the same bit layout.
// Unknown flags are ignored by policies.
type EnqueueFlags uint64

const (
	EnqWakeup     EnqueueFlags = 1 << 0
	EnqHead       EnqueueFlags = 1 << 4
	EnqCPUSelected EnqueueFlags = 1 << 10
	EnqPreempt    EnqueueFlags = 1 << 32
	EnqReenq      EnqueueFlags = 1 << 40
	EnqLast       EnqueueFlags = 1 << 41
	EnqClearOpss  EnqueueFlags = 1 << 56
	EnqDsqPriq    EnqueueFlags = 1 << 57
)

// Has reports whether flag is set in f.
func (f EnqueueFlags) Has(flag EnqueueFlags) bool {
	return f&flag != 0
}
