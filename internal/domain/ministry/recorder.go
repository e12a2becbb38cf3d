package ministry

// Recorder receives engine counters. A nil Recorder disables recording.
type Recorder interface {
	SessionStarted()
	SessionStopped()
	MergeApplied()
	AttendanceCoalesced()
	OptimisticSuppressed(count int)
	TenantFailure(op string)
	TenantsResolved(count int)
}
