package domain

import "context"

// Collection names used as change-feed routing keys. Member and attendance
// changes are scoped by tenant id; correction changes are scoped by ministry
// name (corrections are ministry-wide, not per origin tenant).
const (
	CollectionMembers    = "members"
	CollectionAttendance = "attendance"
	CollectionOverrides  = "overrides"
	CollectionExclusions = "exclusions"
)

// ChangeNotifier announces that a scoped collection changed. Write services
// call it after commit so live subscribers re-fetch fresh state.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context, scope, collection string)
}
