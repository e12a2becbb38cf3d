package live

import (
	"ministryservice/internal/domain"
)

// Feed carries change signals from write services to live subscribers. A
// signal means "this scope's collection changed" and carries no payload;
// subscribers re-fetch the authoritative state themselves, so a coalesced or
// dropped signal can never corrupt the view, only delay it.
//
// Scope is the tenant id for tenant collections and the ministry name for
// correction collections.
type Feed interface {
	domain.ChangeNotifier
	Subscribe(scope, collection string, fn func()) (cancel func())
}
