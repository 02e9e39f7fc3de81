package shared

import "time"

// Now is the clock every aggregate, event and audit entry stamps itself with.
// Ledger timestamps are always UTC. Tests may swap it and restore it afterwards.
var Now = func() time.Time {
	return time.Now().UTC()
}
