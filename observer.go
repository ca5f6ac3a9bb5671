package awl

import (
	"time"
)

// ResolveHook observes every resolution through the injector, top-level
// and recursive alike. Hooks run on the resolving goroutine and must
// not call back into the injector.
type ResolveHook func(key string, duration time.Duration, err error)
