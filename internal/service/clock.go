package service

import "time"

// timeNow is swapped out in tests.
var timeNow = func() time.Time { return time.Now().UTC() }
