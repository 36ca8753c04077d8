package timeutil

import "time"

// NowUnix returns the current time in unix seconds, the representation
// every ctime/mtime column stores.
func NowUnix() int64 {
	return time.Now().Unix()
}
