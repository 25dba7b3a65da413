package domain

import "fmt"

// Authorize checks that the acting sender is the expected owner.
// It returns nil when allowed and an Unauthorized error otherwise.
func Authorize(expected, actual Sender) error {
	if actual.IsZero() || expected != actual {
		return Unauthorized(fmt.Sprintf("sender %q is not the owner", actual))
	}
	return nil
}

// IsValid is the temporal validity check shared by keys and listings:
// a record is valid while now < expiration and it has not been revoked.
func IsValid(expiration Height, revoked bool, now Height) bool {
	return now < expiration && !revoked
}

// Elapsed reports whether at least delay ticks have passed since start.
// A clock reading before start is treated as not elapsed; the subtraction form
// avoids overflowing start+delay.
func Elapsed(start Height, delay uint64, now Height) bool {
	if now < start {
		return false
	}
	return uint64(now-start) >= delay
}
