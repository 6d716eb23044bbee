//go:build norangecheck

package errs

// Check is a no-op under the norangecheck build tag: release builds may
// elide precondition checking entirely.
func Check(cond bool, operation, detail string) {}
