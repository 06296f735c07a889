//go:build !linux

package netstate

// New returns a monitor that always reports connected on platforms without
// a supported connectivity service.
func New() Monitor {
	return Always()
}
