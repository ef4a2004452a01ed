//go:build !statsview

package statsview

import (
	"io"
)

// Launch is a no-op unless the statsview build constraint is present.
func Launch(output io.Writer) {
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
