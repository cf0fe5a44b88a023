// FILE: lixenwraith/localconfig/timing.go
package localconfig

import "time"

// Timing constants for file watching.
const (
	MinDebounce     = 10 * time.Millisecond  // Floor applied to WithDebounce
	DefaultDebounce = 500 * time.Millisecond // File change coalescence period
)
