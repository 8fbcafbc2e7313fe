//go:build !linux

package structhash

import "os"

// adviseSequential is a no-op where posix_fadvise is unavailable.
func adviseSequential(_ *os.File) {}
