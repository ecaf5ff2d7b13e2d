package utils

import "log"

// GoSafe runs fn in a goroutine and recovers from panics so a single
// misbehaving handler cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic in goroutine: %v", r)
			}
		}()
		fn()
	}()
}
