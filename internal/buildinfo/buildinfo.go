// Package buildinfo holds the fixed identity of the running binary, used in
// the startup log line and in the _NET_SUPPORTING_WM_CHECK name.
package buildinfo

import "fmt"

const (
	Name    = "marswm"
	Version = "0.1.0"
)

// Summary is the identity string logged once at startup.
func Summary() string {
	return fmt.Sprintf("%s v%s", Name, Version)
}
