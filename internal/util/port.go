package util

import "fmt"

// TCP port bounds accepted for a Port directive.
const (
	MinPort = 1
	MaxPort = 65535
)

// ValidatePort reports an error when port falls outside the TCP range.
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("port %d out of range (%d-%d)", port, MinPort, MaxPort)
	}
	return nil
}
