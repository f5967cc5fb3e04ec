package utils

import (
	"os"
)

// PathExists reports whether path can be stat'ed.
func PathExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

// GetHostname returns the host name, or "" when it cannot be determined.
func GetHostname() string {
	if hostname, err := os.Hostname(); err == nil {
		return hostname
	}
	return ""
}
