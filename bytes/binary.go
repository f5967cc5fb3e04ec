package bytes

import (
	"fmt"
)

// ByteToBinaryString renders b as eight binary digits, eg. 00000010.
func ByteToBinaryString(b byte) string {
	return fmt.Sprintf("%08b", b)
}
