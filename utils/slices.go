package utils

// StringInSlice checks whether a string is in a slice of strings.
func StringInSlice(s string, arr []string) bool {
	for _, item := range arr {
		if item == s {
			return true
		}
	}
	return false
}
