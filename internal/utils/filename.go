package utils

import "strings"

// reservedFilenameChars are the characters Windows refuses in file names.
const reservedFilenameChars = `<>:"/\|?*`

// SanitizeFilename replaces every reserved character in name with an underscore.
// Every other byte is kept as is, so unicode and even invalid UTF-8 pass through.
// The reserved set is ASCII and never occurs inside a multi-byte UTF-8 sequence.
func SanitizeFilename(name string) string {
	b := []byte(name)
	for i, c := range b {
		if strings.IndexByte(reservedFilenameChars, c) >= 0 {
			b[i] = '_'
		}
	}
	return string(b)
}
