// Package common holds small helpers shared by the client packages.
package common

// WipeByteArray overwrites b with zeros. It is used to drop passwords read
// from the terminal as soon as they have been handed to the API.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipedString copies b into a string and wipes b.
func WipedString(b []byte) string {
	s := string(b)
	WipeByteArray(b)
	return s
}
