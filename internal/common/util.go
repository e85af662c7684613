package common

// WipeByteArray overwrites the slice contents with zeros. Used to clear
// plaintext passwords from memory once they have been consumed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
