package common

// WipeByteArray overwrites b with zeros. It is used on the access token as
// soon as the session holds its own copy. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
