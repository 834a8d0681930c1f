// Package bcd converts between binary values and packed binary-coded decimal bytes, the encoding used by the time and
// alarm registers of most real-time clock chips.
package bcd

// Decode converts a packed BCD byte (two decimal digits, one per nibble) to its binary value. Each nibble must be 0-9.
func Decode(b uint8) uint8 {
	return b - 6*(b>>4)
}

// Encode converts a binary value in the range 0-99 to packed BCD.
func Encode(v uint8) uint8 {
	return v + 6*(v/10)
}
