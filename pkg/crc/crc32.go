// Package crc implements the IEEE CRC-32 checksum used by PNG chunks
// (ISO 3309 / ITU-T V.42, reflected polynomial 0xEDB88320).
package crc

// Polynomial is the reversed IEEE polynomial.
const Polynomial = 0xEDB88320

var table = makeTable()

func makeTable() [256]uint32 {
	var t [256]uint32
	for n := range t {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = Polynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[n] = c
	}
	return t
}

// Update returns the result of adding the bytes in b to crc.
// Checksum(a+b) == Update(Checksum(a), b).
func Update(crc uint32, b []byte) uint32 {
	crc = ^crc
	for _, v := range b {
		crc = table[byte(crc)^v] ^ (crc >> 8)
	}
	return ^crc
}

// Checksum returns the CRC-32 of b.
func Checksum(b []byte) uint32 {
	return Update(0, b)
}
