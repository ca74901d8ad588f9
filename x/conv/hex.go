package conv

// U16Hex writes 4-digit uppercase hex without 0x, zero-padded, into the
// tail of buf. Register dumps use it; buf must hold at least 4 bytes.
func U16Hex(buf []byte, n uint16) []byte {
	if len(buf) < 4 {
		return buf[:0]
	}
	const hexd = "0123456789ABCDEF"
	i := len(buf)
	for j := 0; j < 4; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
