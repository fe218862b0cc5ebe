package iso8583

const hexTableUpper = "0123456789ABCDEF"

// encodeHexUpper converts src to uppercase hex and writes it to dst.
func encodeHexUpper(dst, src []byte) {
	for i, v := range src {
		dst[i*2] = hexTableUpper[v>>4]
		dst[i*2+1] = hexTableUpper[v&0x0f]
	}
}

// writeIntToASCII formats val into buf as exactly len(buf) zero-padded
// decimal digits.
func writeIntToASCII(buf []byte, val int) {
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(val%10 + '0')
		val /= 10
	}
}

// parseASCIIToInt parses ASCII digits without allocating.
// ok is false if any byte is not a digit.
func parseASCIIToInt(b []byte) (n int, ok bool) {
	for _, ch := range b {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
