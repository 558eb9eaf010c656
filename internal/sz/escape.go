package sz

const hexDigits = "0123456789ABCDEF"

// Encode returns a printable rendering of a. Printable ASCII is kept as is,
// a backslash becomes \\, the control characters \a \b \f \n \r \t use their
// C escapes and every other byte is written as \xHH.
func Encode(a Arg) string {
	s := coerce(storeOf(a), a)
	defer release(s)

	return string(appendEncoded(nil, s.bytes()))
}

// AppendEncoded appends the escaped form of src to s.
func (s *Sz) AppendEncoded(src Arg) error {
	s.check()
	a := coerce(s.store, src)
	defer release(a)

	return s.splice(s.length, 0, appendEncoded(nil, a.bytes()))
}

func encodedLen(b []byte) int {
	n := 0
	for _, c := range b {
		switch {
		case c == '\\':
			n += 2
		case c >= 0x20 && c < 0x7f:
			n++
		case controlEscape(c) != 0:
			n += 2
		default:
			n += 4
		}
	}
	return n
}

func appendEncoded(dst, b []byte) []byte {
	if dst == nil {
		dst = make([]byte, 0, encodedLen(b))
	}
	for _, c := range b {
		switch {
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20 && c < 0x7f:
			dst = append(dst, c)
		case controlEscape(c) != 0:
			dst = append(dst, '\\', controlEscape(c))
		default:
			dst = append(dst, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}
	return dst
}

// controlEscape returns the escape letter for c, or 0.
func controlEscape(c byte) byte {
	switch c {
	case '\a':
		return 'a'
	case '\b':
		return 'b'
	case '\f':
		return 'f'
	case '\n':
		return 'n'
	case '\r':
		return 'r'
	case '\t':
		return 't'
	}
	return 0
}

// Decode reverses Encode. Besides the sequences Encode produces it accepts
// \x with one or two hex digits of either case and \NNN octal with up to
// three digits. A malformed sequence yields a *DecodeError and no string.
func Decode(a Arg) (*Sz, error) {
	return storeOf(a).Decode(a)
}

// Decode decodes a into a new owned root of the store.
func (st *Store) Decode(a Arg) (*Sz, error) {
	s := coerce(st, a)
	defer release(s)

	b := s.bytes()
	n := 0
	for i := 0; i < len(b); n++ {
		if b[i] != '\\' {
			i++
			continue
		}
		_, w, err := unescape(b, i)
		if err != nil {
			return nil, err
		}
		i += w
	}

	out, err := st.New(n)
	if err != nil {
		return nil, err
	}
	buf := out.data
	for i, j := 0, 0; i < len(b); j++ {
		if b[i] != '\\' {
			buf[j] = b[i]
			i++
			continue
		}
		c, w, _ := unescape(b, i)
		buf[j] = c
		i += w
	}
	return out, nil
}

// unescape decodes the sequence starting with the backslash at b[i]. It
// returns the byte and the number of input bytes consumed.
func unescape(b []byte, i int) (byte, int, error) {
	if i+1 >= len(b) {
		return 0, 0, &DecodeError{Offset: i, Seq: string(b[i:]), Reason: "trailing backslash"}
	}
	switch c := b[i+1]; c {
	case 'a':
		return '\a', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case '\\':
		return '\\', 2, nil
	case 'x':
		v, j := 0, i+2
		for j < len(b) && j < i+4 {
			d, ok := hexValue(b[j])
			if !ok {
				break
			}
			v = v<<4 | d
			j++
		}
		if j == i+2 {
			return 0, 0, &DecodeError{Offset: i, Seq: string(b[i:j]), Reason: "missing hex digits"}
		}
		return byte(v), j - i, nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v, j := 0, i+1
		for j < len(b) && j < i+4 && b[j] >= '0' && b[j] <= '7' {
			v = v<<3 | int(b[j]-'0')
			j++
		}
		if v > 0xff {
			return 0, 0, &DecodeError{Offset: i, Seq: string(b[i:j]), Reason: "octal value out of range"}
		}
		return byte(v), j - i, nil
	default:
		return 0, 0, &DecodeError{Offset: i, Seq: string(b[i : i+2]), Reason: "unknown escape"}
	}
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
