package sz

// Compare compares a and b byte by byte. It returns -1, 0 or +1. When one
// is a prefix of the other the shorter sorts first.
func Compare(a, b Arg) int {
	return compareArgs(a, b, -1, false)
}

// CompareN is like Compare but looks at no more than n bytes.
func CompareN(a, b Arg, n int) int {
	return compareArgs(a, b, max(n, 0), false)
}

// CompareFold is like Compare but folds ASCII letters to lower case.
func CompareFold(a, b Arg) int {
	return compareArgs(a, b, -1, true)
}

// CompareFoldN is like CompareFold but looks at no more than n bytes.
func CompareFoldN(a, b Arg, n int) int {
	return compareArgs(a, b, max(n, 0), true)
}

// compareArgs compares at most n bytes, or everything if n is negative.
func compareArgs(a, b Arg, n int, fold bool) int {
	st := storeOf(a, b)
	s := coerce(st, a)
	defer release(s)
	t := coerce(st, b)
	defer release(t)

	return compareBytes(s.bytes(), t.bytes(), n, fold)
}

func compareBytes(x, y []byte, n int, fold bool) int {
	limit := min(len(x), len(y))
	if n >= 0 {
		limit = min(limit, n)
	}
	for i := 0; i < limit; i++ {
		c, d := x[i], y[i]
		if fold {
			c, d = lower(c), lower(d)
		}
		if c < d {
			return -1
		}
		if c > d {
			return 1
		}
	}
	if n >= 0 && limit >= n {
		return 0
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	default:
		return 0
	}
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
