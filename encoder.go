package bencode

import "strconv"

// Encode returns the canonical encoding of v.
// It panics if v is the zero Value.
func Encode(v Value) []byte {
	return Append(make([]byte, 0, encodedLen(v)), v)
}

// Append appends the canonical encoding of v to dst and returns the extended slice.
// It panics if v is the zero Value.
func Append(dst []byte, v Value) []byte {
	switch v.kind {
	case IntegerKind:
		dst = append(dst, 'i')
		dst = strconv.AppendInt(dst, v.num, 10)
		return append(dst, 'e')
	case ByteStringKind:
		return appendString(dst, v.str)
	case ListKind:
		dst = append(dst, 'l')
		for _, item := range v.items {
			dst = Append(dst, item)
		}
		return append(dst, 'e')
	case DictionaryKind:
		// Entries are kept sorted by construction.
		dst = append(dst, 'd')
		for _, e := range v.entries {
			dst = appendString(dst, e.Key)
			dst = Append(dst, e.Value)
		}
		return append(dst, 'e')
	}
	panic(ErrInvalidValue)
}

func appendString(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, ':')
	return append(dst, s...)
}

func encodedLen(v Value) int {
	switch v.kind {
	case IntegerKind:
		return 2 + decimalLen(v.num)
	case ByteStringKind:
		return stringLen(v.str)
	case ListKind:
		n := 2
		for _, item := range v.items {
			n += encodedLen(item)
		}
		return n
	case DictionaryKind:
		n := 2
		for _, e := range v.entries {
			n += stringLen(e.Key) + encodedLen(e.Value)
		}
		return n
	}
	return 0
}

func stringLen(s string) int {
	return decimalLen(int64(len(s))) + 1 + len(s)
}

func decimalLen(n int64) int {
	l := 1
	u := uint64(n)
	if n < 0 {
		l++
		u = -u
	}
	for u >= 10 {
		u /= 10
		l++
	}
	return l
}
