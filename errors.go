package bencode

import "fmt"

// ErrorKind classifies a decoding failure. Each kind is itself an error so
// it can be matched with errors.Is.
type ErrorKind uint8

const (
	// ErrUnexpectedEndOfInput means the input ended inside a value.
	ErrUnexpectedEndOfInput ErrorKind = iota + 1
	// ErrInvalidLeadByte means a value starts with a byte other than i, l, d or a digit.
	ErrInvalidLeadByte
	// ErrInvalidIntegerFormat means an integer is empty, has leading zeros, is -0 or holds a non-digit.
	ErrInvalidIntegerFormat
	// ErrInvalidLengthPrefix means a byte string length has a leading zero or is not followed by ':'.
	ErrInvalidLengthPrefix
	// ErrInvalidDictionaryKeyType means a dictionary key is not a byte string.
	ErrInvalidDictionaryKeyType
	// ErrUnsortedOrDuplicateKeys means dictionary keys are out of order or repeated.
	ErrUnsortedOrDuplicateKeys
	// ErrIntegerOverflow means an integer does not fit in 64 bits.
	ErrIntegerOverflow
	// ErrNestingTooDeep means the input nests deeper than the decoder allows.
	ErrNestingTooDeep
	// ErrTrailingData means bytes remain after a complete value.
	ErrTrailingData
)

// Error implements the error interface.
func (k ErrorKind) Error() string {
	switch k {
	case ErrUnexpectedEndOfInput:
		return "unexpected end of input"
	case ErrInvalidLeadByte:
		return "invalid lead byte"
	case ErrInvalidIntegerFormat:
		return "invalid integer format"
	case ErrInvalidLengthPrefix:
		return "invalid length prefix"
	case ErrInvalidDictionaryKeyType:
		return "dictionary key is not a byte string"
	case ErrUnsortedOrDuplicateKeys:
		return "unsorted or duplicate dictionary keys"
	case ErrIntegerOverflow:
		return "integer overflows int64"
	case ErrNestingTooDeep:
		return "nesting too deep"
	case ErrTrailingData:
		return "trailing data after value"
	}
	return fmt.Sprintf("unknown error kind %d", uint8(k))
}

// DecodeError reports the first structural violation found in the input
// and the byte offset at which it was detected.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
}

func newDecodeError(kind ErrorKind, offset int) error {
	return &DecodeError{Kind: kind, Offset: offset}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Kind.Error(), e.Offset)
}

// Unwrap returns the error kind.
func (e *DecodeError) Unwrap() error {
	return e.Kind
}
