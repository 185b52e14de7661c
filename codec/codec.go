package codec

import (
	"encoding"
	"reflect"
)

// Codec is an interface for encoding and decoding values.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Encoder is an interface for encoding values.
type Encoder[T any] interface {
	Encode(v T) ([]byte, error)
}

// Decoder is an interface for decoding values.
type Decoder[T any] interface {
	Decode(bz []byte) (T, error)
}

// CodecFor returns the codec for the given type, or nil if there is none.
func CodecFor[T any]() Codec[T] {
	rt := reflect.TypeFor[T]()
	switch rt {
	case reflect.TypeFor[string]():
		return any(StringCodec{}).(Codec[T])
	case reflect.TypeFor[[]byte]():
		return any(BytesCodec{}).(Codec[T])
	}

	if rt.Implements(reflect.TypeFor[encoding.BinaryMarshaler]()) &&
		reflect.TypeFor[*T]().Implements(reflect.TypeFor[encoding.BinaryUnmarshaler]()) {
		return BinaryCodec[T]{}
	}

	return nil
}

// StringCodec is a codec for strings.
type StringCodec struct{}

// Encode encodes the given string to bytes.
func (StringCodec) Encode(v string) ([]byte, error) {
	return []byte(v), nil
}

// Decode decodes the given bytes to a string.
func (StringCodec) Decode(bz []byte) (string, error) {
	return string(bz), nil
}

// BytesCodec is a codec for byte slices.
type BytesCodec struct{}

// Encode encodes the given byte slice to bytes.
func (BytesCodec) Encode(v []byte) ([]byte, error) {
	return v, nil
}

// Decode decodes the given bytes to a byte slice. The result is a copy.
func (BytesCodec) Decode(bz []byte) ([]byte, error) {
	return append([]byte(nil), bz...), nil
}

// BinaryCodec is a codec for types that implement encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
type BinaryCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (BinaryCodec[T]) Encode(v T) ([]byte, error) {
	return any(v).(encoding.BinaryMarshaler).MarshalBinary()
}

// Decode decodes the given bytes to a value.
func (BinaryCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	err := any(&v).(encoding.BinaryUnmarshaler).UnmarshalBinary(bz)
	return v, err
}
