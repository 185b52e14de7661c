package bencode

import (
	"github.com/ehsanranjbar/bencode/codec"
)

var _ codec.Codec[Value] = (*Codec)(nil)

// Codec encodes values canonically and decodes buffers holding exactly one value.
type Codec struct {
	dec *Decoder
}

// NewCodec creates a new Codec whose decoding follows the given options.
func NewCodec(opts ...DecoderOption) *Codec {
	return &Codec{dec: NewDecoder(opts...)}
}

// Encode implements the codec.Encoder interface.
func (c *Codec) Encode(v Value) ([]byte, error) {
	if !v.encodable() {
		return nil, ErrInvalidValue
	}
	return Encode(v), nil
}

// Decode implements the codec.Decoder interface. The whole of bz must be
// a single value.
func (c *Codec) Decode(bz []byte) (Value, error) {
	return decodeAll(c.dec, bz)
}

func decodeAll(dec *Decoder, bz []byte) (Value, error) {
	v, n, err := dec.Decode(bz)
	if err != nil {
		return Value{}, err
	}
	if n != len(bz) {
		return Value{}, &DecodeError{Kind: ErrTrailingData, Offset: n}
	}
	return v, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (v Value) MarshalBinary() ([]byte, error) {
	if !v.encodable() {
		return nil, ErrInvalidValue
	}
	return Encode(v), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// data must hold exactly one strictly canonical value.
func (v *Value) UnmarshalBinary(data []byte) error {
	dv, err := decodeAll(defaultDecoder, data)
	if err != nil {
		return err
	}
	*v = dv
	return nil
}
