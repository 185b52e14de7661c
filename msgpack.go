package bencode

import (
	"bytes"
	"fmt"
	"math"

	msgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// ToMsgpack converts v to msgpack. Byte strings become bin, dictionaries
// become maps with bin keys in ascending order.
func ToMsgpack(v Value) ([]byte, error) {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	var buf bytes.Buffer
	enc.Reset(&buf)
	if err := v.EncodeMsgpack(enc); err != nil {
		return nil, fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

// FromMsgpack converts a single msgpack value to a bencode value.
func FromMsgpack(data []byte) (Value, error) {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(bytes.NewReader(data))
	var v Value
	if err := v.DecodeMsgpack(dec); err != nil {
		return Value{}, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	return v, nil
}

// EncodeMsgpack implements the msgpack.CustomEncoder interface.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case IntegerKind:
		return enc.EncodeInt(v.num)
	case ByteStringKind:
		return enc.EncodeBytes([]byte(v.str))
	case ListKind:
		if err := enc.EncodeArrayLen(len(v.items)); err != nil {
			return err
		}
		for _, item := range v.items {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case DictionaryKind:
		if err := enc.EncodeMapLen(len(v.entries)); err != nil {
			return err
		}
		for _, e := range v.entries {
			if err := enc.EncodeBytes([]byte(e.Key)); err != nil {
				return err
			}
			if err := e.Value.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}
	return ErrInvalidValue
}

// DecodeMsgpack implements the msgpack.CustomDecoder interface.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}

	switch {
	case c == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		if u > math.MaxInt64 {
			return ErrIntegerOverflow
		}
		*v = Int64(int64(u))
	case msgpcode.IsFixedNum(c), c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32:
		n, err := dec.DecodeInt64()
		if err != nil {
			return err
		}
		*v = Int64(n)
	case msgpcode.IsString(c), msgpcode.IsBin(c):
		b, err := dec.DecodeBytes()
		if err != nil {
			return err
		}
		*v = Bytes(b)
	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		var items []Value
		for range n {
			var item Value
			if err := item.DecodeMsgpack(dec); err != nil {
				return err
			}
			items = append(items, item)
		}
		*v = newList(items)
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return err
		}
		entries := make([]Entry, 0, n)
		for range n {
			key, err := dec.DecodeBytes()
			if err != nil {
				return fmt.Errorf("failed to decode map key: %w", err)
			}
			var val Value
			if err := val.DecodeMsgpack(dec); err != nil {
				return err
			}
			entries = append(entries, Entry{Key: string(key), Value: val})
		}
		d, err := Dict(entries...)
		if err != nil {
			return err
		}
		*v = d
	default:
		return fmt.Errorf("msgpack code 0x%02x has no bencode counterpart", c)
	}
	return nil
}
