package testutil

import "github.com/ehsanranjbar/bencode"

// SampleValue returns a nested value that exercises every variant.
func SampleValue() bencode.Value {
	return bencode.MustDict(
		bencode.Entry{Key: "name", Value: bencode.String("sample")},
		bencode.Entry{Key: "length", Value: bencode.Int64(-42)},
		bencode.Entry{Key: "blob", Value: bencode.Bytes([]byte{0x00, 0xff, 'e', ':'})},
		bencode.Entry{Key: "tags", Value: bencode.List(
			bencode.String("spam"),
			bencode.Int64(0),
			bencode.List(),
			bencode.MustDict(),
		)},
		bencode.Entry{Key: "nested", Value: bencode.MustDict(
			bencode.Entry{Key: "cow", Value: bencode.String("moo")},
			bencode.Entry{Key: "", Value: bencode.String("")},
		)},
	)
}

// SampleEncoding is the canonical encoding of SampleValue.
const SampleEncoding = "d" +
	"4:blob4:\x00\xffe:" +
	"6:lengthi-42e" +
	"4:name6:sample" +
	"6:nestedd0:0:3:cow3:mooe" +
	"4:tagsl4:spami0eledee" +
	"e"
