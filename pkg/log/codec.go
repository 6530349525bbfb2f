package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// A .flog file is a bare sequence of CBOR records, one Event each, with no
// header or framing. Map keys are sorted so a record is byte-stable.
var (
	flogEnc = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	flogDec = mustDecMode(cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic("log: flog encoding: " + err.Error())
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic("log: flog decoding: " + err.Error())
	}
	return m
}

// EncodeEvent returns the .flog record for event.
func EncodeEvent(event Event) ([]byte, error) {
	return flogEnc.Marshal(event)
}

// DecodeEvent parses a single .flog record.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := flogDec.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewDecoder reads consecutive .flog records from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return flogDec.NewDecoder(r)
}
