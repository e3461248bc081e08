// Package cbor encodes and decodes proofs and keys as CBOR by wrapping
// github.com/fxamacker/cbor.
//
// Encoding follows Core Deterministic Encoding (RFC 8949 section 4.2), so equal
// values always encode to equal bytes. Decoding rejects duplicate map keys and
// indefinite lengths.
package cbor

import (
	"github.com/fxamacker/cbor/v2" // imports as cbor
)

const MaxArrayElements = 1024 * 64
const MaxMapPairs = 1024 * 64

var (
	encOptions = cbor.EncOptions{
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,

		// We don't use tags
		TagsMd: cbor.TagsForbidden,
	}

	decOptions = cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxArrayElements,
		MaxMapPairs:      MaxMapPairs,
		TagsMd:           cbor.TagsForbidden,
		TimeTag:          cbor.DecTagIgnored,
	}

	encMode       cbor.EncMode
	decMode       cbor.DecMode
	strictDecMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
	strict := decOptions
	strict.ExtraReturnErrors = cbor.ExtraDecErrorUnknownField
	if strictDecMode, err = strict.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal encodes src into a CBOR-encoded byte slice.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes CBOR in data into dst, ignoring unknown struct fields.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}

// UnmarshalStrict is like Unmarshal but fails on map keys that match no struct field.
func UnmarshalStrict(data []byte, dst interface{}) error {
	return strictDecMode.Unmarshal(data, dst)
}
