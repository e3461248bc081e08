// Package big contains a mostly API-compatible "math/big".Int that marshals to and from
// the canonical decimal string representation used by anonymous credential proofs.
package big

import (
	cryptorand "crypto/rand"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"math/big"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/cbor"
)

// Int is an API-compatible "math/big".Int that marshals to and from base 10 strings
// (text, JSON, XML) and to big-endian byte strings (CBOR).
// Only supports non-negative integers.
type Int big.Int

// FromDecimal parses s as a base 10 non-negative integer.
func FromDecimal(s string) (*Int, error) {
	i, ok := new(Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("%q is not a base 10 integer", s)
	}
	if i.Sign() < 0 {
		return nil, errors.Errorf("%q is negative", s)
	}
	return i, nil
}

func (i *Int) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(i.String(), start)
}

// UnmarshalXML implements xml.Unmarshaler, attempting to parse the text of the specified element
// as a base 10 integer.
func (i *Int) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	tmp := struct {
		Str string `xml:",chardata"`
	}{}
	if err := d.DecodeElement(&tmp, &start); err != nil {
		return err
	}
	if _, ok := i.SetString(tmp.Str, 10); !ok {
		return errors.New("XML element was not a base 10 integer")
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler, returning the base 10 representation of i.
func (i *Int) MarshalText() ([]byte, error) {
	if i.Sign() == -1 {
		return nil, errors.New("Marshaling negative integers is not supported")
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Int) UnmarshalText(b []byte) error {
	if _, ok := i.SetString(string(b), 10); !ok {
		return errors.Errorf("%q is not a base 10 integer", string(b))
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Both a quoted base 10 string and an
// unquoted JSON number are accepted.
func (i *Int) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty JSON value")
	}
	if b[0] != '"' { // Not a JSON string, decode as an ordinary base-10 "math.big".Int
		return json.Unmarshal(b, i.Go())
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return i.UnmarshalText([]byte(s))
}

// MarshalCBOR encodes i as a CBOR byte string holding its big-endian magnitude.
func (i *Int) MarshalCBOR() ([]byte, error) {
	if i.Sign() == -1 {
		return nil, errors.New("Marshaling negative integers is not supported")
	}
	return cbor.Marshal(i.Bytes())
}

// UnmarshalCBOR implements cbor.Unmarshaler, see MarshalCBOR.
func (i *Int) UnmarshalCBOR(data []byte) error {
	var bts []byte
	if err := cbor.Unmarshal(data, &bts); err != nil {
		return err
	}
	i.SetBytes(bts)
	return nil
}

// RandInt wraps "crypto/rand".Int:
// returns a uniform random value in [0, max). It panics if max <= 0.
func RandInt(rnd io.Reader, max *Int) (*Int, error) {
	i, err := cryptorand.Int(rnd, max.Go())
	return Convert(i), err
}

// Convert from a "math/big".Int
func Convert(x *big.Int) *Int {
	return (*Int)(x)
}

// Convert to a "math/big".Int
func (i *Int) Go() *big.Int {
	return (*big.Int)(i)
}

// "math/big".Int API
// We are liberal with using the conversion functions above; these are inlined by the compiler.

func NewInt(x int64) *Int { return Convert(big.NewInt(x)) }

func (i *Int) Format(s fmt.State, ch rune) { i.Go().Format(s, ch) }
func (i *Int) Bit(j int) uint              { return i.Go().Bit(j) }

// Bytes returns the minimal big-endian encoding of the absolute value of i; zero is empty.
func (i *Int) Bytes() []byte              { return i.Go().Bytes() }
func (i *Int) BitLen() int                { return i.Go().BitLen() }
func (i *Int) Int64() int64               { return i.Go().Int64() }
func (i *Int) IsInt64() bool              { return i.Go().IsInt64() }
func (i *Int) Sign() int                  { return i.Go().Sign() }
func (i *Int) Cmp(y *Int) int             { return i.Go().Cmp(y.Go()) }
func (i *Int) ProbablyPrime(n int) bool   { return i.Go().ProbablyPrime(n) }
func (i *Int) String() string             { return i.Go().String() }
func (i *Int) Text(base int) string       { return i.Go().Text(base) }
func (i *Int) SetInt64(x int64) *Int      { return Convert(i.Go().SetInt64(x)) }
func (i *Int) Set(x *Int) *Int            { return Convert(i.Go().Set(x.Go())) }
func (i *Int) Neg(x *Int) *Int            { return Convert(i.Go().Neg(x.Go())) }
func (i *Int) Add(x, y *Int) *Int         { return Convert(i.Go().Add(x.Go(), y.Go())) }
func (i *Int) Sub(x, y *Int) *Int         { return Convert(i.Go().Sub(x.Go(), y.Go())) }
func (i *Int) Mul(x, y *Int) *Int         { return Convert(i.Go().Mul(x.Go(), y.Go())) }
func (i *Int) Mod(x, y *Int) *Int         { return Convert(i.Go().Mod(x.Go(), y.Go())) }
func (i *Int) SetBytes(buf []byte) *Int   { return Convert(i.Go().SetBytes(buf)) }
func (i *Int) Lsh(x *Int, n uint) *Int    { return Convert(i.Go().Lsh(x.Go(), n)) }
func (i *Int) Rsh(x *Int, n uint) *Int    { return Convert(i.Go().Rsh(x.Go(), n)) }
func (i *Int) Exp(x, y, m *Int) *Int {
	return Convert(i.Go().Exp(x.Go(), y.Go(), m.Go()))
}
func (i *Int) GCD(x, y, a, b *Int) *Int {
	return Convert(i.Go().GCD(x.Go(), y.Go(), a.Go(), b.Go()))
}
func (i *Int) ModInverse(g, n *Int) *Int {
	return Convert(i.Go().ModInverse(g.Go(), n.Go()))
}
func (i *Int) SetString(s string, base int) (*Int, bool) {
	z, b := i.Go().SetString(s, base)
	return Convert(z), b
}
