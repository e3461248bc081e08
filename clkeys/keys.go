// Package clkeys contains the issuer's CL public key as consumed by the proof verifier,
// together with the identifier under which it is published.
package clkeys

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bwesterb/go-exptable"
	"github.com/multiformats/go-multihash"
	"github.com/privacybydesign/clverify/big"
	"github.com/privacybydesign/clverify/cbor"

	"github.com/go-errors/errors"
)

type (
	// PublicKey represents an issuer's CL public key for one schema.
	PublicKey struct {
		XMLName xml.Name `xml:"IssuerPublicKey" json:"-" cbor:"-"`
		N       *big.Int `xml:"Elements>n" json:"n"`         // Modulus n
		S       *big.Int `xml:"Elements>S" json:"s"`         // Generator S
		Z       *big.Int `xml:"Elements>Z" json:"z"`         // Generator Z
		Rms     *big.Int `xml:"Elements>Rms" json:"rms"`     // Generator for the master secret
		Rctxt   *big.Int `xml:"Elements>Rctxt" json:"rctxt"` // Generator for the context attribute
		R       Bases    `xml:"Elements>Bases" json:"r"`     // One generator per attribute name

		tables map[string]*exptable.Table
	}

	// Bases maps attribute names to their generators.
	Bases map[string]*big.Int

	// SchemaKey identifies a credential schema of a particular issuer;
	// the issuer publishes one public key per schema key.
	SchemaKey struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		IssuerID string `json:"issue_id"`
	}
)

const (
	//XMLHeader can be a used as the XML header when writing keys in XML format.
	XMLHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n"

	// Names of the fixed generators, as used by Base and Exp.
	BaseS     = "S"
	BaseZ     = "Z"
	BaseRms   = "Rms"
	BaseRctxt = "Rctxt"

	attrPrefix = "R_"

	// exptable window size, see EnableFastExponentiation.
	tableWindow = 7
)

func (k SchemaKey) String() string {
	return k.IssuerID + "/" + k.Name + "/" + k.Version
}

// AttributeBase returns the name under which Base and Exp know the generator of the given attribute.
func AttributeBase(attr string) string {
	return attrPrefix + attr
}

// NewPublicKey creates and returns a new public key based on the provided parameters.
func NewPublicKey(N, S, Z, Rms, Rctxt *big.Int, R map[string]*big.Int) (*PublicKey, error) {
	pk := &PublicKey{N: N, S: S, Z: Z, Rms: Rms, Rctxt: Rctxt, R: R}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return pk, nil
}

// NewPublicKeyFromBytes creates a new issuer public key using the XML data
// provided.
func NewPublicKeyFromBytes(bts []byte) (*PublicKey, error) {
	pubk := &PublicKey{}
	if err := xml.Unmarshal(bts, pubk); err != nil {
		return nil, err
	}
	if err := pubk.Validate(); err != nil {
		return nil, err
	}
	return pubk, nil
}

func NewPublicKeyFromXML(xmlInput string) (*PublicKey, error) {
	return NewPublicKeyFromBytes([]byte(xmlInput))
}

// NewPublicKeyFromJSON creates a new issuer public key from its JSON representation,
// in which all numbers are base 10 strings:
//
//	{"n": "...", "s": "...", "z": "...", "rms": "...", "rctxt": "...", "r": {"age": "...", ...}}
func NewPublicKeyFromJSON(bts []byte) (*PublicKey, error) {
	pubk := &PublicKey{}
	if err := json.Unmarshal(bts, pubk); err != nil {
		return nil, err
	}
	if err := pubk.Validate(); err != nil {
		return nil, err
	}
	return pubk, nil
}

// NewPublicKeyFromFile creates a new issuer public key from a file, which is parsed
// as JSON if its name ends in .json and as XML otherwise.
func NewPublicKeyFromFile(filename string) (*PublicKey, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return NewPublicKeyFromJSON(b)
	}
	return NewPublicKeyFromBytes(b)
}

// Validate checks that the modulus is present and that every generator is a unit
// modulo n, so that all inverses computed by the verifier exist.
func (pubk *PublicKey) Validate() error {
	if pubk.N == nil || pubk.N.Sign() <= 0 {
		return errors.New("public key has no modulus")
	}
	if len(pubk.R) == 0 {
		return errors.New("public key has no attribute generators")
	}
	one := big.NewInt(1)
	for _, name := range pubk.Names() {
		base := pubk.Base(name)
		if base == nil {
			return errors.Errorf("public key is missing generator %s", name)
		}
		if base.Sign() <= 0 || base.Cmp(pubk.N) >= 0 {
			return errors.Errorf("generator %s is not in Z_n", name)
		}
		if new(big.Int).GCD(nil, nil, base, pubk.N).Cmp(one) != 0 {
			return errors.Errorf("generator %s is not invertible modulo n", name)
		}
	}
	return nil
}

// WriteTo writes the XML-serialized public key to the given writer.
func (pubk *PublicKey) WriteTo(writer io.Writer) (int64, error) {
	// Write the standard XML header
	numHeaderBytes, err := writer.Write([]byte(XMLHeader))
	if err != nil {
		return 0, err
	}

	// And the actual XML body (with indentation)
	b, err := xml.MarshalIndent(pubk, "", "   ")
	if err != nil {
		return int64(numHeaderBytes), err
	}
	numBodyBytes, err := writer.Write(b)
	return int64(numHeaderBytes + numBodyBytes), err
}

// WriteJSON writes the public key in the JSON representation read by NewPublicKeyFromJSON.
func (pubk *PublicKey) WriteJSON(writer io.Writer) (int64, error) {
	b, err := json.MarshalIndent(pubk, "", "  ")
	if err != nil {
		return 0, err
	}
	n, err := writer.Write(append(b, '\n'))
	return int64(n), err
}

// WriteToFile writes the public key to filename, as JSON if the name ends in .json
// and as XML otherwise. An existing file is only replaced if overwrite is set.
func (pubk *PublicKey) WriteToFile(filename string, overwrite bool) (int64, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(filename, flags, 0644)
	if err != nil {
		return 0, err
	}

	var n int64
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		n, err = pubk.WriteJSON(f)
	} else {
		n, err = pubk.WriteTo(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Fingerprint returns the base58 sha2-256 multihash of the deterministic CBOR
// encoding of the key's numbers.
func (pubk *PublicKey) Fingerprint() (string, error) {
	bts, err := cbor.Marshal(pubk)
	if err != nil {
		return "", err
	}
	mh, err := multihash.Sum(bts, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return mh.B58String(), nil
}

// EnableFastExponentiation precomputes exponentiation tables for the named
// fixed generators (S and Z if none are given). It must be called before the key
// is shared between goroutines; afterwards the key is read-only.
func (pubk *PublicKey) EnableFastExponentiation(names ...string) error {
	if len(names) == 0 {
		names = []string{BaseS, BaseZ}
	}
	tables := make(map[string]*exptable.Table, len(names)+len(pubk.tables))
	for name, t := range pubk.tables {
		tables[name] = t
	}
	for _, name := range names {
		base := pubk.Base(name)
		if base == nil {
			return errors.Errorf("unknown generator %s", name)
		}
		if _, ok := tables[name]; ok {
			continue
		}
		t := &exptable.Table{}
		t.Compute(base.Go(), pubk.N.Go(), tableWindow)
		tables[name] = t
	}
	pubk.tables = tables
	return nil
}

// FastExponentiation reports whether an exponentiation table exists for the named generator.
func (pubk *PublicKey) FastExponentiation(name string) bool {
	_, ok := pubk.tables[name]
	return ok
}

// Base returns the generator with the given name: one of BaseS, BaseZ, BaseRms,
// BaseRctxt, or AttributeBase(attr). It returns nil for unknown names.
func (pubk *PublicKey) Base(name string) *big.Int {
	switch name {
	case BaseS:
		return pubk.S
	case BaseZ:
		return pubk.Z
	case BaseRms:
		return pubk.Rms
	case BaseRctxt:
		return pubk.Rctxt
	}
	if strings.HasPrefix(name, attrPrefix) {
		return pubk.R[name[len(attrPrefix):]]
	}
	return nil
}

// Exp sets ret to base^exp mod n for the named generator, using a precomputed table
// when one is available and exp is smaller than the modulus. It returns false if
// the generator does not exist.
func (pubk *PublicKey) Exp(ret *big.Int, name string, exp *big.Int) bool {
	base := pubk.Base(name)
	if base == nil {
		return false
	}
	if t, ok := pubk.tables[name]; ok && exp.Sign() >= 0 && exp.BitLen() < pubk.N.BitLen() {
		t.Exp(ret.Go(), exp.Go())
		return true
	}
	ret.Exp(base, exp, pubk.N)
	return true
}

// Names returns the names of all generators of the key, attribute generators sorted.
func (pubk *PublicKey) Names() []string {
	names := []string{BaseS, BaseZ, BaseRms, BaseRctxt}
	for _, attr := range pubk.R.Attributes() {
		names = append(names, AttributeBase(attr))
	}
	return names
}

// Attributes returns the attribute names in sorted order.
func (bl Bases) Attributes() []string {
	attrs := make([]string, 0, len(bl))
	for attr := range bl {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}
