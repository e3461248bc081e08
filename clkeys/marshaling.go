package clkeys

import (
	"encoding/xml"
	"strings"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/big"
)

// Helper structs for (un)marshaling
type (
	// xmlBases is an auxiliary struct to encode/decode the attribute generators,
	// which are represented in XML as a list of elements carrying the attribute
	// name as an attribute.
	xmlBases struct {
		Num   int        `xml:"num,attr"`
		Bases []*xmlBase `xml:"Base"`
	}

	xmlBase struct {
		Name   string `xml:"name,attr"`
		Bigint string `xml:",chardata"`
	}
)

// UnmarshalXML is an internal function to simplify decoding a PublicKey from
// XML.
func (bl *Bases) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var t xmlBases

	if err := d.DecodeElement(&t, &start); err != nil {
		return err
	}
	if t.Num != len(t.Bases) {
		return errors.Errorf("expected %d bases, found %d", t.Num, len(t.Bases))
	}

	m := make(Bases, len(t.Bases))
	for _, b := range t.Bases {
		if b.Name == "" {
			return errors.New("base without attribute name")
		}
		if _, ok := m[b.Name]; ok {
			return errors.Errorf("duplicate base for attribute %s", b.Name)
		}
		i, err := big.FromDecimal(strings.TrimSpace(b.Bigint))
		if err != nil {
			return errors.WrapPrefix(err, "base "+b.Name, 0)
		}
		m[b.Name] = i
	}

	*bl = m
	return nil
}

// MarshalXML is an internal function to simplify encoding a PublicKey to XML.
// Bases are written in sorted attribute order.
func (bl Bases) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	attrs := bl.Attributes()
	bases := make([]*xmlBase, len(attrs))

	for i, attr := range attrs {
		bases[i] = &xmlBase{
			Name:   attr,
			Bigint: bl[attr].String(),
		}
	}

	t := xmlBases{
		Num:   len(bases),
		Bases: bases,
	}
	return e.EncodeElement(t, start)
}
