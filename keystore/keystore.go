// Package keystore provides sources of issuer public keys and schema attribute
// names, for use as a clverify.KeyProvider.
package keystore

import (
	"sync"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.StandardLogger()

// ErrUnknownSchema is returned for schema keys of which no public key is known.
var ErrUnknownSchema = errors.New("unknown schema")

type entry struct {
	pk    *clkeys.PublicKey
	attrs []string
}

// Memory is an in-memory store of keys, safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[clkeys.SchemaKey]entry
}

func NewMemory() *Memory {
	return &Memory{entries: map[clkeys.SchemaKey]entry{}}
}

// Add stores the public key and the ordered attribute names of a schema, replacing
// any previous entry. The key must not be modified afterwards.
func (m *Memory) Add(key clkeys.SchemaKey, pk *clkeys.PublicKey, attrs []string) error {
	if pk == nil {
		return errors.Errorf("nil public key for %s", key)
	}
	if err := checkAttributes(pk, attrs); err != nil {
		return errors.WrapPrefix(err, key.String(), 0)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{pk: pk, attrs: append([]string(nil), attrs...)}
	return nil
}

// Remove deletes the entry of the schema, if any.
func (m *Memory) Remove(key clkeys.SchemaKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *Memory) get(key clkeys.SchemaKey) (entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return entry{}, errors.WrapPrefix(ErrUnknownSchema, key.String(), 0)
	}
	return e, nil
}

func (m *Memory) PublicKey(key clkeys.SchemaKey) (*clkeys.PublicKey, error) {
	e, err := m.get(key)
	if err != nil {
		return nil, err
	}
	return e.pk, nil
}

// AttributeNames returns a copy of the attribute names of the schema.
func (m *Memory) AttributeNames(key clkeys.SchemaKey) ([]string, error) {
	e, err := m.get(key)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), e.attrs...), nil
}

// checkAttributes requires attrs to be unique names, each with a generator in pk.
func checkAttributes(pk *clkeys.PublicKey, attrs []string) error {
	seen := make(map[string]struct{}, len(attrs))
	for _, attr := range attrs {
		if _, ok := seen[attr]; ok {
			return errors.Errorf("duplicate attribute %s", attr)
		}
		seen[attr] = struct{}{}
		if pk.R[attr] == nil {
			return errors.Errorf("public key has no generator for attribute %s", attr)
		}
	}
	return nil
}
