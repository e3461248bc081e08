package keystore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/clverify/clkeys"
	"github.com/sirupsen/logrus"
)

const (
	xmlKeyFile     = "PublicKey.xml"
	jsonKeyFile    = "PublicKey.json"
	attributesFile = "attributes.json"
)

// Directory loads keys lazily from a directory tree laid out as
//
//	<root>/<issuer_id>/<name>/<version>/PublicKey.xml (or PublicKey.json)
//	<root>/<issuer_id>/<name>/<version>/attributes.json
//
// where attributes.json holds the JSON array of the schema's attribute names.
// Loaded keys are cached. Directory is safe for concurrent use.
type Directory struct {
	root        string
	fast        []string
	fastEnabled bool

	mu    sync.RWMutex
	cache map[clkeys.SchemaKey]entry
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithFastExponentiation enables exponentiation tables on every loaded key for the
// named generators (S and Z if none are given).
func WithFastExponentiation(names ...string) DirectoryOption {
	return func(d *Directory) {
		d.fastEnabled = true
		d.fast = names
	}
}

func NewDirectory(root string, opts ...DirectoryOption) (*Directory, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapPrefix(err, "key directory", 0)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", root)
	}
	d := &Directory{root: root, cache: map[clkeys.SchemaKey]entry{}}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Directory) PublicKey(key clkeys.SchemaKey) (*clkeys.PublicKey, error) {
	e, err := d.get(key)
	if err != nil {
		return nil, err
	}
	return e.pk, nil
}

// AttributeNames returns a copy of the attribute names of the schema.
func (d *Directory) AttributeNames(key clkeys.SchemaKey) ([]string, error) {
	e, err := d.get(key)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), e.attrs...), nil
}

// Path returns the directory holding the files of the schema.
func (d *Directory) Path(key clkeys.SchemaKey) (string, error) {
	for _, part := range []string{key.IssuerID, key.Name, key.Version} {
		if part == "" || part == "." || part == ".." || filepath.Base(part) != part {
			return "", errors.WrapPrefix(ErrUnknownSchema, "invalid schema key "+key.String(), 0)
		}
	}
	return filepath.Join(d.root, key.IssuerID, key.Name, key.Version), nil
}

func (d *Directory) get(key clkeys.SchemaKey) (entry, error) {
	d.mu.RLock()
	e, ok := d.cache[key]
	d.mu.RUnlock()
	if ok {
		return e, nil
	}

	e, err := d.load(key)
	if err != nil {
		return entry{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.cache[key]; ok {
		return existing, nil
	}
	d.cache[key] = e
	return e, nil
}

func (d *Directory) load(key clkeys.SchemaKey) (entry, error) {
	dir, err := d.Path(key)
	if err != nil {
		return entry{}, err
	}

	var pk *clkeys.PublicKey
	for _, name := range []string{xmlKeyFile, jsonKeyFile} {
		pk, err = clkeys.NewPublicKeyFromFile(filepath.Join(dir, name))
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return entry{}, errors.WrapPrefix(err, key.String(), 0)
		}
	}
	if pk == nil {
		return entry{}, errors.WrapPrefix(ErrUnknownSchema, key.String(), 0)
	}

	bts, err := ioutil.ReadFile(filepath.Join(dir, attributesFile))
	if err != nil {
		return entry{}, errors.WrapPrefix(err, key.String(), 0)
	}
	var attrs []string
	if err = json.Unmarshal(bts, &attrs); err != nil {
		return entry{}, errors.WrapPrefix(err, key.String()+": "+attributesFile, 0)
	}
	if err = checkAttributes(pk, attrs); err != nil {
		return entry{}, errors.WrapPrefix(err, key.String(), 0)
	}

	if d.fastEnabled {
		if err = pk.EnableFastExponentiation(d.fast...); err != nil {
			return entry{}, errors.WrapPrefix(err, key.String(), 0)
		}
	}

	fields := logrus.Fields{"schema": key.String(), "attributes": len(attrs)}
	if fp, err := pk.Fingerprint(); err == nil {
		fields["fingerprint"] = fp
	}
	Logger.WithFields(fields).Debug("loaded public key")
	return entry{pk: pk, attrs: attrs}, nil
}
