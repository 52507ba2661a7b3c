package models

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/mandelsoft/goutils/errors"
	"github.com/modern-go/reflect2"
	"sigs.k8s.io/yaml"
)

const KIND_MODELTYPE = "model type"

// ReservedRunes are used by the textual chain notation
// and are therefore not allowed in type names.
const ReservedRunes = "()[],=@/\"'"

// Scheme is a set of model types mapping type names to
// Go types. It is used to create, decode and copy models.
type Scheme interface {
	Register(name string, proto Model) error

	TypeNames() []string
	HasType(typ string) bool
	CreateModel(typ string, init ...Initializer) (Model, error)

	// Configure creates a model of the given type and applies
	// the given hyperparameters.
	Configure(typ string, params map[string]interface{}) (Model, error)

	Decode(data []byte) (Model, error)
	Encode(m Model) ([]byte, error)

	// Copy provides a deep copy of a model.
	Copy(m Model) (Model, error)
}

type scheme struct {
	lock  sync.RWMutex
	types map[string]reflect.Type
}

var _ Scheme = (*scheme)(nil)

func NewScheme() Scheme {
	return &scheme{types: map[string]reflect.Type{}}
}

func (s *scheme) Register(name string, proto Model) error {
	if name == "" {
		return errors.New("model type name must not be empty")
	}
	if strings.ContainsAny(name, ReservedRunes) || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.Newf("invalid model type name %q", name)
	}
	if reflect2.IsNil(proto) {
		return errors.Newf("proto type for %s must not be nil", name)
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Pointer {
		return errors.Newf("proto type for %s must be pointer", name)
	}
	t = t.Elem()
	if t.Kind() != reflect.Struct {
		return errors.Newf("proto type for %s must be pointer to struct", name)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.types[name] = t
	log.Trace("registered model type {{type}}", "type", name, "gotype", t.String())
	return nil
}

func (s *scheme) HasType(typ string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.types[typ] != nil
}

func (s *scheme) TypeNames() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *scheme) CreateModel(typ string, init ...Initializer) (Model, error) {
	s.lock.RLock()
	t := s.types[typ]
	s.lock.RUnlock()

	if t == nil {
		return nil, errors.ErrNotFound(KIND_MODELTYPE, typ)
	}

	m := reflect.New(t).Interface().(Model)
	m.SetType(typ)
	for _, i := range init {
		i(m)
	}
	return m, nil
}

func (s *scheme) Configure(typ string, params map[string]interface{}) (Model, error) {
	if len(params) == 0 {
		return s.CreateModel(typ)
	}
	if !s.HasType(typ) {
		return nil, errors.ErrNotFound(KIND_MODELTYPE, typ)
	}
	doc := map[string]interface{}{}
	for k, v := range params {
		doc[k] = v
	}
	doc["type"] = typ

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot marshal parameters for model type %q", typ)
	}
	return s.Decode(data)
}

func (s *scheme) Decode(data []byte) (Model, error) {
	var meta ModelMeta

	err := yaml.Unmarshal(data, &meta)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot extract model type")
	}
	if meta.Type == "" {
		return nil, errors.New("model type missing")
	}

	m, err := s.CreateModel(meta.Type)
	if err != nil {
		return nil, err
	}
	err = yaml.UnmarshalStrict(data, m)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid parameters for model type %q", meta.Type)
	}
	// the type field always reflects the registration name
	m.SetType(meta.Type)
	return m, nil
}

func (s *scheme) Encode(m Model) ([]byte, error) {
	if reflect2.IsNil(m) {
		return nil, errors.New("no model given")
	}
	return yaml.Marshal(m)
}

func (s *scheme) Copy(m Model) (Model, error) {
	if reflect2.IsNil(m) {
		return nil, errors.New("no model given")
	}
	if c, ok := m.(Copyable); ok {
		return c.CopyModel(), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot copy model of type %q", m.GetType())
	}
	return s.Decode(data)
}

////////////////////////////////////////////////////////////////////////////////

func MustRegister(s Scheme, name string, proto Model) {
	err := s.Register(name, proto)
	if err != nil {
		panic(err)
	}
}

// DefaultScheme contains the built-in model types.
var DefaultScheme = NewScheme()

func Create(typ string, init ...Initializer) (Model, error) {
	return DefaultScheme.CreateModel(typ, init...)
}

// MustCreate creates a model of a type registered at the
// DefaultScheme and panics for unknown types.
func MustCreate(typ string, init ...Initializer) Model {
	m, err := Create(typ, init...)
	if err != nil {
		panic(err)
	}
	return m
}

// Copy copies a model using the DefaultScheme.
func Copy(m Model) (Model, error) {
	return DefaultScheme.Copy(m)
}
