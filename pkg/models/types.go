package models

// Model is the opaque handle of a wrapped learning algorithm.
// Structural operations only ever look at its type name.
type Model interface {
	GetType() string
	SetType(string)
}

// Copyable may be implemented by models providing an own
// deep copy. All other models are copied by an encoding
// round trip through the scheme they are registered at.
type Copyable interface {
	Model
	CopyModel() Model
}

type Initializer func(m Model)

// ModelMeta is the type information shared by all models.
// It is intended to be embedded into concrete model structs.
type ModelMeta struct {
	Type string `json:"type"`
}

var _ Model = (*ModelMeta)(nil)

func (o *ModelMeta) GetType() string {
	return o.Type
}

func (o *ModelMeta) SetType(t string) {
	o.Type = t
}
