package core

// ParamSpec documents the shape of a startup parameter a document
// declares. This is advisory only: Initialize takes no parameter
// values, and this package never enforces a ParamSpec beyond the
// checks Validate runs (non-empty unique Name, known PrimitiveType,
// and a warning for a required param with no Default). Grounded on a dropped feature of the
// distilled spec; see SPEC_FULL.md §3.
type ParamSpec struct {
	Name          string      `json:"name"`
	Doc           string      `json:"doc,omitempty" yaml:",omitempty"`
	PrimitiveType string      `json:"primitiveType" yaml:"primitiveType"`
	Default       interface{} `json:"default,omitempty" yaml:",omitempty"`
	Optional      bool        `json:"optional,omitempty" yaml:",omitempty"`
	IsArray       bool        `json:"isArray,omitempty" yaml:"isArray,omitempty"`
}

// paramPrimitiveTypes are the PrimitiveType values Validate accepts.
var paramPrimitiveTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"object":  true,
}
