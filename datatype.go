package protodispatch

import (
	"errors"
	"fmt"
)

// DataTypeCategory is an enumeration which represents the possible kinds
// of field datatypes in message, oneof and extend declaration constructs.
type DataTypeCategory int

const (
	// ScalarDataTypeCategory indicates a scalar-builtin datatype
	ScalarDataTypeCategory DataTypeCategory = iota
	// MapDataTypeCategory indicates a map datatype
	MapDataTypeCategory
	// NamedDataTypeCategory indicates a named type-reference
	NamedDataTypeCategory
)

// DataType is the interface which must be implemented by the field datatypes.
// Name() returns the raw type token as it appeared in the schema and
// Category() returns the category of the datatype.
type DataType interface {
	Name() string
	Category() DataTypeCategory
}

var scalarLookupMap = map[string]bool{
	"bool":     true,
	"bytes":    true,
	"double":   true,
	"float":    true,
	"fixed32":  true,
	"fixed64":  true,
	"int32":    true,
	"int64":    true,
	"sfixed32": true,
	"sfixed64": true,
	"sint32":   true,
	"sint64":   true,
	"string":   true,
	"uint32":   true,
	"uint64":   true,
}

// Scalar map keys are restricted to the integral types, bool and string.
var mapKeyLookupMap = map[string]bool{
	"bool":     true,
	"fixed32":  true,
	"fixed64":  true,
	"int32":    true,
	"int64":    true,
	"sfixed32": true,
	"sfixed64": true,
	"sint32":   true,
	"sint64":   true,
	"string":   true,
	"uint32":   true,
	"uint64":   true,
}

// ScalarDataType is a construct which represents
// all supported scalar field datatypes.
type ScalarDataType struct {
	name string
}

// Name function implementation of interface DataType for ScalarDataType
func (sdt ScalarDataType) Name() string {
	return sdt.name
}

// Category function implementation of interface DataType for ScalarDataType
func (sdt ScalarDataType) Category() DataTypeCategory {
	return ScalarDataTypeCategory
}

// NewScalarDataType creates and returns a new ScalarDataType for the given string.
// If a scalar data type mapping does not exist for the given string, an error is returned.
func NewScalarDataType(s string) (ScalarDataType, error) {
	if !scalarLookupMap[s] {
		msg := fmt.Sprintf("'%v' is not a valid ScalarDataType", s)
		return ScalarDataType{}, errors.New(msg)
	}
	return ScalarDataType{name: s}, nil
}

// MapDataType is a construct which represents a map datatype.
type MapDataType struct {
	KeyType   DataType
	ValueType DataType
}

// Name function implementation of interface DataType for MapDataType
func (mdt MapDataType) Name() string {
	return "map<" + mdt.KeyType.Name() + ", " + mdt.ValueType.Name() + ">"
}

// Category function implementation of interface DataType for MapDataType
func (mdt MapDataType) Category() DataTypeCategory {
	return MapDataTypeCategory
}

// NamedDataType is a construct which represents a reference to a message or
// enum datatype in a field declaration. The reference is kept as the raw
// token; qualification happens during model extraction.
type NamedDataType struct {
	name string
}

// NewNamedDataType creates a NamedDataType for the given type reference.
func NewNamedDataType(name string) NamedDataType {
	return NamedDataType{name: name}
}

// Name function implementation of interface DataType for NamedDataType
func (ndt NamedDataType) Name() string {
	return ndt.name
}

// Category function implementation of interface DataType for NamedDataType
func (ndt NamedDataType) Category() DataTypeCategory {
	return NamedDataTypeCategory
}
