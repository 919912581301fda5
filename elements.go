package protodispatch

// DefElement is implemented by the schema constructs which introduce a
// named type into a scope: message and enum definitions. Scopes keep their
// definitions in a single ordered slice because extraction order (and with
// it type resolution) follows declaration order.
type DefElement interface {
	DefName() string
}

// OptionElement is a datastructure which models
// the option construct in a schema file. Option constructs
// exist at various levels/contexts like file, message etc.
// Options are parsed for structural validity only; nothing
// downstream interprets them.
type OptionElement struct {
	Name            string
	Value           string
	IsParenthesized bool
}

// EnumConstantElement is a datastructure which models
// the fields within an enum construct. Enum constants can
// also have inline directives specified.
type EnumConstantElement struct {
	Name string
	Tag  string
}

// EnumElement is a datastructure which models
// the enum construct in a schema file. Enums are
// defined standalone or as nested entities within messages.
type EnumElement struct {
	Name          string
	Options       []OptionElement
	EnumConstants []EnumConstantElement
}

// DefName implementation of interface DefElement for EnumElement
func (ee EnumElement) DefName() string {
	return ee.Name
}

// RPCElement is a datastructure which models
// the rpc construct in a schema file. RPCs are defined
// nested within ServiceElements. Request and response types
// are kept as raw tokens; either may be empty.
type RPCElement struct {
	Name         string
	RequestType  string
	ResponseType string
}

// ServiceElement is a datastructure which models
// the service construct in a schema file. Services are parsed
// for structural validity only.
type ServiceElement struct {
	Name string
	RPCs []RPCElement
}

// FieldElement is a datastructure which models
// a field of a message, a field of a oneof element
// or an entry in the extend declaration in a schema file.
// The tag is kept as the raw integer token.
type FieldElement struct {
	Name    string
	Label   string /* required, optional, repeated or empty */
	Type    DataType
	Tag     string
	Options []OptionElement
}

// OneOfElement is a datastructure which models
// a oneof construct in a schema file. A oneof body holds field
// definitions only; it introduces no namespace of its own.
type OneOfElement struct {
	Name   string
	Fields []FieldElement
}

// ExtensionsElement is a datastructure which models
// an extensions construct in a schema file: a range of field
// numbers reserved for third-party extensions.
type ExtensionsElement struct {
	Start int
	End   int
}

// ReservedRangeElement is a datastructure which models
// a reserved construct in a message.
type ReservedRangeElement struct {
	Start int
	End   int
}

// MessageElement is a datastructure which models
// the message construct in a schema file. Nested message and
// enum definitions live in Defs, in declaration order.
type MessageElement struct {
	Name           string
	Options        []OptionElement
	Fields         []FieldElement
	OneOfs         []OneOfElement
	Defs           []DefElement
	Extends        []ExtendElement
	Extensions     []ExtensionsElement
	ReservedRanges []ReservedRangeElement
	ReservedNames  []string
}

// DefName implementation of interface DefElement for MessageElement
func (me MessageElement) DefName() string {
	return me.Name
}

// ExtendElement is a datastructure which models
// the extend construct in a schema file which is used
// to add new fields to a previously declared message type.
type ExtendElement struct {
	Name   string
	Fields []FieldElement
}

// SchemaFile is a datastructure which represents the parse tree
// of the given schema file.
//
// It includes the package name, the syntax, the import dependencies,
// any file level options and the top-level definitions. Message and enum
// definitions live in Defs, in declaration order; services and extend
// declarations are kept apart since they never introduce named types.
//
// This is populated by the parser and returned to the client code.
type SchemaFile struct {
	PackageName string
	Syntax      string
	Imports     []string
	Options     []OptionElement
	Defs        []DefElement
	Services    []ServiceElement
	Extends     []ExtendElement
}
