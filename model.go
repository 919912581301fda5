package protodispatch

// Message is the extracted form of a message or enum definition. ID is the
// globally unique, dot-qualified identifier assigned at construction.
// Fields maps field name to the raw field number token; map order is not
// significant and consumers sort by numeric field number. Enum definitions
// produce field-less entries: only their existence as a named type matters
// downstream.
type Message struct {
	ID     string
	Fields map[string]string
}

// OneOfCase is one dispatchable alternative of a container: the field name,
// the resolved type name and the raw field number.
type OneOfCase struct {
	ID     string
	Type   string
	Number string
}

// Command describes a container message, i.e. a top-level message named
// "Command" or "Event" whose oneof alternatives form a dispatchable set.
// The order of OneOf is the declaration order in the schema and determines
// emitted dispatch-case order.
type Command struct {
	CommandID string
	ServiceID string
	OneOf     []OneOfCase
}

// Model is the output of extraction and the sole interface to the emission
// stage: every message and enum of the schema plus the optional Command and
// Event containers.
type Model struct {
	Messages []Message
	Command  *Command
	Event    *Command
}
