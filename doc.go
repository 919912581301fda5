/*
Package protodispatch parses protobuf-style schema files and extracts a
command/event dispatch model from them.

The schema dialect is a subset of the protocol buffer grammar. Two
conventionally-named top-level messages, "Command" and "Event", act as
containers: the fields of their oneof constructs define an ordered, numbered
set of dispatchable alternatives. This library turns a schema file into that
model, which a code emission stage (see the swiftgen package) then renders
into glue source code.

API

Clients should invoke the following apis :-

	func Parse(r io.Reader) (*SchemaFile, error)

The Parse() function expects the client code to provide a reader for the
schema content. It returns the parse tree of the file and a non-nil error if
the content violates the grammar.

	func ParseFile(path string) (*SchemaFile, error)

The ParseFile() function is a utility function which expects the client code
to provide only the path of the schema file.

	func BuildModel(sf *SchemaFile) Model

The BuildModel() function walks a parse tree and returns the extracted model:
the flat list of messages (nested definitions flattened into dot-qualified
identifiers) and the optional Command and Event containers. Extraction cannot
fail on a tree returned by Parse(), so no error is returned.

Model datastructure

The model handed to the emission stage carries :-

	type Model struct {
		Messages []Message // every message/enum, post-order, dot-qualified ids
		Command  *Command  // the "Command" container, nil if absent
		Event    *Command  // the "Event" container, nil if absent
	}

The order of a container's OneOf slice is the declaration order in the schema
and determines emitted dispatch-case order. Message field maps are unordered;
consumers sort by numeric field number.

Design Considerations

This library consciously chooses to log no information on it's own. Any
failures are communicated back to client code via the returned error.

In case of a parsing error, it returns a *ParseError back to the client with
a line and column number in the file on which the parsing error was
encountered. The file either parses completely or fails; no partial tree or
model is ever returned.
*/
package protodispatch
