package protodispatch

import "fmt"

// ParseError is the error returned when the schema content violates the
// grammar. It carries the line and column at which parsing stopped and a
// description of the expected construct. Parsing is atomic: a ParseError
// means no parse tree was produced at all.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v on line: %v, column: %v", e.Msg, e.Line, e.Column)
}
