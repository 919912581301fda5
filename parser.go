package protodispatch

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Parse reads schema content from the given reader and returns its parse
// tree. Parsing is atomic: on any grammar violation a *ParseError is
// returned and no tree is produced.
func Parse(r io.Reader) (*SchemaFile, error) {
	loc := location{line: 1}
	p := parser{br: bufio.NewReader(r), loc: &loc}

	sf := SchemaFile{}
	if err := p.parse(&sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

// ParseFile is a utility function which reads the schema file at the
// given path and parses it.
func ParseFile(path string) (*SchemaFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(raw))
}

// The reserved words of the dialect. They are matched as distinct tokens by
// the declaration dispatch below; an identifier may not share a spelling
// with any of them.
var keywords = map[string]bool{
	"message":    true,
	"required":   true,
	"optional":   true,
	"repeated":   true,
	"enum":       true,
	"extensions": true,
	"extends":    true,
	"extend":     true,
	"to":         true,
	"package":    true,
	"service":    true,
	"rpc":        true,
	"returns":    true,
	"true":       true,
	"false":      true,
	"option":     true,
	"import":     true,
	"syntax":     true,
	"reserved":   true,
	"oneof":      true,
	"map":        true,
}

// Returned by readDeclaration when a token at file scope matches no
// top-level construct. Content after the last recognized top-level
// statement is tolerated, not an error.
var errTrailingContent = errors.New("trailing content")

// This struct tracks current location of the parse process.
type location struct {
	column int
	line   int
}

// The parser. This struct has all the methods which actually perform the
// job of parsing inputs from a specified reader.
type parser struct {
	br  *bufio.Reader
	loc *location
	// We set this flag, when eof is encountered...
	eofReached bool
}

// This method reads top-level declarations in a loop till EOF is reached
// or a token matches no top-level construct.
func (p *parser) parse(sf *SchemaFile) error {
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return nil
		}
		err := p.readDeclaration(sf, parseCtx{ctxType: fileCtx})
		if errors.Is(err, errTrailingContent) {
			return nil
		}
		if err != nil {
			return err
		}
		if p.eofReached {
			return nil
		}
	}
}

func (p *parser) readDeclaration(sf *SchemaFile, ctx parseCtx) error {
	// Skip unnecessary semicolons...
	if err := p.skipTrivia(); err != nil {
		return err
	}
	c := p.read()
	if c == ';' {
		return nil
	}
	p.unread()

	// Read next label...
	label := p.readWord()
	switch label {
	case "package":
		if !ctx.permitsPackage() {
			return p.rejectLabel(label, ctx)
		}
		return p.readPackage(sf)
	case "syntax":
		if !ctx.permitsSyntax() {
			return p.rejectLabel(label, ctx)
		}
		return p.readSyntax(sf)
	case "import":
		if !ctx.permitsImport() {
			return p.rejectLabel(label, ctx)
		}
		return p.readImport(sf)
	case "option":
		if !ctx.permitsOption() {
			return p.rejectLabel(label, ctx)
		}
		return p.readOption(sf, ctx)
	case "message":
		if !ctx.permitsMsg() {
			return p.rejectLabel(label, ctx)
		}
		return p.readMessage(sf, ctx)
	case "enum":
		if !ctx.permitsEnum() {
			return p.rejectLabel(label, ctx)
		}
		return p.readEnum(sf, ctx)
	case "extend":
		if !ctx.permitsExtend() {
			return p.rejectLabel(label, ctx)
		}
		return p.readExtend(sf, ctx)
	case "service":
		if !ctx.permitsService() {
			return p.rejectLabel(label, ctx)
		}
		return p.readService(sf)
	case "rpc":
		if !ctx.permitsRPC() {
			return p.rejectLabel(label, ctx)
		}
		return p.readRPC(ctx.obj.(*ServiceElement))
	case "oneof":
		if !ctx.permitsOneOf() {
			return p.rejectLabel(label, ctx)
		}
		return p.readOneOf(ctx.obj.(*MessageElement))
	case "extensions":
		if !ctx.permitsExtensions() {
			return p.rejectLabel(label, ctx)
		}
		return p.readExtensions(ctx.obj.(*MessageElement))
	case "reserved":
		if !ctx.permitsReserved() {
			return p.rejectLabel(label, ctx)
		}
		return p.readReserved(ctx)
	}

	if ctx.permitsField() {
		return p.readField(label, ctx)
	}
	if ctx.ctxType == enumCtx {
		return p.readEnumConstant(label, ctx.obj.(*EnumElement))
	}
	if ctx.ctxType == fileCtx {
		return errTrailingContent
	}
	return p.errUnexpectedLabel(label, ctx)
}

func (p *parser) readPackage(sf *SchemaFile) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	sf.PackageName = name
	return p.expect(';')
}

func (p *parser) readSyntax(sf *SchemaFile) error {
	if err := p.expect('='); err != nil {
		return err
	}
	if err := p.skipTrivia(); err != nil {
		return err
	}
	syntax, err := p.readQuotedString()
	if err != nil {
		return err
	}
	sf.Syntax = syntax
	return p.expect(';')
}

func (p *parser) readImport(sf *SchemaFile) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	c := p.read()
	p.unread()
	if c != '"' {
		// tolerate the 'public' modifier; public imports are not
		// distinguished downstream
		if w := p.readWord(); w != "public" {
			return p.newError(fmt.Sprintf("Expected 'public', but found: %v", w))
		}
		if err := p.skipTrivia(); err != nil {
			return err
		}
	}
	path, err := p.readQuotedString()
	if err != nil {
		return err
	}
	sf.Imports = append(sf.Imports, path)
	return p.expect(';')
}

func (p *parser) readOption(sf *SchemaFile, ctx parseCtx) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	oname, hasParenthesis, err := p.readOptionName()
	if err != nil {
		return err
	}
	if err := p.expect('='); err != nil {
		return err
	}
	oval, err := p.readDirectiveValue()
	if err != nil {
		return err
	}
	if err := p.expect(';'); err != nil {
		return err
	}

	oe := OptionElement{Name: oname, Value: oval, IsParenthesized: hasParenthesis}

	// add option to the proper parent...
	switch ctx.ctxType {
	case fileCtx:
		sf.Options = append(sf.Options, oe)
	case msgCtx:
		me := ctx.obj.(*MessageElement)
		me.Options = append(me.Options, oe)
	case enumCtx:
		ee := ctx.obj.(*EnumElement)
		ee.Options = append(ee.Options, oe)
	}
	return nil
}

func (p *parser) readMessage(sf *SchemaFile, ctx parseCtx) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	me := MessageElement{Name: name}

	if err := p.expect('{'); err != nil {
		return err
	}
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return p.newError("Expected '}', but found eof")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		bodyCtx := parseCtx{ctxType: msgCtx, obj: &me}
		if err := p.readDeclaration(sf, bodyCtx); err != nil {
			return err
		}
	}

	// hang the finished message off its enclosing scope...
	if ctx.ctxType == msgCtx {
		parent := ctx.obj.(*MessageElement)
		parent.Defs = append(parent.Defs, me)
	} else {
		sf.Defs = append(sf.Defs, me)
	}
	return nil
}

func (p *parser) readEnum(sf *SchemaFile, ctx parseCtx) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	ee := EnumElement{Name: name}

	if err := p.expect('{'); err != nil {
		return err
	}
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return p.newError("Expected '}', but found eof")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		bodyCtx := parseCtx{ctxType: enumCtx, obj: &ee}
		if err := p.readDeclaration(sf, bodyCtx); err != nil {
			return err
		}
	}

	if ctx.ctxType == msgCtx {
		parent := ctx.obj.(*MessageElement)
		parent.Defs = append(parent.Defs, ee)
	} else {
		sf.Defs = append(sf.Defs, ee)
	}
	return nil
}

func (p *parser) readEnumConstant(label string, ee *EnumElement) error {
	if label == "" {
		c := p.read()
		return p.errExpected("enum constant", c)
	}
	if keywords[label] {
		return p.newError(fmt.Sprintf("Expected identifier, but found keyword: '%v'", label))
	}
	if err := p.expect('='); err != nil {
		return err
	}
	if err := p.skipTrivia(); err != nil {
		return err
	}
	tag, err := p.readInteger()
	if err != nil {
		return err
	}
	// inline directives are parsed for validity, not retained
	if _, err := p.readFieldDirectives(); err != nil {
		return err
	}
	if err := p.expect(';'); err != nil {
		return err
	}
	ee.EnumConstants = append(ee.EnumConstants, EnumConstantElement{Name: label, Tag: tag})
	return nil
}

func (p *parser) readField(label string, ctx parseCtx) error {
	// the field struct...
	fe := FieldElement{}

	// the string representation of the datatype
	var dataTypeStr string

	// figure out dataTypeStr based on the label...
	if label == "required" || label == "optional" || label == "repeated" {
		fe.Label = label
		if err := p.skipTrivia(); err != nil {
			return err
		}
		dataTypeStr = p.readWord()
	} else {
		dataTypeStr = label
	}

	// figure out the dataType
	dataType, err := p.readDataTypeInternal(dataTypeStr)
	if err != nil {
		return err
	}
	fe.Type = dataType

	// figure out the name
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	fe.Name = name

	// check for equals sign...
	if err := p.expect('='); err != nil {
		return err
	}

	// extract the field tag...
	if err := p.skipTrivia(); err != nil {
		return err
	}
	tag, err := p.readInteger()
	if err != nil {
		return err
	}
	fe.Tag = tag

	// bracketed field directives, if any, then the terminator
	foptions, err := p.readFieldDirectives()
	if err != nil {
		return err
	}
	fe.Options = foptions
	if err := p.expect(';'); err != nil {
		return err
	}

	// add field to the proper parent...
	switch ctx.ctxType {
	case msgCtx:
		me := ctx.obj.(*MessageElement)
		me.Fields = append(me.Fields, fe)
	case extendCtx:
		ee := ctx.obj.(*ExtendElement)
		ee.Fields = append(ee.Fields, fe)
	case oneOfCtx:
		oe := ctx.obj.(*OneOfElement)
		oe.Fields = append(oe.Fields, fe)
	}
	return nil
}

// readFieldDirectives reads zero or more bracketed directive groups, each
// holding one or more 'name = value' pairs separated by commas.
func (p *parser) readFieldDirectives() ([]OptionElement, error) {
	var options []OptionElement
	for {
		if err := p.skipTrivia(); err != nil {
			return nil, err
		}
		c := p.read()
		if c != '[' {
			p.unread()
			return options, nil
		}
		for {
			if err := p.skipTrivia(); err != nil {
				return nil, err
			}
			oname, hasParenthesis, err := p.readOptionName()
			if err != nil {
				return nil, err
			}
			if err := p.expect('='); err != nil {
				return nil, err
			}
			oval, err := p.readDirectiveValue()
			if err != nil {
				return nil, err
			}
			options = append(options, OptionElement{Name: oname, Value: oval, IsParenthesized: hasParenthesis})

			if err := p.skipTrivia(); err != nil {
				return nil, err
			}
			c2 := p.read()
			if c2 == ']' {
				break
			}
			if c2 != ',' {
				return nil, p.errExpected("',' or ']'", c2)
			}
		}
	}
}

// readOptionName reads a directive or option name, which may be enclosed
// in parenthesis.
func (p *parser) readOptionName() (string, bool, error) {
	c := p.read()
	if c == '(' {
		if err := p.skipTrivia(); err != nil {
			return "", false, err
		}
		name, err := p.readIdent()
		if err != nil {
			return "", false, err
		}
		if err := p.expect(')'); err != nil {
			return "", false, err
		}
		return name, true, nil
	}
	p.unread()
	name, err := p.readIdent()
	return name, false, err
}

// readDirectiveValue reads a directive or option value: an integer, a
// boolean, an identifier or a quoted string.
func (p *parser) readDirectiveValue() (string, error) {
	if err := p.skipTrivia(); err != nil {
		return "", err
	}
	c := p.read()
	p.unread()
	if c == '"' {
		return p.readQuotedString()
	}
	if c == '+' || c == '-' || isDigit(c) {
		return p.readInteger()
	}
	w := p.readWord()
	if w == "" {
		return "", p.errExpected("value", c)
	}
	return w, nil
}

func (p *parser) readOneOf(me *MessageElement) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	oe := OneOfElement{Name: name}

	if err := p.expect('{'); err != nil {
		return err
	}
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return p.newError("Expected '}', but found eof")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		bodyCtx := parseCtx{ctxType: oneOfCtx, obj: &oe}
		if err := p.readDeclaration(nil, bodyCtx); err != nil {
			return err
		}
	}

	me.OneOfs = append(me.OneOfs, oe)
	return nil
}

func (p *parser) readExtend(sf *SchemaFile, ctx parseCtx) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	ee := ExtendElement{Name: name}

	if err := p.expect('{'); err != nil {
		return err
	}
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return p.newError("Expected '}', but found eof")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		bodyCtx := parseCtx{ctxType: extendCtx, obj: &ee}
		if err := p.readDeclaration(sf, bodyCtx); err != nil {
			return err
		}
	}

	if ctx.ctxType == msgCtx {
		parent := ctx.obj.(*MessageElement)
		parent.Extends = append(parent.Extends, ee)
	} else {
		sf.Extends = append(sf.Extends, ee)
	}
	return nil
}

func (p *parser) readService(sf *SchemaFile) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	se := ServiceElement{Name: name}

	if err := p.expect('{'); err != nil {
		return err
	}
	for {
		if err := p.skipTrivia(); err != nil {
			return err
		}
		if p.eofReached {
			return p.newError("Expected '}', but found eof")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		bodyCtx := parseCtx{ctxType: serviceCtx, obj: &se}
		if err := p.readDeclaration(sf, bodyCtx); err != nil {
			return err
		}
	}

	sf.Services = append(sf.Services, se)
	return nil
}

func (p *parser) readRPC(se *ServiceElement) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	rpc := RPCElement{Name: name}

	// parse request type; an empty parameter list is permitted...
	rpc.RequestType, err = p.readRPCType()
	if err != nil {
		return err
	}

	if err := p.skipTrivia(); err != nil {
		return err
	}
	if keyword := p.readWord(); keyword != "returns" {
		return p.newError(fmt.Sprintf("Expected 'returns', but found: %v", keyword))
	}

	// parse response type...
	rpc.ResponseType, err = p.readRPCType()
	if err != nil {
		return err
	}

	// a trailing semicolon is optional for method definitions
	if err := p.skipTrivia(); err != nil {
		return err
	}
	if c := p.read(); c != ';' {
		p.unread()
	}

	se.RPCs = append(se.RPCs, rpc)
	return nil
}

func (p *parser) readRPCType() (string, error) {
	if err := p.expect('('); err != nil {
		return "", err
	}
	if err := p.skipTrivia(); err != nil {
		return "", err
	}
	if c := p.read(); c == ')' {
		return "", nil
	}
	p.unread()
	name, err := p.readIdent()
	if err != nil {
		return "", err
	}
	return name, p.expect(')')
}

func (p *parser) readExtensions(me *MessageElement) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	start, err := p.readInt()
	if err != nil {
		return err
	}

	// At this point, make End be same as Start...
	xe := ExtensionsElement{Start: start, End: start}

	if err := p.skipTrivia(); err != nil {
		return err
	}
	c := p.read()
	if c != ';' {
		p.unread()
		if w := p.readWord(); w != "to" {
			return p.newError(fmt.Sprintf("Expected 'to', but found: %v", w))
		}
		if err := p.skipTrivia(); err != nil {
			return err
		}
		endStr := p.readWord()
		if endStr == "max" {
			xe.End = 536870911
		} else {
			end, err := strconv.Atoi(endStr)
			if err != nil {
				return p.newError(fmt.Sprintf("Expected integer or 'max', but found: %v", endStr))
			}
			xe.End = end
		}
		if err := p.expect(';'); err != nil {
			return err
		}
	}

	me.Extensions = append(me.Extensions, xe)
	return nil
}

func (p *parser) readReserved(ctx parseCtx) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	c := p.read()
	p.unread()
	if c == '"' {
		return p.readReservedNames(ctx)
	}
	return p.readReservedRanges(ctx)
}

func (p *parser) readReservedRanges(ctx parseCtx) error {
	for {
		start, err := p.readInt()
		if err != nil {
			return err
		}
		rr := ReservedRangeElement{Start: start, End: start}

		if err := p.skipTrivia(); err != nil {
			return err
		}
		c := p.read()
		if c != ';' && c != ',' {
			p.unread()
			if w := p.readWord(); w != "to" {
				return p.newError(fmt.Sprintf("Expected 'to', but found: %v", w))
			}
			if err := p.skipTrivia(); err != nil {
				return err
			}
			end, err := p.readInt()
			if err != nil {
				return err
			}
			rr.End = end

			if err := p.skipTrivia(); err != nil {
				return err
			}
			c = p.read()
			if c != ';' && c != ',' {
				return p.errExpected("',' or ';'", c)
			}
		}

		// reserved statements inside enum bodies are structural only
		if ctx.ctxType == msgCtx {
			me := ctx.obj.(*MessageElement)
			me.ReservedRanges = append(me.ReservedRanges, rr)
		}
		if c == ';' {
			return nil
		}
		if err := p.skipTrivia(); err != nil {
			return err
		}
	}
}

func (p *parser) readReservedNames(ctx parseCtx) error {
	for {
		name, err := p.readQuotedString()
		if err != nil {
			return err
		}
		if ctx.ctxType == msgCtx {
			me := ctx.obj.(*MessageElement)
			me.ReservedNames = append(me.ReservedNames, name)
		}

		// check if we are done providing the reserved names
		if err := p.skipTrivia(); err != nil {
			return err
		}
		c := p.read()
		if c == ';' {
			return nil
		}

		// if not, there should be more names provided after a comma...
		if c != ',' {
			return p.errExpected("',' or ';'", c)
		}
		if err := p.skipTrivia(); err != nil {
			return err
		}
	}
}

func (p *parser) readDataType() (DataType, error) {
	if err := p.skipTrivia(); err != nil {
		return nil, err
	}
	name := p.readWord()
	return p.readDataTypeInternal(name)
}

func (p *parser) readDataTypeInternal(name string) (DataType, error) {
	// is it a map type?
	if name == "map" {
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		if err := p.skipTrivia(); err != nil {
			return nil, err
		}
		keyStr := p.readWord()
		if !mapKeyLookupMap[keyStr] {
			return nil, p.newError(fmt.Sprintf("'%v' is not a valid map key type", keyStr))
		}
		keyType, _ := NewScalarDataType(keyStr)
		if err := p.expect(','); err != nil {
			return nil, err
		}
		valueType, err := p.readDataType()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return MapDataType{KeyType: keyType, ValueType: valueType}, nil
	}

	// is it a scalar type?
	if sdt, err := NewScalarDataType(name); err == nil {
		return sdt, nil
	}

	// must be a named type
	if name == "" {
		c := p.read()
		return nil, p.errExpected("datatype", c)
	}
	if keywords[name] {
		return nil, p.newError(fmt.Sprintf("Expected datatype, but found keyword: '%v'", name))
	}
	if !isValidIdentStart(rune(name[0])) {
		return nil, p.newError(fmt.Sprintf("Expected datatype, but found: '%v'", name))
	}
	return NamedDataType{name: name}, nil
}

// readIdent reads an identifier. A word that shares its spelling with a
// reserved keyword is rejected.
func (p *parser) readIdent() (string, error) {
	word := p.readWord()
	if word == "" {
		c := p.read()
		return "", p.errExpected("identifier", c)
	}
	if keywords[word] {
		return "", p.newError(fmt.Sprintf("Expected identifier, but found keyword: '%v'", word))
	}
	if !isValidIdentStart(rune(word[0])) {
		return "", p.newError(fmt.Sprintf("Expected identifier, but found: '%v'", word))
	}
	return word, nil
}

func (p *parser) readQuotedString() (string, error) {
	if c := p.read(); c != '"' {
		return "", p.errExpected(`starting '"'`, c)
	}
	str := p.readUntil('"')
	if p.eofReached {
		return "", p.newError(`Expected ending '"', but found eof`)
	}
	return str, nil
}

func (p *parser) readWord() string {
	var buf bytes.Buffer
	for {
		c := p.read()
		if isValidCharInWord(c) {
			buf.WriteRune(c)
		} else {
			p.unread()
			break
		}
	}
	return buf.String()
}

// readInteger reads an integer literal with an optional sign and returns
// it as the raw token.
func (p *parser) readInteger() (string, error) {
	var buf bytes.Buffer
	c := p.read()
	if c == '+' || c == '-' {
		buf.WriteRune(c)
		c = p.read()
	}
	if !isDigit(c) {
		p.unread()
		return "", p.errExpected("integer", c)
	}
	for isDigit(c) {
		buf.WriteRune(c)
		c = p.read()
	}
	p.unread()
	return buf.String(), nil
}

func (p *parser) readInt() (int, error) {
	str, err := p.readInteger()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (p *parser) readUntil(terminator rune) string {
	var buf bytes.Buffer
	for {
		c := p.read()
		if c == terminator {
			break
		}
		if c == eof {
			p.eofReached = true
			break
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// expect consumes any intervening trivia and the given punctuation rune.
func (p *parser) expect(r rune) error {
	if err := p.skipTrivia(); err != nil {
		return err
	}
	if c := p.read(); c != r {
		return p.errExpected("'"+string(r)+"'", c)
	}
	return nil
}

// skipTrivia consumes whitespace and comments. Line and block comments are
// ignored uniformly between any two tokens.
func (p *parser) skipTrivia() error {
	for {
		c := p.read()
		if c == eof {
			p.eofReached = true
			return nil
		}
		if isWhitespace(c) {
			continue
		}
		if c == '/' {
			c2 := p.read()
			if c2 == '/' {
				p.skipUntilNewline()
			} else if c2 == '*' {
				if err := p.skipBlockComment(); err != nil {
					return err
				}
			} else {
				return p.errExpected("'/' or '*'", c2)
			}
			continue
		}
		p.unread()
		return nil
	}
}

func (p *parser) skipBlockComment() error {
	for {
		c := p.read()
		if c == eof {
			p.eofReached = true
			return p.newError("Expected '*/', but found eof")
		}
		if c == '*' {
			c2 := p.read()
			if c2 == '/' {
				return nil
			}
			p.unread()
		}
	}
}

func (p *parser) skipUntilNewline() {
	for {
		c := p.read()
		if c == '\n' {
			return
		}
		if c == eof {
			p.eofReached = true
			return
		}
	}
}

func (p *parser) unread() {
	_ = p.br.UnreadRune()
	p.loc.column--
}

func (p *parser) read() rune {
	c, _, err := p.br.ReadRune()
	if err != nil {
		return eof
	}
	if c == '\n' {
		p.loc.line++
		p.loc.column = 0
	} else {
		p.loc.column++
	}
	return c
}

func (p *parser) newError(msg string) *ParseError {
	return &ParseError{Line: p.loc.line, Column: p.loc.column, Msg: msg}
}

func (p *parser) errExpected(expected string, found rune) *ParseError {
	if found == eof {
		return p.newError(fmt.Sprintf("Expected %v, but found eof", expected))
	}
	return p.newError(fmt.Sprintf("Expected %v, but found: %v", expected, strconv.QuoteRune(found)))
}

// rejectLabel rejects a keyword that has no production in the current
// context. At file scope a keyword without a top-level production marks the
// start of trailing content and ends parsing instead of failing it.
func (p *parser) rejectLabel(label string, ctx parseCtx) error {
	if ctx.ctxType == fileCtx {
		return errTrailingContent
	}
	return p.errUnexpectedLabel(label, ctx)
}

func (p *parser) errUnexpectedLabel(label string, ctx parseCtx) *ParseError {
	return p.newError(fmt.Sprintf("Unexpected '%v' in context: %v", label, ctx))
}

func isValidCharInWord(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '.'
}

func isValidIdentStart(c rune) bool {
	return isLetter(c) || c == '_' || c == '.'
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// End of the file...
var eof = rune(0)
