package protodispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, content string) *SchemaFile {
	t.Helper()
	sf, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	return sf
}

func TestParseTopLevelStatements(t *testing.T) {
	sf := parse(t, `
		syntax = "proto3";
		package my.pkg;
		import "common/types.proto";
		import public "shared.proto";
		option java_package = "com.example";
		option (custom) = "value";
	`)

	assert.Equal(t, "proto3", sf.Syntax)
	assert.Equal(t, "my.pkg", sf.PackageName)
	assert.Equal(t, []string{"common/types.proto", "shared.proto"}, sf.Imports)
	require.Len(t, sf.Options, 2)
	assert.Equal(t, OptionElement{Name: "java_package", Value: "com.example"}, sf.Options[0])
	assert.Equal(t, OptionElement{Name: "custom", Value: "value", IsParenthesized: true}, sf.Options[1])
}

func TestParseMessage(t *testing.T) {
	sf := parse(t, `
		package p;
		message M {
			required int32 a = 1;
			optional string b = 2 [default = "x"];
			repeated Other c = 3;
			map<string, Entry> d = 4;
			oneof id {
				Foo foo = 1;
				int64 raw = 2;
			}
		}
	`)

	require.Len(t, sf.Defs, 1)
	me, ok := sf.Defs[0].(MessageElement)
	require.True(t, ok)
	assert.Equal(t, "M", me.Name)
	require.Len(t, me.Fields, 4)

	assert.Equal(t, "a", me.Fields[0].Name)
	assert.Equal(t, "required", me.Fields[0].Label)
	assert.Equal(t, "int32", me.Fields[0].Type.Name())
	assert.Equal(t, ScalarDataTypeCategory, me.Fields[0].Type.Category())
	assert.Equal(t, "1", me.Fields[0].Tag)

	assert.Equal(t, "optional", me.Fields[1].Label)
	require.Len(t, me.Fields[1].Options, 1)
	assert.Equal(t, OptionElement{Name: "default", Value: "x"}, me.Fields[1].Options[0])

	assert.Equal(t, "Other", me.Fields[2].Type.Name())
	assert.Equal(t, NamedDataTypeCategory, me.Fields[2].Type.Category())

	assert.Equal(t, "map<string, Entry>", me.Fields[3].Type.Name())
	assert.Equal(t, MapDataTypeCategory, me.Fields[3].Type.Category())

	require.Len(t, me.OneOfs, 1)
	assert.Equal(t, "id", me.OneOfs[0].Name)
	require.Len(t, me.OneOfs[0].Fields, 2)
	assert.Equal(t, "foo", me.OneOfs[0].Fields[0].Name)
	assert.Equal(t, "Foo", me.OneOfs[0].Fields[0].Type.Name())
	assert.Equal(t, "raw", me.OneOfs[0].Fields[1].Name)
}

func TestParseNestedDefinitions(t *testing.T) {
	sf := parse(t, `
		message Outer {
			enum Kind {
				NONE = 0;
				SOME = 1;
			}
			message Inner {
				bool flag = 1;
				message Innermost {
					bytes data = 1;
				}
			}
			Kind kind = 1;
		}
	`)

	require.Len(t, sf.Defs, 1)
	outer := sf.Defs[0].(MessageElement)
	require.Len(t, outer.Defs, 2)

	kind, ok := outer.Defs[0].(EnumElement)
	require.True(t, ok)
	assert.Equal(t, "Kind", kind.Name)
	require.Len(t, kind.EnumConstants, 2)
	assert.Equal(t, EnumConstantElement{Name: "NONE", Tag: "0"}, kind.EnumConstants[0])
	assert.Equal(t, EnumConstantElement{Name: "SOME", Tag: "1"}, kind.EnumConstants[1])

	inner, ok := outer.Defs[1].(MessageElement)
	require.True(t, ok)
	assert.Equal(t, "Inner", inner.Name)
	require.Len(t, inner.Defs, 1)
	assert.Equal(t, "Innermost", inner.Defs[0].DefName())

	// the nested definitions do not leak fields into the outer message
	require.Len(t, outer.Fields, 1)
	assert.Equal(t, "kind", outer.Fields[0].Name)
}

func TestParseEnumWithDirectives(t *testing.T) {
	sf := parse(t, `
		enum Level {
			option allow_alias = true;
			reserved 8, 15 to 20;
			DEBUG = 0;
			VERBOSE = 0 [deprecated = true];
			ERROR = -1;
		}
	`)

	require.Len(t, sf.Defs, 1)
	ee := sf.Defs[0].(EnumElement)
	assert.Equal(t, "Level", ee.Name)
	require.Len(t, ee.Options, 1)
	assert.Equal(t, OptionElement{Name: "allow_alias", Value: "true"}, ee.Options[0])
	require.Len(t, ee.EnumConstants, 3)
	assert.Equal(t, "-1", ee.EnumConstants[2].Tag)
}

func TestParseServiceSkippable(t *testing.T) {
	sf := parse(t, `
		service Telemetry {
			rpc Get (Request) returns (Response);
			rpc Ping () returns ();
			rpc Push (Sample) returns (Ack)
		}
	`)

	require.Len(t, sf.Services, 1)
	se := sf.Services[0]
	assert.Equal(t, "Telemetry", se.Name)
	require.Len(t, se.RPCs, 3)
	assert.Equal(t, RPCElement{Name: "Get", RequestType: "Request", ResponseType: "Response"}, se.RPCs[0])
	assert.Equal(t, RPCElement{Name: "Ping"}, se.RPCs[1])
	assert.Equal(t, RPCElement{Name: "Push", RequestType: "Sample", ResponseType: "Ack"}, se.RPCs[2])
}

func TestParseExtendAndExtensions(t *testing.T) {
	sf := parse(t, `
		message M {
			extensions 100 to max;
			extensions 5;
			reserved 2, 9 to 11;
			reserved "old_name", "older_name";
			extend Base {
				optional int32 extra = 126;
			}
		}
		extend p.Base {
			optional string note = 127;
		}
	`)

	me := sf.Defs[0].(MessageElement)
	require.Len(t, me.Extensions, 2)
	assert.Equal(t, ExtensionsElement{Start: 100, End: 536870911}, me.Extensions[0])
	assert.Equal(t, ExtensionsElement{Start: 5, End: 5}, me.Extensions[1])
	require.Len(t, me.ReservedRanges, 2)
	assert.Equal(t, ReservedRangeElement{Start: 2, End: 2}, me.ReservedRanges[0])
	assert.Equal(t, ReservedRangeElement{Start: 9, End: 11}, me.ReservedRanges[1])
	assert.Equal(t, []string{"old_name", "older_name"}, me.ReservedNames)
	require.Len(t, me.Extends, 1)
	assert.Equal(t, "Base", me.Extends[0].Name)

	require.Len(t, sf.Extends, 1)
	assert.Equal(t, "p.Base", sf.Extends[0].Name)
	require.Len(t, sf.Extends[0].Fields, 1)
	assert.Equal(t, "note", sf.Extends[0].Fields[0].Name)
}

func TestParseFieldDirectiveGroups(t *testing.T) {
	sf := parse(t, `
		message M {
			int32 a = 1 [deprecated = true, packed = true];
			int32 b = 2 [(custom_opt) = "quoted, string"] [weight = -3];
		}
	`)

	me := sf.Defs[0].(MessageElement)
	require.Len(t, me.Fields[0].Options, 2)
	assert.Equal(t, OptionElement{Name: "deprecated", Value: "true"}, me.Fields[0].Options[0])
	assert.Equal(t, OptionElement{Name: "packed", Value: "true"}, me.Fields[0].Options[1])
	require.Len(t, me.Fields[1].Options, 2)
	assert.Equal(t, OptionElement{Name: "custom_opt", Value: "quoted, string", IsParenthesized: true}, me.Fields[1].Options[0])
	assert.Equal(t, OptionElement{Name: "weight", Value: "-3"}, me.Fields[1].Options[1])
}

func TestParseCommentsBetweenAnyTokens(t *testing.T) {
	sf := parse(t, `
		// leading comment
		message /* before name */ M { /* in body */
			int32 /* between type and name */ a /* before eq */ = /* before tag */ 1; // trailing
			/* block
			   spanning lines */
			string b = 2;
		}
	`)

	me := sf.Defs[0].(MessageElement)
	require.Len(t, me.Fields, 2)
	assert.Equal(t, "a", me.Fields[0].Name)
	assert.Equal(t, "b", me.Fields[1].Name)
}

func TestParseTrailingContentTolerated(t *testing.T) {
	sf := parse(t, `
		package p;
		message M { int32 a = 1; }
		%% anything past the last recognized statement is ignored
	`)

	assert.Equal(t, "p", sf.PackageName)
	require.Len(t, sf.Defs, 1)
}

func TestParseTrailingKeywordContentTolerated(t *testing.T) {
	// keywords with no top-level production start trailing content too
	var trailers = []string{
		"oneof junk { Foo foo = 1; }",
		"rpc Get (A) returns (B);",
		"extensions 100 to max;",
		"reserved 5;",
	}

	for _, trailer := range trailers {
		sf := parse(t, "package p;\nmessage M { int32 a = 1; }\n"+trailer)
		assert.Equal(t, "p", sf.PackageName, trailer)
		require.Len(t, sf.Defs, 1, trailer)

		me := sf.Defs[0].(MessageElement)
		assert.Empty(t, me.OneOfs, trailer)
		assert.Empty(t, me.Extensions, trailer)
	}
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		name    string
		content string
		errstr  string
	}{
		{
			name:    "unterminated message body",
			content: `message M { int32 a = 1;`,
			errstr:  "Expected '}', but found eof",
		},
		{
			name:    "missing field terminator",
			content: `message M { int32 a = 1 }`,
			errstr:  "Expected ';'",
		},
		{
			name:    "keyword as message name",
			content: `message to { }`,
			errstr:  "Expected identifier, but found keyword: 'to'",
		},
		{
			name:    "keyword as field name",
			content: `message M { int32 oneof = 1; }`,
			errstr:  "Expected identifier, but found keyword: 'oneof'",
		},
		{
			name:    "missing field tag",
			content: `message M { int32 a = ; }`,
			errstr:  "Expected integer",
		},
		{
			name:    "invalid map key",
			content: `message M { map<float, Foo> a = 1; }`,
			errstr:  "'float' is not a valid map key type",
		},
		{
			name:    "message inside oneof",
			content: `message M { oneof id { message N { } } }`,
			errstr:  "Unexpected 'message' in context: oneof",
		},
		{
			name:    "option inside oneof",
			content: `message M { oneof id { option packed = true; } }`,
			errstr:  "Unexpected 'option' in context: oneof",
		},
		{
			name:    "package inside message",
			content: `message M { package p; }`,
			errstr:  "Unexpected 'package' in context: message",
		},
		{
			name:    "rpc outside service",
			content: `message M { rpc Get (A) returns (B); }`,
			errstr:  "Unexpected 'rpc' in context: message",
		},
		{
			name:    "unterminated block comment",
			content: `message M { /* no end`,
			errstr:  "Expected '*/', but found eof",
		},
		{
			name:    "unterminated quoted string",
			content: `import "no end`,
			errstr:  `Expected ending '"', but found eof`,
		},
		{
			name:    "missing returns in rpc",
			content: `service S { rpc Get (A) gives (B); }`,
			errstr:  "Expected 'returns', but found: gives",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Nil(t, sf)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Msg, tt.errstr)
			assert.Contains(t, err.Error(), "on line:")
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse(strings.NewReader("message M {\n\tint32 a = 1\n}\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestParseDottedIdentifiers(t *testing.T) {
	sf := parse(t, `
		package my.deeply.nested.pkg;
		message M {
			google.protobuf.Empty nothing = 1;
		}
	`)

	assert.Equal(t, "my.deeply.nested.pkg", sf.PackageName)
	me := sf.Defs[0].(MessageElement)
	assert.Equal(t, "google.protobuf.Empty", me.Fields[0].Type.Name())
	assert.Equal(t, NamedDataTypeCategory, me.Fields[0].Type.Category())
}

func TestParseStraySemicolons(t *testing.T) {
	sf := parse(t, `
		package p;;
		message M {
			;
			int32 a = 1;;
		}
	`)

	me := sf.Defs[0].(MessageElement)
	require.Len(t, me.Fields, 1)
}
