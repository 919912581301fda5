// Package swiftgen emits Swift glue source from an extracted dispatch
// model. For the Event container it writes a decoder class plus the
// listener protocol the decoder notifies; for the Command container it
// writes an encoder class; both get an extension exposing the oneof case
// field numbers. Every message with fields additionally gets an extension
// exposing its field numbers.
package swiftgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aeriform/protodispatch"
)

// FileName returns the name of the generated file for a schema file base
// name, e.g. "camera" yields "camera.pb.ext.swift".
func FileName(base string) string {
	return base + ".pb.ext.swift"
}

// Generate renders the Swift extension source for the given model.
func Generate(m protodispatch.Model) string {
	g := &generator{model: m}
	return g.generate()
}

type generator struct {
	model protodispatch.Model
	b     strings.Builder
}

func (g *generator) w(format string, args ...interface{}) {
	g.b.WriteString(fmt.Sprintf(format, args...))
}

func (g *generator) generate() string {
	g.header()
	if ev := g.model.Event; ev != nil {
		g.decoderListenerProtocol(ev)
		g.decoder(ev)
		g.numberExtension(ev)
	}
	if cmd := g.model.Command; cmd != nil {
		g.encoder(cmd)
		g.numberExtension(cmd)
	}
	for _, msg := range g.model.Messages {
		g.messageExtension(msg)
	}
	return g.b.String()
}

func (g *generator) header() {
	g.w("// Generated, do not edit !\n")
	g.w("\n")
	g.w("import Foundation\n")
	g.w("import GroundSdk\n")
	g.w("import SwiftProtobuf\n")
	g.w("\n")
}

// decoderListenerProtocol writes the protocol through which decoded events
// are handed to client code, one callback per oneof case.
func (g *generator) decoderListenerProtocol(event *protodispatch.Command) {
	baseName := baseName(event.CommandID)
	g.w("/// Listener for `%sDecoder`.\n", baseName)
	g.w("protocol %sDecoderListener: AnyObject {\n", baseName)
	for _, c := range event.OneOf {
		g.w("\n")
		g.w("    /// Processes a `%s` event.\n", swiftType(c.Type))
		g.w("    ///\n")
		g.w("    /// - Parameter %s: event to process\n", camel(c.ID))
		g.w("    func on%s(_ %s: %s)\n", pascal(c.ID), camel(c.ID), swiftType(c.Type))
	}
	g.w("}\n")
}

func (g *generator) decoder(event *protodispatch.Command) {
	baseName := baseName(event.CommandID)
	g.w("\n")
	g.w("/// Decoder for %s events.\n", event.ServiceID)
	g.w("class %sDecoder: NSObject, ArsdkFeatureGenericCallback {\n\n", baseName)
	g.w("    /// Service identifier.\n")
	g.w("    static let serviceId = \"%s\".serviceId\n\n", event.ServiceID)
	g.w("    /// Listener notified when events are decoded.\n")
	g.w("    private weak var listener: %sDecoderListener?\n\n", baseName)
	g.w("    /// Constructor.\n")
	g.w("    ///\n")
	g.w("    /// - Parameter listener: listener notified when events are decoded\n")
	g.w("    init(listener: %sDecoderListener) {\n", baseName)
	g.w("       self.listener = listener\n")
	g.w("    }\n\n")
	g.w("    /// Decodes an event.\n")
	g.w("    ///\n")
	g.w("    /// - Parameter event: event to decode\n")
	g.w("    func decode(_ event: OpaquePointer) {\n")
	g.w("       if ArsdkCommand.getFeatureId(event) == kArsdkFeatureGenericUid {\n")
	g.w("            ArsdkFeatureGeneric.decode(event, callback: self)\n")
	g.w("        }\n")
	g.w("    }\n\n")
	g.w("    func onCustomEvtNonAck(serviceId: UInt, msgNum: UInt, payload: Data) {\n")
	g.w("        processEvent(serviceId: serviceId, payload: payload, isNonAck: true)\n")
	g.w("    }\n\n")
	g.w("    func onCustomEvt(serviceId: UInt, msgNum: UInt, payload: Data!) {\n")
	g.w("        processEvent(serviceId: serviceId, payload: payload, isNonAck: false)\n")
	g.w("    }\n\n")
	g.w("    /// Processes a custom event.\n")
	g.w("    ///\n")
	g.w("    /// - Parameters:\n")
	g.w("    ///    - serviceId: service identifier\n")
	g.w("    ///    - payload: event payload\n")
	g.w("    private func processEvent(serviceId: UInt, payload: Data, isNonAck: Bool) {\n")
	g.w("        guard serviceId == %sDecoder.serviceId else {\n", baseName)
	g.w("            return\n")
	g.w("        }\n")
	g.w("        if let event = try? %s(serializedData: payload) {\n", event.CommandID)
	g.w("            if !isNonAck {\n")
	g.w("                ULog.d(.tag, \"%sDecoder event \\(event)\")\n", baseName)
	g.w("            }\n")
	g.w("            switch event.id {\n")
	for _, c := range event.OneOf {
		g.w("            case .%s(let event):\n", camel(c.ID))
		g.w("                listener?.on%s(event)\n", pascal(c.ID))
	}
	g.w("            case .none:\n")
	g.w("                ULog.w(.tag, \"Unknown %s, skipping this event\")\n", event.CommandID)
	g.w("            }\n")
	g.w("        }\n")
	g.w("    }\n")
	g.w("}\n")
}

func (g *generator) encoder(command *protodispatch.Command) {
	baseName := baseName(command.CommandID)
	g.w("\n")
	g.w("/// Decoder for %s commands.\n", command.ServiceID)
	g.w("class %sEncoder {\n\n", baseName)
	g.w("    /// Service identifier.\n")
	g.w("    static let serviceId = \"%s\".serviceId\n\n", command.ServiceID)
	g.w("    /// Gets encoder for a command.\n")
	g.w("    ///\n")
	g.w("    /// - Parameter command: command to encode\n")
	g.w("    /// - Returns: command encoder, or `nil`\n")
	g.w("    static func encoder(_ command: %s.OneOf_ID) -> ArsdkCommandEncoder? {\n", command.CommandID)
	g.w("        ULog.d(.tag, \"%sEncoder command \\(command)\")\n", baseName)
	g.w("        var message = %s()\n", command.CommandID)
	g.w("        message.id = command\n")
	g.w("        if let payload = try? message.serializedData() {\n")
	g.w("            return ArsdkFeatureGeneric.customCmdEncoder(serviceId: serviceId,\n")
	g.w("                                                        msgNum: UInt(command.number),\n")
	g.w("                                                        payload: payload)\n")
	g.w("        }\n")
	g.w("        return nil\n")
	g.w("    }\n")
	g.w("}\n")
}

// numberExtension writes the OneOf_ID extension mapping each case back to
// its field number, in declaration (dispatch-case) order.
func (g *generator) numberExtension(cmd *protodispatch.Command) {
	g.w("\n")
	g.w("/// Extension to get command field number.\n")
	g.w("extension %s.OneOf_ID {\n", cmd.CommandID)
	g.w("    var number: Int32 {\n")
	g.w("        switch self {\n")
	for _, c := range cmd.OneOf {
		g.w("        case .%s: return %s\n", camel(c.ID), c.Number)
	}
	g.w("        }\n")
	g.w("    }\n")
	g.w("}\n")
}

func (g *generator) messageExtension(msg protodispatch.Message) {
	fields := sortedFields(msg)
	if len(fields) == 0 {
		return
	}
	_, hasSelectedFields := msg.Fields["selected_fields"]
	g.w("extension %s {\n", msg.ID)
	for _, f := range fields {
		g.w("    static var %sFieldNumber: Int32 { %s }\n", camel(f.name), f.number)
	}
	if hasSelectedFields {
		for _, f := range fields {
			g.w("    var %sSelected: Bool {\n", camel(f.name))
			g.w("        get {\n")
			g.w("            return selectedFields[%s] != nil\n", f.number)
			g.w("        }\n")
			g.w("        set {\n")
			g.w("            if newValue && selectedFields[%s] == nil {\n", f.number)
			g.w("                selectedFields[%s] = SwiftProtobuf.Google_Protobuf_Empty()\n", f.number)
			g.w("            } else if !newValue && selectedFields[%s] != nil {\n", f.number)
			g.w("                selectedFields.removeValue(forKey: %s)\n", f.number)
			g.w("            }\n")
			g.w("        }\n")
			g.w("    }\n")
		}
	}
	g.w("}\n")
}

type field struct {
	name   string
	number string
}

// sortedFields returns a message's fields ordered by numeric field number.
func sortedFields(msg protodispatch.Message) []field {
	fields := make([]field, 0, len(msg.Fields))
	for name, number := range msg.Fields {
		fields = append(fields, field{name: name, number: number})
	}
	sort.Slice(fields, func(i, j int) bool {
		ni, _ := strconv.Atoi(fields[i].number)
		nj, _ := strconv.Atoi(fields[j].number)
		return ni < nj
	})
	return fields
}

var swiftTypeMap = map[string]string{
	"google.protobuf.Empty": "SwiftProtobuf.Google_Protobuf_Empty",
	"string":                "String",
	"double":                "Double",
	"float":                 "Float",
	"int32":                 "Int32",
	"uint32":                "UInt32",
	"uint64":                "UInt64",
	"sint32":                "Int32",
	"sint64":                "Int64",
	"fixed32":               "UInt32",
	"fixed64":               "UInt64",
	"sfixed32":              "Int32",
	"sfixed64":              "Int64",
	"bool":                  "Bool",
	"bytes":                 "Data",
}

// swiftType maps a scalar or well-known type to its Swift spelling; resolved
// message identifiers pass through unchanged.
func swiftType(t string) string {
	if mapped, ok := swiftTypeMap[t]; ok {
		return mapped
	}
	return t
}

// baseName strips the underscores from a qualified container identifier,
// e.g. "My_Pkg_Event" yields "MyPkgEvent".
func baseName(commandID string) string {
	return strings.ReplaceAll(commandID, "_", "")
}

// pascal converts a snake_case field name to PascalCase.
func pascal(name string) string {
	segments := strings.Split(name, "_")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	}
	return strings.Join(segments, "")
}

// camel converts a snake_case field name to camelCase.
func camel(name string) string {
	s := pascal(name)
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
