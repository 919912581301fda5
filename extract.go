package protodispatch

import "strings"

// The role names of the two recognized container messages.
const (
	commandRole = "Command"
	eventRole   = "Event"
)

// BuildModel walks a parse tree and extracts the dispatch model: the flat
// list of messages and the optional Command and Event containers.
// Extraction assumes grammar-valid input and cannot fail.
func BuildModel(sf *SchemaFile) Model {
	root := rootName(sf.PackageName)
	msgs := appendMessages(sf.Defs, "", root, nil)
	return Model{
		Messages: msgs,
		Command:  extractContainer(sf, commandRole, root, msgs),
		Event:    extractContainer(sf, eventRole, root, msgs),
	}
}

// rootName converts the declared package name into the identifier prefix
// shared by all top-level definitions: dot-separated segments are
// capitalized and joined with underscores. An absent package yields an
// empty root.
func rootName(pkg string) string {
	if pkg == "" {
		return ""
	}
	segments := strings.Split(pkg, ".")
	for i, s := range segments {
		segments[i] = capitalize(s)
	}
	return strings.Join(segments, "_")
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func qualifyID(root, parentID, name string) string {
	if parentID == "" {
		return root + "_" + name
	}
	return parentID + "." + name
}

// appendMessages extracts every message and enum definition reachable from
// defs into acc, depth first. Nested definitions are appended before their
// enclosing message; each entry carries only its directly declared fields,
// with the fields of its oneof bodies merged in.
func appendMessages(defs []DefElement, parentID, root string, acc []Message) []Message {
	for _, def := range defs {
		switch d := def.(type) {
		case MessageElement:
			id := qualifyID(root, parentID, d.Name)
			acc = appendMessages(d.Defs, id, root, acc)

			m := Message{ID: id, Fields: map[string]string{}}
			for _, f := range d.Fields {
				m.Fields[f.Name] = f.Tag
			}
			for _, oo := range d.OneOfs {
				for _, f := range oo.Fields {
					m.Fields[f.Name] = f.Tag
				}
			}
			acc = append(acc, m)
		case EnumElement:
			acc = append(acc, Message{ID: qualifyID(root, parentID, d.Name), Fields: map[string]string{}})
		}
	}
	return acc
}

// extractContainer scans the top-level definitions for a message whose
// declared name equals the role name and builds its command entity. When
// the role name is declared more than once, each later definition
// overwrites the previous one: the last wins.
func extractContainer(sf *SchemaFile, role string, root string, msgs []Message) *Command {
	var cmd *Command
	for _, def := range sf.Defs {
		me, ok := def.(MessageElement)
		if !ok || me.Name != role {
			continue
		}
		cmd = &Command{
			CommandID: root + "_" + role,
			ServiceID: sf.PackageName + "." + role,
		}
		for _, oo := range me.OneOfs {
			for _, f := range oo.Fields {
				cmd.OneOf = append(cmd.OneOf, OneOfCase{
					ID:     f.Name,
					Type:   normalizeType(f.Type.Name(), cmd.CommandID, msgs),
					Number: f.Tag,
				})
			}
		}
	}
	return cmd
}

// normalizeType resolves a raw field type reference against the known
// messages: first an exact match for a name nested directly under the
// container, then the first message in extraction order sharing the simple
// name, and otherwise the raw token unchanged. The fallback is deliberate:
// scalar and well-known external types never appear in the message list and
// are mapped by the emission stage itself.
func normalizeType(name string, containerID string, msgs []Message) string {
	for _, m := range msgs {
		if m.ID == containerID+"."+name {
			return m.ID
		}
	}
	suffix := "_" + name
	for _, m := range msgs {
		if strings.HasSuffix(m.ID, suffix) {
			return m.ID
		}
	}
	return name
}
