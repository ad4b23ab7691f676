package domain

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ComponentNode is one node of a page's UI component tree. Component types
// are an open set defined by external editors; the backend never interprets
// them beyond copying.
type ComponentNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Props    map[string]any  `json:"props"`
	Children []ComponentNode `json:"children,omitempty"`
}

type PageMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	OGImage     string   `json:"ogImage,omitempty"`
}

// PageDocument is the editable JSON document backing a page.
type PageDocument struct {
	Components []ComponentNode `json:"components"`
	Meta       *PageMeta       `json:"meta,omitempty"`
}

// DefaultPageDocument returns the document a page starts with when no
// template or explicit document is supplied.
func DefaultPageDocument(pageName string) *PageDocument {
	return &PageDocument{
		Components: []ComponentNode{},
		Meta: &PageMeta{
			Title:       pageName,
			Description: "",
			Keywords:    []string{},
		},
	}
}

// Encode marshals the document for a JSONB column. A nil document encodes as
// an empty default so a page row never carries a NULL document.
func (d *PageDocument) Encode() (datatypes.JSON, error) {
	if d == nil {
		d = DefaultPageDocument("")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodePageDocument parses a stored JSONB column back into the typed tree.
func DecodePageDocument(raw datatypes.JSON) (*PageDocument, error) {
	if len(raw) == 0 {
		return DefaultPageDocument(""), nil
	}
	var doc PageDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Components == nil {
		doc.Components = []ComponentNode{}
	}
	return &doc, nil
}

// Clone deep-copies the document so callers can hand snapshots around
// without aliasing the component tree or prop maps.
func (d *PageDocument) Clone() *PageDocument {
	if d == nil {
		return nil
	}
	out := &PageDocument{
		Components: cloneComponents(d.Components),
	}
	if d.Meta != nil {
		meta := *d.Meta
		meta.Keywords = append([]string(nil), d.Meta.Keywords...)
		out.Meta = &meta
	}
	return out
}

func cloneComponents(nodes []ComponentNode) []ComponentNode {
	out := make([]ComponentNode, len(nodes))
	for i, n := range nodes {
		out[i] = ComponentNode{
			ID:       n.ID,
			Type:     n.Type,
			Props:    cloneProps(n.Props),
			Children: cloneComponents(n.Children),
		}
	}
	return out
}

func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = cloneProps(tv)
		case []any:
			cp := make([]any, len(tv))
			copy(cp, tv)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
