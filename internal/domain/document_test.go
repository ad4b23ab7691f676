package domain

import (
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := &PageDocument{
		Components: []ComponentNode{
			{
				ID:    "hero-1",
				Type:  "hero",
				Props: map[string]any{"heading": "Hello", "height": float64(300)},
				Children: []ComponentNode{
					{ID: "cta-1", Type: "button", Props: map[string]any{"label": "Apply"}},
				},
			},
		},
		Meta: &PageMeta{Title: "Home", Keywords: []string{"campus"}},
	}

	raw, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := DecodePageDocument(raw)
	if err != nil {
		t.Fatalf("DecodePageDocument: %v", err)
	}
	if len(back.Components) != 1 || back.Components[0].ID != "hero-1" {
		t.Fatalf("round trip lost components: %+v", back.Components)
	}
	if len(back.Components[0].Children) != 1 || back.Components[0].Children[0].Type != "button" {
		t.Fatalf("round trip lost children: %+v", back.Components[0].Children)
	}
	if back.Meta == nil || back.Meta.Title != "Home" {
		t.Fatalf("round trip lost meta: %+v", back.Meta)
	}
}

func TestDecodeEmptyColumn(t *testing.T) {
	doc, err := DecodePageDocument(nil)
	if err != nil {
		t.Fatalf("DecodePageDocument(nil): %v", err)
	}
	if doc == nil || doc.Components == nil {
		t.Fatal("empty column must decode to a usable default document")
	}
}

func TestDefaultPageDocument(t *testing.T) {
	doc := DefaultPageDocument("Admissions")
	if doc.Meta == nil || doc.Meta.Title != "Admissions" {
		t.Fatalf("default meta: %+v", doc.Meta)
	}
	if doc.Components == nil || len(doc.Components) != 0 {
		t.Fatalf("default components: %+v", doc.Components)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := &PageDocument{
		Components: []ComponentNode{
			{
				ID:   "list-1",
				Type: "list",
				Props: map[string]any{
					"items":  []any{"a", "b"},
					"nested": map[string]any{"k": "v"},
				},
			},
		},
		Meta: &PageMeta{Title: "T", Keywords: []string{"x"}},
	}

	cp := doc.Clone()

	cp.Components[0].Props["nested"].(map[string]any)["k"] = "changed"
	cp.Components[0].Props["items"].([]any)[0] = "changed"
	cp.Meta.Keywords[0] = "changed"
	cp.Meta.Title = "changed"

	if doc.Components[0].Props["nested"].(map[string]any)["k"] != "v" {
		t.Fatal("clone shares nested prop map with original")
	}
	if doc.Components[0].Props["items"].([]any)[0] != "a" {
		t.Fatal("clone shares prop slice with original")
	}
	if doc.Meta.Keywords[0] != "x" || doc.Meta.Title != "T" {
		t.Fatal("clone shares meta with original")
	}

	if (*PageDocument)(nil).Clone() != nil {
		t.Fatal("nil clone must stay nil")
	}
}
