package mutation

import (
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-sdui/internal/schema"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newDoc(t *testing.T) *schema.Schema {
	t.Helper()
	doc := schema.Default(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	doc.Pages = append(doc.Pages, schema.Page{ID: "home", Order: 1, Title: "Home", Components: []schema.Component{}})
	return doc
}

func TestAddComponentAppendsDefaults(t *testing.T) {
	model := New(WithClock(fixedClock(1700000000000)))
	doc := newDoc(t)

	next, id := model.AddComponent(doc, "home", schema.TypeButton)
	if id != "comp_1700000000000" {
		t.Fatalf("expected clock-derived id, got %q", id)
	}
	page, _ := next.Page("home")
	if len(page.Components) != 1 {
		t.Fatalf("expected one component, got %d", len(page.Components))
	}
	comp := page.Components[0]
	if comp.Type != schema.TypeButton || comp.Props["variant"] != "primary" || comp.Props["title"] != "Button" {
		t.Fatalf("unexpected component %+v", comp)
	}
	if comp.GridRow == nil || *comp.GridRow != 0 || comp.RowSpan == nil || *comp.RowSpan != 1 {
		t.Fatalf("expected grid hints 0/1, got %v/%v", comp.GridRow, comp.RowSpan)
	}
	original, _ := doc.Page("home")
	if len(original.Components) != 0 {
		t.Fatalf("expected input document to stay untouched")
	}
}

func TestAddComponentKeepsIDsUnique(t *testing.T) {
	model := New(WithClock(fixedClock(42)))
	doc := newDoc(t)

	seen := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		pageID := "home"
		if i%2 == 0 {
			pageID = schema.DefaultPageID
		}
		var id string
		doc, id = model.AddComponent(doc, pageID, schema.TypeText)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	if got := len(doc.ComponentIDs()); got != 5 {
		t.Fatalf("expected 5 components, got %d", got)
	}
	page, _ := doc.Page("home")
	if *page.Components[1].GridRow != 1 {
		t.Fatalf("expected grid row to follow position, got %d", *page.Components[1].GridRow)
	}
}

func TestAddComponentUnknownTypeAndMissingPage(t *testing.T) {
	model := New(WithClock(fixedClock(1)))
	doc := newDoc(t)

	next, id := model.AddComponent(doc, "home", "carousel")
	page, _ := next.Page("home")
	if id == "" || len(page.Components[0].Props) != 0 {
		t.Fatalf("expected empty props for unknown type, got %+v", page.Components[0].Props)
	}

	same, id := model.AddComponent(doc, "missing", schema.TypeText)
	if id != "" {
		t.Fatalf("expected no id for missing page, got %q", id)
	}
	if !schema.Equal(same, doc) {
		t.Fatalf("expected unchanged document for missing page")
	}
}

func TestUpdateComponentSearchesAllPages(t *testing.T) {
	model := New(WithClock(fixedClock(10)))
	doc, id := model.AddComponent(newDoc(t), "home", schema.TypeText)

	page, _ := doc.Page("home")
	updated := page.Components[0].Clone()
	updated.Props["text"] = "Updated"
	next := model.UpdateComponent(doc, updated)

	nextPage, _ := next.Page("home")
	if nextPage.Components[0].Props["text"] != "Updated" || nextPage.Components[0].ID != id {
		t.Fatalf("expected updated text, got %+v", nextPage.Components[0])
	}
	if page.Components[0].Props["text"] != "Sample Text" {
		t.Fatalf("expected previous document to keep its text")
	}
}

func TestDeleteComponent(t *testing.T) {
	model := New(WithClock(fixedClock(10)))
	doc, first := model.AddComponent(newDoc(t), "home", schema.TypeText)
	doc, second := model.AddComponent(doc, "home", schema.TypeHeading)

	next := model.DeleteComponent(doc, first)
	page, _ := next.Page("home")
	if len(page.Components) != 1 || page.Components[0].ID != second {
		t.Fatalf("expected only %q to remain, got %+v", second, page.Components)
	}
	same := model.DeleteComponent(next, "missing")
	if !schema.Equal(same, next) {
		t.Fatalf("expected missing id to leave document unchanged")
	}
}

func TestReorderComponentsTargetsFirstPage(t *testing.T) {
	model := New(WithClock(fixedClock(10)))
	doc, a := model.AddComponent(newDoc(t), schema.DefaultPageID, schema.TypeText)
	doc, b := model.AddComponent(doc, schema.DefaultPageID, schema.TypeSpacer)
	doc, _ = model.AddComponent(doc, "home", schema.TypeButton)

	first := doc.Pages[0].Components
	next := model.ReorderComponents(doc, []schema.Component{first[1], first[0]})
	if next.Pages[0].Components[0].ID != b || next.Pages[0].Components[1].ID != a {
		t.Fatalf("expected reversed first page, got %v", next.ComponentIDs())
	}
	if len(next.Pages[1].Components) != 1 {
		t.Fatalf("expected second page untouched")
	}
}

func TestReorderPageComponents(t *testing.T) {
	model := New(WithClock(fixedClock(10)))
	doc, a := model.AddComponent(newDoc(t), "home", schema.TypeText)
	doc, b := model.AddComponent(doc, "home", schema.TypeImage)

	page, _ := doc.Page("home")
	next := model.ReorderPageComponents(doc, "home", []schema.Component{page.Components[1], page.Components[0]})
	nextPage, _ := next.Page("home")
	if nextPage.Components[0].ID != b || nextPage.Components[1].ID != a {
		t.Fatalf("expected reordered home page, got %v", next.ComponentIDs())
	}
}

func TestAddPage(t *testing.T) {
	model := New(WithClock(fixedClock(1700000000123)))
	doc := newDoc(t)

	next, id := model.AddPage(doc)
	if id != "page_1700000000123" {
		t.Fatalf("unexpected page id %q", id)
	}
	page, ok := next.Page(id)
	if !ok {
		t.Fatalf("expected new page")
	}
	if page.Order != 2 || page.Title != "Page 3" || len(page.Components) != 0 {
		t.Fatalf("unexpected page %+v", page)
	}

	again, second := model.AddPage(next)
	if second == id {
		t.Fatalf("expected distinct page ids within the same millisecond")
	}
	if len(again.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(again.Pages))
	}
}

func TestDeletePageKeepsDocumentNonEmpty(t *testing.T) {
	model := New()
	doc := newDoc(t)

	next := model.DeletePage(doc, schema.DefaultPageID)
	if len(next.Pages) != 1 || next.Pages[0].ID != "home" {
		t.Fatalf("expected only home to remain, got %+v", next.Pages)
	}
	for i := 0; i < 3; i++ {
		next = model.DeletePage(next, next.Pages[0].ID)
		if len(next.Pages) < 1 {
			t.Fatalf("expected at least one page after delete %d", i)
		}
	}
	if next.Pages[0].ID != schema.DefaultPageID || next.Pages[0].Title != schema.DefaultPageTitle {
		t.Fatalf("expected synthesized welcome page, got %+v", next.Pages[0])
	}
}

func TestUpdatePage(t *testing.T) {
	model := New()
	doc := newDoc(t)

	page, _ := doc.Page("home")
	updated := page.Clone()
	updated.Title = "Landing"
	next := model.UpdatePage(doc, updated)
	got, _ := next.Page("home")
	if got.Title != "Landing" {
		t.Fatalf("expected renamed page, got %q", got.Title)
	}
	same := model.UpdatePage(doc, schema.Page{ID: "missing", Title: "x"})
	if !schema.Equal(same, doc) {
		t.Fatalf("expected missing page to leave document unchanged")
	}
}

func TestInterleavedEditsPreserveInvariants(t *testing.T) {
	model := New(WithClock(fixedClock(5)))
	doc := newDoc(t)
	var ids []string
	for i := 0; i < 20; i++ {
		switch i % 5 {
		case 0:
			var id string
			doc, id = model.AddPage(doc)
			ids = append(ids, id)
		case 1:
			doc, _ = model.AddComponent(doc, doc.Pages[len(doc.Pages)-1].ID, schema.TypeText)
		case 2:
			doc, _ = model.AddComponent(doc, doc.Pages[0].ID, schema.TypeButton)
		case 3:
			all := doc.ComponentIDs()
			doc = model.DeleteComponent(doc, all[0])
		case 4:
			doc = model.DeletePage(doc, doc.Pages[0].ID)
		}
		if len(doc.Pages) == 0 {
			t.Fatalf("step %d: document lost all pages", i)
		}
		seen := map[string]struct{}{}
		for _, id := range doc.ComponentIDs() {
			if _, dup := seen[id]; dup {
				t.Fatalf("step %d: duplicate component id %q", i, id)
			}
			seen[id] = struct{}{}
		}
		if err := schema.CheckPageIDs(doc); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if len(ids) != 4 {
		t.Fatalf("expected 4 added pages, got %s", fmt.Sprint(ids))
	}
}
