package schema

import (
	"encoding/json"
	"fmt"
)

func (s Schema) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("id", s.ID)
	w.fieldIf("slug", s.Slug, s.present, s.Slug != "")
	w.fieldIf("name", s.Name, s.present, s.Name != "")
	w.fieldIf("description", s.Description, s.present, s.Description != "")
	w.fieldIf("version", s.Version, s.present, s.Version != "")
	w.fieldIf("is_public", s.IsPublic, s.present, s.IsPublic)
	w.fieldIf("is_published", s.IsPublished, s.present, s.IsPublished)
	w.fieldIf("published_at", s.PublishedAt, s.present, s.PublishedAt != nil)
	w.fieldIf("navigation", s.Navigation, s.present, !s.Navigation.isZero())
	pages := s.Pages
	if pages == nil {
		pages = []Page{}
	}
	w.field("pages", pages)
	w.fieldIf("metadata", s.Metadata, s.present, !s.Metadata.isZero())
	w.fieldIf("created_at", s.CreatedAt, s.present, s.CreatedAt != "")
	w.fieldIf("updated_at", s.UpdatedAt, s.present, s.UpdatedAt != "")
	if s.Permissions != nil {
		w.raw("permissions", s.Permissions)
	}
	if s.Statuses != nil {
		w.raw("statuses", s.Statuses)
	}
	if s.Payment != nil {
		w.raw("payment", s.Payment)
	}
	w.extras(s.Extra)
	return w.bytes()
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Schema
	obj.take("id", &out.ID)
	obj.take("slug", &out.Slug)
	obj.take("name", &out.Name)
	obj.take("description", &out.Description)
	obj.take("version", &out.Version)
	obj.take("is_public", &out.IsPublic)
	obj.take("is_published", &out.IsPublished)
	obj.take("published_at", &out.PublishedAt)
	obj.take("navigation", &out.Navigation)
	obj.take("metadata", &out.Metadata)
	obj.take("created_at", &out.CreatedAt)
	obj.take("updated_at", &out.UpdatedAt)
	out.Permissions, _ = obj.takeRaw("permissions")
	out.Statuses, _ = obj.takeRaw("statuses")
	out.Payment, _ = obj.takeRaw("payment")

	raw, ok := obj.members["pages"]
	if !ok {
		return ErrMissingPages
	}
	if err := json.Unmarshal(raw, &out.Pages); err != nil {
		return fmt.Errorf("%w: pages: %v", ErrMalformedDocument, err)
	}
	if out.Pages == nil {
		return ErrMissingPages
	}
	delete(obj.members, "pages")

	out.Extra = obj.rest()
	out.present = obj.seen
	*s = out
	return nil
}

func (n Navigation) isZero() bool {
	return n.GuestPageID == "" && n.InitialPageID == "" && len(n.Extra) == 0 && len(n.present) == 0
}

func (n Navigation) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.fieldIf("guestPageId", n.GuestPageID, n.present, n.GuestPageID != "")
	w.fieldIf("initialPageId", n.InitialPageID, n.present, n.InitialPageID != "")
	w.extras(n.Extra)
	return w.bytes()
}

func (n *Navigation) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Navigation
	obj.take("guestPageId", &out.GuestPageID)
	obj.take("initialPageId", &out.InitialPageID)
	out.Extra = obj.rest()
	out.present = obj.seen
	*n = out
	return nil
}

func (m Metadata) isZero() bool {
	return m.Revision == 0 && m.CreatedBy == "" && len(m.Extra) == 0 && len(m.present) == 0
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.fieldIf("revision", m.Revision, m.present, m.Revision != 0)
	w.fieldIf("createdBy", m.CreatedBy, m.present, m.CreatedBy != "")
	w.extras(m.Extra)
	return w.bytes()
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Metadata
	obj.take("revision", &out.Revision)
	obj.take("createdBy", &out.CreatedBy)
	out.Extra = obj.rest()
	out.present = obj.seen
	*m = out
	return nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("id", p.ID)
	w.fieldIf("order", p.Order, p.present, p.Order != 0)
	w.fieldIf("title", p.Title, p.present, p.Title != "")
	comps := p.Components
	if comps == nil {
		comps = []Component{}
	}
	w.field("components", comps)
	w.extras(p.Extra)
	return w.bytes()
}

func (p *Page) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Page
	obj.take("id", &out.ID)
	obj.take("order", &out.Order)
	obj.take("title", &out.Title)
	if raw, ok := obj.members["components"]; ok {
		if err := json.Unmarshal(raw, &out.Components); err != nil {
			return fmt.Errorf("%w: page %q components: %v", ErrMalformedDocument, out.ID, err)
		}
		delete(obj.members, "components")
	}
	if out.Components == nil {
		out.Components = []Component{}
	}
	out.Extra = obj.rest()
	out.present = obj.seen
	*p = out
	return nil
}

func (c Component) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	w.field("id", c.ID)
	w.field("type", c.Type)
	w.field("props", CloneProps(c.Props))
	if c.Action != nil {
		w.field("action", c.Action)
	}
	if c.Validation != nil {
		w.field("validation", c.Validation)
	}
	if c.GridRow != nil {
		w.field("gridRow", *c.GridRow)
	}
	if c.RowSpan != nil {
		w.field("rowSpan", *c.RowSpan)
	}
	if c.GridCol != nil {
		w.field("gridCol", *c.GridCol)
	}
	if c.ColSpan != nil {
		w.field("colSpan", *c.ColSpan)
	}
	w.extras(c.Extra)
	return w.bytes()
}

func (c *Component) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Component
	obj.take("id", &out.ID)
	obj.take("type", &out.Type)

	if raw, ok := obj.members["props"]; ok {
		var props map[string]any
		if err := decodeGeneric(raw, &props); err != nil {
			return fmt.Errorf("%w: component %q props: %v", ErrMalformedDocument, out.ID, err)
		}
		out.Props = props
		delete(obj.members, "props")
	}
	if out.Props == nil {
		out.Props = map[string]any{}
	}

	if raw, ok := obj.members["action"]; ok && string(compact(raw)) != "null" {
		var action Action
		if err := action.UnmarshalJSON(raw); err == nil {
			out.Action = &action
			delete(obj.members, "action")
		}
	}
	obj.takeOptional("validation", &out.Validation)
	obj.takeOptional("gridRow", &out.GridRow)
	obj.takeOptional("rowSpan", &out.RowSpan)
	obj.takeOptional("gridCol", &out.GridCol)
	obj.takeOptional("colSpan", &out.ColSpan)
	out.Extra = obj.rest()
	*c = out
	return nil
}

func (v Validation) MarshalJSON() ([]byte, error) {
	w := newFieldWriter()
	if v.Required != nil {
		w.field("required", *v.Required)
	}
	if v.MinLength != nil {
		w.field("minLength", *v.MinLength)
	}
	if v.MaxLength != nil {
		w.field("maxLength", *v.MaxLength)
	}
	if v.Min != nil {
		w.field("min", *v.Min)
	}
	if v.Max != nil {
		w.field("max", *v.Max)
	}
	w.extras(v.Extra)
	return w.bytes()
}

func (v *Validation) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out Validation
	obj.take("required", &out.Required)
	obj.take("minLength", &out.MinLength)
	obj.take("maxLength", &out.MaxLength)
	obj.take("min", &out.Min)
	obj.take("max", &out.Max)
	out.Extra = obj.rest()
	*v = out
	return nil
}
