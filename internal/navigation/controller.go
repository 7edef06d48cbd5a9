// Package navigation keeps the page history stack of a running preview.
package navigation

import (
	"slices"

	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/schema"
)

// Controller is a history stack of visited page ids. The last entry is the
// current page. The history never becomes empty. A Controller is not safe
// for concurrent use.
type Controller struct {
	history []string
}

// New returns a controller whose history is [initialPageID].
func New(initialPageID string) *Controller {
	return &Controller{history: []string{initialPageID}}
}

// NewForPreview resolves the initial page of doc and seeds the history as if
// the user had navigated forward from the first page.
func NewForPreview(doc *schema.Schema, storedPageID string) *Controller {
	c := New(InitialPageID(doc, storedPageID))
	c.Reset(c.Current(), pageIDs(doc))
	return c
}

// InitialPageID picks the starting page: a stored id that still exists, then
// navigation.initialPageId when it references an existing page, then the
// first page, then schema.DefaultPageID.
func InitialPageID(doc *schema.Schema, storedPageID string) string {
	if storedPageID != "" && doc.HasPage(storedPageID) {
		return storedPageID
	}
	if id := doc.InitialPageID(); id != "" {
		return id
	}
	if doc != nil && len(doc.Pages) > 0 && doc.Pages[0].ID != "" {
		return doc.Pages[0].ID
	}
	return schema.DefaultPageID
}

// Push appends pageID. Repeated ids accumulate.
func (c *Controller) Push(pageID string) {
	c.history = append(c.history, pageID)
}

// Pop drops the current page. At the root it is a no-op and returns false.
func (c *Controller) Pop() bool {
	if len(c.history) <= 1 {
		return false
	}
	c.history = c.history[:len(c.history)-1]
	return true
}

// Reset seeds the history with pages[0..i] where i is the index of pageID in
// pages. When pageID is first or absent the history is [pageID].
func (c *Controller) Reset(pageID string, pages []string) {
	idx := slices.Index(pages, pageID)
	if idx <= 0 {
		c.history = []string{pageID}
		return
	}
	c.history = slices.Clone(pages[:idx+1])
}

// Current returns the page on top of the stack.
func (c *Controller) Current() string {
	return c.history[len(c.history)-1]
}

// History returns a copy of the stack, root first.
func (c *Controller) History() []string {
	return slices.Clone(c.history)
}

// Depth returns the number of entries in the stack.
func (c *Controller) Depth() int {
	return len(c.history)
}

// Apply consumes push and pop tokens and reports whether the current page
// changed. Other tokens and a push without destination are ignored.
func (c *Controller) Apply(token actions.Token) bool {
	parsed, err := actions.ParseToken(token)
	if err != nil {
		return false
	}
	switch parsed.Kind {
	case actions.KindPush:
		if parsed.PageID == "" {
			return false
		}
		c.Push(parsed.PageID)
		return true
	case actions.KindPop:
		return c.Pop()
	default:
		return false
	}
}

// Navigate applies an executor navigation intent.
func (c *Controller) Navigate(nav *actions.Navigation) bool {
	if nav == nil {
		return false
	}
	switch nav.Op {
	case actions.NavigatePush:
		if nav.PageID == "" {
			return false
		}
		c.Push(nav.PageID)
		return true
	case actions.NavigatePop:
		return c.Pop()
	default:
		return false
	}
}

func pageIDs(doc *schema.Schema) []string {
	if doc == nil {
		return nil
	}
	ids := make([]string, len(doc.Pages))
	for i, page := range doc.Pages {
		ids[i] = page.ID
	}
	return ids
}
