// Package render interprets schema components into a tree of visual nodes.
package render

import (
	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/style"
)

// Kind names the visual element a node stands for.
type Kind string

const (
	KindPage         Kind = "page"
	KindWrapper      Kind = "wrapper"
	KindText         Kind = "text"
	KindHeading      Kind = "heading"
	KindButton       Kind = "button"
	KindButtonLabel  Kind = "button-label"
	KindField        Kind = "field"
	KindLabel        Kind = "label"
	KindInput        Kind = "input"
	KindTextarea     Kind = "textarea"
	KindImage        Kind = "image"
	KindSpacer       Kind = "spacer"
	KindUnsupported  Kind = "unsupported"
	KindPageNotFound Kind = "page-not-found"
)

// Node is one element of the rendered tree. Event callbacks are excluded from
// serialization.
type Node struct {
	Kind        Kind              `json:"kind"`
	ComponentID string            `json:"component_id,omitempty"`
	Text        string            `json:"text,omitempty"`
	Style       style.Style       `json:"style,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Value       string            `json:"value,omitempty"`
	Action      actions.Token     `json:"action,omitempty"`
	Children    []*Node           `json:"children,omitempty"`

	OnClick  func()             `json:"-"`
	OnChange func(value string) `json:"-"`
}

// Click invokes the click handler, reporting whether one was attached.
func (n *Node) Click() bool {
	if n == nil || n.OnClick == nil {
		return false
	}
	n.OnClick()
	return true
}

// Change invokes the change handler, reporting whether one was attached.
func (n *Node) Change(value string) bool {
	if n == nil || n.OnChange == nil {
		return false
	}
	n.OnChange(value)
	return true
}

// Find returns the first node in depth-first order for which match is true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindComponent returns the outermost node rendered for componentID.
func (n *Node) FindComponent(componentID string) *Node {
	return n.Find(func(node *Node) bool {
		return node.ComponentID == componentID && node.Kind != KindWrapper
	})
}

// IsPageNotFound reports whether n is the placeholder rendered for a missing page.
func IsPageNotFound(n *Node) bool {
	return n != nil && n.Kind == KindPageNotFound
}
