// Zaparoo Now Playing
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Now Playing.
//
// Zaparoo Now Playing is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Now Playing is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Now Playing.  If not, see <http://www.gnu.org/licenses/>.

// Package richtext renders Game Jolt's rich-text description documents as
// flat markdown.
//
// A document is a tree of nodes. Block nodes (paragraph, bulletList,
// listItem) hold child nodes; text nodes carry a string and an ordered list
// of formatting marks:
//
//	{"type":"doc","content":[
//	  {"type":"paragraph","content":[
//	    {"type":"text","text":"Abandon","marks":[{"type":"strong"}]}
//	  ]}
//	]}
//
// renders as "**Abandon**\n".
package richtext

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node types.
const (
	NodeParagraph  = "paragraph"
	NodeText       = "text"
	NodeHardBreak  = "hardBreak"
	NodeBulletList = "bulletList"
	NodeListItem   = "listItem"
)

// Mark types.
const (
	MarkLink   = "link"
	MarkBold   = "strong"
	MarkItalic = "em"
	MarkTag    = "tag"
)

const (
	// Indent prefixes every item of a bullet list.
	Indent = "    "
	// Bullet prefixes the content of a list item.
	Bullet = "• "
)

// MarkAttrs holds the attributes of a mark. Only link and tag marks have any.
type MarkAttrs struct {
	Href     string `json:"href"`
	Title    string `json:"title"`
	Tag      string `json:"tag"`
	Autolink bool   `json:"autolink"`
}

// Mark is a formatting mark applied to a text node.
type Mark struct {
	Attrs MarkAttrs `json:"attrs"`
	Type  string    `json:"type"`
}

// Node is a single node of the document tree.
type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Marks   []Mark `json:"marks"`
	Content []Node `json:"content"`
}

// Document is the root of a description.
type Document struct {
	Content []Node `json:"content"`
}

// Parse decodes a JSON description document. Unknown node types are
// rejected so that format changes surface instead of silently dropping text.
func Parse(data string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode description document: %w", err)
	}
	if err := validate(doc.Content); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func validate(nodes []Node) error {
	for i := range nodes {
		switch nodes[i].Type {
		case NodeParagraph, NodeBulletList, NodeListItem:
			if err := validate(nodes[i].Content); err != nil {
				return err
			}
		case NodeText, NodeHardBreak:
		default:
			return fmt.Errorf("unsupported description node type %q", nodes[i].Type)
		}
	}
	return nil
}

// Render parses and renders a JSON description document in one step.
func Render(data string) (string, error) {
	doc, err := Parse(data)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// String renders the document: top-level nodes joined by newlines.
func (d Document) String() string {
	return joinNodes(d.Content, "\n")
}

// String renders a single node.
func (n Node) String() string {
	switch n.Type {
	case NodeParagraph:
		return joinNodes(n.Content, "") + "\n"
	case NodeText:
		return applyMarks(n.Text, n.Marks)
	case NodeHardBreak:
		return "\n"
	case NodeBulletList:
		items := make([]string, 0, len(n.Content))
		for _, child := range n.Content {
			items = append(items, Indent+child.String())
		}
		return strings.Join(items, "\n")
	case NodeListItem:
		return Bullet + joinNodes(n.Content, "\n")
	default:
		return ""
	}
}

// applyMarks wraps text with each mark in order, so the first mark ends up
// innermost.
func applyMarks(text string, marks []Mark) string {
	for _, m := range marks {
		switch m.Type {
		case MarkLink:
			text = "[" + text + "](" + m.Attrs.Href + ")"
		case MarkBold:
			text = "**" + text + "**"
		case MarkItalic:
			text = "*" + text + "*"
		}
	}
	return text
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, sep)
}
