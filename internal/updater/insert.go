// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package updater

import (
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// insertion is new member text destined for one offset.
type insertion struct {
	offset     int
	text       string
	afterBrace bool
}

// insertion renders the missing members of kind and places them after the
// last member of that kind, else after the last member of an earlier kind,
// else right after the opening brace.
func (c *classEditor) insertion(kind types.SymbolKind, missing []prototype.Named) insertion {
	caps := c.target.Capabilities()
	rendered := make([]string, len(missing))
	for i, m := range missing {
		rendered[i] = c.r.Member(m, caps, c.indent)
	}
	c.log.Debug("inserting members",
		zap.String("kind", kind.String()),
		zap.Int("count", len(missing)))

	sep := c.separatorFor(kind)
	if same := c.node.MembersOf(kind); len(same) > 0 {
		return insertion{
			offset: same[len(same)-1].Anchor,
			text:   sep + strings.Join(rendered, sep),
		}
	}
	if anchor, ok := c.earlierAnchor(kind); ok {
		return insertion{
			offset: anchor,
			text:   sep + strings.Join(rendered, sep),
		}
	}
	return insertion{
		offset:     c.node.OpenBrace(),
		text:       "\n" + strings.Join(rendered, sep),
		afterBrace: true,
	}
}

// separatorFor returns the spacing between the last two members of kind,
// or between the last two members of any kind when kind has fewer.
func (c *classEditor) separatorFor(kind types.SymbolKind) string {
	if same := c.node.MembersOf(kind); len(same) >= 2 {
		return separator(c.tree, same)
	}
	return separator(c.tree, c.node.Members)
}

// earlierAnchor returns the anchor of the member closest to the end of the
// body among the kinds laid out before kind.
func (c *classEditor) earlierAnchor(kind types.SymbolKind) (int, bool) {
	anchor, found := 0, false
	for _, k := range memberKinds {
		if k == kind {
			break
		}
		for _, m := range c.node.MembersOf(k) {
			if !found || m.Anchor > anchor {
				anchor, found = m.Anchor, true
			}
		}
	}
	return anchor, found
}

// separator returns the whitespace between the last two members, reduced
// to its newlines, or a blank line when that cannot be determined.
func separator(tree *phpsyntax.Tree, members []phpsyntax.Member) string {
	if len(members) < 2 {
		return defaultSeparator
	}
	prev, last := members[len(members)-2], members[len(members)-1]
	if prev.Anchor > last.Span.Start {
		return defaultSeparator
	}
	between := tree.Slice(types.Span{Start: prev.Anchor, End: last.Span.Start})
	if strings.TrimSpace(between) != "" {
		return defaultSeparator
	}
	n := strings.Count(between, "\n")
	if n == 0 {
		return defaultSeparator
	}
	return strings.Repeat("\n", n)
}

// mergeInsertions folds insertions sharing an offset into one edit each,
// keeping their order.
func mergeInsertions(inserts []insertion, node phpsyntax.ClassLike, tree *phpsyntax.Tree) []types.Edit {
	var merged []insertion
	for _, in := range inserts {
		if n := len(merged); n > 0 && merged[n-1].offset == in.offset {
			if in.afterBrace {
				merged[n-1].text += "\n"
			}
			merged[n-1].text += in.text
			continue
		}
		merged = append(merged, in)
	}

	edits := make([]types.Edit, 0, len(merged))
	for _, in := range merged {
		if !in.afterBrace {
			edits = append(edits, types.Insert(in.offset, in.text))
			continue
		}
		if len(node.Members) > 0 {
			edits = append(edits, types.Insert(in.offset, in.text+"\n"))
			continue
		}
		interior := types.Span{Start: node.OpenBrace(), End: node.CloseBrace()}
		if strings.TrimSpace(tree.Slice(interior)) != "" {
			edits = append(edits, types.Insert(in.offset, in.text+"\n"))
			continue
		}
		edits = append(edits, types.Replace(interior.Start, interior.End, in.text+"\n"+node.Indent))
	}
	return edits
}

// foldInsertions appends inserts to edits. An insertion landing where a
// replacement starts becomes part of that replacement, ahead of its text.
func foldInsertions(edits, inserts []types.Edit) []types.Edit {
	for _, in := range inserts {
		folded := false
		for i := range edits {
			if !edits[i].Span.IsEmpty() && edits[i].Span.Start == in.Span.Start {
				edits[i].Replacement = in.Replacement + edits[i].Replacement
				folded = true
				break
			}
		}
		if !folded {
			edits = append(edits, in)
		}
	}
	return edits
}
