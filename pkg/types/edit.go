// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOverlappingEdits is returned when two edits in one list cover the
	// same text.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrEditOutOfRange is returned by Apply when an edit span falls outside
	// the text it is applied to.
	ErrEditOutOfRange = errors.New("edit span out of range")
)

// Span is a half-open byte range [Start, End) over a source buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no text (a pure insertion point).
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Edit replaces the text covered by Span with Replacement. An empty span
// inserts Replacement at Span.Start.
type Edit struct {
	Span        Span
	Replacement string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) Edit {
	return Edit{Span: Span{Start: start, End: end}, Replacement: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Span: Span{Start: offset, End: offset}, Replacement: text}
}

func (e Edit) String() string {
	return fmt.Sprintf("%s %q", e.Span, e.Replacement)
}

// EditList is an ordered set of non-overlapping edits over one text buffer.
// The order edits are added in is preserved; it decides the relative order
// of insertions sharing an offset.
type EditList struct {
	edits []Edit
}

// NewEditList builds a list from edits, rejecting any overlap.
func NewEditList(edits ...Edit) (*EditList, error) {
	l := &EditList{}
	for _, e := range edits {
		if err := l.Add(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends an edit. It returns ErrOverlappingEdits if the edit conflicts
// with one already in the list, leaving the list unchanged.
func (l *EditList) Add(e Edit) error {
	if e.Span.Start < 0 || e.Span.End < e.Span.Start {
		return fmt.Errorf("%w: %s", ErrEditOutOfRange, e.Span)
	}
	for _, prev := range l.edits {
		if spansConflict(prev.Span, e.Span) {
			return fmt.Errorf("%w: %s conflicts with %s", ErrOverlappingEdits, e.Span, prev.Span)
		}
	}
	l.edits = append(l.edits, e)
	return nil
}

// Len returns the number of edits.
func (l *EditList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.edits)
}

// IsEmpty reports whether the list holds no edits.
func (l *EditList) IsEmpty() bool {
	return l.Len() == 0
}

// All returns a copy of the edits in the order they were added.
func (l *EditList) All() []Edit {
	if l == nil {
		return nil
	}
	result := make([]Edit, len(l.edits))
	copy(result, l.edits)
	return result
}

// Apply splices every edit into text and returns the result. Edits are
// applied from the highest offset down so that earlier offsets stay valid
// without re-parsing. All spans are checked before any splice happens.
func (l *EditList) Apply(text string) (string, error) {
	if l.IsEmpty() {
		return text, nil
	}

	for _, e := range l.edits {
		if e.Span.End > len(text) {
			return "", fmt.Errorf("%w: %s exceeds text length %d", ErrEditOutOfRange, e.Span, len(text))
		}
	}

	order := make([]int, len(l.edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := l.edits[order[i]], l.edits[order[j]]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start > b.Span.Start
		}
		// Only insertions can share a start offset. Apply the later one
		// first so the earlier one lands in front of it.
		return order[i] > order[j]
	})

	buf := text
	for _, idx := range order {
		e := l.edits[idx]
		buf = buf[:e.Span.Start] + e.Replacement + buf[e.Span.End:]
	}
	return buf, nil
}

// spansConflict reports whether two spans overlap. Two empty spans never
// conflict. An empty span conflicts with a non-empty one when it lies at or
// after its start and before its end.
func spansConflict(a, b Span) bool {
	if a.IsEmpty() && b.IsEmpty() {
		return false
	}
	if a.IsEmpty() {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.IsEmpty() {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
