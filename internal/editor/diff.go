// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 3

// diffLine is one line of a line-level diff.
type diffLine struct {
	op   byte // ' ', '-', or '+'
	text string
}

// Diff returns a unified diff from before to after labelled with path, or
// the empty string when the two are equal.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}
	lines := lineDiff(before, after)

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks(lines) {
		writeHunk(&b, lines, h[0], h[1])
	}
	return b.String()
}

// lineDiff diffs before and after line by line.
func lineDiff(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var result []diffLine
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = '+'
		case diffmatchpatch.DiffDelete:
			op = '-'
		default:
			op = ' '
		}
		for _, line := range splitLines(d.Text) {
			result = append(result, diffLine{op: op, text: line})
		}
	}
	return result
}

// hunks groups changed lines into [start, end) ranges with context,
// merging ranges whose context would touch.
func hunks(lines []diffLine) [][2]int {
	var result [][2]int
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}
		start := max(0, i-diffContext)
		end := min(len(lines), i+diffContext+1)
		if n := len(result); n > 0 && start <= result[n-1][1] {
			result[n-1][1] = end
			continue
		}
		result = append(result, [2]int{start, end})
	}
	return result
}

func writeHunk(b *strings.Builder, lines []diffLine, start, end int) {
	oldStart, newStart := 1, 1
	for _, l := range lines[:start] {
		if l.op != '+' {
			oldStart++
		}
		if l.op != '-' {
			newStart++
		}
	}
	oldLen, newLen := 0, 0
	for _, l := range lines[start:end] {
		if l.op != '+' {
			oldLen++
		}
		if l.op != '-' {
			newLen++
		}
	}
	if oldLen == 0 {
		oldStart--
	}
	if newLen == 0 {
		newStart--
	}

	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldLen, newStart, newLen)
	for _, l := range lines[start:end] {
		b.WriteByte(l.op)
		b.WriteString(l.text)
		b.WriteByte('\n')
	}
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
