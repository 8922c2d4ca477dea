// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVisibility is returned by ParseVisibility for unknown keywords.
var ErrInvalidVisibility = errors.New("invalid visibility")

// Visibility is a member access modifier. The zero value is Public.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// ParseVisibility converts a keyword into a Visibility. The empty string
// means Public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return Public, nil
	case "protected":
		return Protected, nil
	case "private":
		return Private, nil
	default:
		return Public, fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
}

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}
