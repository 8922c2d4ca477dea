// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package blueprint loads source-code descriptions from YAML or TOML files
// and replays them onto a builder.
//
// A blueprint lists a namespace, imports, and class-likes:
//
//	namespace: App\Model
//	uses: ['App\Contract\Entity', 'Ramsey\Uuid\Uuid as Id']
//	classes:
//	  - name: User
//	    implements: [Entity]
//	    properties:
//	      - {name: id, visibility: private, type: Id}
//	    methods:
//	      - name: id
//	        return: Id
//	        body: ['return $this->id;']
package blueprint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/codebuilder/pkg/builder"
)

var (
	// ErrUnknownKind is returned for a class-like kind other than class,
	// interface, or trait.
	ErrUnknownKind = errors.New("unknown class-like kind")

	// ErrInvalidBlueprint is returned when a blueprint asks for something
	// its declaration kind cannot hold.
	ErrInvalidBlueprint = errors.New("invalid blueprint")

	// ErrUnknownFormat is returned by Load for file extensions other than
	// .yaml, .yml, and .toml.
	ErrUnknownFormat = errors.New("unknown blueprint format")
)

// Blueprint is the file form of a source-code description.
type Blueprint struct {
	Namespace string      `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Uses      []string    `yaml:"uses,omitempty" toml:"uses,omitempty"`
	Classes   []ClassLike `yaml:"classes,omitempty" toml:"classes,omitempty"`
}

// ClassLike describes a class, interface, or trait. Kind defaults to class.
// Extends holds the parent class of a class or the parents of an
// interface.
type ClassLike struct {
	Name       string     `yaml:"name" toml:"name"`
	Kind       string     `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Extends    []string   `yaml:"extends,omitempty" toml:"extends,omitempty"`
	Implements []string   `yaml:"implements,omitempty" toml:"implements,omitempty"`
	Abstract   bool       `yaml:"abstract,omitempty" toml:"abstract,omitempty"`
	Final      bool       `yaml:"final,omitempty" toml:"final,omitempty"`
	Constants  []Constant `yaml:"constants,omitempty" toml:"constants,omitempty"`
	Properties []Property `yaml:"properties,omitempty" toml:"properties,omitempty"`
	Methods    []Method   `yaml:"methods,omitempty" toml:"methods,omitempty"`
}

// Constant describes a constant. Expr takes precedence over Value.
type Constant struct {
	Name       string `yaml:"name" toml:"name"`
	Visibility string `yaml:"visibility,omitempty" toml:"visibility,omitempty"`
	Value      any    `yaml:"value,omitempty" toml:"value,omitempty"`
	Expr       string `yaml:"expr,omitempty" toml:"expr,omitempty"`
}

// Property describes a property. A missing or null default means none;
// use Expr "null" for an explicit null default.
type Property struct {
	Name       string `yaml:"name" toml:"name"`
	Visibility string `yaml:"visibility,omitempty" toml:"visibility,omitempty"`
	Type       string `yaml:"type,omitempty" toml:"type,omitempty"`
	Default    any    `yaml:"default,omitempty" toml:"default,omitempty"`
	Expr       string `yaml:"expr,omitempty" toml:"expr,omitempty"`
	Static     bool   `yaml:"static,omitempty" toml:"static,omitempty"`
}

// Method describes a method. Without Body lines the method has an empty
// body, unless Bodyless is set.
type Method struct {
	Name       string      `yaml:"name" toml:"name"`
	Visibility string      `yaml:"visibility,omitempty" toml:"visibility,omitempty"`
	Return     string      `yaml:"return,omitempty" toml:"return,omitempty"`
	Static     bool        `yaml:"static,omitempty" toml:"static,omitempty"`
	Abstract   bool        `yaml:"abstract,omitempty" toml:"abstract,omitempty"`
	Bodyless   bool        `yaml:"bodyless,omitempty" toml:"bodyless,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	Body       []string    `yaml:"body,omitempty" toml:"body,omitempty"`
}

// Parameter describes a method parameter.
type Parameter struct {
	Name      string `yaml:"name" toml:"name"`
	Type      string `yaml:"type,omitempty" toml:"type,omitempty"`
	Default   any    `yaml:"default,omitempty" toml:"default,omitempty"`
	Expr      string `yaml:"expr,omitempty" toml:"expr,omitempty"`
	Reference bool   `yaml:"reference,omitempty" toml:"reference,omitempty"`
	Variadic  bool   `yaml:"variadic,omitempty" toml:"variadic,omitempty"`
}

// Load reads the blueprint at path, choosing the format by extension, and
// returns a builder populated from it.
func Load(path string) (*builder.SourceCodeBuilder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	var bp *Blueprint
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		bp, err = ParseYAML(data)
	case ".toml":
		bp, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing blueprint %s: %w", path, err)
	}
	return bp.Builder()
}

// ParseYAML decodes a YAML blueprint.
func ParseYAML(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// ParseTOML decodes a TOML blueprint. Class-likes are `[[classes]]`
// tables.
func ParseTOML(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if _, err := toml.Decode(string(data), &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Builder replays the blueprint onto a fresh builder.
func (bp *Blueprint) Builder() (*builder.SourceCodeBuilder, error) {
	b := builder.New()
	if bp.Namespace != "" {
		b.Namespace(bp.Namespace)
	}
	for _, use := range bp.Uses {
		name, alias := splitAlias(use)
		b.UseAs(name, alias)
	}
	for _, c := range bp.Classes {
		if err := c.apply(b); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	return b, nil
}

// splitAlias splits `Name as Alias`.
func splitAlias(use string) (string, string) {
	fields := strings.Fields(use)
	if len(fields) == 3 && strings.EqualFold(fields[1], "as") {
		return fields[0], fields[2]
	}
	return strings.TrimSpace(use), ""
}

func (c ClassLike) apply(b *builder.SourceCodeBuilder) error {
	if c.Name == "" {
		return fmt.Errorf("%w: class-like without a name", ErrInvalidBlueprint)
	}
	switch strings.ToLower(c.Kind) {
	case "", "class":
		cb, err := b.LookupClass(c.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBlueprint, err)
		}
		return c.applyClass(cb)
	case "interface":
		ib, err := b.LookupInterface(c.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBlueprint, err)
		}
		return c.applyInterface(ib)
	case "trait":
		tb, err := b.LookupTrait(c.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBlueprint, err)
		}
		return c.applyTrait(tb)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

func (c ClassLike) applyClass(cb *builder.ClassBuilder) error {
	if len(c.Extends) > 1 {
		return fmt.Errorf("%w: a class extends one parent, got %d", ErrInvalidBlueprint, len(c.Extends))
	}
	if len(c.Extends) == 1 {
		cb.Extends(c.Extends[0])
	}
	if len(c.Implements) > 0 {
		cb.Implements(c.Implements...)
	}
	if c.Abstract {
		cb.Abstract()
	}
	if c.Final {
		cb.Final()
	}
	for _, k := range c.Constants {
		if err := k.apply(cb.Constant(k.Name)); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if err := p.apply(cb.Property(p.Name)); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		if err := m.apply(cb.Method(m.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (c ClassLike) applyInterface(ib *builder.InterfaceBuilder) error {
	switch {
	case len(c.Implements) > 0:
		return fmt.Errorf("%w: an interface cannot implement", ErrInvalidBlueprint)
	case len(c.Properties) > 0:
		return fmt.Errorf("%w: an interface cannot declare properties", ErrInvalidBlueprint)
	case c.Abstract || c.Final:
		return fmt.Errorf("%w: an interface takes no class modifiers", ErrInvalidBlueprint)
	}
	if len(c.Extends) > 0 {
		ib.Extends(c.Extends...)
	}
	for _, k := range c.Constants {
		if err := k.apply(ib.Constant(k.Name)); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		if err := m.apply(ib.Method(m.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (c ClassLike) applyTrait(tb *builder.TraitBuilder) error {
	switch {
	case len(c.Extends) > 0 || len(c.Implements) > 0:
		return fmt.Errorf("%w: a trait has no parents", ErrInvalidBlueprint)
	case c.Abstract || c.Final:
		return fmt.Errorf("%w: a trait takes no class modifiers", ErrInvalidBlueprint)
	}
	for _, k := range c.Constants {
		if err := k.apply(tb.Constant(k.Name)); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if err := p.apply(tb.Property(p.Name)); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		if err := m.apply(tb.Method(m.Name)); err != nil {
			return err
		}
	}
	return nil
}
