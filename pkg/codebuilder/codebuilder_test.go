// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package codebuilder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/pkg/builder"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

const dogSource = `<?php

class Dog
{
    public int $x = 1;
}
`

func dogCode() prototype.SourceCode {
	b := builder.New()
	b.Class("Dog").Property("x").Type("int").DefaultValue(2)
	return b.Build()
}

func TestNew_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero config", cfg: Config{}},
		{name: "tab indent", cfg: Config{Indent: "\t"}},
		{name: "two spaces", cfg: Config{Indent: "  ", Concurrency: 1}},
		{name: "non blank indent", cfg: Config{Indent: "--"}, wantErr: true},
		{name: "negative concurrency", cfg: Config{Concurrency: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := New(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, cb)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cb)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)
	assert.Equal(t, "    ", cfg.Indent)
	assert.Equal(t, 4, cfg.Concurrency)

	cfg = Config{Indent: "\t", Concurrency: 9}
	applyDefaults(&cfg)
	assert.Equal(t, "\t", cfg.Indent)
	assert.Equal(t, 9, cfg.Concurrency)
}

func TestGenerate(t *testing.T) {
	cb, err := New(Config{Indent: "\t"})
	require.NoError(t, err)

	src, err := cb.Generate(dogCode())
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nclass Dog\n{\n\tpublic int $x = 2;\n}\n", src)

	bad := prototype.NewSourceCode(prototype.SourceCodeParams{
		ClassLikes: []prototype.ClassLike{prototype.NewClass("", prototype.ClassLikeParams{})},
	})
	_, err = cb.Generate(bad)
	assert.ErrorIs(t, err, prototype.ErrMalformed)
}

func TestReconcileAndApply(t *testing.T) {
	cb, err := New(Config{Logger: zap.NewNop()})
	require.NoError(t, err)
	ctx := context.Background()

	edits, err := cb.Reconcile(ctx, dogCode(), dogSource)
	require.NoError(t, err)
	require.Equal(t, 1, edits.Len())
	assert.Equal(t, "public int $x = 2;", edits.All()[0].Replacement)

	out, err := cb.Apply(ctx, dogCode(), dogSource)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nclass Dog\n{\n    public int $x = 2;\n}\n", out)

	again, err := cb.Reconcile(ctx, dogCode(), out)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
}

func TestApply_Strict(t *testing.T) {
	cb, err := New(Config{Strict: true})
	require.NoError(t, err)

	_, err = cb.Apply(context.Background(), dogCode(), "<?php\nclass Dog {\n")
	assert.ErrorIs(t, err, phpsyntax.ErrSyntax)
}

func TestExtract(t *testing.T) {
	cb, err := New(Config{})
	require.NoError(t, err)

	code, err := cb.Extract(context.Background(), dogSource)
	require.NoError(t, err)
	dog, ok := code.Classes().Get("Dog")
	require.True(t, ok)
	x, _ := dog.Properties().Get("x")
	assert.Equal(t, "int", x.Type().String())
	assert.Equal(t, "1", x.DefaultValue().Export())
}

func TestUpdateAndUpdateAll(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "Dog.php")
	require.NoError(t, os.WriteFile(existing, []byte(dogSource), 0o644))
	created := filepath.Join(dir, "Cat.php")

	cb, err := New(Config{Concurrency: 2})
	require.NoError(t, err)

	r, err := cb.Update(context.Background(), existing, dogCode())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Edits)
	assert.True(t, r.Changed())

	cat := builder.New()
	cat.Class("Cat").Method("meow")
	results, err := cb.UpdateAll(context.Background(), []Job{
		{Path: existing, Code: dogCode()},
		{Path: created, Code: cat.Build()},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Changed(), "already updated")
	assert.True(t, results[1].Created)

	data, err := os.ReadFile(created)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nclass Cat\n{\n    public function meow()\n    {\n    }\n}\n", string(data))
}

func TestUpdate_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dog.php")
	require.NoError(t, os.WriteFile(path, []byte(dogSource), 0o644))

	cb, err := New(Config{DryRun: true})
	require.NoError(t, err)
	r, err := cb.Update(context.Background(), path, dogCode())
	require.NoError(t, err)
	assert.True(t, r.Changed())
	assert.NotEmpty(t, r.Diff)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, dogSource, string(data))
}
