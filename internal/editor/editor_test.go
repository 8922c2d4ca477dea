// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/pkg/builder"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

const counterSource = `<?php

class Counter
{
    private int $count = 0;
}
`

func counterCode() prototype.SourceCode {
	b := builder.New()
	c := b.Class("Counter")
	c.Property("count").Visibility(prototype.Private).Type("int").DefaultValue(0)
	c.Method("increment").ReturnType("void").Body().Line("$this->count++;")
	return b.Build()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUpdateFile_Existing(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Counter.php", counterSource)
	e := &Editor{Logger: zap.NewNop()}

	result, err := e.UpdateFile(context.Background(), path, counterCode())
	require.NoError(t, err)

	want := `<?php

class Counter
{
    private int $count = 0;

    public function increment(): void
    {
        $this->count++;
    }
}
`
	assert.False(t, result.Created)
	assert.Equal(t, 1, result.Edits)
	assert.True(t, result.Changed())
	assert.Equal(t, want, result.Content)
	assert.Equal(t, want, readFile(t, path))
	assert.Contains(t, result.Diff, "+    public function increment(): void")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permissions preserved")
}

func TestUpdateFile_UpToDate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Counter.php", counterSource)
	b := builder.New()
	b.Class("Counter").Property("count").Visibility(prototype.Private).Type("int").DefaultValue(0)

	var e Editor
	result, err := e.UpdateFile(context.Background(), path, b.Build())
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Empty(t, result.Diff)
	assert.Equal(t, counterSource, result.Content)
}

func TestUpdateFile_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Counter.php", counterSource)
	e := &Editor{DryRun: true}

	result, err := e.UpdateFile(context.Background(), path, counterCode())
	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.Equal(t, counterSource, readFile(t, path), "dry run leaves the file alone")

	missing := filepath.Join(dir, "sub", "New.php")
	result, err = e.UpdateFile(context.Background(), missing, counterCode())
	require.NoError(t, err)
	assert.True(t, result.Created)
	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateFile_Create(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "Model", "Counter.php")
	e := &Editor{Indent: "  "}

	result, err := e.UpdateFile(context.Background(), path, counterCode())
	require.NoError(t, err)

	want := `<?php

class Counter
{
  private int $count = 0;

  public function increment(): void
  {
    $this->count++;
  }
}
`
	assert.True(t, result.Created)
	assert.Equal(t, want, result.Content)
	assert.Equal(t, want, readFile(t, path))
	assert.True(t, strings.HasPrefix(result.Diff, "--- a/"+path+"\n+++ b/"+path+"\n@@ -0,0 +1,11 @@\n"))
}

func TestUpdateFile_Strict(t *testing.T) {
	broken := "<?php\n\nclass Counter\n{\n    public function f(\n}\n"
	path := writeFile(t, t.TempDir(), "Counter.php", broken)

	strict := &Editor{Strict: true}
	_, err := strict.UpdateFile(context.Background(), path, counterCode())
	assert.ErrorIs(t, err, phpsyntax.ErrSyntax)
	assert.Equal(t, broken, readFile(t, path))
}

func TestUpdateFile_InvalidDescription(t *testing.T) {
	code := prototype.NewSourceCode(prototype.SourceCodeParams{
		ClassLikes: []prototype.ClassLike{prototype.NewTrait("", prototype.ClassLikeParams{})},
	})
	var e Editor
	_, err := e.UpdateFile(context.Background(), filepath.Join(t.TempDir(), "X.php"), code)
	assert.ErrorIs(t, err, prototype.ErrMalformed)
}

func TestUpdateAll(t *testing.T) {
	dir := t.TempDir()
	var jobs []Job
	for i := range 6 {
		name := fmt.Sprintf("C%d", i)
		path := filepath.Join(dir, name+".php")
		if i%2 == 0 {
			writeFile(t, dir, name+".php", "<?php\n\nclass "+name+"\n{\n}\n")
		}
		b := builder.New()
		b.Class(name).Method("run")
		jobs = append(jobs, Job{Path: path, Code: b.Build()})
	}

	var e Editor
	results, err := e.UpdateAll(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		assert.Equal(t, jobs[i].Path, r.Path)
		assert.Equal(t, i%2 != 0, r.Created, r.Path)
		assert.Contains(t, readFile(t, r.Path), "public function run()")
	}
}

func TestUpdateAll_Error(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "Broken.php", "<?php\nclass {\n")
	ok := writeFile(t, dir, "Ok.php", "<?php\n\nclass Ok\n{\n}\n")

	e := &Editor{Strict: true}
	_, err := e.UpdateAll(context.Background(), []Job{
		{Path: ok, Code: builder.New().Build()},
		{Path: broken, Code: builder.New().Build()},
	}, 1)
	assert.ErrorIs(t, err, phpsyntax.ErrSyntax)
}

func TestUpdateAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var e Editor
	_, err := e.UpdateAll(ctx, []Job{{Path: filepath.Join(t.TempDir(), "A.php")}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplaceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.php")
	require.NoError(t, ReplaceFile(path, []byte("<?php\n")))
	assert.Equal(t, "<?php\n", readFile(t, path))

	require.NoError(t, ReplaceFile(path, []byte("<?php\n\n")))
	assert.Equal(t, "<?php\n\n", readFile(t, path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
