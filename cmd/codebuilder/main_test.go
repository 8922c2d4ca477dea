// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dogBlueprint = `classes:
  - name: Dog
    properties:
      - {name: x, type: int, default: 2}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeBlueprint(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dogBlueprint), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "codebuilder 0.1.0\n", out)
}

func TestGenerateCmd(t *testing.T) {
	dir := t.TempDir()
	bp := writeBlueprint(t, dir)
	want := "<?php\n\nclass Dog\n{\n    public int $x = 2;\n}\n"

	out, err := execute(t, "generate", bp)
	require.NoError(t, err)
	assert.Equal(t, want, out)

	target := filepath.Join(dir, "src", "Dog.php")
	out, err = execute(t, "generate", bp, "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestGenerateCmd_MissingBlueprint(t *testing.T) {
	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestUpdateCmd(t *testing.T) {
	dir := t.TempDir()
	bp := writeBlueprint(t, dir)
	existing := filepath.Join(dir, "Dog.php")
	require.NoError(t, os.WriteFile(existing, []byte("<?php\n\nclass Dog\n{\n    public int $x = 1;\n}\n"), 0o644))
	missing := filepath.Join(dir, "New.php")

	out, err := execute(t, "update", "--diff", bp, existing, missing)
	require.NoError(t, err)
	assert.Contains(t, out, existing+": 1 edits\n")
	assert.Contains(t, out, missing+": created\n")
	assert.Contains(t, out, "-    public int $x = 1;\n+    public int $x = 2;\n")

	out, err = execute(t, "update", bp, existing)
	require.NoError(t, err)
	assert.Equal(t, existing+": up to date\n", out)
}

func TestExtractCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Dog.php")
	require.NoError(t, os.WriteFile(src, []byte("<?php\n\nclass Dog\n{\n    private int $x = 1;\n}\n"), 0o644))

	out, err := execute(t, "extract", src)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Dog")
	assert.Contains(t, out, "visibility: private")

	out, err = execute(t, "extract", "-f", "toml", src)
	require.NoError(t, err)
	assert.Contains(t, out, "[[classes]]")

	_, err = execute(t, "extract", "-f", "json", src)
	assert.Error(t, err)
}
