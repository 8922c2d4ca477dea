// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package updater

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/petar-djukic/codebuilder/internal/blueprint"
)

// TestFixtures runs every testdata archive: the blueprint is reconciled
// against before.php, the result must equal after.php, and a second pass
// over after.php must produce no edits.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)
			files := make(map[string]string, len(archive.Files))
			for _, f := range archive.Files {
				files[f.Name] = string(f.Data)
			}
			for _, name := range []string{"blueprint.yaml", "before.php", "after.php"} {
				require.Contains(t, files, name)
			}

			bp, err := blueprint.ParseYAML([]byte(files["blueprint.yaml"]))
			require.NoError(t, err)
			b, err := bp.Builder()
			require.NoError(t, err)
			code := b.Build()

			got, _ := reconcile(t, code, files["before.php"])
			assert.Equal(t, files["after.php"], got)

			again, edits := reconcile(t, code, got)
			assert.True(t, edits.IsEmpty(), "second pass edits: %v", edits.All())
			assert.Equal(t, got, again)
		})
	}
}
