package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, slug, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(body), 0o644))
}

func TestPageFrontMatterAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about", `---
title: About Discover Tanzania
summary: Who we are.
updated_at: 2025-02-01
---
## Our mission

We help travellers find **the right region** for their trip.
`)

	s := NewStore(dir)
	page, err := s.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "About Discover Tanzania", page.Title)
	assert.Equal(t, "Who we are.", page.Summary)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	assert.Contains(t, string(page.Body), "<h2")
	assert.Contains(t, string(page.Body), "<strong>the right region</strong>")
}

func TestPageSanitizesScripts(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "sneaky", "Hello <script>alert('x')</script> world\n")

	s := NewStore(dir)
	page, err := s.Page("sneaky")
	require.NoError(t, err)
	assert.NotContains(t, string(page.Body), "<script")
	assert.Contains(t, string(page.Body), "Hello")
}

func TestPageTitleFallsBackToPrettifiedSlug(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "planning-your-trip", "Some body text.\n")

	s := NewStore(dir)
	page, err := s.Page("planning-your-trip")
	require.NoError(t, err)
	assert.Equal(t, "Planning Your Trip", page.Title)
}

func TestPageNotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Page("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPageRejectsTraversalSlugs(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, slug := range []string{"../secret", "a/b", `a\b`, ""} {
		_, err := s.Page(slug)
		assert.ErrorIs(t, err, ErrNotFound, "slug %q", slug)
	}
}

func TestPageCaching(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about", "First version.\n")

	s := NewStore(dir)
	s.SetCacheTTL(time.Minute)

	page, err := s.Page("about")
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "First version.")

	// Updates are invisible until the cache entry expires.
	writePage(t, dir, "about", "Second version.\n")
	page, err = s.Page("about")
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "First version.")
}
