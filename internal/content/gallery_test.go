package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/models"
)

func newGalleryStore(t *testing.T) (*GalleryStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewGalleryStore(dir, nil, zap.NewNop().Sugar())
	require.NoError(t, err)
	return s, dir
}

func TestGalleryFolderIdentityWins(t *testing.T) {
	s, dir := newGalleryStore(t)

	// descriptor claims a different identity than its folder
	galleryDir := filepath.Join(dir, "2026", "iceland")
	require.NoError(t, os.MkdirAll(galleryDir, 0o775))
	meta := `{"year":"1999","name":"somewhere-else","title":"Iceland"}`
	require.NoError(t, os.WriteFile(filepath.Join(galleryDir, "meta.json"), []byte(meta), 0o664))

	galleries, err := s.List()
	require.NoError(t, err)
	require.Len(t, galleries, 1)
	assert.Equal(t, "2026", galleries[0].Year)
	assert.Equal(t, "iceland", galleries[0].Name)
	assert.Equal(t, "Iceland", galleries[0].Title)
}

func TestGalleryListIncludesFolderWithoutDescriptor(t *testing.T) {
	s, dir := newGalleryStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2025", "bare"), 0o775))
	s.Invalidate()

	galleries, err := s.List()
	require.NoError(t, err)
	require.Len(t, galleries, 1)
	assert.Equal(t, "bare", galleries[0].Name)
}

func TestGalleryListImagesExcludesSidecarAndPreviews(t *testing.T) {
	s, dir := newGalleryStore(t)
	_, err := s.Create(models.GalleryMeta{Year: "2026", Name: "iceland"})
	require.NoError(t, err)

	galleryDir := filepath.Join(dir, "2026", "iceland")
	require.NoError(t, os.WriteFile(filepath.Join(galleryDir, "b.jpg"), []byte("x"), 0o664))
	require.NoError(t, os.WriteFile(filepath.Join(galleryDir, "a.png"), []byte("x"), 0o664))
	require.NoError(t, os.WriteFile(filepath.Join(galleryDir, "notes.txt"), []byte("x"), 0o664))
	require.NoError(t, os.MkdirAll(filepath.Join(galleryDir, "preview"), 0o775))
	require.NoError(t, os.WriteFile(filepath.Join(galleryDir, "preview", "b.jpg"), []byte("x"), 0o664))
	s.Invalidate()

	g, err := s.Get("2026", "iceland")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.jpg"}, g.Images)
}

func TestGalleryCreateDuplicate(t *testing.T) {
	s, _ := newGalleryStore(t)
	_, err := s.Create(models.GalleryMeta{Year: "2026", Name: "iceland"})
	require.NoError(t, err)
	_, err = s.Create(models.GalleryMeta{Year: "2026", Name: "iceland"})
	assert.ErrorIs(t, err, ErrExists)
}

func TestGalleryUpdatePreservesCreatedAt(t *testing.T) {
	s, _ := newGalleryStore(t)
	created, err := s.Create(models.GalleryMeta{Year: "2026", Name: "iceland", Title: "Old"})
	require.NoError(t, err)

	title := "New"
	updated, err := s.Update("2026", "iceland", models.GalleryPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestGallerySaveImageCollisionGetsFreshName(t *testing.T) {
	s, dir := newGalleryStore(t)
	_, err := s.Create(models.GalleryMeta{Year: "2026", Name: "iceland"})
	require.NoError(t, err)

	first, err := s.SaveImage("2026", "iceland", "photo.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", first)

	second, err := s.SaveImage("2026", "iceland", "photo.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, "photo.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, "2026", "iceland", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestGalleryIdentValidation(t *testing.T) {
	s, _ := newGalleryStore(t)
	_, err := s.Create(models.GalleryMeta{Year: "..", Name: "x"})
	assert.ErrorIs(t, err, ErrBadName)
	_, err = s.Create(models.GalleryMeta{Year: "2026", Name: "a/b"})
	assert.ErrorIs(t, err, ErrBadName)
	err = s.Delete("2026", "")
	assert.ErrorIs(t, err, ErrBadName)
}

func TestPostStoreFolderIdentityWins(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPostStore(dir)
	require.NoError(t, err)

	postDir := filepath.Join(dir, "2026", "first-light")
	require.NoError(t, os.MkdirAll(postDir, 0o775))
	meta := `{"year":"2000","slug":"wrong","title":"First Light"}`
	require.NoError(t, os.WriteFile(filepath.Join(postDir, "meta.json"), []byte(meta), 0o664))

	posts, err := s.List()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "2026", posts[0].Year)
	assert.Equal(t, "first-light", posts[0].Slug)
	assert.Equal(t, "First Light", posts[0].Title)
}

func TestPostUpdateMerges(t *testing.T) {
	s, err := NewPostStore(t.TempDir())
	require.NoError(t, err)

	created, err := s.Create(models.PostMeta{Year: "2026", Slug: "first-light", Title: "First Light", Draft: true})
	require.NoError(t, err)

	draft := false
	updated, err := s.Update("2026", "first-light", models.PostPatch{Draft: &draft})
	require.NoError(t, err)
	assert.False(t, updated.Draft)
	assert.Equal(t, "First Light", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
