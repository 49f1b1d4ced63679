package content

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/models"
)

const previewDir = "preview"

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// GalleryStore is the media tree: <root>/<year>/<gallery>/ holding the
// images, an optional preview/ subfolder, and a meta.json sidecar.
// Listings are cached and invalidated by the directory watcher.
type GalleryStore struct {
	root     string
	previews *PreviewWriter
	log      *zap.SugaredLogger

	mu    sync.Mutex
	cache []models.Gallery
	dirty bool
}

func NewGalleryStore(root string, previews *PreviewWriter, log *zap.SugaredLogger) (*GalleryStore, error) {
	if err := os.MkdirAll(root, 0o775); err != nil {
		return nil, err
	}
	return &GalleryStore{root: root, previews: previews, log: log, dirty: true}, nil
}

// Root returns the media tree root, used for watching and static serving.
func (s *GalleryStore) Root() string { return s.root }

// Invalidate marks the listing cache stale. Called by the watcher and by
// every mutation.
func (s *GalleryStore) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *GalleryStore) dir(year, name string) string {
	return filepath.Join(s.root, year, name)
}

// List scans the media tree. Folder identity wins over whatever the
// descriptor stores for year/name, so a renamed folder can never drift
// apart from its metadata.
func (s *GalleryStore) List() ([]models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty && s.cache != nil {
		return s.cache, nil
	}

	dirs, err := entryDirs(s.root)
	if err != nil {
		return nil, err
	}
	galleries := make([]models.Gallery, 0, len(dirs))
	for _, d := range dirs {
		year, name := d[0], d[1]
		g := models.Gallery{}
		if err := readMeta(s.dir(year, name), &g.GalleryMeta); err != nil {
			// a folder without a readable descriptor is still a gallery
			g.GalleryMeta = models.GalleryMeta{}
		}
		g.Year = year
		g.Name = name
		g.Images = s.listImages(year, name)
		galleries = append(galleries, g)
	}
	sort.Slice(galleries, func(i, j int) bool {
		if galleries[i].Year != galleries[j].Year {
			return galleries[i].Year > galleries[j].Year
		}
		return galleries[i].Name < galleries[j].Name
	})
	s.cache = galleries
	s.dirty = false
	return galleries, nil
}

func (s *GalleryStore) listImages(year, name string) []string {
	entries, err := os.ReadDir(s.dir(year, name))
	if err != nil {
		return nil
	}
	images := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, e.Name())
		}
	}
	sort.Strings(images)
	return images
}

// Get returns one gallery or ErrNotFound.
func (s *GalleryStore) Get(year, name string) (*models.Gallery, error) {
	if !validIdent(year) || !validIdent(name) {
		return nil, ErrBadName
	}
	if _, err := os.Stat(s.dir(year, name)); err != nil {
		return nil, ErrNotFound
	}
	g := models.Gallery{}
	if err := readMeta(s.dir(year, name), &g.GalleryMeta); err != nil {
		g.GalleryMeta = models.GalleryMeta{}
	}
	g.Year = year
	g.Name = name
	g.Images = s.listImages(year, name)
	return &g, nil
}

// Create makes the gallery folder and writes its descriptor. Duplicate
// identity is rejected.
func (s *GalleryStore) Create(meta models.GalleryMeta) (*models.GalleryMeta, error) {
	if !validIdent(meta.Year) || !validIdent(meta.Name) {
		return nil, ErrBadName
	}
	dir := s.dir(meta.Year, meta.Name)
	if _, err := os.Stat(dir); err == nil {
		return nil, ErrExists
	}
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return nil, err
	}
	meta.CreatedAt = time.Now().Format(time.RFC3339)
	meta.UpdatedAt = meta.CreatedAt
	if err := writeMeta(dir, &meta); err != nil {
		return nil, err
	}
	s.Invalidate()
	return &meta, nil
}

// Update merges the patch into the stored descriptor. CreatedAt is
// preserved; UpdatedAt is bumped. Last write wins on concurrent updates.
func (s *GalleryStore) Update(year, name string, patch models.GalleryPatch) (*models.GalleryMeta, error) {
	if !validIdent(year) || !validIdent(name) {
		return nil, ErrBadName
	}
	dir := s.dir(year, name)
	if _, err := os.Stat(dir); err != nil {
		return nil, ErrNotFound
	}
	meta := models.GalleryMeta{}
	if err := readMeta(dir, &meta); err != nil {
		meta = models.GalleryMeta{}
	}
	meta.Year = year
	meta.Name = name
	if patch.Title != nil {
		meta.Title = *patch.Title
	}
	if patch.Description != nil {
		meta.Description = *patch.Description
	}
	if patch.Tags != nil {
		meta.Tags = *patch.Tags
	}
	if patch.Cover != nil {
		meta.Cover = *patch.Cover
	}
	meta.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := writeMeta(dir, &meta); err != nil {
		return nil, err
	}
	s.Invalidate()
	return &meta, nil
}

// Delete removes the gallery folder recursively.
func (s *GalleryStore) Delete(year, name string) error {
	if !validIdent(year) || !validIdent(name) {
		return ErrBadName
	}
	dir := s.dir(year, name)
	if _, err := os.Stat(dir); err != nil {
		return ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// SaveImage stores an uploaded file in the gallery and writes a
// downscaled copy to preview/. Preview failure is logged, never
// surfaced: the upload already succeeded.
func (s *GalleryStore) SaveImage(year, name, filename string, r io.Reader) (string, error) {
	if !validIdent(year) || !validIdent(name) {
		return "", ErrBadName
	}
	dir := s.dir(year, name)
	if _, err := os.Stat(dir); err != nil {
		return "", ErrNotFound
	}
	filename = filepath.Base(filename)
	if !validIdent(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrBadName
	}
	dst := filepath.Join(dir, filename)
	if _, err := os.Stat(dst); err == nil {
		// keep both uploads instead of clobbering the older one
		filename = uuid.NewString()[:8] + "-" + filename
		dst = filepath.Join(dir, filename)
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o664)
	if err != nil {
		return "", err
	}
	_, werr := io.Copy(f, r)
	cerr := f.Close()
	if werr != nil {
		os.Remove(dst)
		return "", werr
	}
	if cerr != nil {
		return "", cerr
	}

	if s.previews != nil && imageExts[strings.ToLower(filepath.Ext(filename))] {
		if err := s.previews.Write(dst, filepath.Join(dir, previewDir)); err != nil {
			s.log.Warnw("preview generation failed", "file", filename, "error", err)
		}
	}
	s.Invalidate()
	return filename, nil
}

// DeleteImage removes an image and its preview copy, if any.
func (s *GalleryStore) DeleteImage(year, name, filename string) error {
	if !validIdent(year) || !validIdent(name) {
		return ErrBadName
	}
	filename = filepath.Base(filename)
	if !validIdent(filename) {
		return ErrBadName
	}
	dir := s.dir(year, name)
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err != nil {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	os.Remove(filepath.Join(dir, previewDir, filename))
	s.Invalidate()
	return nil
}
