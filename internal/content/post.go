package content

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Trinaxus/tubox-server/internal/models"
)

// PostStore is the blog tree: <root>/<year>/<slug>/meta.json. It mirrors
// the gallery store minus images.
type PostStore struct {
	root string

	mu    sync.Mutex
	cache []models.PostMeta
	dirty bool
}

func NewPostStore(root string) (*PostStore, error) {
	if err := os.MkdirAll(root, 0o775); err != nil {
		return nil, err
	}
	return &PostStore{root: root, dirty: true}, nil
}

func (s *PostStore) Root() string { return s.root }

func (s *PostStore) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *PostStore) dir(year, slug string) string {
	return filepath.Join(s.root, year, slug)
}

// List scans the blog tree; folder identity wins over stored year/slug.
func (s *PostStore) List() ([]models.PostMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty && s.cache != nil {
		return s.cache, nil
	}

	dirs, err := entryDirs(s.root)
	if err != nil {
		return nil, err
	}
	posts := make([]models.PostMeta, 0, len(dirs))
	for _, d := range dirs {
		year, slug := d[0], d[1]
		p := models.PostMeta{}
		if err := readMeta(s.dir(year, slug), &p); err != nil {
			p = models.PostMeta{}
		}
		p.Year = year
		p.Slug = slug
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Year != posts[j].Year {
			return posts[i].Year > posts[j].Year
		}
		return posts[i].Slug < posts[j].Slug
	})
	s.cache = posts
	s.dirty = false
	return posts, nil
}

func (s *PostStore) Get(year, slug string) (*models.PostMeta, error) {
	if !validIdent(year) || !validIdent(slug) {
		return nil, ErrBadName
	}
	dir := s.dir(year, slug)
	if _, err := os.Stat(dir); err != nil {
		return nil, ErrNotFound
	}
	p := models.PostMeta{}
	if err := readMeta(dir, &p); err != nil {
		p = models.PostMeta{}
	}
	p.Year = year
	p.Slug = slug
	return &p, nil
}

func (s *PostStore) Create(meta models.PostMeta) (*models.PostMeta, error) {
	if !validIdent(meta.Year) || !validIdent(meta.Slug) {
		return nil, ErrBadName
	}
	dir := s.dir(meta.Year, meta.Slug)
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

func (s *PostStore) Update(year, slug string, patch models.PostPatch) (*models.PostMeta, error) {
	if !validIdent(year) || !validIdent(slug) {
		return nil, ErrBadName
	}
	dir := s.dir(year, slug)
	if _, err := os.Stat(dir); err != nil {
		return nil, ErrNotFound
	}
	meta := models.PostMeta{}
	if err := readMeta(dir, &meta); err != nil {
		meta = models.PostMeta{}
	}
	meta.Year = year
	meta.Slug = slug
	if patch.Title != nil {
		meta.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		meta.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		meta.Content = *patch.Content
	}
	if patch.Tags != nil {
		meta.Tags = *patch.Tags
	}
	if patch.Draft != nil {
		meta.Draft = *patch.Draft
	}
	meta.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := writeMeta(dir, &meta); err != nil {
		return nil, err
	}
	s.Invalidate()
	return &meta, nil
}

func (s *PostStore) Delete(year, slug string) error {
	if !validIdent(year) || !validIdent(slug) {
		return ErrBadName
	}
	dir := s.dir(year, slug)
	if _, err := os.Stat(dir); err != nil {
		return ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
