package models

// GalleryMeta is the meta.json descriptor sitting next to a gallery's
// images. Year and Name mirror the folder identity; on listing, the
// folder always wins over whatever the descriptor claims.
type GalleryMeta struct {
	Year        string   `json:"year"`
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Cover       string   `json:"cover,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Gallery is the listing view: descriptor plus the image files found in
// the gallery folder.
type Gallery struct {
	GalleryMeta
	Images []string `json:"images"`
}

// GalleryPatch carries an update request. Nil fields are left untouched;
// CreatedAt is immutable and has no patch field on purpose.
type GalleryPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Cover       *string   `json:"cover"`
}

// PostMeta is the meta.json descriptor of a blog post directory.
type PostMeta struct {
	Year      string   `json:"year"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title,omitempty"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Content   string   `json:"content,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Draft     bool     `json:"draft,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// PostPatch carries a blog post update. Same rules as GalleryPatch.
type PostPatch struct {
	Title   *string   `json:"title"`
	Excerpt *string   `json:"excerpt"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
	Draft   *bool     `json:"draft"`
}
