package content

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const defaultPreviewWidth = 800

// PreviewWriter produces downscaled preview copies of uploaded images.
type PreviewWriter struct {
	width int
}

func NewPreviewWriter(width int) *PreviewWriter {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	return &PreviewWriter{width: width}
}

// Write reads the image at src and saves a width-bounded copy with the
// same filename into dstDir. Images already narrower than the target
// are copied at their original size.
func (p *PreviewWriter) Write(src, dstDir string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	if img.Bounds().Dx() > p.width {
		img = imaging.Resize(img, p.width, 0, imaging.Lanczos)
	}
	if err := os.MkdirAll(dstDir, 0o775); err != nil {
		return err
	}
	return imaging.Save(img, filepath.Join(dstDir, filepath.Base(src)))
}
