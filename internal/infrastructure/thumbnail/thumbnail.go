package thumbnail

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Widths is the fixed, ordered set of variant widths.
var Widths = []int{500, 250, 100}

// VariantPath returns where the variant for the given width is stored.
func VariantPath(localPath string, width int) string {
	return fmt.Sprintf("%s_%d", localPath, width)
}

type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate decodes the original at srcPath, resizes it to the given
// width preserving aspect ratio and writes the variant next to the
// original. The variant keeps the source encoding.
func (g *Generator) Generate(srcPath string, width int) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open original: %w", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decode original: %w", err)
	}

	imgFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}

	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	out, err := os.Create(VariantPath(srcPath, width))
	if err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	defer out.Close()

	if err = imaging.Encode(out, thumb, imgFormat); err != nil {
		return fmt.Errorf("encode variant: %w", err)
	}

	return nil
}
