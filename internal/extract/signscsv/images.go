package signscsv

import (
	"fmt"
	"os"
	"path/filepath"
)

// supportedExtensions is the priority order for locating a sign image on disk.
var supportedExtensions = []string{".png", ".svg", ".jpg", ".jpeg", ".webp"}

// ImageResolver maps a catalog id to a public image path by probing the local
// source directory for known extensions. Exists is injectable so mappers stay
// testable without fixture files.
type ImageResolver struct {
	SourceDir string
	Exists    func(path string) bool
}

func NewImageResolver(sourceDir string) ImageResolver {
	return ImageResolver{SourceDir: sourceDir, Exists: fileExists}
}

// Resolve returns the public path of the first extension that exists on disk.
// The boolean reports whether a real file was found; when it is false the
// returned path is the synthesized .svg fallback, so extraction never fails on
// a missing image.
func (r ImageResolver) Resolve(sourceID int) (string, bool) {
	exists := r.Exists
	if exists == nil {
		exists = fileExists
	}
	for _, ext := range supportedExtensions {
		local := filepath.Join(r.SourceDir, fmt.Sprintf("%03d%s", sourceID, ext))
		if exists(local) {
			return publicImagePath(sourceID, ext), true
		}
	}
	return publicImagePath(sourceID, ".svg"), false
}

func publicImagePath(sourceID int, ext string) string {
	return fmt.Sprintf("/assets/sign_images_by_id/%03d%s", sourceID, ext)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
