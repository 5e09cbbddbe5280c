// Multipart upload spooling.
//
// Media files arrive as multipart form fields and are spooled to a local
// temp directory before being pushed to the media host. The host client
// removes the spool file after the upload attempt (success or failure), so
// the only cleanup owed here is for requests rejected before the upload
// starts.
package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// spooler writes multipart file parts into a temp directory.
type spooler struct {
	dir string
}

// newSpooler builds a spooler rooted at dir, creating it when missing.
func newSpooler(dir string) spooler {
	if dir == "" {
		dir = os.TempDir()
	}
	_ = os.MkdirAll(dir, 0o755)
	return spooler{dir: dir}
}

// save writes the named form file to the spool directory and returns its
// local path. A missing part returns ("", nil) so callers can decide whether
// the field is required.
func (s spooler) save(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return s.saveHeader(c, fh)
}

func (s spooler) saveHeader(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	// Random prefix keeps concurrent uploads of same-named files apart.
	name := uuid.NewString() + "-" + filepath.Base(fh.Filename)
	dst := filepath.Join(s.dir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("spool %s: %w", fh.Filename, err)
	}
	return dst, nil
}

// discard removes spool files for requests rejected before upload. Missing
// files are fine; the media client removes them on its own path.
func discard(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		_ = os.Remove(p)
	}
}
