package lint

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// isArchiveFile reports whether path looks like a zip archive. Extension is
// checked first so we do not open every file in a directory walk, then the
// content is sniffed to reject files merely named ".zip".
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs at most 261 bytes for its magic number tables
	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// looksBinary reports whether data matches a known binary format. Text files
// never match filetype's magic number tables, so a positive match means
// somebody gave a css/html extension to an image or archive.
func looksBinary(data []byte) bool {
	kind, err := filetype.Match(data)
	return err == nil && kind != filetype.Unknown
}
