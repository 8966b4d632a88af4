package video

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/internal/types"
)

var mimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

func MimeTypeFor(name string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// FileStore keeps uploaded media on local disk.
type FileStore struct {
	dir      string
	maxBytes int64
	allowed  map[string]bool
}

func NewFileStore(cfg config.StorageConfig) *FileStore {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return &FileStore{dir: cfg.UploadDir, maxBytes: cfg.MaxUploadBytes, allowed: allowed}
}

// Validate checks an upload's name and declared size before it is stored.
func (fs *FileStore) Validate(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || !fs.allowed[ext] {
		return types.Validationf("unsupported file type %q", ext)
	}
	if size == 0 {
		return types.Validationf("uploaded file is empty")
	}
	if fs.maxBytes > 0 && size > fs.maxBytes {
		return types.Validationf("file is %d bytes, limit is %d", size, fs.maxBytes)
	}
	return nil
}

// Save writes r to <dir>/<id><ext> and returns the path.
func (fs *FileStore) Save(id, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return "", types.Internal("create upload dir", err)
	}

	path := filepath.Join(fs.dir, id+strings.ToLower(filepath.Ext(name)))
	f, err := os.Create(path)
	if err != nil {
		return "", types.Internal("create upload file", err)
	}

	src := r
	if fs.maxBytes > 0 {
		src = io.LimitReader(r, fs.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", types.Internal("write upload file", err)
	}
	if fs.maxBytes > 0 && n > fs.maxBytes {
		os.Remove(path)
		return "", types.Validationf("file exceeds %d bytes", fs.maxBytes)
	}
	return path, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (fs *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
