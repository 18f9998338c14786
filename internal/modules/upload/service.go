package upload

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxFileSize = 5 * 1024 * 1024
	MaxBatchFiles      = 10
	filenamePrefix     = "gallery-"
)

type imageType struct {
	mime   string // as sniffed by http.DetectContentType
	format string // as reported by image.DecodeConfig
}

var allowedTypes = map[string]imageType{
	".jpg":  {"image/jpeg", "jpeg"},
	".jpeg": {"image/jpeg", "jpeg"},
	".png":  {"image/png", "png"},
	".gif":  {"image/gif", "gif"},
	".webp": {"image/webp", "webp"},
}

// StoredFile describes an image written to the upload directory.
type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Service keeps gallery images on local disk and serves them under a URL
// prefix.
type Service struct {
	dir       string
	urlPrefix string
	maxSize   int64
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(dir, urlPrefix string, maxSize int64, log logrus.FieldLogger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Service{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) MaxFileSize() int64 { return s.maxSize }

// BodyLimit is the largest multipart body accepted for n files.
func (s *Service) BodyLimit(n int) int64 {
	return int64(n)*s.maxSize + 1<<20
}

// Save validates one image and writes it under a fresh name.
func (s *Service) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	t, err := s.check(fh)
	if err != nil {
		return nil, err
	}
	return s.store(fh, t.mime)
}

// SaveAll validates every image before writing any of them. On failure no
// file from this call is left on disk.
func (s *Service) SaveAll(fhs []*multipart.FileHeader) ([]StoredFile, error) {
	if len(fhs) == 0 {
		return nil, ErrNoFile
	}
	if len(fhs) > MaxBatchFiles {
		return nil, ErrTooManyFiles
	}

	mimes := make([]string, len(fhs))
	for i, fh := range fhs {
		t, err := s.check(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		mimes[i] = t.mime
	}

	stored := make([]StoredFile, 0, len(fhs))
	for i, fh := range fhs {
		f, err := s.store(fh, mimes[i])
		if err != nil {
			for _, done := range stored {
				_ = os.Remove(filepath.Join(s.dir, done.Filename))
			}
			return nil, err
		}
		stored = append(stored, *f)
	}
	return stored, nil
}

// Delete removes a stored file by its bare name.
func (s *Service) Delete(filename string) error {
	if !validFilename(filename) {
		return ErrInvalidFilename
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("delete %s: %w", filename, err)
	}
	return nil
}

// IsLocalURL reports whether url points into the upload directory.
func (s *Service) IsLocalURL(url string) bool {
	return strings.HasPrefix(url, s.urlPrefix+"/") && validFilename(strings.TrimPrefix(url, s.urlPrefix+"/"))
}

// RemoveByURL deletes the local files behind urls and skips the rest.
// Failures are logged and never returned.
func (s *Service) RemoveByURL(urls []string) {
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if seen[u] || !s.IsLocalURL(u) {
			continue
		}
		seen[u] = true

		if err := s.Delete(strings.TrimPrefix(u, s.urlPrefix+"/")); err != nil {
			s.log.WithError(err).WithField("url", u).Warn("failed to remove uploaded file")
		}
	}
}

func (s *Service) check(fh *multipart.FileHeader) (imageType, error) {
	var none imageType
	if fh == nil {
		return none, ErrNoFile
	}
	if fh.Size == 0 {
		return none, ErrEmptyFile
	}
	if fh.Size > s.maxSize {
		return none, ErrFileTooLarge
	}

	t, ok := allowedTypes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		return none, ErrInvalidFileType
	}

	f, err := fh.Open()
	if err != nil {
		return none, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return none, fmt.Errorf("read upload: %w", err)
	}
	if mime := strings.Split(http.DetectContentType(head[:n]), ";")[0]; mime != t.mime {
		return none, ErrInvalidFileType
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return none, fmt.Errorf("rewind upload: %w", err)
	}
	if _, format, err := image.DecodeConfig(f); err != nil || format != t.format {
		return none, ErrInvalidFileType
	}

	return t, nil
}

func (s *Service) store(fh *multipart.FileHeader, mime string) (*StoredFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	name := s.newFilename(fh.Filename)
	path := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		URL:      s.urlPrefix + "/" + name,
		Filename: name,
		Size:     written,
		MimeType: mime,
	}, nil
}

// newFilename builds gallery-<unix millis>-<random>.<ext>.
func (s *Service) newFilename(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s%d-%s%s", filenamePrefix, s.now().UnixMilli(), suffix, ext)
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}
