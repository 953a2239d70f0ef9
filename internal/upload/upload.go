package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxImageSize = 10 << 20  // 10MB
	MaxVideoSize = 100 << 20 // 100MB

	// URLPrefix is where saved files are served back from.
	URLPrefix = "/uploads"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var imageExts = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var videoExts = map[string]struct{}{
	".mp4": {}, ".webm": {}, ".mov": {}, ".avi": {},
}

var videoMimes = map[string]struct{}{
	"video/mp4": {}, "video/webm": {}, "video/quicktime": {}, "video/x-msvideo": {},
}

// Store writes multipart uploads to a local directory under randomized
// names, preserving the original extension.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveImage validates and stores an uploaded image, returning its URL path.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := imageExts[ext]; !ok {
		return "", ErrUnsupportedType
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrUnsupportedType
	}
	if fh.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}
	return s.write(fh, ext)
}

// SaveVideo validates and stores an uploaded video, returning its URL path.
func (s *Store) SaveVideo(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := videoExts[ext]; !ok {
		return "", ErrUnsupportedType
	}
	if _, ok := videoMimes[fh.Header.Get("Content-Type")]; !ok {
		return "", ErrUnsupportedType
	}
	if fh.Size > MaxVideoSize {
		return "", ErrFileTooLarge
	}
	return s.write(fh, ext)
}

// SaveMedia accepts either an image or a video and reports which kind
// was stored.
func (s *Store) SaveMedia(fh *multipart.FileHeader) (string, Kind, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := imageExts[ext]; ok {
		url, err := s.SaveImage(fh)
		return url, KindImage, err
	}
	if _, ok := videoExts[ext]; ok {
		url, err := s.SaveVideo(fh)
		return url, KindVideo, err
	}
	return "", "", ErrUnsupportedType
}

func (s *Store) write(fh *multipart.FileHeader, ext string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return URLPrefix + "/" + name, nil
}
