package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, field, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File[field]
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	return files[0]
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return store
}

func TestSaveImage(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "image", "kitchen.JPG", "image/jpeg", []byte("fake-jpeg-bytes"))

	url, err := store.SaveImage(fh)
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix+"/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("extension not preserved: %s", url)
	}

	name := strings.TrimPrefix(url, URLPrefix+"/")
	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("stored payload mismatch")
	}
}

func TestSaveImageRejectsDisallowedExtension(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "image", "script.svg", "image/svg+xml", []byte("<svg/>"))
	if _, err := store.SaveImage(fh); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveImageRejectsMimeMismatch(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "image", "photo.png", "application/octet-stream", []byte("x"))
	if _, err := store.SaveImage(fh); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveVideoRejectsImage(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "video", "photo.png", "image/png", []byte("x"))
	if _, err := store.SaveVideo(fh); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveMediaKinds(t *testing.T) {
	store := newTestStore(t)

	img := fileHeader(t, "heroImage", "hero.webp", "image/webp", []byte("img"))
	_, kind, err := store.SaveMedia(img)
	if err != nil {
		t.Fatalf("SaveMedia image error: %v", err)
	}
	if kind != KindImage {
		t.Fatalf("expected image kind, got %s", kind)
	}

	vid := fileHeader(t, "heroVideo", "hero.mp4", "video/mp4", []byte("vid"))
	_, kind, err = store.SaveMedia(vid)
	if err != nil {
		t.Fatalf("SaveMedia video error: %v", err)
	}
	if kind != KindVideo {
		t.Fatalf("expected video kind, got %s", kind)
	}

	bad := fileHeader(t, "heroImage", "notes.txt", "text/plain", []byte("x"))
	if _, _, err := store.SaveMedia(bad); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRandomizedNamesDiffer(t *testing.T) {
	store := newTestStore(t)
	fh := fileHeader(t, "image", "a.png", "image/png", []byte("x"))
	first, err := store.SaveImage(fh)
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	second, err := store.SaveImage(fh)
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct names, got %s twice", first)
	}
}
