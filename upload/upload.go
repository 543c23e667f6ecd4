package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/gif" // register gif
	_ "image/png" // register png

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ErrorKind discriminates upload failures so callers can render a precise
// message without inspecting error text.
type ErrorKind int

const (
	KindSizeExceeded ErrorKind = iota + 1
	KindRejected
)

// Error is the typed failure returned by the upload subsystem.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindSizeExceeded:
		return "file size too large"
	case KindRejected:
		return "upload rejected: " + e.Reason
	}
	return "upload failed"
}

// Category namespaces stored objects.
type Category string

const (
	CategoryProfile  Category = "users/profile"
	CategoryBusiness Category = "business/images"
)

// Uploader stores an image payload and returns its reference.
type Uploader interface {
	Save(ctx context.Context, category Category, filename string, content []byte) (string, error)
}

type LocalUploader struct {
	dir       string
	maxBytes  int64
	maxWidth  int
	maxHeight int
	quality   int
}

func NewLocalUploader(dir string, maxBytes int64, maxWidth, maxHeight, quality int) *LocalUploader {
	return &LocalUploader{
		dir:       dir,
		maxBytes:  maxBytes,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		quality:   quality,
	}
}

// Save enforces the size cap, decodes and bounds the image, re-encodes it as
// JPEG under a random object name, and returns the stored reference. Size
// overflow and undecodable payloads come back as *Error by kind.
func (u *LocalUploader) Save(ctx context.Context, category Category, filename string, content []byte) (string, error) {
	if int64(len(content)) > u.maxBytes {
		return "", &Error{Kind: KindSizeExceeded}
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", &Error{Kind: KindRejected, Reason: "unsupported image format"}
	}

	dst := u.bound(img)

	ref := filepath.Join(string(category), uuid.NewString()+".jpg")
	fullPath := filepath.Join(u.dir, ref)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: u.quality}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return ref, nil
}

// bound scales the image down to fit within the configured box, keeping
// aspect ratio. Images already within bounds pass through untouched.
func (u *LocalUploader) bound(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= u.maxWidth && h <= u.maxHeight {
		return img
	}

	scaleW := float64(u.maxWidth) / float64(w)
	scaleH := float64(u.maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
