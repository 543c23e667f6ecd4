package upload_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/findahub/accounts/upload"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLocalUploader_Save(t *testing.T) {
	dir := t.TempDir()
	uploader := upload.NewLocalUploader(dir, 1<<20, 40, 40, 80)

	t.Run("stores a jpeg under the category namespace", func(t *testing.T) {
		ref, err := uploader.Save(context.Background(), upload.CategoryProfile, "avatar.png", pngBytes(t, 10, 10))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if !strings.HasPrefix(ref, string(upload.CategoryProfile)) {
			t.Fatalf("ref = %s, want prefix %s", ref, upload.CategoryProfile)
		}
		if !strings.HasSuffix(ref, ".jpg") {
			t.Fatalf("ref = %s, want .jpg suffix", ref)
		}
		if _, err := os.Stat(filepath.Join(dir, ref)); err != nil {
			t.Fatalf("stored file missing: %v", err)
		}
	})

	t.Run("random names never collide for the same input", func(t *testing.T) {
		content := pngBytes(t, 10, 10)
		first, err := uploader.Save(context.Background(), upload.CategoryProfile, "avatar.png", content)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		second, err := uploader.Save(context.Background(), upload.CategoryProfile, "avatar.png", content)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if first == second {
			t.Fatalf("refs collide: %s", first)
		}
	})

	t.Run("scales oversized images down preserving aspect ratio", func(t *testing.T) {
		ref, err := uploader.Save(context.Background(), upload.CategoryBusiness, "wide.png", pngBytes(t, 100, 50))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		f, err := os.Open(filepath.Join(dir, ref))
		if err != nil {
			t.Fatalf("open stored file: %v", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			t.Fatalf("decode stored file: %v", err)
		}
		b := img.Bounds()
		if b.Dx() != 40 || b.Dy() != 20 {
			t.Fatalf("stored bounds = %dx%d, want 40x20", b.Dx(), b.Dy())
		}
	})

	t.Run("rejects payloads over the size cap by kind", func(t *testing.T) {
		small := upload.NewLocalUploader(dir, 10, 40, 40, 80)
		_, err := small.Save(context.Background(), upload.CategoryProfile, "big.png", pngBytes(t, 10, 10))
		if err == nil {
			t.Fatal("Save() expected error")
		}
		var ue *upload.Error
		if !errors.As(err, &ue) || ue.Kind != upload.KindSizeExceeded {
			t.Fatalf("error = %v, want KindSizeExceeded", err)
		}
	})

	t.Run("rejects undecodable payloads by kind", func(t *testing.T) {
		_, err := uploader.Save(context.Background(), upload.CategoryProfile, "notes.txt", []byte("not an image"))
		if err == nil {
			t.Fatal("Save() expected error")
		}
		var ue *upload.Error
		if !errors.As(err, &ue) || ue.Kind != upload.KindRejected {
			t.Fatalf("error = %v, want KindRejected", err)
		}
	})
}
