package main_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/offerdoc"
	main "github.com/fwojciec/offerdoc/cmd/offerdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes encodes a w x h opaque red PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageHTML(t *testing.T) string {
	t.Helper()
	return `<p><img src="logo.png"><img src="` + offerdoc.EncodeDataURI("image/png", pngBytes(t, 2, 1)) + `"></p>`
}

func TestImagesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps()
	deps.Drafts = newDraftStore(pulledDraft("1", imageHTML(t)))

	require.NoError(t, (&main.ImagesCmd{ID: "1"}).Run(deps))
	assert.Contains(t, stdout.String(), "[0] image/png")
	assert.NotContains(t, stdout.String(), "[1]")
}

func TestReplaceImageCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("embeds the file as a data URI", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "new.png")
		data := pngBytes(t, 1, 1)
		require.NoError(t, os.WriteFile(file, data, 0o644))

		store := newDraftStore(pulledDraft("1", imageHTML(t)))
		deps, stdout, _ := newDeps()
		deps.Drafts = store

		require.NoError(t, (&main.ReplaceImageCmd{ID: "1", Index: 0, File: file}).Run(deps))
		assert.Contains(t, store.get("1").Content, offerdoc.EncodeDataURI("image/png", data))
		assert.Contains(t, store.get("1").Content, `src="logo.png"`)
		assert.Equal(t, "Replaced image 0 in 1\n", stdout.String())
	})

	t.Run("rejects files that are not images", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

		store := newDraftStore(pulledDraft("1", imageHTML(t)))
		deps, _, stderr := newDeps()
		deps.Drafts = store

		err := (&main.ReplaceImageCmd{ID: "1", Index: 0, File: file}).Run(deps)

		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "is not an image")
		assert.Zero(t, store.saves)
	})

	t.Run("rejects an out of range index", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "new.png")
		require.NoError(t, os.WriteFile(file, pngBytes(t, 1, 1), 0o644))

		store := newDraftStore(pulledDraft("1", imageHTML(t)))
		deps, _, _ := newDeps()
		deps.Drafts = store

		err := (&main.ReplaceImageCmd{ID: "1", Index: 1, File: file}).Run(deps)

		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
		assert.Zero(t, store.saves)
	})
}

func TestRotateImageCmd_Run(t *testing.T) {
	t.Parallel()

	store := newDraftStore(pulledDraft("1", imageHTML(t)))
	deps, _, _ := newDeps()
	deps.Drafts = store

	require.NoError(t, (&main.RotateImageCmd{ID: "1", Index: 0}).Run(deps))

	images := deps.Editor.ExtractImages(store.get("1").Content)
	require.Len(t, images, 1)
	_, data, err := offerdoc.ParseDataURI(images[0].Src)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
}
