package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fwojciec/offerdoc"
)

// Run executes the images command.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	images := deps.Editor.ExtractImages(draft.Content)
	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No embedded images found.")
		return nil
	}

	for _, img := range images {
		fmt.Fprintf(deps.Stdout, "[%d] %s  %d bytes\n", img.Index, img.MediaType, len(img.Src))
	}
	return nil
}

// Run executes the replace-image command.
func (c *ReplaceImageCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fail(deps, err)
	}
	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return fail(deps, offerdoc.Errorf(offerdoc.EINVALID, "%s is not an image (%s)", c.File, mediaType))
	}

	if _, err := imageAt(deps, draft, c.Index); err != nil {
		return fail(deps, err)
	}

	draft.Content = deps.Editor.ReplaceImage(draft.Content, c.Index, offerdoc.EncodeDataURI(mediaType, data))
	if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Replaced image %d in %s\n", c.Index, c.ID)
	return nil
}

// Run executes the rotate-image command.
func (c *RotateImageCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	img, err := imageAt(deps, draft, c.Index)
	if err != nil {
		return fail(deps, err)
	}

	rotated, err := offerdoc.RotateDataURI(img.Src)
	if err != nil {
		return fail(deps, err)
	}

	draft.Content = deps.Editor.ReplaceImage(draft.Content, c.Index, rotated)
	if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Rotated image %d in %s\n", c.Index, c.ID)
	return nil
}

func imageAt(deps *Dependencies, draft *offerdoc.Draft, index int) (offerdoc.Image, error) {
	images := deps.Editor.ExtractImages(draft.Content)
	if index < 0 || index >= len(images) {
		return offerdoc.Image{}, offerdoc.Errorf(offerdoc.EINVALID, "image index %d out of range (draft has %d images)", index, len(images))
	}
	return images[index], nil
}
