package offerdoc

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/disintegration/imaging"
)

const base64Marker = ";base64,"

// IsBase64Image reports whether src is a base64 encoded image data URI.
func IsBase64Image(src string) bool {
	if !strings.HasPrefix(strings.ToLower(src), "data:image/") {
		return false
	}
	return strings.Contains(src, base64Marker)
}

// DataURIMediaType returns the media type of a data URI, e.g. "image/png".
// Returns an empty string if src is not a data URI.
func DataURIMediaType(src string) string {
	rest, ok := strings.CutPrefix(strings.ToLower(src), "data:")
	if !ok {
		return ""
	}
	end := strings.IndexAny(rest, ";,")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// ParseDataURI decodes a base64 image data URI.
func ParseDataURI(src string) (mediaType string, data []byte, err error) {
	if !IsBase64Image(src) {
		return "", nil, Errorf(EINVALID, "not a base64 image data URI")
	}
	_, payload, _ := strings.Cut(src, base64Marker)
	data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, Errorf(EINVALID, "invalid base64 image data: %v", err)
	}
	return DataURIMediaType(src), data, nil
}

// EncodeDataURI encodes data as a base64 data URI of the given media type.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// RotateDataURI rotates a PNG, JPEG, GIF, BMP or TIFF data URI by 90 degrees
// clockwise and returns the result as a PNG data URI.
func RotateDataURI(src string) (string, error) {
	_, data, err := ParseDataURI(src)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", Errorf(EINVALID, "cannot decode image: %v", err)
	}

	var buf bytes.Buffer
	// 270 degrees counter-clockwise is a quarter turn clockwise.
	if err := imaging.Encode(&buf, imaging.Rotate270(img), imaging.PNG); err != nil {
		return "", err
	}
	return EncodeDataURI("image/png", buf.Bytes()), nil
}
