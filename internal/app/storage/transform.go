package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// autoJPEGQuality is the encoder quality used for the "auto" quality policy.
	autoJPEGQuality = 82

	// MaxPixels bounds width*height of an accepted image.
	MaxPixels = 40_000_000
)

var errNotDataURL = errors.New("payload is not a base64 data URL")

// decodedImage is an inline payload after base64 decoding and format sniffing.
type decodedImage struct {
	data   []byte
	format string // "jpeg", "png" or "gif", as reported by image.DecodeConfig
	width  int
	height int
}

// parseDataURL splits "data:<mime>;base64,<data>" and returns the mime type and decoded bytes.
func parseDataURL(payload string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return "", nil, errNotDataURL
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURL
	}

	params := strings.Split(meta, ";")
	mime := strings.ToLower(strings.TrimSpace(params[0]))

	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return "", nil, errNotDataURL
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", nil, err
		}
	}

	return mime, data, nil
}

// normalizeFormat maps format aliases onto the names image.DecodeConfig reports.
func normalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	f = strings.TrimPrefix(f, "image/")
	if f == "jpg" {
		return "jpeg"
	}
	return f
}

func formatAllowed(format string, allowed []string) bool {
	for _, a := range allowed {
		if normalizeFormat(a) == format {
			return true
		}
	}
	return false
}

// decodePayload parses the data URL, sniffs the actual image format and checks
// it against the allow-list.
func decodePayload(payload string, allowed []string) (*decodedImage, error) {
	mime, data, err := parseDataURL(payload)
	if err != nil {
		return nil, rejected(err, "Invalid image data: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, rejected(err, "Invalid image file")
	}

	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, rejected(nil, "Image dimensions too large: %dx%d", cfg.Width, cfg.Height)
	}

	if !formatAllowed(format, allowed) || !formatAllowed(normalizeFormat(mime), allowed) {
		return nil, rejected(nil, "Image file format %s not allowed", strings.TrimPrefix(mime, "image/"))
	}

	return &decodedImage{data: data, format: format, width: cfg.Width, height: cfg.Height}, nil
}

// fitWithin returns the largest size with the aspect ratio of w×h that fits in maxW×maxH.
// Sizes that already fit are returned unchanged ("limit" never upscales).
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}

	nw, nh := maxW, h*maxW/w
	if nh > maxH {
		nw, nh = w*maxH/h, maxH
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// applyTransform resizes img according to t and re-encodes it in its own format.
// JPEGs under the "auto" quality policy are re-encoded even when no resize is needed.
// GIFs are stored untouched so animations survive.
func applyTransform(img *decodedImage, t Transform) (*decodedImage, error) {
	if t.Crop != "" && t.Crop != "limit" {
		return nil, rejected(nil, "Unsupported crop mode %q", t.Crop)
	}

	if img.format == "gif" {
		return img, nil
	}

	w, h := fitWithin(img.width, img.height, t.MaxWidth, t.MaxHeight)
	resize := w != img.width || h != img.height
	if !resize && !(img.format == "jpeg" && t.Quality == "auto") {
		return img, nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.data))
	if err != nil {
		return nil, rejected(err, "Invalid image file")
	}

	out := src
	if resize {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	switch img.format {
	case "jpeg":
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality(t.Quality)})
	default:
		err = png.Encode(&buf, out)
	}
	if err != nil {
		return nil, rejected(err, "Image transformation failed")
	}

	return &decodedImage{data: buf.Bytes(), format: img.format, width: w, height: h}, nil
}

func jpegQuality(policy string) int {
	if policy == "auto" {
		return autoJPEGQuality
	}
	return jpeg.DefaultQuality
}

func contentTypeFor(format string) string {
	return "image/" + format
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
