package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func jpegDataURL(t *testing.T, mime string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func gifDataURL(t *testing.T, w, h int) (string, []byte) {
	t.Helper()
	pal := image.NewPaletted(image.Rect(0, 0, w, h), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))
	return "data:image/gif;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), buf.Bytes()
}

// pngHeaderDataURL returns a PNG that declares w×h grayscale pixels but carries
// only the signature and IHDR chunk, which is all image.DecodeConfig reads.
func pngHeaderDataURL(w, h uint32) string {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

var allFormats = []string{"jpg", "png", "jpeg", "gif"}

type fakeUploader struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &manager.UploadOutput{}, nil
}

type fakeBucket struct {
	err error
}

func (f fakeBucket) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func newTestHost(up *fakeUploader, bucketErr error) *s3Host {
	return &s3Host{
		bucket:        "media",
		publicBaseURL: "https://cdn.example.com",
		api:           fakeBucket{err: bucketErr},
		uploader:      up,
	}
}

func TestParseDataURL(t *testing.T) {
	mime, data, err := parseDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("abc"), data)

	_, data, err = parseDataURL("data:image/png;base64,YWJj")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	for _, bad := range []string{
		"",
		"image/png;base64,YWJj",
		"data:image/png,YWJj",
		"data:image/png;base64",
		"data:image/png;base64,***",
	} {
		_, _, err := parseDataURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 100, 500, 500, 100, 100},
		{1000, 1000, 500, 500, 500, 500},
		{2000, 1000, 500, 500, 500, 250},
		{1000, 2000, 500, 500, 250, 500},
		{5000, 1, 500, 500, 500, 1},
		{800, 600, 0, 0, 800, 600},
	}
	for _, c := range cases {
		w, h := fitWithin(c.w, c.h, c.maxW, c.maxH)
		assert.Equal(t, c.wantW, w, "%dx%d in %dx%d", c.w, c.h, c.maxW, c.maxH)
		assert.Equal(t, c.wantH, h, "%dx%d in %dx%d", c.w, c.h, c.maxW, c.maxH)
	}
}

func TestDecodePayloadChecksSniffedAndDeclaredFormat(t *testing.T) {
	img, err := decodePayload(pngDataURL(t, 4, 3), allFormats)
	require.NoError(t, err)
	assert.Equal(t, "png", img.format)
	assert.Equal(t, 4, img.width)
	assert.Equal(t, 3, img.height)

	_, err = decodePayload(jpegDataURL(t, "image/jpg", 4, 4), allFormats)
	require.NoError(t, err)

	_, err = decodePayload(pngDataURL(t, 4, 4), []string{"jpg"})
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, ReasonRejected, hostErr.Reason)

	// PNG bytes declared as webp.
	payload := strings.Replace(pngDataURL(t, 4, 4), "image/png", "image/webp", 1)
	_, err = decodePayload(payload, allFormats)
	require.ErrorAs(t, err, &hostErr)

	_, err = decodePayload("data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("not an image")), allFormats)
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, ReasonRejected, hostErr.Reason)
}

func TestDecodePayloadRejectsOversizedDimensions(t *testing.T) {
	img, err := decodePayload(pngHeaderDataURL(5000, 5000), allFormats)
	require.NoError(t, err)
	assert.Equal(t, 5000, img.width)

	for _, dims := range [][2]uint32{{12000, 12000}, {40001, 1000}, {1, 1 << 30}} {
		_, err := decodePayload(pngHeaderDataURL(dims[0], dims[1]), allFormats)
		var hostErr *HostError
		require.ErrorAs(t, err, &hostErr, "%dx%d", dims[0], dims[1])
		assert.Equal(t, ReasonRejected, hostErr.Reason)
		assert.Contains(t, hostErr.Message, "dimensions")
	}
}

func TestUploadRejectsOversizedDimensionsBeforeDecoding(t *testing.T) {
	up := &fakeUploader{}
	host := newTestHost(up, nil)

	_, err := host.Upload(context.Background(), UploadRequest{
		Payload:        pngHeaderDataURL(12000, 12000),
		Folder:         "messages",
		AllowedFormats: allFormats,
		Transform:      Transform{MaxWidth: 1200, MaxHeight: 1200, Crop: "limit", Quality: "auto"},
	})
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, ReasonRejected, hostErr.Reason)
	assert.Empty(t, up.inputs)
}

func TestApplyTransformReencodesFittingJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(64, 48), &jpeg.Options{Quality: 100}))
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	img, err := decodePayload(payload, allFormats)
	require.NoError(t, err)

	out, err := applyTransform(img, Transform{MaxWidth: 500, MaxHeight: 500, Crop: "limit", Quality: "auto"})
	require.NoError(t, err)
	assert.NotEqual(t, img.data, out.data)
	assert.Less(t, len(out.data), len(img.data))
	assert.Equal(t, 64, out.width)
	assert.Equal(t, 48, out.height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, cfg.Width)

	kept, err := applyTransform(img, Transform{MaxWidth: 500, MaxHeight: 500, Crop: "limit"})
	require.NoError(t, err)
	assert.Equal(t, img.data, kept.data)
}

func TestApplyTransform(t *testing.T) {
	img, err := decodePayload(pngDataURL(t, 1000, 500), allFormats)
	require.NoError(t, err)

	out, err := applyTransform(img, Transform{MaxWidth: 500, MaxHeight: 500, Crop: "limit", Quality: "auto"})
	require.NoError(t, err)
	assert.Equal(t, 500, out.width)
	assert.Equal(t, 250, out.height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 500, cfg.Width)

	small, err := decodePayload(pngDataURL(t, 10, 10), allFormats)
	require.NoError(t, err)
	same, err := applyTransform(small, Transform{MaxWidth: 500, MaxHeight: 500, Crop: "limit"})
	require.NoError(t, err)
	assert.Equal(t, small.data, same.data)

	_, err = applyTransform(small, Transform{Crop: "fill"})
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
}

func TestApplyTransformKeepsGIF(t *testing.T) {
	payload, raw := gifDataURL(t, 2000, 2000)
	img, err := decodePayload(payload, allFormats)
	require.NoError(t, err)

	out, err := applyTransform(img, Transform{MaxWidth: 500, MaxHeight: 500, Crop: "limit"})
	require.NoError(t, err)
	assert.Equal(t, raw, out.data)
}

func TestUploadStoresObjectAndReturnsPublicURL(t *testing.T) {
	up := &fakeUploader{}
	host := newTestHost(up, nil)

	res, err := host.Upload(context.Background(), UploadRequest{
		Payload:        jpegDataURL(t, "image/jpeg", 1600, 800),
		Folder:         "messages",
		AllowedFormats: allFormats,
		Transform:      Transform{MaxWidth: 1200, MaxHeight: 1200, Crop: "limit", Quality: "auto"},
	})
	require.NoError(t, err)
	require.Len(t, up.inputs, 1)

	in := up.inputs[0]
	assert.Equal(t, "media", aws.ToString(in.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "messages/"))
	assert.True(t, strings.HasSuffix(aws.ToString(in.Key), ".jpg"))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
	assert.Equal(t, cacheControl, aws.ToString(in.CacheControl))

	assert.Equal(t, "https://cdn.example.com/"+aws.ToString(in.Key), res.URL)
	assert.Equal(t, "jpg", res.Format)
	assert.Equal(t, 1200, res.Width)
	assert.Equal(t, 600, res.Height)
	assert.Equal(t, len(up.bodies[0]), res.Bytes)
}

func TestUploadRejectsBeforeCallingS3(t *testing.T) {
	up := &fakeUploader{}
	host := newTestHost(up, nil)

	_, err := host.Upload(context.Background(), UploadRequest{
		Payload:        "data:image/png;base64,????",
		Folder:         "avatars",
		AllowedFormats: allFormats,
	})
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, ReasonRejected, hostErr.Reason)
	assert.Empty(t, up.inputs)
}

func TestUploadClassifiesS3Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Reason
	}{
		{"missing bucket", &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}, ReasonMisconfigured},
		{"bad key", &smithy.GenericAPIError{Code: "InvalidAccessKeyId"}, ReasonMisconfigured},
		{"denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ReasonMisconfigured},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown", Message: "Reduce your request rate"}, ReasonRejected},
		{"network", errors.New("dial tcp: connection refused"), ReasonRejected},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			host := newTestHost(&fakeUploader{err: c.err}, nil)

			_, err := host.Upload(context.Background(), UploadRequest{
				Payload:        pngDataURL(t, 8, 8),
				Folder:         "avatars",
				AllowedFormats: allFormats,
			})

			var hostErr *HostError
			require.ErrorAs(t, err, &hostErr)
			assert.Equal(t, c.want, hostErr.Reason)
			assert.ErrorIs(t, err, c.err)
			assert.NotEmpty(t, hostErr.Message)
		})
	}
}

func TestPing(t *testing.T) {
	require.NoError(t, newTestHost(&fakeUploader{}, nil).Ping(context.Background()))

	err := newTestHost(&fakeUploader{}, &smithy.GenericAPIError{Code: "NoSuchBucket"}).Ping(context.Background())
	var hostErr *HostError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, ReasonMisconfigured, hostErr.Reason)
	assert.Contains(t, hostErr.Error(), "misconfigured")
}

func TestNewMediaHostRequiresCredentials(t *testing.T) {
	_, err := NewMediaHost(context.Background(), ServiceConfig{S3BucketName: "media"})
	assert.Error(t, err)
}
