/*
Package media validates inline image payloads and forwards accepted ones to the media host.

It performs no persistence: callers decide what to store once a durable URL is returned,
so a failed validation or upload never leaves partial state behind.
*/
package media

import (
	"context"
	"errors"
	"strings"

	"duochat/internal/app/storage"
	"duochat/internal/pkg/errs"
	"duochat/internal/pkg/logx"
)

const (
	// DataURLPrefix identifies an inline image payload.
	DataURLPrefix = "data:image/"

	// MaxImageSize is the ceiling on the estimated decoded size of a payload, in bytes.
	MaxImageSize = 9.5 * 1024 * 1024
)

// AllowedFormats is the format allow-list sent to the media host.
var AllowedFormats = []string{"jpg", "png", "jpeg", "gif"}

// Purpose selects the transformation policy applied by the host.
type Purpose int

const (
	PurposeProfile Purpose = iota
	PurposeMessage
)

type policy struct {
	folder string
	size   int
}

var policies = map[Purpose]policy{
	PurposeProfile: {folder: "avatars", size: 500},
	PurposeMessage: {folder: "messages", size: 1200},
}

func (p Purpose) String() string {
	if p == PurposeMessage {
		return "message"
	}
	return "profile"
}

// EstimatedSize approximates the decoded size of a base64 payload, in bytes.
// It is not rounded, so a fractional byte over the ceiling still counts.
func EstimatedSize(payload string) float64 {
	return float64(len(payload)) * 3 / 4
}

// Validate checks that payload is an inline image within the size ceiling.
func Validate(payload string) *errs.CustomError {
	if !strings.HasPrefix(payload, DataURLPrefix) {
		return errs.NewError(errs.ErrImageInvalidFormat)
	}

	if EstimatedSize(payload) > MaxImageSize {
		return errs.NewError(errs.ErrImageTooLarge)
	}

	return nil
}

// Uploader validates payloads and makes a single best-effort call to the host.
type Uploader struct {
	host storage.MediaHost
}

// NewUploader returns an Uploader forwarding to host.
func NewUploader(host storage.MediaHost) *Uploader {
	return &Uploader{host: host}
}

// ValidateAndUpload validates payload and uploads it under the policy for purpose,
// returning the durable URL.
func (u *Uploader) ValidateAndUpload(ctx context.Context, payload string, purpose Purpose) (string, error) {
	if cErr := Validate(payload); cErr != nil {
		return "", cErr
	}

	pol, ok := policies[purpose]
	if !ok {
		pol = policies[PurposeMessage]
	}

	res, err := u.host.Upload(ctx, storage.UploadRequest{
		Payload:        payload,
		Folder:         pol.folder,
		AllowedFormats: AllowedFormats,
		Transform: storage.Transform{
			MaxWidth:  pol.size,
			MaxHeight: pol.size,
			Crop:      "limit",
			Quality:   "auto",
		},
	})
	if err != nil {
		return "", hostFailure(ctx, purpose, err)
	}

	logx.InfoCtx(ctx, "Image uploaded", "purpose", purpose.String(), "key", res.Key, "bytes", res.Bytes)
	return res.URL, nil
}

// hostFailure maps a host error onto the error taxonomy by its Reason.
func hostFailure(ctx context.Context, purpose Purpose, err error) *errs.CustomError {
	var hostErr *storage.HostError
	if !errors.As(err, &hostErr) {
		logx.ErrorCtx(ctx, err, "Media host call failed", "purpose", purpose.String())
		return errs.NewError(errs.ErrImageUploadFailed).WithDiagnostic(err.Error()).WithCause(err)
	}

	code := errs.ErrImageUploadFailed
	if hostErr.Reason == storage.ReasonMisconfigured {
		code = errs.ErrMediaHostMisconfigured
	}

	return errs.NewError(code).WithDiagnostic(hostErr.Message).WithCause(err)
}
