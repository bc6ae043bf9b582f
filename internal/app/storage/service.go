/*
Package storage is the media host: it accepts inline (base64 data URL) images,
applies the requested transformation, stores them on S3-compatible object storage,
and returns a durable public URL.

Failures are reported as *HostError whose Reason tells callers whether the host
rejected the image or is misconfigured; callers never inspect the message text.
*/
package storage

import (
	"context"
	"fmt"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// PublicBaseURL is prefixed to object keys to build the returned URL.
	PublicBaseURL string
}

// Transform describes how the host should reshape an image before storing it.
type Transform struct {
	// MaxWidth and MaxHeight bound the stored image.
	MaxWidth  int
	MaxHeight int

	// Crop is the fitting mode. Only "limit" (downscale to fit, never upscale) is supported.
	Crop string

	// Quality is the encoder quality policy. "auto" selects a balanced JPEG quality.
	Quality string
}

// UploadRequest is one inline image handed to the host.
type UploadRequest struct {
	// Payload is the full data URL, e.g. "data:image/png;base64,iVBOR...".
	Payload string

	// Folder is the object key prefix, e.g. "avatars".
	Folder string

	// AllowedFormats lists acceptable image formats ("jpg", "png", ...).
	AllowedFormats []string

	Transform Transform
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL    string
	Key    string
	Format string
	Width  int
	Height int
	Bytes  int
}

// Reason classifies a host failure.
type Reason int

const (
	// ReasonRejected means the host refused or failed this particular upload.
	ReasonRejected Reason = iota

	// ReasonMisconfigured means the host cannot accept any upload until an operator fixes its configuration.
	ReasonMisconfigured
)

func (r Reason) String() string {
	if r == ReasonMisconfigured {
		return "misconfigured"
	}
	return "rejected"
}

// HostError is the error type returned by MediaHost implementations.
type HostError struct {
	Reason Reason

	// Message is the host's raw diagnostic. It is meant for operators.
	Message string

	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("media host %s: %s", e.Reason, e.Message)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

func rejected(err error, format string, args ...any) *HostError {
	return &HostError{Reason: ReasonRejected, Message: fmt.Sprintf(format, args...), Err: err}
}

// MediaHost defines the public interface for the image storage service.
type MediaHost interface {
	// Upload validates, transforms and stores the image, returning its durable URL.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// Ping verifies the host is reachable and the configured bucket is usable.
	Ping(ctx context.Context) error
}

// NewMediaHost is the factory function for MediaHost.
// Currently, only S3 compatible implementations are supported.
func NewMediaHost(ctx context.Context, cfg ServiceConfig) (MediaHost, error) {
	host, err := newS3Host(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return host, nil
}
