package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"duochat/internal/pkg/randx"
)

// cacheControl marks stored images as immutable: every upload gets a fresh key.
const cacheControl = "public, max-age=31536000, immutable"

// misconfigurationCodes are S3 API error codes that no user input can fix.
var misconfigurationCodes = map[string]struct{}{
	"NoSuchBucket":                 {},
	"AccessDenied":                 {},
	"InvalidAccessKeyId":           {},
	"SignatureDoesNotMatch":        {},
	"AuthorizationHeaderMalformed": {},
	"PermanentRedirect":            {},
	"InvalidBucketName":            {},
}

type bucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// s3Host implements the MediaHost interface on S3-compatible storage.
type s3Host struct {
	bucket        string
	publicBaseURL string
	api           bucketAPI
	uploader      objectUploader
}

// newS3Host initializes the S3 client using a custom configuration that supports S3-compatible endpoints.
func newS3Host(ctx context.Context, cfg ServiceConfig) (*s3Host, error) {
	if cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" || cfg.S3BucketName == "" {
		return nil, errors.New("media host credentials are not configured")
	}

	region := cfg.S3Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	return &s3Host{
		bucket:        cfg.S3BucketName,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		api:           client,
		uploader:      manager.NewUploader(client),
	}, nil
}

// Upload implements MediaHost.
func (h *s3Host) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	img, err := decodePayload(req.Payload, req.AllowedFormats)
	if err != nil {
		return nil, err
	}

	img, err = applyTransform(img, req.Transform)
	if err != nil {
		return nil, err
	}

	key := randx.ObjectKey(req.Folder, extensionFor(img.format))

	_, err = h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(h.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(img.data),
		ContentType:  aws.String(contentTypeFor(img.format)),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return nil, classify(err)
	}

	return &UploadResult{
		URL:    h.publicBaseURL + "/" + key,
		Key:    key,
		Format: extensionFor(img.format),
		Width:  img.width,
		Height: img.height,
		Bytes:  len(img.data),
	}, nil
}

// Ping implements MediaHost by checking that the bucket exists and is accessible.
func (h *s3Host) Ping(ctx context.Context) error {
	_, err := h.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(h.bucket)})
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify maps an S3 SDK error onto a HostError using the API error code.
func classify(err error) *HostError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.ErrorCode()
		if m := apiErr.ErrorMessage(); m != "" {
			msg += ": " + m
		}

		if _, ok := misconfigurationCodes[apiErr.ErrorCode()]; ok {
			return &HostError{Reason: ReasonMisconfigured, Message: msg, Err: err}
		}
		return &HostError{Reason: ReasonRejected, Message: msg, Err: err}
	}

	return &HostError{Reason: ReasonRejected, Message: err.Error(), Err: err}
}
