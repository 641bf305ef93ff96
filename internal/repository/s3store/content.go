package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
)

// ObjectAPI is the subset of the S3 client used by the store.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ContentRepository keeps the document as a single JSON object. The object
// ETag is the document version; conditional writes use If-Match.
type ContentRepository struct {
	client ObjectAPI
	bucket string
	key    string
	logger *slog.Logger
}

// NewClient builds an S3 client for cfg. A custom endpoint (R2, MinIO)
// switches to path-style addressing.
func NewClient(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewContentRepository creates an S3-backed store for bucket/key.
func NewContentRepository(client ObjectAPI, bucket, key string, logger *slog.Logger) (*ContentRepository, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 content store")
	}
	return &ContentRepository{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// Load downloads and parses the document object
func (r *ContentRepository) Load(ctx context.Context) (*repositories.StoredContent, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read content object: %w", err)
	}

	var doc content.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse content object: %w", err)
	}

	stored := &repositories.StoredContent{
		Document: &doc,
		Version:  trimETag(aws.ToString(out.ETag)),
	}
	if out.LastModified != nil {
		stored.UpdatedAt = *out.LastModified
	}
	return stored, nil
}

// Save uploads the document, replacing the object
func (r *ContentRepository) Save(ctx context.Context, doc *content.Document, expectedVersion string) (*repositories.StoredContent, error) {
	data, err := content.MarshalReadable(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	if expectedVersion != "" {
		input.IfMatch = aws.String(`"` + expectedVersion + `"`)
	}

	out, err := r.client.PutObject(ctx, input)
	if err != nil {
		// If-Match against a missing object answers 404
		if expectedVersion != "" && (isPreconditionFailed(err) || isNotFound(err)) {
			return nil, &domain.PreconditionError{Expected: expectedVersion}
		}
		return nil, fmt.Errorf("put content object: %w", err)
	}

	version := trimETag(aws.ToString(out.ETag))
	r.logger.Debug("content object written", "bucket", r.bucket, "key", r.key, "etag", version)

	return &repositories.StoredContent{
		Document:  doc,
		Version:   version,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Close is a no-op; the SDK client has no persistent connections to release.
func (r *ContentRepository) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

func trimETag(etag string) string {
	return strings.Trim(etag, `"`)
}
