package r2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	appconfig "questionai/internal/config"
	"questionai/internal/pdf"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var errNotInitialized = errors.New("R2 client not initialized")

// objectPutter is the part of the S3 API the client uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client publishes exported documents to a Cloudflare R2 bucket.
type Client struct {
	s3Client   objectPutter
	bucketName string
	publicURL  *url.URL // base public URL of the bucket, e.g. https://pub-xxxxxxxx.r2.dev
	log        logrus.FieldLogger
}

// NewClient creates an R2 client. It returns (nil, nil) when R2 is not fully
// configured, leaving publishing disabled.
func NewClient(ctx context.Context, cfg appconfig.R2, log logrus.FieldLogger) (*Client, error) {
	if !cfg.Enabled() {
		log.Warn("Cloudflare R2 is not fully configured, PDF publishing is disabled")
		return nil, nil
	}

	publicURL, err := url.Parse(cfg.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("invalid R2 public URL %q: %w", cfg.PublicURL, err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"), // R2 ignores the region
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	log.WithField("bucket", cfg.BucketName).Info("R2 client initialized")
	return &Client{
		s3Client:   s3Client,
		bucketName: cfg.BucketName,
		publicURL:  publicURL,
		log:        log,
	}, nil
}

// UploadPDF stores a rendered question paper under
// "exports/<workspaceID>/<uploadID>/generated_questions.pdf" and returns its
// public URL.
func (c *Client) UploadPDF(ctx context.Context, workspaceID string, data []byte) (string, error) {
	if c == nil || c.s3Client == nil {
		return "", errNotInitialized
	}

	objectKey := ObjectKey(workspaceID, uuid.New())
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           types.ObjectCannedACLPublicRead,
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to R2 (key: %s): %w", objectKey, err)
	}

	fileURL := c.objectURL(objectKey)
	c.log.WithField("url", fileURL).Info("uploaded PDF to R2")
	return fileURL, nil
}

// ObjectKey returns the bucket key of one published export.
func ObjectKey(workspaceID string, uploadID uuid.UUID) string {
	return path.Join("exports", workspaceID, uploadID.String(), pdf.FileName)
}

func (c *Client) objectURL(objectKey string) string {
	u := *c.publicURL
	u.Path = path.Join(u.Path, objectKey)
	return u.String()
}
