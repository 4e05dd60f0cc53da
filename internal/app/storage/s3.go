package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"useracct/internal/app/account"
	"useracct/internal/pkg/logx"
)

// S3Config holds the settings of the S3 backend. Endpoint may be empty to use AWS itself.
type S3Config struct {
	BucketName      string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SnapshotKey     string
}

// S3Store persists the snapshot as a single JSON object in an S3-compatible bucket.
type S3Store struct {
	cfg      S3Config
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Store initializes the S3 client using static credentials and, when set,
// a custom endpoint with path-style addressing for S3-compatible services.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws sdk config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Load downloads the snapshot object. A missing object is an empty snapshot.
func (c *S3Store) Load(ctx context.Context) (account.Snapshot, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.cfg.BucketName,
		Key:    &c.cfg.SnapshotKey,
	})
	if err != nil {
		if isMissingObject(err) {
			return account.Snapshot{}, nil
		}
		logx.Error(err, "S3 snapshot download failed", "bucket", c.cfg.BucketName, "key", c.cfg.SnapshotKey)
		return nil, fmt.Errorf("get snapshot object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot object: %w", err)
	}

	return account.DecodeSnapshot(data)
}

// Save uploads the snapshot, replacing the previous object.
func (c *S3Store) Save(ctx context.Context, snap account.Snapshot) error {
	data, err := account.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &c.cfg.BucketName,
		Key:         &c.cfg.SnapshotKey,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logx.Error(err, "S3 snapshot upload failed", "bucket", c.cfg.BucketName, "key", c.cfg.SnapshotKey)
		return fmt.Errorf("put snapshot object: %w", err)
	}
	return nil
}

func (c *S3Store) Close() error { return nil }

// isMissingObject reports whether err means the snapshot object does not exist yet.
func isMissingObject(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
