package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// presignLifetime bounds how long a returned S3 URL stays fetchable.
const presignLifetime = time.Hour * 24

// S3Store writes uploads to an S3-compatible bucket and returns presigned
// GET URLs. Used on deployments without a persistent local disk.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("couldn't load aws config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.Endpoint != ""
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  opts.Bucket,
	}, nil
}

func (s *S3Store) Save(
	ctx context.Context,
	filename string,
	contentType string,
	data io.Reader,
) (
	string,
	error,
) {
	key := storageKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        data,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignLifetime))
	if err != nil {
		return "", fmt.Errorf("%w: couldn't presign url: %v", ErrStoreFailed, err)
	}

	return req.URL, nil
}

func storageKey(filename string) string {
	base, ext := sanitizeName(filename)
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%v-%s%s",
		d.Year(), d.Month(), d.Day(), uuid.New(), base, ext)
}
