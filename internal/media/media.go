// Package media uploads files attached to records (amenity images and the
// like) to S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores an object and returns the URL it can be read from.
type Uploader interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Config holds S3 connection parameters.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional; set for MinIO or other S3-compatible stores
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
	PathStyle       bool
	// PublicBaseURL, when set, prefixes object keys to build returned URLs.
	PublicBaseURL string
}

// Environment variables read by ConfigFromEnv:
//
//	ELVIRA_S3_BUCKET (required)
//	ELVIRA_S3_REGION (default us-east-1)
//	ELVIRA_S3_ENDPOINT
//	ELVIRA_S3_PATH_STYLE=true|false
//	ELVIRA_S3_PUBLIC_URL
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() Config {
	return Config{
		Bucket:        os.Getenv("ELVIRA_S3_BUCKET"),
		Region:        os.Getenv("ELVIRA_S3_REGION"),
		Endpoint:      os.Getenv("ELVIRA_S3_ENDPOINT"),
		PathStyle:     strings.EqualFold(os.Getenv("ELVIRA_S3_PATH_STYLE"), "true"),
		PublicBaseURL: os.Getenv("ELVIRA_S3_PUBLIC_URL"),
	}
}

// S3 uploads to a single bucket.
type S3 struct {
	client *s3.Client
	cfg    Config
}

// NewS3 creates an uploader. optFns adjust the S3 client, for example to
// swap its HTTP transport.
func NewS3(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3{client: client, cfg: cfg}, nil
}

// Put uploads r under key.
func (s *S3) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL returns where key can be read from.
func (s *S3) URL(key string) string {
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// ObjectKey lays out <hotel_id>/<table>/<uuid><ext>. Records without a
// hotel go under "shared".
func ObjectKey(hotelID, table, filename string) string {
	if hotelID == "" {
		hotelID = "shared"
	}
	return path.Join(hotelID, table, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
}

// UploadFile uploads the file at filePath for a record of table and
// returns its URL.
func UploadFile(ctx context.Context, up Uploader, hotelID, table, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	contentType, err := detectContentType(f, filePath)
	if err != nil {
		return "", err
	}
	return up.Put(ctx, ObjectKey(hotelID, table, filePath), f, contentType)
}

func detectContentType(f *os.File, filePath string) (string, error) {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath))); ct != "" {
		return ct, nil
	}
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", filePath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", filePath, err)
	}
	return http.DetectContentType(head[:n]), nil
}
