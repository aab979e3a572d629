package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// BlobStore is the storage backend complaint photos are written to. Two
// drivers exist: Cloudflare R2 (S3 API, the default) and GCS. The driver is
// picked once at startup via STORAGE_DRIVER.
type BlobStore interface {
	UploadComplaintPhotos(ctx context.Context, username string, files []*multipart.FileHeader) ([]string, error)
	DeleteObjects(ctx context.Context, objectNames []string) error
}

func NewBlobStore(ctx context.Context) (BlobStore, error) {
	switch strings.ToLower(os.Getenv("STORAGE_DRIVER")) {
	case "", "r2":
		return newR2Store(ctx)
	case "gcs":
		return newGCSStore(ctx)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want r2 or gcs)", os.Getenv("STORAGE_DRIVER"))
	}
}

func photoObjectName(username, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("complaints/%s/%d-%s%s", username, time.Now().UTC().Unix(), uuid.New().String(), ext)
}

func photoContentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// ---- R2 driver -------------------------------------------------------------

type r2Store struct {
	s3     *s3.Client
	bucket string
	domain string // public domain serving the bucket
}

func newR2Store(ctx context.Context) (*r2Store, error) {
	bucket := os.Getenv("R2_BUCKET")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT") // https://<account-id>.r2.cloudflarestorage.com

	if bucket == "" || accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &r2Store{
		s3:     client,
		bucket: bucket,
		domain: strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
	}, nil
}

func (r *r2Store) publicURL(objectName string) string {
	if r.domain != "" {
		return r.domain + "/" + objectName
	}
	return fmt.Sprintf("https://%s.r2.dev/%s", r.bucket, objectName)
}

func (r *r2Store) UploadComplaintPhotos(ctx context.Context, username string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) < 1 || len(files) > 4 {
		return nil, fmt.Errorf("photos must be 1 to 4")
	}

	urls := make([]string, 0, len(files))

	for _, fh := range files {
		objectName := photoObjectName(username, fh.Filename)

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}

		_, err = r.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.bucket),
			Key:         aws.String(objectName),
			Body:        f,
			ContentType: aws.String(photoContentType(fh)),
		})
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}

		urls = append(urls, r.publicURL(objectName))
	}

	return urls, nil
}

func (r *r2Store) DeleteObjects(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := r.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

// ---- GCS driver ------------------------------------------------------------

type gcsStore struct {
	client *storage.Client
	bucket string
}

func newGCSStore(ctx context.Context) (*gcsStore, error) {
	bucket := os.Getenv("GCS_BUCKET")
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	if bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET env var")
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &gcsStore{client: client, bucket: bucket}, nil
}

func (g *gcsStore) UploadComplaintPhotos(ctx context.Context, username string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) < 1 || len(files) > 4 {
		return nil, fmt.Errorf("photos must be 1 to 4")
	}

	urls := make([]string, 0, len(files))

	for _, fh := range files {
		objectName := photoObjectName(username, fh.Filename)

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}

		w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
		w.ContentType = photoContentType(fh)

		if _, err := io.Copy(w, f); err != nil {
			_ = f.Close()
			_ = w.Close()
			return nil, fmt.Errorf("upload copy: %w", err)
		}
		_ = f.Close()

		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("upload close: %w", err)
		}

		urls = append(urls, fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objectName))
	}

	return urls, nil
}

func (g *gcsStore) DeleteObjects(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		err := g.client.Bucket(g.bucket).Object(obj).Delete(ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}
