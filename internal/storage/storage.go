// Package storage persists uploaded grievance images on local disk or in an
// S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"civicpulse/internal/uuid"
)

// ImageStore saves an image and returns the path or URL clients use to fetch
// it. Delete takes that same location.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, location string) error
}

// LocalURLPrefix is the route under which locally stored images are served.
const LocalURLPrefix = "/uploads"

// ObjectName returns a collision-free object name that keeps the original
// file extension.
func ObjectName(filename string) string {
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	return uuid.New() + "_" + base
}

// Local writes images under a directory on disk.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

// Dir is the directory images are written to.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the image and returns its location under LocalURLPrefix, never
// the filesystem path.
func (l *Local) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	name := ObjectName(filename)
	target := filepath.Join(l.dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	return LocalURLPrefix + "/" + name, nil
}

func (l *Local) Delete(_ context.Context, location string) error {
	name := strings.TrimPrefix(location, LocalURLPrefix+"/")
	if name == location || name == "" || name != filepath.Base(name) || name == ".." {
		return fmt.Errorf("not a local upload: %s", location)
	}
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload %s: %w", name, err)
	}
	return nil
}

// S3Config configures an S3-compatible bucket. Endpoint is optional and
// switches to path-style addressing for self-hosted stores.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Folder    string
}

// S3 uploads images to a bucket with public-read ACL.
type S3 struct {
	client s3iface.S3API
	cfg    S3Config
}

// NewS3 builds an S3 client from cfg.
func NewS3(cfg S3Config) (*S3, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewS3WithClient(s3.New(sess), cfg), nil
}

// NewS3WithClient wraps an existing S3 API client.
func NewS3WithClient(client s3iface.S3API, cfg S3Config) *S3 {
	if cfg.Folder == "" {
		cfg.Folder = "grievances"
	}
	return &S3{client: client, cfg: cfg}
}

func (s *S3) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := path.Join(s.cfg.Folder, ObjectName(filename))
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *S3) Delete(ctx context.Context, location string) error {
	key := strings.TrimPrefix(location, s.URL(""))
	if key == location || key == "" {
		return fmt.Errorf("not an object of bucket %s: %s", s.cfg.Bucket, location)
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s from s3: %w", key, err)
	}
	return nil
}

// URL returns the public URL of key.
func (s *S3) URL(key string) string {
	if s.cfg.Endpoint != "" {
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
