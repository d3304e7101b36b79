package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/utils"
)

// ImageStorage stores uploaded product images and returns the public URL
// the product's image_url field should point at.
type ImageStorage interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
}

var imageStorage ImageStorage

// InitImageStorage selects the storage backend from configuration: S3 when
// a bucket is configured, local disk otherwise.
func InitImageStorage(cfg *appconfig.Config) (ImageStorage, error) {
	if cfg.UseS3() {
		storage, err := NewS3ImageStorage(cfg)
		if err != nil {
			return nil, err
		}
		imageStorage = storage
		return imageStorage, nil
	}
	imageStorage = NewLocalImageStorage(cfg.UploadDir)
	return imageStorage, nil
}

// GetImageStorage returns the initialized storage backend.
func GetImageStorage() ImageStorage {
	return imageStorage
}

// SetImageStorage sets the storage backend (primarily for testing).
func SetImageStorage(storage ImageStorage) {
	imageStorage = storage
}

// LocalImageStorage writes uploads to a directory on local disk. Files are
// served back through the public uploads endpoint.
type LocalImageStorage struct {
	dir string
}

// NewLocalImageStorage creates a disk-backed image store rooted at dir.
func NewLocalImageStorage(dir string) *LocalImageStorage {
	return &LocalImageStorage{dir: dir}
}

// Save writes the uploaded file under the storage directory and returns the
// URL path it will be served from.
func (s *LocalImageStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	filename, err := utils.SaveUploadedFile(fileHeader, s.dir)
	if err != nil {
		return "", err
	}
	return "/api/uploads/" + filename, nil
}

// S3ImageStorage uploads images to an S3 bucket.
type S3ImageStorage struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3ImageStorage creates an S3-backed image store from the AWS settings
// in the application configuration.
func NewS3ImageStorage(cfg *appconfig.Config) (*S3ImageStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStorage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// Save uploads the file to the bucket under uploads/{timestamp}_{filename}
// and returns the object URL.
func (s *S3ImageStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("uploads/%d_%s", time.Now().Unix(), filepath.Base(fileHeader.Filename))

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
