// utils/storage.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var storageClient *s3.Client
var storageBucket string
var publicBaseURL string

// InitStorage configures the S3-compatible bucket used for card media and
// profile photos. Returns an error when the required env vars are absent,
// in which case uploads stay disabled and everything else keeps working.
func InitStorage() error {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	accessKeyID := os.Getenv("STORAGE_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("STORAGE_ACCESS_KEY_SECRET")
	storageBucket = os.Getenv("STORAGE_BUCKET")
	if endpoint == "" || accessKeyID == "" || accessKeySecret == "" || storageBucket == "" {
		return fmt.Errorf("storage env vars not set (STORAGE_ENDPOINT, STORAGE_ACCESS_KEY_ID, STORAGE_ACCESS_KEY_SECRET, STORAGE_BUCKET)")
	}

	publicBaseURL = os.Getenv("STORAGE_PUBLIC_URL")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), storageBucket)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}

	storageClient = s3.NewFromConfig(cfg)
	return nil
}

// StorageEnabled reports whether InitStorage succeeded.
func StorageEnabled() bool { return storageClient != nil }

// ObjectKey builds a collision-safe key like "cartas/dragao-do-mar-1a2b3c.png".
func ObjectKey(prefix, name, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%s-%s%s", prefix, slug.Make(name), uuid.NewString()[:8], ext)
}

// UploadFile sends a multipart file to the bucket and returns its public URL.
func UploadFile(fileHeader *multipart.FileHeader, key string) (string, error) {
	if storageClient == nil {
		return "", Internal("armazenamento de arquivos não configurado")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = storageClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to storage: %w", err)
	}

	return fmt.Sprintf("%s/%s", publicBaseURL, key), nil
}
