package supabase

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

// Bucket layout: originals and the clean generated images are private;
// only the watermarked previews are public-read.
const (
	BucketOriginals   = "originals"
	BucketGenerated   = "generated"
	BucketWatermarked = "watermarked"
)

type StorageClient struct {
	client  *storage.Client
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey string) (*StorageClient, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// Upload stores an object without upsert; every path is write-once.
func (s *StorageClient) Upload(bucket, path string, data []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

func (s *StorageClient) Download(bucket, path string) ([]byte, error) {
	data, err := s.client.DownloadFile(bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return data, nil
}

// PublicURL builds the public object URL. Only meaningful for public-read
// buckets (the watermarked previews).
func (s *StorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

// SignedURL returns a time-limited URL for objects in private buckets.
func (s *StorageClient) SignedURL(bucket, path string, expiresInSeconds int) (string, error) {
	resp, err := s.client.CreateSignedUrl(bucket, path, expiresInSeconds)
	if err != nil {
		return "", fmt.Errorf("failed to create signed url: %w", err)
	}
	return resp.SignedURL, nil
}
