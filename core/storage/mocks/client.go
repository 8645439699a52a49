package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
)

// Client is an in-memory storage.Client for tests.
type Client struct {
	mu      sync.Mutex
	objects map[string][]byte

	// PutErr / GetErr force the next call to fail when set.
	PutErr error
	GetErr error
}

// NewClient creates an empty in-memory storage client.
func NewClient() *Client {
	return &Client{objects: make(map[string][]byte)}
}

func (c *Client) key(bucket, object string) string {
	return bucket + "/" + object
}

func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return true, nil
}

func (c *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return nil
}

func (c *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if c.PutErr != nil {
		return minio.UploadInfo{}, c.PutErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	c.mu.Lock()
	c.objects[c.key(bucketName, objectName)] = data
	c.mu.Unlock()
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (c *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	c.mu.Lock()
	data, ok := c.objects[c.key(bucketName, objectName)]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	c.mu.Lock()
	delete(c.objects, c.key(bucketName, objectName))
	c.mu.Unlock()
	return nil
}
