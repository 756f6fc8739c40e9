package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func testS3Config() S3Config {
	return S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Prefix:          "recordings/",
		Endpoint:        "http://localhost:4566", // LocalStack-like endpoint
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}
}

func TestNewS3Store(t *testing.T) {
	store, err := NewS3Store(context.Background(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	if store.bucket != "test-bucket" {
		t.Errorf("bucket = %v, want test-bucket", store.bucket)
	}
	if store.region != "us-east-1" {
		t.Errorf("region = %v, want us-east-1", store.region)
	}
	if store.prefix != "recordings/" {
		t.Errorf("prefix = %v, want recordings/", store.prefix)
	}
}

func TestS3Store_ObjectURL(t *testing.T) {
	store, err := NewS3Store(context.Background(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	got := store.objectURL("recordings/a.mp3")
	want := "https://test-bucket.s3.us-east-1.amazonaws.com/recordings/a.mp3"
	if got != want {
		t.Errorf("objectURL = %q, want %q", got, want)
	}
}

// fakeS3API is an in-memory stand-in for the S3 client surface.
type fakeS3API struct {
	objects map[string]struct{}
	deleted []string
}

func (f *fakeS3API) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return &s3.ListObjectsV2Output{}, nil
}

func (f *fakeS3API) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.objects[aws.ToString(in.Key)] = struct{}{}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3API) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3API) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(in.Key)
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

// DeleteObject itself succeeds for keys that never existed, so the store
// must detect the missing object and report ErrObjectNotFound, matching
// the in-memory implementation.
func TestS3Store_Delete(t *testing.T) {
	api := &fakeS3API{objects: map[string]struct{}{"recordings/a.mp3": {}}}
	store := &S3Store{client: api, bucket: "test-bucket", region: "us-east-1", prefix: "recordings/"}

	if err := store.Delete(context.Background(), "a.mp3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "recordings/a.mp3" {
		t.Errorf("deleted keys = %v, want [recordings/a.mp3]", api.deleted)
	}

	err := store.Delete(context.Background(), "a.mp3")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
	if len(api.deleted) != 1 {
		t.Errorf("DeleteObject must not be called for a missing key, deleted = %v", api.deleted)
	}
}

// Upload must fail with a distinguishable error when the local file is
// gone at call time, before any network I/O happens.
func TestS3Store_Upload_MissingLocalFile(t *testing.T) {
	store, err := NewS3Store(context.Background(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	_, err = store.Upload(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"), "gone.mp3")
	if !errors.Is(err, ErrLocalFileMissing) {
		t.Errorf("expected ErrLocalFileMissing, got %v", err)
	}
}
