package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStorage stores images in a Firebase/GCS bucket. Objects are written
// publicly readable and addressed through the storage.googleapis.com URL.
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStorage(ctx context.Context, credentialsFile, bucketName string) (*FirebaseStorage, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", bucketName, err)
	}

	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}, nil
}

func (s *FirebaseStorage) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %q: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set object ACL: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key), nil
}

func (s *FirebaseStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}
