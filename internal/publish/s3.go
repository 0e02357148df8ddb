package publish

import (
	"bytes"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Filesystem uploads to a single S3 bucket.
type S3Filesystem struct {
	svc    *s3.S3
	bucket string
}

// NewSession opens an AWS session for region using the default credential
// chain (environment, shared credentials file, instance role).
func NewSession(region string) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
}

// NewS3Filesystem returns a Filesystem writing to bucket.
func NewS3Filesystem(sess *session.Session, bucket string) (*S3Filesystem, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &S3Filesystem{svc: s3.New(sess), bucket: bucket}, nil
}

// S3 guesses poorly for game data files.
var s3ContentTypes = map[string]string{
	".esm":      "application/octet-stream",
	".esp":      "application/octet-stream",
	".omwgame":  "application/octet-stream",
	".omwaddon": "application/octet-stream",
	".json":     "application/json",
}

// UploadFile implements Filesystem.
func (f *S3Filesystem) UploadFile(key string, secondsCache int, data []byte) error {
	var contentType *string
	if mime, ok := s3ContentTypes[path.Ext(key)]; ok {
		contentType = aws.String(mime)
	}

	req, _ := f.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(f.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	return req.Send()
}
