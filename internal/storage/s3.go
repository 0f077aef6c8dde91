// Package storage archives uploaded import files to S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Archive struct {
	client *s3.Client
	bucket string
}

func NewS3Archive(region, bucket, accessKey, secretKey string) *S3Archive {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	})

	return &S3Archive{
		client: client,
		bucket: bucket,
	}
}

// Save stores the raw file under imports/<owner>/<kind>/<timestamp>-<name>
// and returns the object key.
func (a *S3Archive) Save(
	ctx context.Context,
	ownerID string,
	kind string,
	fileName string,
	raw []byte,
) (string, error) {

	if fileName == "" {
		fileName = "upload.csv"
	}

	key := fmt.Sprintf(
		"imports/%s/%s/%s-%s",
		ownerID,
		kind,
		time.Now().UTC().Format("20060102T150405"),
		fileName,
	)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
