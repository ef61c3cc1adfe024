package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atlantispak/packplan/internal/domain"
)

// S3Sink implements Sink against an S3 object. A PutObject fully
// replaces the prior object, which satisfies the sink contract's
// atomic-replace requirement at object granularity.
type S3Sink struct {
	Client *s3.Client
	Bucket string
	Key    string
}

// ParseS3URL splits "s3://bucket/key" into its parts.
func ParseS3URL(url string) (bucket, key string, err error) {
	rest, found := strings.CutPrefix(url, "s3://")
	if !found {
		return "", "", fmt.Errorf("sink: not an s3 URL: %s", url)
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("sink: s3 URL must be s3://bucket/key, got %s", url)
	}
	return parts[0], parts[1], nil
}

// NewS3Sink builds an S3Sink for url using the default AWS credential
// chain.
func NewS3Sink(ctx context.Context, url string) (*S3Sink, error) {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return nil, err
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("sink: failed to load AWS config: %w", err)
	}
	return &S3Sink{Client: s3.NewFromConfig(cfg), Bucket: bucket, Key: key}, nil
}

func (s *S3Sink) Replace(ctx context.Context, result domain.OptimizationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: failed to marshal result: %w", err)
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("sink: failed to put schedule object: %w", err)
	}
	return nil
}
