package s3

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.trai.ch/zerr"
)

var ErrNoSuchKey = zerr.New("no such key")

// ObjectAPI is the part of the S3 API the client needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Client struct {
	client ObjectAPI
}

func NewClient(cfg aws.Config) *Client {
	return &Client{
		client: s3.NewFromConfig(cfg),
	}
}

func NewClientFromAPI(api ObjectAPI) *Client {
	return &Client{
		client: api,
	}
}

func (c *Client) PutFile(ctx context.Context, reader io.Reader, bucket, key string) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("application/json"),
	})
	return err
}

func (c *Client) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, zerr.With(zerr.Wrap(ErrNoSuchKey, key), "bucket", bucket)
		}
		return nil, err
	}
	defer func() {
		_ = out.Body.Close()
	}()
	return io.ReadAll(out.Body)
}
