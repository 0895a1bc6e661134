package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"strings"

	"Recipe-Box/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AwsS3 struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewAwsS3() (*AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := strings.TrimRight(utils.GetConfig("AWS_S3_ENDPOINT"), "/")
	if bucket == "" || region == "" {
		return nil, errors.New("AWS_S3_BUCKET and AWS_S3_REGION must be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &AwsS3{client: client, bucket: bucket, region: region, endpoint: endpoint}, nil
}

func (a *AwsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext, err := extensionOf(file, allowed)
	if err != nil {
		return "", err
	}
	key, err := objectKey(folder, fileName, ext)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}

	_, err = a.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (a *AwsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *AwsS3) baseURL() string {
	if a.endpoint != "" {
		return a.endpoint + "/" + a.bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", a.bucket, a.region)
}

func (a *AwsS3) GetPublicLinkKey(objectKey string) string {
	return a.baseURL() + "/" + objectKey
}

func (a *AwsS3) GetObjectKeyFromLink(link string) string {
	return linkToKey(a.baseURL(), link)
}
