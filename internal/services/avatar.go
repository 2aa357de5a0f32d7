package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// AvatarService issues pre-signed S3 uploads for profile pictures
type AvatarService struct {
	users    userStore
	s3Client *s3.Client
	bucket   string
	region   string
}

// NewAvatarService creates a new avatar service
func NewAvatarService(users userStore, region, bucket, accessKey, secretKey, endpoint string) (*AvatarService, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarService{
		users:    users,
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
	}, nil
}

// UploadResponse carries the pre-signed URL for an avatar upload
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUpload generates a pre-signed PUT URL and records the resulting
// avatar URL on the user.
func (s *AvatarService) PresignUpload(ctx context.Context, userID, contentType string) (*UploadResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, ErrNotFound
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", userID, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 5 * time.Minute
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	avatarURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if err := s.users.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to save avatar url: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		AvatarURL: avatarURL,
		ExpiresIn: 300,
	}, nil
}
