package initializers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

// StorageConfig holds the receipt object-storage settings. MinIO keeps the
// receipt file bodies; Postgres only holds their metadata.
type StorageConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	MaxSize          int64
	FileTypes        []string
	Expiry           time.Duration
	ExternalEndpoint string
}

var (
	StorageClient *minio.Client

	// externalClient signs presigned URLs against the endpoint browsers can
	// actually reach; falls back to StorageClient when none is configured.
	externalClient *minio.Client

	Storage StorageConfig
)

// uploadPolicyYAML optionally overrides the env-derived upload limits.
type uploadPolicyYAML struct {
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"`
	PresignedURLExpiry int      `yaml:"presigned_url_expiry"` // seconds
}

func loadUploadPolicy() (*uploadPolicyYAML, error) {
	path := os.Getenv("UPLOADS_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadPolicyYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitStorage connects to MinIO and makes sure the receipts bucket exists.
func InitStorage() error {
	Storage = StorageConfig{
		Endpoint:         os.Getenv("MINIO_ENDPOINT"),
		AccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		Bucket:           envOrDefault("MINIO_BUCKET", "receipts"),
		UseSSL:           strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true"),
		MaxSize:          parseInt64(os.Getenv("MAX_FILE_SIZE"), 10485760),
		FileTypes:        parseFileTypes(os.Getenv("ALLOWED_FILE_TYPES")),
		Expiry:           parseExpiry(os.Getenv("PRESIGNED_URL_EXPIRY")),
		ExternalEndpoint: strings.TrimSpace(os.Getenv("MINIO_EXTERNAL_ENDPOINT")),
	}

	if policy, err := loadUploadPolicy(); err == nil && policy != nil {
		if policy.MaxFileSize > 0 {
			Storage.MaxSize = policy.MaxFileSize
		}
		if len(policy.AllowedFileTypes) > 0 {
			Storage.FileTypes = policy.AllowedFileTypes
		}
		if policy.PresignedURLExpiry > 0 {
			Storage.Expiry = time.Duration(policy.PresignedURLExpiry) * time.Second
		}
	}

	client, err := minio.New(Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(Storage.AccessKey, Storage.SecretKey, ""),
		Secure: Storage.UseSSL,
	})
	if err != nil {
		return err
	}
	StorageClient = client

	exists, err := client.BucketExists(context.Background(), Storage.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), Storage.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	externalClient = StorageClient
	ext := strings.TrimPrefix(strings.TrimPrefix(Storage.ExternalEndpoint, "https://"), "http://")
	if ext != "" && ext != Storage.Endpoint {
		external, err := minio.New(ext, &minio.Options{
			Creds:  credentials.NewStaticV4(Storage.AccessKey, Storage.SecretKey, ""),
			Secure: strings.HasPrefix(Storage.ExternalEndpoint, "https://"),
		})
		if err != nil {
			return err
		}
		externalClient = external
	}

	log.Println("Receipt storage ready, bucket:", Storage.Bucket)
	return nil
}

// CheckFileAllowed enforces the size and MIME-type policy for receipt uploads.
func CheckFileAllowed(size int64, mime string) error {
	if size > Storage.MaxSize {
		return fmt.Errorf("file size exceeds the limit")
	}
	incoming := baseMIME(mime)
	for _, t := range Storage.FileTypes {
		if baseMIME(t) == incoming {
			return nil
		}
	}
	return fmt.Errorf("file type is not allowed")
}

// GenerateReceiptURL returns a presigned GET URL for the stored receipt,
// served inline under its original (sanitized) file name.
func GenerateReceiptURL(id, fileName string) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("inline; filename=%q", sanitizeFilename(fileName)))
	presigned, err := externalClient.PresignedGetObject(context.Background(), Storage.Bucket, id, Storage.Expiry, params)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned url: %v", err)
	}
	return presigned.String(), nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFileTypes(val string) []string {
	if val == "" {
		return []string{"image/jpeg", "image/png", "application/pdf"}
	}
	return strings.Split(val, ",")
}

func parseExpiry(val string) time.Duration {
	if val == "" {
		return time.Hour
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return time.Hour
	}
	return time.Duration(v) * time.Second
}

func baseMIME(mime string) string {
	parts := strings.Split(mime, ";")
	return strings.TrimSpace(parts[0])
}

func sanitizeFilename(name string) string {
	cleaned := strings.NewReplacer("\"", "", "\\", "", "/", "", "..", "").Replace(name)
	b := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if r < 32 || r == 127 {
			continue
		}
		b = append(b, r)
	}
	s := strings.Join(strings.Fields(string(b)), " ")
	if s == "" {
		s = "file"
	}
	return s
}
