package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
)

// ErrStorageDisabled 对象存储未配置
var ErrStorageDisabled = errors.New("object storage is not configured; set storage credentials to enable uploads")

// UploadCredentials 预签名上传凭证
type UploadCredentials struct {
	UploadURL string `json:"uploadUrl"` // 供客户端直传的 PUT 地址
	Key       string `json:"key"`
	FileURL   string `json:"fileUrl"` // 上传完成后的公开访问地址
}

// Presigner 生成 S3 兼容存储的预签名上传凭证
// 未配置凭证时进入 disabled 模式，请求方收到 ErrStorageDisabled
type Presigner struct {
	cfg      *config.StorageConfig
	presign  *s3.PresignClient
	disabled bool
}

// NewPresigner 创建 Presigner 实例
func NewPresigner(ctx context.Context, cfg *config.StorageConfig) (*Presigner, error) {
	p := &Presigner{cfg: cfg}

	bucket := strings.TrimSpace(cfg.Bucket)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || accessKey == "" || secretKey == "" {
		log.Println("⚠️  对象存储未配置，上传接口将不可用")
		p.disabled = true
		return p, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:           cfg.Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("加载对象存储配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	p.presign = s3.NewPresignClient(client)
	return p, nil
}

// Enabled 对象存储是否可用
func (p *Presigner) Enabled() bool {
	return !p.disabled
}

// PresignUpload 为指定文件名与类型签发一次性上传凭证
func (p *Presigner) PresignUpload(ctx context.Context, filename, contentType string) (*UploadCredentials, error) {
	if p.disabled {
		return nil, ErrStorageDisabled
	}

	key := p.buildObjectKey(filename)
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.cfg.PresignTTL))
	if err != nil {
		return nil, fmt.Errorf("签发上传凭证失败: %w", err)
	}

	return &UploadCredentials{
		UploadURL: req.URL,
		Key:       key,
		FileURL:   p.resolvePublicURL(key),
	}, nil
}

// buildObjectKey 生成对象键：前缀加随机十六进制名，保留原扩展名
func (p *Presigner) buildObjectKey(filename string) string {
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	ext := strings.ToLower(path.Ext(filename))
	prefix := p.cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + name + ext
}

// resolvePublicURL 推导上传完成后的公开访问地址
// 配置了公开基址时拼接基址，否则回落到端点加桶名的路径式地址
func (p *Presigner) resolvePublicURL(key string) string {
	if p.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(p.cfg.PublicBaseURL, "/") + "/" + key
	}
	endpoint := strings.TrimSuffix(p.cfg.Endpoint, "/")
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
	}
	return endpoint + "/" + p.cfg.Bucket + "/" + key
}
