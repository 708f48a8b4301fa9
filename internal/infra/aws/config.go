package aws

import (
	"context"
	"fmt"

	"forecast-api/pkg/resource"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Settings holds the cloud.* properties
type Settings struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// SettingsFromProperties reads the app.cloud.* properties
func SettingsFromProperties() Settings {
	return Settings{
		Region:          resource.GetString("app.cloud.aws-region"),
		Endpoint:        resource.GetString("app.cloud.aws-endpoint"),
		AccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
		SecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
	}
}

// LoadConfig builds the SDK config. Static credentials are used when both keys are set,
// otherwise the default credential chain (environment, shared files, IAM roles) applies.
func LoadConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}

	if settings.AccessKeyID != "" && settings.SecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}
