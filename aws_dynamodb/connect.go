package aws_dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/sharedcode/dbconnect"
)

type Config struct {
	// "us-east-1"
	Region string
	// Optional, e.g. "http://127.0.0.1:8000" for DynamoDB Local. Empty uses AWS endpoint resolution.
	HostEndpointUrl string
	// Static credentials, used only when both are set. Otherwise the ambient
	// AWS credential chain (env, shared config, instance role) applies.
	AccessKeyID     string
	SecretAccessKey string
	// Defaults to "Users".
	TableName string
}

// ConfigFromTableConfig converts the module config into a connect Config.
func ConfigFromTableConfig(c dbconnect.TableConfig) Config {
	return Config{
		Region:          c.Region,
		HostEndpointUrl: c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		TableName:       c.TableName,
	}
}

// Connect returns a DynamoDB client for the configured region and endpoint.
func Connect(ctx context.Context, c Config) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, dbconnect.NewError(dbconnect.ConfigurationError, c.Region,
			fmt.Errorf("couldn't load AWS config, details: %w", err))
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.HostEndpointUrl != "" {
			o.BaseEndpoint = aws.String(c.HostEndpointUrl)
		}
	})
	return client, nil
}
