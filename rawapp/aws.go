package rawapp

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/trace"
)

const awsConfigTimeout = 10 * time.Second

// NewAWSConfig loads the default AWS SDK v2 configuration for the region in AWS_REGION
// (or the SDK's own resolution when unset). The config is instrumented so that S3 page
// reads show up as child spans of the request.
func NewAWSConfig(ctx context.Context, env Environment, tp trace.TracerProvider) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, awsConfigTimeout)
	defer cancel()

	var opts []func(*awsconfig.LoadOptions) error
	if region := env.awsRegion(); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to load aws config")
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions, otelaws.WithTracerProvider(tp))

	return cfg, nil
}
