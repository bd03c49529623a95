// Package sgntest provides shared test helpers: spinning up a localstack
// container for integration tests against elements/sqs, adapted from
// connectors/aws/util/test's SetupLocalstack (same container + endpoint
// resolution, renamed into this module's shared test-support package).
package sgntest

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
)

// SetupLocalstack starts a localstack container and returns an AWS config
// pointed at it, for use by build-tag-gated SQS integration tests.
func SetupLocalstack(ctx context.Context) (*aws.Config, testcontainers.Container, error) {
	container, err := localstack.Run(
		ctx,
		"localstack/localstack:3.7",
		testcontainers.WithEnv(map[string]string{}),
	)
	if err != nil {
		return nil, nil, err
	}

	mappedPort, err := container.MappedPort(ctx, nat.Port("4566/tcp"))
	if err != nil {
		return nil, nil, err
	}

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return nil, nil, err
	}
	defer provider.Close()

	host, err := provider.DaemonHost(ctx)
	if err != nil {
		return nil, nil, err
	}

	endpointURL := fmt.Sprintf("http://%s:%d", host, mappedPort.Int())

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithBaseEndpoint(endpointURL),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("112233445566", "112233445566", ""),
		),
		awsconfig.WithRegion("us-east-1"),
	)
	if err != nil {
		return nil, nil, err
	}

	return &awsCfg, container, nil
}
