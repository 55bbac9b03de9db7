// Package awsenv resolves the cross-region runtime environment of a
// refresh run: the worker's own region, the client region it reports to,
// the data bucket, and the OpenSearch domain host. Everything is resolved
// once, fail-fast, and handed downstream as an explicit Env value.
package awsenv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/raphaelgruber/daskindex/internal/config"
)

// MetadataClient is the subset of the IMDS client used here.
type MetadataClient interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// ParameterClient is the subset of the SSM client used here.
type ParameterClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Env is the resolved environment a refresh run operates in.
type Env struct {
	// LocalRegion is the region this worker runs in.
	LocalRegion string
	// ClientRegion is the region hosting the OpenSearch domain.
	ClientRegion string
	// Bucket is the data bucket; it also names the index and project.
	Bucket string
	// Host is the OpenSearch domain endpoint (no scheme, no port).
	Host string
}

// Resolver resolves an Env from instance metadata and the parameter store.
// The client constructors are injectable for tests.
type Resolver struct {
	cfg    config.Config
	logger *slog.Logger

	metadata           MetadataClient
	newParameterClient func(ctx context.Context, region string) (ParameterClient, error)
	loadClientConfig   func(ctx context.Context, region string) (aws.Config, error)
}

// NewResolver creates a Resolver wired to the real IMDS and SSM clients.
func NewResolver(cfg config.Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:      cfg,
		logger:   logger,
		metadata: imds.New(imds.Options{}),
		newParameterClient: func(ctx context.Context, region string) (ParameterClient, error) {
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
			if err != nil {
				return nil, fmt.Errorf("load aws config for %s: %w", region, err)
			}
			return ssm.NewFromConfig(awsCfg), nil
		},
		loadClientConfig: func(ctx context.Context, region string) (aws.Config, error) {
			return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		},
	}
}

// Resolve performs the full lookup chain. Any failure aborts the run; the
// returned aws.Config is bound to the client region and carries the
// ambient credential chain used to sign OpenSearch requests.
func (r *Resolver) Resolve(ctx context.Context) (Env, aws.Config, error) {
	localRegion := r.cfg.Region
	if localRegion == "" {
		out, err := r.metadata.GetRegion(ctx, &imds.GetRegionInput{})
		if err != nil {
			return Env{}, aws.Config{}, fmt.Errorf("resolve local region from instance metadata: %w", err)
		}
		localRegion = out.Region
	}
	r.logger.Debug("resolved local region", "region", localRegion)

	workerSSM, err := r.newParameterClient(ctx, localRegion)
	if err != nil {
		return Env{}, aws.Config{}, err
	}

	clientRegion, err := getParameter(ctx, workerSSM, fmt.Sprintf(r.cfg.ClientRegionParam, localRegion))
	if err != nil {
		return Env{}, aws.Config{}, err
	}
	bucket, err := getParameter(ctx, workerSSM, fmt.Sprintf(r.cfg.DataBucketParam, localRegion))
	if err != nil {
		return Env{}, aws.Config{}, err
	}

	clientSSM, err := r.newParameterClient(ctx, clientRegion)
	if err != nil {
		return Env{}, aws.Config{}, err
	}
	host, err := getParameter(ctx, clientSSM, fmt.Sprintf(r.cfg.DomainParam, clientRegion))
	if err != nil {
		return Env{}, aws.Config{}, err
	}

	awsCfg, err := r.loadClientConfig(ctx, clientRegion)
	if err != nil {
		return Env{}, aws.Config{}, fmt.Errorf("load aws config for %s: %w", clientRegion, err)
	}

	env := Env{
		LocalRegion:  localRegion,
		ClientRegion: clientRegion,
		Bucket:       bucket,
		Host:         host,
	}
	r.logger.Info("resolved environment",
		"local_region", env.LocalRegion,
		"client_region", env.ClientRegion,
		"bucket", env.Bucket,
		"host", env.Host,
	)

	return env, awsCfg, nil
}

func getParameter(ctx context.Context, client ParameterClient, name string) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %q: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}
