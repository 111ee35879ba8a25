package sts

import (
	"context"
	"fmt"

	"github.com/a-pavithraa/iam-statements/statement"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IdentityApi is the part of the STS client the wrapper uses.
type IdentityApi interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type ServiceWrapper struct {
	Client IdentityApi
	Region string
}

func Client(ctx context.Context, region string) (*sts.Client, string, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, "", fmt.Errorf("unable to load SDK config: %w", err)
	}
	return sts.NewFromConfig(cfg), cfg.Region, nil
}

// Defaults fills the blanks of d with the caller's partition and account
// and the wrapper's region.
func (wrapper ServiceWrapper) Defaults(ctx context.Context, d statement.Defaults) (statement.Defaults, error) {
	result, err := wrapper.Client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return d, fmt.Errorf("failed to get caller identity: %w", err)
	}
	if d.Account == "" {
		d.Account = aws.ToString(result.Account)
	}
	if d.Partition == "" {
		if parsed, err := arn.Parse(aws.ToString(result.Arn)); err == nil {
			d.Partition = parsed.Partition
		}
	}
	if d.Region == "" {
		d.Region = wrapper.Region
	}
	return d, nil
}
