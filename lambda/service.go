package lambda

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-pavithraa/iam-statements/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
)

func Client(ctx context.Context, region string) (*lambda.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return lambda.NewFromConfig(cfg), nil
}

// GetFunctionDetails returns nil, without error, when there is no such
// function.
func (wrapper ServiceWrapper) GetFunctionDetails(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	resp, err := wrapper.Client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: &name,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.(type) {
			case *types.ResourceNotFoundException:
				return nil, nil
			}
			wrapper.logger().Error("GetFunction failed", "function", name, "code", apiErr.ErrorCode())
		}
		return nil, err
	}
	return resp, nil
}

// ExecutionRole looks up the role a function runs as, so a policy can be
// attached to it.
func (wrapper ServiceWrapper) ExecutionRole(ctx context.Context, functionName string) (*ExecutionRole, error) {
	functionDetails, err := wrapper.GetFunctionDetails(ctx, functionName)
	if err != nil {
		return nil, err
	}
	if functionDetails == nil || functionDetails.Configuration == nil {
		return nil, &common.InputError{Message: fmt.Sprintf("function %s does not exist", functionName)}
	}
	roleArn := aws.ToString(functionDetails.Configuration.Role)
	roleName, err := RoleName(roleArn)
	if err != nil {
		return nil, err
	}
	wrapper.logger().Debug("resolved execution role", "function", functionName, "role", roleName)
	return &ExecutionRole{Arn: roleArn, Name: roleName}, nil
}

// RoleName extracts the bare role name, without its path, from a role ARN.
func RoleName(roleArn string) (string, error) {
	parsed, err := arn.Parse(roleArn)
	if err != nil {
		return "", fmt.Errorf("invalid role ARN %q: %w", roleArn, err)
	}
	if parsed.Service != "iam" || !strings.HasPrefix(parsed.Resource, "role/") {
		return "", fmt.Errorf("%q is not an IAM role ARN", roleArn)
	}
	return parsed.Resource[strings.LastIndex(parsed.Resource, "/")+1:], nil
}
