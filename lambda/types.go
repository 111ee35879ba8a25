package lambda

import (
	"context"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// FunctionApi is the part of the Lambda client the wrapper uses.
type FunctionApi interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
}

type ServiceWrapper struct {
	Client FunctionApi
	Logger *slog.Logger
}

// ExecutionRole identifies the IAM role a function runs as.
type ExecutionRole struct {
	Arn  string
	Name string
}

func (wrapper ServiceWrapper) logger() *slog.Logger {
	if wrapper.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return wrapper.Logger
}
