package iam

import (
	"context"
	"errors"
	"fmt"

	"github.com/a-pavithraa/iam-statements/policy"
	"github.com/a-pavithraa/iam-statements/services"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

func Client(ctx context.Context, region string) (*iam.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return iam.NewFromConfig(cfg), nil
}

// CheckRoleExists returns the role's ARN, or nil when there is no such role.
func (wrapper ServiceWrapper) CheckRoleExists(ctx context.Context, roleName string) (*string, error) {
	result, err := wrapper.Client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err != nil {
		var notFound *types.NoSuchEntityException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	wrapper.logger().Debug("found role", "role", roleName, "arn", aws.ToString(result.Role.Arn))
	return result.Role.Arn, nil
}

// CreatePolicy creates a managed policy from doc.
func (wrapper ServiceWrapper) CreatePolicy(ctx context.Context, doc *policy.Document, policyName string) (*types.Policy, error) {
	policyDocument, err := doc.JSON()
	if err != nil {
		return nil, fmt.Errorf("couldn't render policy %v: %w", policyName, err)
	}
	result, err := wrapper.Client.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyDocument: aws.String(policyDocument),
		PolicyName:     aws.String(policyName),
	})
	if err != nil {
		var exists *types.EntityAlreadyExistsException
		if errors.As(err, &exists) {
			return nil, fmt.Errorf("policy %v already exists: %w", policyName, err)
		}
		return nil, fmt.Errorf("couldn't create policy %v: %w", policyName, err)
	}
	wrapper.logger().Info("created policy", "policy", policyName, "arn", aws.ToString(result.Policy.Arn))
	return result.Policy, nil
}

func (wrapper ServiceWrapper) AttachRolePolicy(ctx context.Context, policyArn string, roleName string) error {
	_, err := wrapper.Client.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		PolicyArn: aws.String(policyArn),
		RoleName:  aws.String(roleName),
	})
	if err != nil {
		return fmt.Errorf("couldn't attach policy %v to role %v: %w", policyArn, roleName, err)
	}
	wrapper.logger().Info("attached policy", "policy_arn", policyArn, "role", roleName)
	return nil
}

// NewRole creates roleName with trustPolicy as its assume role policy.
func (wrapper ServiceWrapper) NewRole(ctx context.Context, roleName string, trustPolicy *policy.Document) (*types.Role, error) {
	policyDocument, err := trustPolicy.JSON()
	if err != nil {
		return nil, fmt.Errorf("couldn't render trust policy for %v: %w", roleName, err)
	}
	result, err := wrapper.Client.CreateRole(ctx, &iam.CreateRoleInput{
		AssumeRolePolicyDocument: aws.String(policyDocument),
		RoleName:                 aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't create role %v: %w", roleName, err)
	}
	wrapper.logger().Info("created role", "role", roleName)
	return result.Role, nil
}

func (wrapper ServiceWrapper) ListAttachedRolePolicies(ctx context.Context, roleName string) ([]types.AttachedPolicy, error) {
	result, err := wrapper.Client.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't list attached policies for role %v: %w", roleName, err)
	}
	return result.AttachedPolicies, nil
}

// DeleteRole detaches every managed policy from roleName, then deletes it.
func (wrapper ServiceWrapper) DeleteRole(ctx context.Context, roleName string) error {
	policies, err := wrapper.ListAttachedRolePolicies(ctx, roleName)
	if err != nil {
		return err
	}
	for _, attached := range policies {
		if _, err := wrapper.Client.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
			PolicyArn: attached.PolicyArn,
			RoleName:  aws.String(roleName),
		}); err != nil {
			return fmt.Errorf("couldn't detach policy %v from role %v: %w", aws.ToString(attached.PolicyArn), roleName, err)
		}
	}
	if _, err := wrapper.Client.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(roleName)}); err != nil {
		return fmt.Errorf("couldn't delete role %v: %w", roleName, err)
	}
	wrapper.logger().Info("deleted role", "role", roleName)
	return nil
}

// Publish creates doc as the managed policy policyName and attaches it to
// roleName. It returns the new policy's ARN.
func (wrapper ServiceWrapper) Publish(ctx context.Context, doc *policy.Document, policyName string, roleName string) (*string, error) {
	created, err := wrapper.CreatePolicy(ctx, doc, policyName)
	if err != nil {
		return nil, err
	}
	if roleName == "" {
		return created.Arn, nil
	}
	if err := wrapper.AttachRolePolicy(ctx, aws.ToString(created.Arn), roleName); err != nil {
		return nil, err
	}
	return created.Arn, nil
}

// EnsureRole returns the ARN of roleName, creating it first with a trust
// policy for servicePrincipal if it does not exist.
func (wrapper ServiceWrapper) EnsureRole(ctx context.Context, roleName string, servicePrincipal string) (*string, error) {
	roleArn, err := wrapper.CheckRoleExists(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if roleArn != nil {
		return roleArn, nil
	}
	trustPolicy := policy.New(services.AssumeRolePolicy(servicePrincipal).Statement)
	role, err := wrapper.NewRole(ctx, roleName, trustPolicy)
	if err != nil {
		return nil, err
	}
	return role.Arn, nil
}
