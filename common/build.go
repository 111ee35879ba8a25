package common

import (
	"github.com/a-pavithraa/iam-statements/services"
	"github.com/a-pavithraa/iam-statements/statement"
)

// Defaults is the ARN context the params ask for.
func (params StatementParams) Defaults() statement.Defaults {
	return statement.Defaults{
		Partition: params.Partition,
		Region:    params.Region,
		Account:   params.Account,
	}
}

// BuildStatement turns validated params into a statement for the
// registered service named by params.Service. Unregistered prefixes still
// work for actions and raw ARNs.
func BuildStatement(params StatementParams) (*statement.Statement, error) {
	if err := ValidateStatementParams(params, false); err != nil {
		return nil, err
	}
	svc, _ := services.Lookup(params.Service)

	opts := []statement.Option{statement.WithDefaults(params.Defaults())}
	if params.Strict {
		opts = append(opts, statement.WithStrict())
	}
	s := statement.New(svc, opts...)
	if params.Sid != "" {
		s.Sid(params.Sid)
	}
	if params.Effect == string(statement.Deny) {
		s.Deny()
	}

	if params.AllActions {
		s.AllActions()
	}
	for _, level := range params.AccessLevels {
		s.AllActionsWithAccessLevel(statement.AccessLevel(level))
	}
	for _, action := range params.Actions {
		s.AddAction(action)
	}
	for _, action := range params.NotActions {
		s.AddNotAction(action)
	}

	for _, flag := range params.Resources {
		resourceType, ids, err := ParseResource(flag)
		if err != nil {
			return nil, err
		}
		s.On(resourceType, ids)
	}
	for _, arn := range params.ResourceArns {
		s.AddResource(arn)
	}
	for _, arn := range params.NotResourceArns {
		s.AddNotResource(arn)
	}

	for _, flag := range params.Conditions {
		key, operator, values, err := ParseCondition(flag)
		if err != nil {
			return nil, err
		}
		s.AddCondition(key, statement.Operator(operator), values...)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
