package common

import (
	"fmt"
	"strings"
)

type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf(
		"Error in inputs: %s",
		e.Message)
}

func TrimAndCheckEmptyString(s *string) bool {
	*s = strings.TrimSpace(*s)
	return len(*s) == 0
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if !TrimAndCheckEmptyString(&item) {
			items = append(items, item)
		}
	}
	return items
}

// ParseCondition reads "key=v1,v2" or "key[Operator]=v1,v2". The operator
// is empty when left out.
func ParseCondition(flag string) (key, operator string, values []string, err error) {
	key, rest, ok := strings.Cut(flag, "=")
	if !ok || TrimAndCheckEmptyString(&key) {
		return "", "", nil, &InputError{Message: fmt.Sprintf("condition %q is not key=values", flag)}
	}
	if open := strings.Index(key, "["); open >= 0 {
		if !strings.HasSuffix(key, "]") {
			return "", "", nil, &InputError{Message: fmt.Sprintf("condition %q has an unterminated operator", flag)}
		}
		operator = key[open+1 : len(key)-1]
		key = key[:open]
	}
	values = SplitList(rest)
	if len(values) == 0 {
		return "", "", nil, &InputError{Message: fmt.Sprintf("condition %q has no values", flag)}
	}
	return key, operator, values, nil
}

// ParseResource reads "type=id1,id2", the ids filling the type's ARN
// template in order.
func ParseResource(flag string) (resourceType string, ids []string, err error) {
	resourceType, rest, ok := strings.Cut(flag, "=")
	if !ok || TrimAndCheckEmptyString(&resourceType) {
		return "", nil, &InputError{Message: fmt.Sprintf("resource %q is not type=ids", flag)}
	}
	return resourceType, SplitList(rest), nil
}

func ValidateStatementParams(params StatementParams, publish bool) error {
	var errorMessage strings.Builder
	if TrimAndCheckEmptyString(&params.Service) {
		errorMessage.WriteString("Service prefix cannot be null.\n")
	}
	if len(params.Actions) == 0 && len(params.NotActions) == 0 && !params.AllActions && len(params.AccessLevels) == 0 {
		errorMessage.WriteString("At least one action, not_action, access_level or all_actions must be given.\n")
	}
	switch params.Effect {
	case "", "Allow", "Deny":
	default:
		errorMessage.WriteString("Effect must be Allow or Deny.\n")
	}
	if publish {
		if TrimAndCheckEmptyString(&params.PolicyName) {
			errorMessage.WriteString("Policy name must be specified.\n")
		}
		if !TrimAndCheckEmptyString(&params.RoleName) && !TrimAndCheckEmptyString(&params.FunctionName) {
			errorMessage.WriteString("Only one of role name and function name can be specified.\n")
		}
		if !TrimAndCheckEmptyString(&params.ServicePrincipal) && TrimAndCheckEmptyString(&params.RoleName) {
			errorMessage.WriteString("Service principal needs a role name to create.\n")
		}
	}

	if len(errorMessage.String()) > 0 {
		return &InputError{
			Message: errorMessage.String(),
		}

	}
	return nil
}
