package statement

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNoActions           = errors.New("statement has neither Action nor NotAction")
	ErrInvalidEffect       = errors.New("invalid Effect")
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrUnresolvedToken     = errors.New("unresolved ARN token")
	ErrUnknownAction       = errors.New("unknown action")
	ErrConflictingElements = errors.New("conflicting statement elements")
	ErrEmptyCondition      = errors.New("condition without values")
)

// wire is the IAM statement shape. Field order is the rendered key order.
type wire struct {
	Sid         string                           `json:",omitempty"`
	Effect      Effect                           `json:"Effect"`
	Principal   map[string][]string              `json:",omitempty"`
	Action      []string                         `json:",omitempty"`
	NotAction   []string                         `json:",omitempty"`
	Resource    []string                         `json:",omitempty"`
	NotResource []string                         `json:",omitempty"`
	Condition   map[Operator]map[string][]string `json:",omitempty"`
}

// Validate reports every problem with s. A statement with no actions, an
// invalid effect, an unknown resource type, a bad action pattern or a
// condition added without values is always an error. In strict mode unresolved ARN tokens, actions missing from the
// catalog and Action/NotAction or Resource/NotResource pairs that are both
// populated are errors too.
func (s *Statement) Validate() error {
	var result *multierror.Error
	result = multierror.Append(result, s.errs...)
	if len(s.actions) == 0 && len(s.notActions) == 0 {
		result = multierror.Append(result, ErrNoActions)
	}
	switch s.effect {
	case Allow, Deny, "":
	default:
		result = multierror.Append(result, fmt.Errorf("%w %q", ErrInvalidEffect, string(s.effect)))
	}
	if s.strict {
		result = multierror.Append(result, s.strictErrors()...)
	}
	return result.ErrorOrNil()
}

func (s *Statement) strictErrors() []error {
	var errs []error
	if len(s.actions) > 0 && len(s.notActions) > 0 {
		errs = append(errs, fmt.Errorf("%w: Action and NotAction", ErrConflictingElements))
	}
	if len(s.resources) > 0 && len(s.notResources) > 0 {
		errs = append(errs, fmt.Errorf("%w: Resource and NotResource", ErrConflictingElements))
	}
	for _, list := range [][]string{s.actions, s.notActions} {
		for _, action := range list {
			if err := s.checkAction(action); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, list := range [][]string{s.resources, s.notResources} {
		for _, arn := range list {
			for _, token := range UnresolvedTokens(arn) {
				errs = append(errs, fmt.Errorf("%w ${%s} in %s", ErrUnresolvedToken, token, arn))
			}
		}
	}
	return errs
}

func (s *Statement) checkAction(action string) error {
	prefix := s.service.Prefix + ":"
	name, ok := strings.CutPrefix(action, prefix)
	if !ok {
		return nil // other services' actions are not ours to check
	}
	if strings.Contains(name, "*") || s.service.HasAction(name) {
		return nil
	}
	return fmt.Errorf("%w %s", ErrUnknownAction, action)
}

// MarshalJSON renders s as an IAM policy statement. Action takes precedence
// over NotAction and Resource over NotResource. Resource is left out when no
// resource was ever added.
func (s *Statement) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := wire{
		Sid:       s.sid,
		Effect:    s.effect,
		Condition: s.conditions.block(),
	}
	if !s.principals.empty() {
		w.Principal = s.principals.values
	}
	if len(s.actions) > 0 {
		w.Action = s.actions
	} else {
		w.NotAction = s.notActions
	}
	if len(s.resources) > 0 {
		w.Resource = s.resources
	} else {
		w.NotResource = s.notResources
	}
	return json.Marshal(w)
}

// JSON returns s as indented JSON.
func (s *Statement) JSON() (string, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	return string(b), err
}
