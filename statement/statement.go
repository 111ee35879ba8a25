// Package statement builds single AWS IAM policy statements.
//
// A Statement is bound to one Service descriptor, accumulates actions,
// resources, principals and conditions through chained method calls, and
// renders itself as one element of a policy document's Statement array.
// Statements are plain values: build one per policy statement, serialize it
// and throw it away. They are not safe for concurrent mutation.
package statement

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

type Effect string

const (
	Allow Effect = "Allow" // default, thanks to MarshalJSON
	Deny  Effect = "Deny"
)

func (e Effect) MarshalJSON() ([]byte, error) {
	switch e {
	case Allow, Deny:
	case "":
		e = Allow
	default:
		return nil, fmt.Errorf("%w %#v", ErrInvalidEffect, string(e))
	}
	return []byte(fmt.Sprintf("%q", string(e))), nil
}

// Option configures a Statement at construction.
type Option func(*Statement)

// WithDefaults sets the partition, region and account used for ARNs whose
// caller leaves them out.
func WithDefaults(d Defaults) Option {
	return func(s *Statement) { s.defaults = d }
}

// WithStrict turns the checks described on Validate into serialization
// errors.
func WithStrict() Option {
	return func(s *Statement) { s.strict = true }
}

func WithSid(sid string) Option {
	return func(s *Statement) { s.sid = sid }
}

type Statement struct {
	service  Service
	defaults Defaults
	strict   bool

	sid          string
	effect       Effect
	actions      []string
	notActions   []string
	resources    []string
	notResources []string
	principals   principals
	conditions   conditions

	errs []error
}

// New returns an empty Allow statement for svc.
func New(svc Service, opts ...Option) *Statement {
	s := &Statement{service: svc, effect: Allow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Statement) Service() Service { return s.service }

func (s *Statement) Defaults() Defaults { return s.defaults }

func (s *Statement) Sid(sid string) *Statement {
	s.sid = sid
	return s
}

func (s *Statement) Allow() *Statement {
	s.effect = Allow
	return s
}

func (s *Statement) Deny() *Statement {
	s.effect = Deny
	return s
}

func (s *Statement) Effect() Effect { return s.effect }

func (s *Statement) Actions() []string { return slices.Clone(s.actions) }

func (s *Statement) NotActions() []string { return slices.Clone(s.notActions) }

func (s *Statement) Resources() []string { return slices.Clone(s.resources) }

func (s *Statement) NotResources() []string { return slices.Clone(s.notResources) }

func (s *Statement) qualify(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return s.service.Prefix + ":" + name
}

// AddAction adds "<prefix>:<name>" to Action. A name that already contains
// a colon is used as is.
func (s *Statement) AddAction(name string) *Statement {
	s.actions = appendUnique(s.actions, s.qualify(name))
	return s
}

func (s *Statement) AddNotAction(name string) *Statement {
	s.notActions = appendUnique(s.notActions, s.qualify(name))
	return s
}

// AllActions adds "<prefix>:*".
func (s *Statement) AllActions() *Statement {
	return s.AddAction("*")
}

// AllActionsWithAccessLevel adds every catalog action of the given levels.
func (s *Statement) AllActionsWithAccessLevel(levels ...AccessLevel) *Statement {
	for _, name := range s.service.ActionsWithAccessLevel(levels...) {
		s.AddAction(name)
	}
	return s
}

// AllMatchingActions adds every catalog action whose name matches pattern.
func (s *Statement) AllMatchingActions(pattern string) *Statement {
	re, err := regexp.Compile(pattern)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("action pattern %q: %w", pattern, err))
		return s
	}
	for _, name := range s.service.MatchingActions(re) {
		s.AddAction(name)
	}
	return s
}

// AddResource adds a resolved ARN, or "*", to Resource.
func (s *Statement) AddResource(arn string) *Statement {
	s.resources = appendUnique(s.resources, arn)
	return s
}

func (s *Statement) AddNotResource(arn string) *Statement {
	s.notResources = appendUnique(s.notResources, arn)
	return s
}

func (s *Statement) OnAllResources() *Statement {
	return s.AddResource("*")
}

// On resolves the ARN template of resourceType and adds it to Resource.
// ids fill the template's identifier tokens in order.
func (s *Statement) On(resourceType string, ids []string, opts ...ARNOption) *Statement {
	arn, ok := s.resolve(resourceType, ids, opts)
	if ok {
		s.AddResource(arn)
	}
	return s
}

// NotOn is On for NotResource.
func (s *Statement) NotOn(resourceType string, ids []string, opts ...ARNOption) *Statement {
	arn, ok := s.resolve(resourceType, ids, opts)
	if ok {
		s.AddNotResource(arn)
	}
	return s
}

func (s *Statement) resolve(resourceType string, ids []string, opts []ARNOption) (string, bool) {
	rt, ok := s.service.Resources[resourceType]
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%w %q for service %q", ErrUnknownResourceType, resourceType, s.service.Prefix))
		return "", false
	}
	return rt.Resolve(s.defaults, ids, opts...), true
}
