// Package services holds static service descriptors and typed builders on
// top of the statement package. Each builder embeds *statement.Statement, so
// the generic builder methods stay available after the typed ones.
package services

import (
	"sort"

	"github.com/a-pavithraa/iam-statements/statement"
)

var registry = map[string]statement.Service{
	LogsService.Prefix:   LogsService,
	LambdaService.Prefix: LambdaService,
	DrsService.Prefix:    DrsService,
	StsService.Prefix:    StsService,
	IamService.Prefix:    IamService,
}

// Lookup returns the descriptor registered for prefix. Unknown prefixes get
// an empty descriptor, which accepts any action name but has no resource
// types.
func Lookup(prefix string) (statement.Service, bool) {
	svc, ok := registry[prefix]
	if !ok {
		return statement.Service{Prefix: prefix}, false
	}
	return svc, true
}

// Prefixes returns every registered prefix in lexical order.
func Prefixes() []string {
	prefixes := make([]string, 0, len(registry))
	for prefix := range registry {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// ResourceTypes returns the sorted resource type names of svc.
func ResourceTypes(svc statement.Service) []string {
	names := make([]string, 0, len(svc.Resources))
	for name := range svc.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
