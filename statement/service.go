package statement

import (
	"regexp"
	"sort"
)

// AccessLevel classifies what an action does. It is documentation only and
// never enforced.
type AccessLevel string

const (
	List                  AccessLevel = "List"
	Read                  AccessLevel = "Read"
	Write                 AccessLevel = "Write"
	Tagging               AccessLevel = "Tagging"
	PermissionsManagement AccessLevel = "Permissions management"
)

// Convention is the value an ARN template gets for ${Region} and ${Account}
// when neither the caller nor the Defaults supply one.
type Convention int

const (
	// WildcardConvention fills missing region and account with "*".
	WildcardConvention Convention = iota
	// EmptyConvention leaves missing region and account empty, which IAM
	// reads as "all" for services whose ARNs allow it.
	EmptyConvention
)

func (c Convention) fill() string {
	if c == EmptyConvention {
		return ""
	}
	return "*"
}

type Action struct {
	URL           string
	Description   string
	AccessLevel   AccessLevel
	ResourceTypes []string
	ConditionKeys []string
}

type ResourceType struct {
	ARN           string
	Convention    Convention
	ConditionKeys []string
}

// Service describes one AWS service: its action prefix, its action catalog
// and the ARN templates of its resource types.
type Service struct {
	Prefix    string
	Actions   map[string]Action
	Resources map[string]ResourceType
}

// ActionNames returns the catalog's action names in lexical order.
func (svc Service) ActionNames() []string {
	names := make([]string, 0, len(svc.Actions))
	for name := range svc.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActionsWithAccessLevel returns the sorted names of every action tagged
// with one of levels.
func (svc Service) ActionsWithAccessLevel(levels ...AccessLevel) []string {
	var names []string
	for _, name := range svc.ActionNames() {
		for _, level := range levels {
			if svc.Actions[name].AccessLevel == level {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// MatchingActions returns the sorted names of every action matching re.
func (svc Service) MatchingActions(re *regexp.Regexp) []string {
	var names []string
	for _, name := range svc.ActionNames() {
		if re.MatchString(name) {
			names = append(names, name)
		}
	}
	return names
}

// HasAction reports whether name is in the catalog. An empty catalog knows
// nothing and so accepts everything.
func (svc Service) HasAction(name string) bool {
	if len(svc.Actions) == 0 {
		return true
	}
	_, ok := svc.Actions[name]
	return ok
}
