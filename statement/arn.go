package statement

import "regexp"

const (
	PartitionToken = "Partition"
	RegionToken    = "Region"
	AccountToken   = "Account"

	DefaultPartition = "aws"
)

var tokenPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Defaults is the ARN context used when a caller leaves out the partition,
// region or account of a resource. Empty fields fall through to the
// resource type's Convention ("aws" for the partition).
type Defaults struct {
	Partition string
	Region    string
	Account   string
}

// ARNOption sets the value of one template token.
type ARNOption func(values map[string]string)

// WithToken fills the token ${name}.
func WithToken(name, value string) ARNOption {
	return func(values map[string]string) {
		values[name] = value
	}
}

func InAccount(account string) ARNOption { return WithToken(AccountToken, account) }

func InRegion(region string) ARNOption { return WithToken(RegionToken, region) }

func InPartition(partition string) ARNOption { return WithToken(PartitionToken, partition) }

// Tokens returns the distinct token names in template, in order of first
// appearance.
func Tokens(template string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// IdentifierTokens is Tokens without Partition, Region and Account.
func IdentifierTokens(template string) []string {
	var names []string
	for _, name := range Tokens(template) {
		if !isAmbient(name) {
			names = append(names, name)
		}
	}
	return names
}

func isAmbient(name string) bool {
	return name == PartitionToken || name == RegionToken || name == AccountToken
}

// ResolveARN substitutes every token of template. Explicit values win, then
// defaults, then the convention. An identifier token with no value is left
// in the result untouched.
func ResolveARN(template string, values map[string]string, defaults Defaults, convention Convention) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[2 : len(token)-1]
		if v, ok := values[name]; ok {
			return v
		}
		switch name {
		case PartitionToken:
			if defaults.Partition != "" {
				return defaults.Partition
			}
			return DefaultPartition
		case RegionToken:
			if defaults.Region != "" {
				return defaults.Region
			}
			return convention.fill()
		case AccountToken:
			if defaults.Account != "" {
				return defaults.Account
			}
			return convention.fill()
		}
		return token
	})
}

// UnresolvedTokens lists the tokens still present in arn.
func UnresolvedTokens(arn string) []string {
	return Tokens(arn)
}

// Resolve fills rt's template. ids fill the identifier tokens positionally;
// opts are applied afterwards and so win over ids.
func (rt ResourceType) Resolve(defaults Defaults, ids []string, opts ...ARNOption) string {
	values := map[string]string{}
	for i, name := range IdentifierTokens(rt.ARN) {
		if i >= len(ids) {
			break
		}
		values[name] = ids[i]
	}
	for _, opt := range opts {
		opt(values)
	}
	return ResolveARN(rt.ARN, values, defaults, rt.Convention)
}
