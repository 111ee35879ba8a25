package common

// StatementParams is everything the CLI knows about the statement to build
// and, for publish, where to put it.
type StatementParams struct {
	Service         string
	Sid             string
	Effect          string
	Actions         []string
	NotActions      []string
	AllActions      bool
	AccessLevels    []string
	Resources       []string
	ResourceArns    []string
	NotResourceArns []string
	Conditions      []string
	Partition       string
	Region          string
	Account         string
	ResolveAccount  bool
	Strict          bool

	PolicyName       string
	RoleName         string
	FunctionName     string
	ServicePrincipal string
}
