package statement

import "fmt"

const (
	awsPrincipal       = "AWS"
	servicePrincipal   = "Service"
	federatedPrincipal = "Federated"
)

type principals struct {
	kinds  []string
	values map[string][]string
}

func (p *principals) add(kind, value string) {
	if p.values == nil {
		p.values = map[string][]string{}
	}
	if _, ok := p.values[kind]; !ok {
		p.kinds = append(p.kinds, kind)
	}
	p.values[kind] = appendUnique(p.values[kind], value)
}

func (p *principals) empty() bool { return len(p.kinds) == 0 }

// ForAccount names a whole account as principal.
func (s *Statement) ForAccount(account string) *Statement {
	s.principals.add(awsPrincipal, fmt.Sprintf("arn:%s:iam::%s:root", s.partition(), account))
	return s
}

// ForARN names a user, role or other IAM identity by ARN.
func (s *Statement) ForARN(arn string) *Statement {
	s.principals.add(awsPrincipal, arn)
	return s
}

// ForService names an AWS service principal such as lambda.amazonaws.com.
func (s *Statement) ForService(service string) *Statement {
	s.principals.add(servicePrincipal, service)
	return s
}

func (s *Statement) ForFederated(provider string) *Statement {
	s.principals.add(federatedPrincipal, provider)
	return s
}

// ForPublic grants to everyone.
func (s *Statement) ForPublic() *Statement {
	s.principals.add(awsPrincipal, "*")
	return s
}

func (s *Statement) partition() string {
	if s.defaults.Partition != "" {
		return s.defaults.Partition
	}
	return DefaultPartition
}
