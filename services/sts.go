package services

import "github.com/a-pavithraa/iam-statements/statement"

const stsDocs = "https://docs.aws.amazon.com/STS/latest/APIReference/API_"

var StsService = statement.Service{
	Prefix: "sts",
	Actions: map[string]statement.Action{
		"AssumeRole": {
			URL:           stsDocs + "AssumeRole.html",
			Description:   "Grants permission to obtain a set of temporary security credentials that you can use to access AWS resources that you might not normally have access to",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"aws:PrincipalOrgID", "sts:ExternalId", "sts:RoleSessionName", "sts:SourceIdentity"},
		},
		"AssumeRoleWithSAML": {
			URL:           stsDocs + "AssumeRoleWithSAML.html",
			Description:   "Grants permission to obtain a set of temporary security credentials for users who have been authenticated via a SAML authentication response",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
		},
		"AssumeRoleWithWebIdentity": {
			URL:           stsDocs + "AssumeRoleWithWebIdentity.html",
			Description:   "Grants permission to obtain a set of temporary security credentials for users who have been authenticated in a mobile or web application with a web identity provider",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
		},
		"GetCallerIdentity": {
			URL:         stsDocs + "GetCallerIdentity.html",
			Description: "Grants permission to obtain details about the IAM identity whose credentials are used to call the API",
			AccessLevel: statement.Read,
		},
		"TagSession": {
			URL:           stsDocs + "TagSession.html",
			Description:   "Grants permission to add tags to a STS session",
			AccessLevel:   statement.Tagging,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys", "sts:TransitiveTagKeys"},
		},
	},
	Resources: map[string]statement.ResourceType{
		"role": {
			ARN: "arn:${Partition}:iam::${Account}:role/${RoleNameWithPath}",
		},
	},
}

type Sts struct {
	*statement.Statement
}

func NewSts(opts ...statement.Option) *Sts {
	return &Sts{statement.New(StsService, opts...)}
}

func (s *Sts) Sid(sid string) *Sts {
	s.Statement.Sid(sid)
	return s
}

func (s *Sts) Allow() *Sts {
	s.Statement.Allow()
	return s
}

func (s *Sts) Deny() *Sts {
	s.Statement.Deny()
	return s
}

func (s *Sts) ToAssumeRole() *Sts {
	s.AddAction("AssumeRole")
	return s
}

func (s *Sts) ToAssumeRoleWithSAML() *Sts {
	s.AddAction("AssumeRoleWithSAML")
	return s
}

func (s *Sts) ToAssumeRoleWithWebIdentity() *Sts {
	s.AddAction("AssumeRoleWithWebIdentity")
	return s
}

func (s *Sts) ToGetCallerIdentity() *Sts {
	s.AddAction("GetCallerIdentity")
	return s
}

func (s *Sts) ToTagSession() *Sts {
	s.AddAction("TagSession")
	return s
}

func (s *Sts) OnRole(roleNameWithPath string, opts ...statement.ARNOption) *Sts {
	s.On("role", []string{roleNameWithPath}, opts...)
	return s
}

// ForService names the service principal allowed to assume the role.
func (s *Sts) ForService(service string) *Sts {
	s.Statement.ForService(service)
	return s
}

func (s *Sts) IfExternalId(op statement.Operator, ids ...string) *Sts {
	s.AddCondition("ExternalId", op, ids...)
	return s
}

// AssumeRolePolicy is the trust policy statement letting service assume a
// role, such as lambda.amazonaws.com for a function's execution role.
func AssumeRolePolicy(service string, opts ...statement.Option) *Sts {
	return NewSts(opts...).ToAssumeRole().ForService(service)
}
