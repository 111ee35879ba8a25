package services

import "github.com/a-pavithraa/iam-statements/statement"

const iamDocs = "https://docs.aws.amazon.com/IAM/latest/APIReference/API_"

var IamService = statement.Service{
	Prefix: "iam",
	Actions: map[string]statement.Action{
		"AttachRolePolicy": {
			URL:           iamDocs + "AttachRolePolicy.html",
			Description:   "Grants permission to attach a managed policy to the specified IAM role",
			AccessLevel:   statement.PermissionsManagement,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"iam:PermissionsBoundary", "iam:PolicyARN"},
		},
		"CreatePolicy": {
			URL:           iamDocs + "CreatePolicy.html",
			Description:   "Grants permission to create a new managed policy",
			AccessLevel:   statement.PermissionsManagement,
			ResourceTypes: []string{"policy"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys"},
		},
		"CreateRole": {
			URL:           iamDocs + "CreateRole.html",
			Description:   "Grants permission to create a new role",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys", "iam:PermissionsBoundary"},
		},
		"DeleteRole": {
			URL:           iamDocs + "DeleteRole.html",
			Description:   "Grants permission to delete the specified role",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
		},
		"DetachRolePolicy": {
			URL:           iamDocs + "DetachRolePolicy.html",
			Description:   "Grants permission to detach a managed policy from the specified role",
			AccessLevel:   statement.PermissionsManagement,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"iam:PermissionsBoundary", "iam:PolicyARN"},
		},
		"GetRole": {
			URL:           iamDocs + "GetRole.html",
			Description:   "Grants permission to retrieve information about the specified role",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"role"},
		},
		"ListAttachedRolePolicies": {
			URL:           iamDocs + "ListAttachedRolePolicies.html",
			Description:   "Grants permission to list all managed policies that are attached to the specified IAM role",
			AccessLevel:   statement.List,
			ResourceTypes: []string{"role"},
		},
		"ListRoles": {
			URL:         iamDocs + "ListRoles.html",
			Description: "Grants permission to list the IAM roles that have the specified path prefix",
			AccessLevel: statement.List,
		},
		"PassRole": {
			URL:           "https://docs.aws.amazon.com/IAM/latest/UserGuide/id_roles_use_passrole.html",
			Description:   "Grants permission to pass a role to a service",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"iam:AssociatedResourceArn", "iam:PassedToService"},
		},
		"TagRole": {
			URL:           iamDocs + "TagRole.html",
			Description:   "Grants permission to add tags to an IAM role",
			AccessLevel:   statement.Tagging,
			ResourceTypes: []string{"role"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys"},
		},
	},
	Resources: map[string]statement.ResourceType{
		"policy": {
			ARN: "arn:${Partition}:iam::${Account}:policy/${PolicyNameWithPath}",
		},
		"role": {
			ARN:           "arn:${Partition}:iam::${Account}:role/${RoleNameWithPath}",
			ConditionKeys: []string{"aws:ResourceTag/${TagKey}", "iam:ResourceTag/${TagKey}"},
		},
		"user": {
			ARN: "arn:${Partition}:iam::${Account}:user/${UserNameWithPath}",
		},
	},
}

type Iam struct {
	*statement.Statement
}

func NewIam(opts ...statement.Option) *Iam {
	return &Iam{statement.New(IamService, opts...)}
}

func (i *Iam) Sid(sid string) *Iam {
	i.Statement.Sid(sid)
	return i
}

func (i *Iam) Allow() *Iam {
	i.Statement.Allow()
	return i
}

func (i *Iam) Deny() *Iam {
	i.Statement.Deny()
	return i
}

func (i *Iam) ToAttachRolePolicy() *Iam {
	i.AddAction("AttachRolePolicy")
	return i
}

func (i *Iam) ToCreatePolicy() *Iam {
	i.AddAction("CreatePolicy")
	return i
}

func (i *Iam) ToCreateRole() *Iam {
	i.AddAction("CreateRole")
	return i
}

func (i *Iam) ToDeleteRole() *Iam {
	i.AddAction("DeleteRole")
	return i
}

func (i *Iam) ToDetachRolePolicy() *Iam {
	i.AddAction("DetachRolePolicy")
	return i
}

func (i *Iam) ToGetRole() *Iam {
	i.AddAction("GetRole")
	return i
}

func (i *Iam) ToListAttachedRolePolicies() *Iam {
	i.AddAction("ListAttachedRolePolicies")
	return i
}

func (i *Iam) ToListRoles() *Iam {
	i.AddAction("ListRoles")
	return i
}

func (i *Iam) ToPassRole() *Iam {
	i.AddAction("PassRole")
	return i
}

func (i *Iam) ToTagRole() *Iam {
	i.AddAction("TagRole")
	return i
}

func (i *Iam) OnPolicy(policyNameWithPath string, opts ...statement.ARNOption) *Iam {
	i.On("policy", []string{policyNameWithPath}, opts...)
	return i
}

func (i *Iam) OnRole(roleNameWithPath string, opts ...statement.ARNOption) *Iam {
	i.On("role", []string{roleNameWithPath}, opts...)
	return i
}

func (i *Iam) OnUser(userNameWithPath string, opts ...statement.ARNOption) *Iam {
	i.On("user", []string{userNameWithPath}, opts...)
	return i
}

// IfPassedToService filters PassRole by the service receiving the role.
func (i *Iam) IfPassedToService(op statement.Operator, services ...string) *Iam {
	i.AddCondition("PassedToService", op, services...)
	return i
}

// IfPolicyARN defaults to ArnLike rather than StringLike.
func (i *Iam) IfPolicyARN(op statement.Operator, arns ...string) *Iam {
	if op == "" {
		op = statement.ArnLike
	}
	i.AddCondition("PolicyARN", op, arns...)
	return i
}
