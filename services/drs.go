package services

import "github.com/a-pavithraa/iam-statements/statement"

const drsDocs = "https://docs.aws.amazon.com/drs/latest/APIReference/API_"

// DrsService describes AWS Elastic Disaster Recovery. Its resource types use
// the empty convention: an ARN built without a region or account leaves
// those fields empty.
var DrsService = statement.Service{
	Prefix: "drs",
	Actions: map[string]statement.Action{
		"CreateReplicationConfigurationTemplate": {
			URL:           drsDocs + "CreateReplicationConfigurationTemplate.html",
			Description:   "Grants permission to create replication configuration template",
			AccessLevel:   statement.Write,
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys", "drs:CreateAction"},
		},
		"DeleteSourceServer": {
			URL:           drsDocs + "DeleteSourceServer.html",
			Description:   "Grants permission to delete source server",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"SourceServerResource"},
		},
		"DescribeJobs": {
			URL:         drsDocs + "DescribeJobs.html",
			Description: "Grants permission to describe jobs",
			AccessLevel: statement.Read,
		},
		"DescribeSourceServers": {
			URL:         drsDocs + "DescribeSourceServers.html",
			Description: "Grants permission to describe source servers",
			AccessLevel: statement.Read,
		},
		"ListTagsForResource": {
			URL:           drsDocs + "ListTagsForResource.html",
			Description:   "Grants permission to list tags for a resource",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"JobResource", "RecoveryInstanceResource", "SourceServerResource"},
		},
		"StartRecovery": {
			URL:           drsDocs + "StartRecovery.html",
			Description:   "Grants permission to start recovery",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"SourceServerResource"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys", "drs:CreateAction"},
		},
		"TagResource": {
			URL:           drsDocs + "TagResource.html",
			Description:   "Grants permission to assign a resource tag",
			AccessLevel:   statement.Tagging,
			ResourceTypes: []string{"JobResource", "RecoveryInstanceResource", "SourceServerResource"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys", "drs:CreateAction"},
		},
		"TerminateRecoveryInstances": {
			URL:           drsDocs + "TerminateRecoveryInstances.html",
			Description:   "Grants permission to terminate recovery instances",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"RecoveryInstanceResource"},
		},
	},
	Resources: map[string]statement.ResourceType{
		"JobResource": {
			ARN:        "arn:${Partition}:drs:${Region}:${Account}:job/${JobID}",
			Convention: statement.EmptyConvention,
		},
		"RecoveryInstanceResource": {
			ARN:        "arn:${Partition}:drs:${Region}:${Account}:recovery-instance/${RecoveryInstanceID}",
			Convention: statement.EmptyConvention,
		},
		"SourceServerResource": {
			ARN:        "arn:${Partition}:drs:${Region}:${Account}:source-server/${SourceServerID}",
			Convention: statement.EmptyConvention,
		},
	},
}

type Drs struct {
	*statement.Statement
}

func NewDrs(opts ...statement.Option) *Drs {
	return &Drs{statement.New(DrsService, opts...)}
}

func (d *Drs) Sid(sid string) *Drs {
	d.Statement.Sid(sid)
	return d
}

func (d *Drs) Allow() *Drs {
	d.Statement.Allow()
	return d
}

func (d *Drs) Deny() *Drs {
	d.Statement.Deny()
	return d
}

func (d *Drs) ToCreateReplicationConfigurationTemplate() *Drs {
	d.AddAction("CreateReplicationConfigurationTemplate")
	return d
}

func (d *Drs) ToDeleteSourceServer() *Drs {
	d.AddAction("DeleteSourceServer")
	return d
}

func (d *Drs) ToDescribeJobs() *Drs {
	d.AddAction("DescribeJobs")
	return d
}

func (d *Drs) ToDescribeSourceServers() *Drs {
	d.AddAction("DescribeSourceServers")
	return d
}

func (d *Drs) ToListTagsForResource() *Drs {
	d.AddAction("ListTagsForResource")
	return d
}

func (d *Drs) ToStartRecovery() *Drs {
	d.AddAction("StartRecovery")
	return d
}

func (d *Drs) ToTagResource() *Drs {
	d.AddAction("TagResource")
	return d
}

func (d *Drs) ToTerminateRecoveryInstances() *Drs {
	d.AddAction("TerminateRecoveryInstances")
	return d
}

func (d *Drs) OnJobResource(jobID string, opts ...statement.ARNOption) *Drs {
	d.On("JobResource", []string{jobID}, opts...)
	return d
}

func (d *Drs) OnRecoveryInstanceResource(recoveryInstanceID string, opts ...statement.ARNOption) *Drs {
	d.On("RecoveryInstanceResource", []string{recoveryInstanceID}, opts...)
	return d
}

func (d *Drs) OnSourceServerResource(sourceServerID string, opts ...statement.ARNOption) *Drs {
	d.On("SourceServerResource", []string{sourceServerID}, opts...)
	return d
}

// IfCreateAction filters by the name of the action creating the resource.
func (d *Drs) IfCreateAction(op statement.Operator, actions ...string) *Drs {
	d.AddCondition("CreateAction", op, actions...)
	return d
}

// IfCreatedResourceTag filters by a tag on resources created by the
// request. Each tag key is its own condition key.
func (d *Drs) IfCreatedResourceTag(tagKey string, op statement.Operator, values ...string) *Drs {
	d.AddCondition("CreatedResourceTag/"+tagKey, op, values...)
	return d
}
