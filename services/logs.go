package services

import "github.com/a-pavithraa/iam-statements/statement"

const logsDocs = "https://docs.aws.amazon.com/AmazonCloudWatchLogs/latest/APIReference/API_"

// LogsService describes Amazon CloudWatch Logs.
var LogsService = statement.Service{
	Prefix: "logs",
	Actions: map[string]statement.Action{
		"AssociateKmsKey": {
			URL:           logsDocs + "AssociateKmsKey.html",
			Description:   "Grants permission to associate the specified AWS KMS key with the specified log group",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-group"},
		},
		"CreateLogGroup": {
			URL:           logsDocs + "CreateLogGroup.html",
			Description:   "Grants permission to create a log group with the specified name",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-group"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys"},
		},
		"CreateLogStream": {
			URL:           logsDocs + "CreateLogStream.html",
			Description:   "Grants permission to create a log stream for the specified log group",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-group"},
		},
		"DeleteLogGroup": {
			URL:           logsDocs + "DeleteLogGroup.html",
			Description:   "Grants permission to delete the specified log group and permanently delete all the archived log events associated with the log group",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-group"},
		},
		"DescribeLogGroups": {
			URL:         logsDocs + "DescribeLogGroups.html",
			Description: "Grants permission to return all the log groups that are associated with the AWS account making the request",
			AccessLevel: statement.List,
		},
		"DescribeLogStreams": {
			URL:           logsDocs + "DescribeLogStreams.html",
			Description:   "Grants permission to list the log streams for the specified log group",
			AccessLevel:   statement.List,
			ResourceTypes: []string{"log-group"},
		},
		"GetLogEvents": {
			URL:           logsDocs + "GetLogEvents.html",
			Description:   "Grants permission to retrieve log events from the specified log stream",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"log-stream"},
		},
		"PutLogEvents": {
			URL:           logsDocs + "PutLogEvents.html",
			Description:   "Grants permission to upload a batch of log events to the specified log stream",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-stream"},
		},
		"PutRetentionPolicy": {
			URL:           logsDocs + "PutRetentionPolicy.html",
			Description:   "Grants permission to set the retention of the specified log group",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"log-group"},
		},
		"TagResource": {
			URL:           logsDocs + "TagResource.html",
			Description:   "Grants permission to assign one or more tags (key-value pairs) to the specified CloudWatch Logs resource",
			AccessLevel:   statement.Tagging,
			ResourceTypes: []string{"log-group"},
			ConditionKeys: []string{"aws:RequestTag/${TagKey}", "aws:TagKeys"},
		},
	},
	Resources: map[string]statement.ResourceType{
		"log-group": {
			ARN:           "arn:${Partition}:logs:${Region}:${Account}:log-group:${LogGroupName}",
			ConditionKeys: []string{"aws:ResourceTag/${TagKey}"},
		},
		"log-stream": {
			ARN: "arn:${Partition}:logs:${Region}:${Account}:log-group:${LogGroupName}:log-stream:${LogStreamName}",
		},
	},
}

// Logs builds statements for CloudWatch Logs. Missing regions and accounts
// in its ARNs become "*".
type Logs struct {
	*statement.Statement
}

func NewLogs(opts ...statement.Option) *Logs {
	return &Logs{statement.New(LogsService, opts...)}
}

func (l *Logs) Sid(sid string) *Logs {
	l.Statement.Sid(sid)
	return l
}

func (l *Logs) Allow() *Logs {
	l.Statement.Allow()
	return l
}

func (l *Logs) Deny() *Logs {
	l.Statement.Deny()
	return l
}

func (l *Logs) ToAssociateKmsKey() *Logs {
	l.AddAction("AssociateKmsKey")
	return l
}

func (l *Logs) ToCreateLogGroup() *Logs {
	l.AddAction("CreateLogGroup")
	return l
}

func (l *Logs) ToCreateLogStream() *Logs {
	l.AddAction("CreateLogStream")
	return l
}

func (l *Logs) ToDeleteLogGroup() *Logs {
	l.AddAction("DeleteLogGroup")
	return l
}

func (l *Logs) ToDescribeLogGroups() *Logs {
	l.AddAction("DescribeLogGroups")
	return l
}

func (l *Logs) ToDescribeLogStreams() *Logs {
	l.AddAction("DescribeLogStreams")
	return l
}

func (l *Logs) ToGetLogEvents() *Logs {
	l.AddAction("GetLogEvents")
	return l
}

func (l *Logs) ToPutLogEvents() *Logs {
	l.AddAction("PutLogEvents")
	return l
}

func (l *Logs) ToPutRetentionPolicy() *Logs {
	l.AddAction("PutRetentionPolicy")
	return l
}

func (l *Logs) ToTagResource() *Logs {
	l.AddAction("TagResource")
	return l
}

func (l *Logs) OnLogGroup(logGroupName string, opts ...statement.ARNOption) *Logs {
	l.On("log-group", []string{logGroupName}, opts...)
	return l
}

func (l *Logs) OnLogStream(logGroupName, logStreamName string, opts ...statement.ARNOption) *Logs {
	l.On("log-stream", []string{logGroupName, logStreamName}, opts...)
	return l
}
