package services

import "github.com/a-pavithraa/iam-statements/statement"

const lambdaDocs = "https://docs.aws.amazon.com/lambda/latest/api/API_"

var LambdaService = statement.Service{
	Prefix: "lambda",
	Actions: map[string]statement.Action{
		"AddPermission": {
			URL:           lambdaDocs + "AddPermission.html",
			Description:   "Grants permission to give an AWS service or another account permission to use an AWS Lambda function",
			AccessLevel:   statement.PermissionsManagement,
			ResourceTypes: []string{"function"},
			ConditionKeys: []string{"lambda:Principal", "lambda:FunctionUrlAuthType"},
		},
		"CreateFunction": {
			URL:           lambdaDocs + "CreateFunction.html",
			Description:   "Grants permission to create an AWS Lambda function",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"function"},
			ConditionKeys: []string{"lambda:Layer", "lambda:VpcIds", "lambda:SubnetIds", "lambda:SecurityGroupIds"},
		},
		"DeleteFunction": {
			URL:           lambdaDocs + "DeleteFunction.html",
			Description:   "Grants permission to delete an AWS Lambda function",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"function"},
		},
		"GetFunction": {
			URL:           lambdaDocs + "GetFunction.html",
			Description:   "Grants permission to view details about an AWS Lambda function",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"function"},
		},
		"GetFunctionConfiguration": {
			URL:           lambdaDocs + "GetFunctionConfiguration.html",
			Description:   "Grants permission to view details about the version-specific settings of an AWS Lambda function or version",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"function"},
		},
		"InvokeFunction": {
			URL:           lambdaDocs + "Invoke.html",
			Description:   "Grants permission to invoke an AWS Lambda function",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"function"},
		},
		"ListFunctions": {
			URL:         lambdaDocs + "ListFunctions.html",
			Description: "Grants permission to retrieve a list of AWS Lambda functions, with the version-specific configuration of each function",
			AccessLevel: statement.List,
		},
		"ListTags": {
			URL:           lambdaDocs + "ListTags.html",
			Description:   "Grants permission to retrieve a list of tags for an AWS Lambda function",
			AccessLevel:   statement.Read,
			ResourceTypes: []string{"function"},
		},
		"RemovePermission": {
			URL:           lambdaDocs + "RemovePermission.html",
			Description:   "Grants permission to revoke function-use permission from an AWS service or another account",
			AccessLevel:   statement.PermissionsManagement,
			ResourceTypes: []string{"function"},
			ConditionKeys: []string{"lambda:Principal", "lambda:FunctionUrlAuthType"},
		},
		"TagResource": {
			URL:           lambdaDocs + "TagResources.html",
			Description:   "Grants permission to add tags to an AWS Lambda function",
			AccessLevel:   statement.Tagging,
			ResourceTypes: []string{"function"},
		},
		"UpdateFunctionCode": {
			URL:           lambdaDocs + "UpdateFunctionCode.html",
			Description:   "Grants permission to update the code of an AWS Lambda function",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"function"},
		},
		"UpdateFunctionConfiguration": {
			URL:           lambdaDocs + "UpdateFunctionConfiguration.html",
			Description:   "Grants permission to modify the version-specific settings of an AWS Lambda function",
			AccessLevel:   statement.Write,
			ResourceTypes: []string{"function"},
			ConditionKeys: []string{"lambda:Layer", "lambda:VpcIds", "lambda:SubnetIds", "lambda:SecurityGroupIds"},
		},
	},
	Resources: map[string]statement.ResourceType{
		"function": {
			ARN:           "arn:${Partition}:lambda:${Region}:${Account}:function:${FunctionName}",
			ConditionKeys: []string{"aws:ResourceTag/${TagKey}"},
		},
		"function alias": {
			ARN: "arn:${Partition}:lambda:${Region}:${Account}:function:${FunctionName}:${Alias}",
		},
		"layer": {
			ARN: "arn:${Partition}:lambda:${Region}:${Account}:layer:${LayerName}",
		},
	},
}

// Lambda builds statements for AWS Lambda. Missing regions and accounts in
// its ARNs become "*".
type Lambda struct {
	*statement.Statement
}

func NewLambda(opts ...statement.Option) *Lambda {
	return &Lambda{statement.New(LambdaService, opts...)}
}

func (l *Lambda) Sid(sid string) *Lambda {
	l.Statement.Sid(sid)
	return l
}

func (l *Lambda) Allow() *Lambda {
	l.Statement.Allow()
	return l
}

func (l *Lambda) Deny() *Lambda {
	l.Statement.Deny()
	return l
}

func (l *Lambda) ToAddPermission() *Lambda {
	l.AddAction("AddPermission")
	return l
}

func (l *Lambda) ToCreateFunction() *Lambda {
	l.AddAction("CreateFunction")
	return l
}

func (l *Lambda) ToDeleteFunction() *Lambda {
	l.AddAction("DeleteFunction")
	return l
}

func (l *Lambda) ToGetFunction() *Lambda {
	l.AddAction("GetFunction")
	return l
}

func (l *Lambda) ToGetFunctionConfiguration() *Lambda {
	l.AddAction("GetFunctionConfiguration")
	return l
}

func (l *Lambda) ToInvokeFunction() *Lambda {
	l.AddAction("InvokeFunction")
	return l
}

func (l *Lambda) ToListFunctions() *Lambda {
	l.AddAction("ListFunctions")
	return l
}

func (l *Lambda) ToListTags() *Lambda {
	l.AddAction("ListTags")
	return l
}

func (l *Lambda) ToRemovePermission() *Lambda {
	l.AddAction("RemovePermission")
	return l
}

func (l *Lambda) ToTagResource() *Lambda {
	l.AddAction("TagResource")
	return l
}

func (l *Lambda) ToUpdateFunctionCode() *Lambda {
	l.AddAction("UpdateFunctionCode")
	return l
}

func (l *Lambda) ToUpdateFunctionConfiguration() *Lambda {
	l.AddAction("UpdateFunctionConfiguration")
	return l
}

func (l *Lambda) OnFunction(functionName string, opts ...statement.ARNOption) *Lambda {
	l.On("function", []string{functionName}, opts...)
	return l
}

func (l *Lambda) OnFunctionAlias(functionName, alias string, opts ...statement.ARNOption) *Lambda {
	l.On("function alias", []string{functionName, alias}, opts...)
	return l
}

func (l *Lambda) OnLayer(layerName string, opts ...statement.ARNOption) *Lambda {
	l.On("layer", []string{layerName}, opts...)
	return l
}

// IfPrincipal filters AddPermission and RemovePermission by the principal
// being granted.
func (l *Lambda) IfPrincipal(op statement.Operator, principals ...string) *Lambda {
	l.AddCondition("Principal", op, principals...)
	return l
}

func (l *Lambda) IfFunctionUrlAuthType(op statement.Operator, authTypes ...string) *Lambda {
	l.AddCondition("FunctionUrlAuthType", op, authTypes...)
	return l
}
