package statement

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testService = Service{
	Prefix: "svc",
	Actions: map[string]Action{
		"DeleteThing":   {AccessLevel: Write},
		"DescribeThing": {AccessLevel: List},
		"GetThing":      {AccessLevel: Read},
		"PutThing":      {AccessLevel: Write},
		"TagThing":      {AccessLevel: Tagging},
	},
	Resources: map[string]ResourceType{
		"type": {
			ARN: "arn:${Partition}:svc:${Region}:${Account}:type/${Id}",
		},
		"empty": {
			ARN:        "arn:${Partition}:svc:${Region}:${Account}:type/${Id}",
			Convention: EmptyConvention,
		},
		"nested": {
			ARN: "arn:${Partition}:svc:${Region}:${Account}:parent/${ParentId}/child/${ChildId}",
		},
	},
}

func decode(t *testing.T, s *Statement) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestAddActionIdempotent(t *testing.T) {
	s := New(testService).AddAction("GetThing").AddAction("GetThing").AddAction("PutThing")
	assert.Equal(t, []string{"svc:GetThing", "svc:PutThing"}, s.Actions())

	s.AddNotAction("DeleteThing").AddNotAction("DeleteThing")
	assert.Equal(t, []string{"svc:DeleteThing"}, s.NotActions())
}

func TestAddActionQualified(t *testing.T) {
	s := New(testService).AddAction("ec2:DescribeVpcs").AllActions()
	assert.Equal(t, []string{"ec2:DescribeVpcs", "svc:*"}, s.Actions())
}

func TestAllActionsWithAccessLevel(t *testing.T) {
	s := New(testService).AllActionsWithAccessLevel(Read, List)
	assert.Equal(t, []string{"svc:DescribeThing", "svc:GetThing"}, s.Actions())

	s = New(testService).AllActionsWithAccessLevel(Write)
	assert.Equal(t, []string{"svc:DeleteThing", "svc:PutThing"}, s.Actions())
}

func TestAllMatchingActions(t *testing.T) {
	s := New(testService).AllMatchingActions("^(Get|Put)")
	assert.Equal(t, []string{"svc:GetThing", "svc:PutThing"}, s.Actions())

	s = New(testService).AllMatchingActions("(").AddAction("GetThing")
	assert.Error(t, s.Validate())
}

func TestResolveARN(t *testing.T) {
	const template = "arn:${Partition}:svc:${Region}:${Account}:type/${Id}"
	tests := []struct {
		name       string
		values     map[string]string
		defaults   Defaults
		convention Convention
		want       string
	}{
		{"wildcard", map[string]string{"Id": "x"}, Defaults{}, WildcardConvention, "arn:aws:svc:*:*:type/x"},
		{"empty", map[string]string{"Id": "x"}, Defaults{}, EmptyConvention, "arn:aws:svc:::type/x"},
		{"defaults", map[string]string{"Id": "x"}, Defaults{Partition: "aws-cn", Region: "cn-north-1", Account: "111122223333"}, WildcardConvention, "arn:aws-cn:svc:cn-north-1:111122223333:type/x"},
		{"explicit wins", map[string]string{"Id": "x", "Region": "us-east-1", "Account": ""}, Defaults{Region: "eu-west-1", Account: "111122223333"}, WildcardConvention, "arn:aws:svc:us-east-1::type/x"},
		{"unresolved", nil, Defaults{}, WildcardConvention, "arn:aws:svc:*:*:type/${Id}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveARN(template, tt.values, tt.defaults, tt.convention))
		})
	}
}

func TestTokens(t *testing.T) {
	template := testService.Resources["nested"].ARN
	assert.Equal(t, []string{"Partition", "Region", "Account", "ParentId", "ChildId"}, Tokens(template))
	assert.Equal(t, []string{"ParentId", "ChildId"}, IdentifierTokens(template))
}

func TestOn(t *testing.T) {
	s := New(testService, WithDefaults(Defaults{Account: "123456789012"})).
		AddAction("GetThing").
		On("type", []string{"x"}).
		On("type", []string{"x"}).
		On("empty", []string{"y"}).
		On("nested", []string{"p", "c"}, InRegion("us-west-2"), InPartition("aws-us-gov")).
		On("nested", []string{"p"}, WithToken("ChildId", "named"))
	assert.Equal(t, []string{
		"arn:aws:svc:*:123456789012:type/x",
		"arn:aws:svc::123456789012:type/y",
		"arn:aws-us-gov:svc:us-west-2:123456789012:parent/p/child/c",
		"arn:aws:svc:*:123456789012:parent/p/child/named",
	}, s.Resources())
	assert.NoError(t, s.Validate())
}

func TestNotOn(t *testing.T) {
	s := New(testService).
		AddNotAction("DeleteThing").
		NotOn("type", []string{"x"}, InAccount("123456789012")).
		NotOn("type", []string{"x"}, InAccount("123456789012")).
		NotOn("empty", []string{"y"}).
		NotOn("nope", []string{"z"})
	assert.Empty(t, s.Resources())
	assert.Equal(t, []string{
		"arn:aws:svc:*:123456789012:type/x",
		"arn:aws:svc:::type/y",
	}, s.NotResources())
	assert.True(t, errors.Is(s.Validate(), ErrUnknownResourceType))
}

func TestPrincipals(t *testing.T) {
	s := New(testService, WithDefaults(Defaults{Partition: "aws-cn"})).
		AddAction("GetThing").
		ForAccount("123456789012").
		ForARN("arn:aws-cn:iam::123456789012:role/app").
		ForService("lambda.amazonaws.com").
		ForFederated("cognito-identity.amazonaws.com").
		ForFederated("cognito-identity.amazonaws.com").
		ForPublic()
	assert.Equal(t, map[string]interface{}{
		"AWS": []interface{}{
			"arn:aws-cn:iam::123456789012:root",
			"arn:aws-cn:iam::123456789012:role/app",
			"*",
		},
		"Service":   []interface{}{"lambda.amazonaws.com"},
		"Federated": []interface{}{"cognito-identity.amazonaws.com"},
	}, decode(t, s)["Principal"])
}

func TestOnUnknownResourceType(t *testing.T) {
	s := New(testService).AddAction("GetThing").On("nope", []string{"x"})
	assert.Empty(t, s.Resources())
	err := s.Validate()
	assert.True(t, errors.Is(err, ErrUnknownResourceType))
}

func TestUnresolvedTokenIsPermissive(t *testing.T) {
	s := New(testService).AddAction("GetThing").On("type", nil)
	out := decode(t, s)
	assert.Equal(t, []interface{}{"arn:aws:svc:*:*:type/${Id}"}, out["Resource"])
}

func TestConditionMerge(t *testing.T) {
	s := New(testService).AddAction("GetThing")

	s.AddCondition("k", "", "a").AddCondition("k", "", "b").AddCondition("k", "", "a")
	op, values, ok := s.Condition("k")
	require.True(t, ok)
	assert.Equal(t, StringLike, op)
	assert.Equal(t, []string{"a", "b"}, values)
	assert.Equal(t, map[string]interface{}{
		"StringLike": map[string]interface{}{"svc:k": []interface{}{"a", "b"}},
	}, decode(t, s)["Condition"])

	s.AddCondition("k", StringEquals, "c")
	op, values, _ = s.Condition("k")
	assert.Equal(t, StringEquals, op)
	assert.Equal(t, []string{"c"}, values)
	assert.Equal(t, map[string]interface{}{
		"StringEquals": map[string]interface{}{"svc:k": []interface{}{"c"}},
	}, decode(t, s)["Condition"])
}

func TestConditionServicePrefix(t *testing.T) {
	s := New(testService).AddAction("GetThing").
		AddCondition("CreateAction", StringEquals, "x").
		AddCondition("aws:TagKeys", StringEquals, "Team")
	out := decode(t, s)
	assert.Equal(t, map[string]interface{}{
		"StringEquals": map[string]interface{}{
			"svc:CreateAction": []interface{}{"x"},
			"aws:TagKeys":      []interface{}{"Team"},
		},
	}, out["Condition"])

	_, _, ok := s.Condition("svc:CreateAction")
	assert.True(t, ok)

	bare := New(Service{}).AddAction("ec2:DescribeVpcs").AddCondition("k", "", "v")
	_, _, ok = bare.Condition("k")
	assert.True(t, ok)
}

func TestConditionWithoutValues(t *testing.T) {
	s := New(testService).AddAction("GetThing").AddCondition("svc:k", StringEquals)
	_, _, ok := s.Condition("svc:k")
	assert.False(t, ok)
	_, err := json.Marshal(s)
	assert.True(t, errors.Is(err, ErrEmptyCondition))

	s = New(testService).AddAction("GetThing").
		AddCondition("svc:k", StringEquals, "a").
		AddCondition("svc:k", StringLike)
	op, values, ok := s.Condition("svc:k")
	require.True(t, ok)
	assert.Equal(t, StringEquals, op)
	assert.Equal(t, []string{"a"}, values)
	assert.True(t, errors.Is(s.Validate(), ErrEmptyCondition))
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New(testService).AddAction("GetThing").AddNotAction("DeleteThing").
		OnAllResources().AddNotResource("arn:aws:svc:*:*:type/a").
		AddCondition("svc:k", StringEquals, "a")

	s.Actions()[0] = "evil:Thing"
	s.NotActions()[0] = "evil:Thing"
	s.Resources()[0] = "evil"
	s.NotResources()[0] = "evil"
	_, values, _ := s.Condition("svc:k")
	values[0] = "evil"

	assert.Equal(t, []string{"svc:GetThing"}, s.Actions())
	assert.Equal(t, []string{"svc:DeleteThing"}, s.NotActions())
	assert.Equal(t, []string{"*"}, s.Resources())
	assert.Equal(t, []string{"arn:aws:svc:*:*:type/a"}, s.NotResources())
	_, values, _ = s.Condition("svc:k")
	assert.Equal(t, []string{"a"}, values)
	assert.Equal(t, []interface{}{"svc:GetThing"}, decode(t, s)["Action"])
}

func TestConditionParameterizedKeys(t *testing.T) {
	s := New(testService).AddAction("GetThing").
		AddCondition("svc:CreatedResourceTag/Owner", StringEquals, "alice").
		AddCondition("svc:CreatedResourceTag/Team", StringEquals, "platform")
	assert.Equal(t, map[string]interface{}{
		"StringEquals": map[string]interface{}{
			"svc:CreatedResourceTag/Owner": []interface{}{"alice"},
			"svc:CreatedResourceTag/Team":  []interface{}{"platform"},
		},
	}, decode(t, s)["Condition"])
}

func TestConditionHelpers(t *testing.T) {
	s := New(testService).AddAction("GetThing").
		IfAwsSourceIp("", "10.0.0.0/8").
		IfAwsSourceArn("", "arn:aws:sns:*:*:topic").
		IfAwsTagKeys(ForAllValues(StringEquals), "Team", "Owner").
		IfAwsResourceTag("Team", IfExists(StringEquals), "platform").
		IfAwsMultiFactorAuthPresent(true).
		IfAwsCalledVia("", "cloudformation.amazonaws.com").
		IfArn("aws:PrincipalArn", "arn:aws:iam::*:role/admin")

	op, _, _ := s.Condition("aws:SourceIp")
	assert.Equal(t, IpAddress, op)
	op, _, _ = s.Condition("aws:SourceArn")
	assert.Equal(t, ArnLike, op)
	op, _, _ = s.Condition("aws:TagKeys")
	assert.Equal(t, Operator("ForAllValues:StringEquals"), op)
	op, _, _ = s.Condition("aws:ResourceTag/Team")
	assert.Equal(t, Operator("StringEqualsIfExists"), op)
	op, values, _ := s.Condition("aws:MultiFactorAuthPresent")
	assert.Equal(t, Bool, op)
	assert.Equal(t, []string{"true"}, values)
	op, _, _ = s.Condition("aws:CalledVia")
	assert.Equal(t, Operator("ForAnyValue:StringEquals"), op)
	op, _, _ = s.Condition("aws:PrincipalArn")
	assert.Equal(t, ArnLike, op)

	assert.Equal(t, Operator("StringLikeIfExists"), IfExists(IfExists(StringLike)))
}

func TestConditionHelperDefaults(t *testing.T) {
	s := New(testService).AddAction("GetThing").
		IfAwsCurrentTime("", "2026-12-31T23:59:59Z").
		IfAwsEpochTime("", "1798761599").
		IfAwsTokenIssueTime("", "2026-01-01T00:00:00Z").
		IfAwsMultiFactorAuthAge("", "3600").
		IfAwsPrincipalArn("", "arn:aws:iam::*:role/admin").
		IfAwsViaAWSService(true).
		IfAwsVpcSourceIp("", "10.1.0.0/16").
		IfAwsCalledViaFirst("", "cloudformation.amazonaws.com").
		IfAwsCalledViaLast("", "dynamodb.amazonaws.com").
		IfAwsPrincipalAccount("", "123456789012").
		IfAwsSourceAccount(StringEquals, "123456789012").
		IfAwsSourceVpc("", "vpc-1").
		IfAwsSourceVpce("", "vpce-1").
		IfAwsRequestedRegion(StringEquals, "eu-west-1").
		IfAwsPrincipalTag("Team", "", "platform").
		IfAwsPrincipalType("", "AssumedRole").
		IfAwsPrincipalOrgPaths("", "o-a/r-b/*").
		IfAwsReferer("", "https://example.com/*").
		IfAwsUserAgent("", "aws-cli/*").
		IfAwsUserid("", "AIDA*").
		IfAwsUsername("", "alice")

	tests := []struct {
		key  string
		want Operator
	}{
		{"aws:CurrentTime", DateLessThanEquals},
		{"aws:EpochTime", DateLessThanEquals},
		{"aws:TokenIssueTime", DateGreaterThanEquals},
		{"aws:MultiFactorAuthAge", NumericLessThan},
		{"aws:PrincipalArn", ArnLike},
		{"aws:ViaAWSService", Bool},
		{"aws:VpcSourceIp", IpAddress},
		{"aws:CalledViaFirst", StringLike},
		{"aws:CalledViaLast", StringLike},
		{"aws:PrincipalAccount", StringLike},
		{"aws:SourceAccount", StringEquals},
		{"aws:SourceVpc", StringLike},
		{"aws:SourceVpce", StringLike},
		{"aws:RequestedRegion", StringEquals},
		{"aws:PrincipalTag/Team", StringLike},
		{"aws:PrincipalType", StringLike},
		{"aws:PrincipalOrgPaths", StringLike},
		{"aws:Referer", StringLike},
		{"aws:UserAgent", StringLike},
		{"aws:userid", StringLike},
		{"aws:username", StringLike},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			op, values, ok := s.Condition(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, op)
			assert.Len(t, values, 1)
		})
	}

	op, _, _ := s.Condition("aws:CurrentTime")
	assert.Equal(t, DateLessThanEquals, op)
	s.IfAwsCurrentTime(DateGreaterThan, "2026-01-01T00:00:00Z")
	op, _, _ = s.Condition("aws:CurrentTime")
	assert.Equal(t, DateGreaterThan, op)
}

func TestMarshalOnlyActions(t *testing.T) {
	out := decode(t, New(testService).AddAction("GetThing"))
	assert.Equal(t, "Allow", out["Effect"])
	assert.Equal(t, []interface{}{"svc:GetThing"}, out["Action"])
	for _, key := range []string{"Sid", "NotAction", "Resource", "NotResource", "Condition", "Principal"} {
		assert.NotContains(t, out, key)
	}
}

func TestMarshalPrecedence(t *testing.T) {
	s := New(testService).
		AddNotAction("DeleteThing").AddAction("GetThing").
		AddNotResource("arn:aws:svc:*:*:type/a").OnAllResources()
	out := decode(t, s)
	assert.Equal(t, []interface{}{"svc:GetThing"}, out["Action"])
	assert.NotContains(t, out, "NotAction")
	assert.Equal(t, []interface{}{"*"}, out["Resource"])
	assert.NotContains(t, out, "NotResource")
}

func TestMarshalNoActions(t *testing.T) {
	_, err := json.Marshal(New(testService).OnAllResources())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoActions))

	_, err = New(testService).JSON()
	assert.True(t, errors.Is(err, ErrNoActions))
}

func TestEffect(t *testing.T) {
	s := New(testService).AddAction("GetThing").Deny()
	assert.Equal(t, Deny, s.Effect())
	assert.Equal(t, "Deny", decode(t, s)["Effect"])
	assert.Equal(t, "Allow", decode(t, s.Allow())["Effect"])

	b, err := json.Marshal(Effect(""))
	require.NoError(t, err)
	assert.Equal(t, `"Allow"`, string(b))

	_, err = json.Marshal(Effect("Maybe"))
	assert.True(t, errors.Is(err, ErrInvalidEffect))
}

func TestStrict(t *testing.T) {
	s := New(testService, WithStrict()).
		AddAction("GetThing").
		AddAction("Frobnicate").
		AddAction("Get*").
		AddAction("ec2:DescribeVpcs").
		AddNotAction("DeleteThing").
		On("type", nil).
		AddNotResource("*")

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.True(t, errors.Is(err, ErrUnresolvedToken))
	assert.True(t, errors.Is(err, ErrConflictingElements))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)

	_, err = json.Marshal(s)
	assert.Error(t, err)
}

func TestStrictClean(t *testing.T) {
	s := New(testService, WithStrict(), WithSid("Clean")).
		AddAction("GetThing").
		On("type", []string{"x"})
	assert.NoError(t, s.Validate())
	assert.Equal(t, "Clean", decode(t, s)["Sid"])
}

func TestRoundTrip(t *testing.T) {
	s := New(testService).Sid("RoundTrip").AddAction("PutThing").On("type", []string{"x"}).
		IfAwsRequestTag("Team", "", "a", "b")
	out := decode(t, s)

	assert.Contains(t, []interface{}{"Allow", "Deny"}, out["Effect"])
	for _, key := range []string{"Action", "Resource"} {
		list, ok := out[key].([]interface{})
		require.True(t, ok, key)
		for _, v := range list {
			assert.IsType(t, "", v)
		}
	}
	condition, ok := out["Condition"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, condition, "StringLike")
}

func TestGolden(t *testing.T) {
	g := goldie.New(t)

	full := New(testService, WithSid("FullStatement")).Deny().
		AddAction("PutThing").
		AddAction("GetThing").
		On("type", []string{"x"}, InRegion("eu-west-1")).
		ForAccount("123456789012").
		IfAwsRequestTag("Team", StringEquals, "platform").
		IfAwsSecureTransport(false)
	out, err := full.JSON()
	require.NoError(t, err)
	g.Assert(t, "full_statement", []byte(out))

	not := New(testService).
		AddNotAction("DeleteThing").
		AddNotResource("arn:aws:svc:*:*:type/protected")
	out, err = not.JSON()
	require.NoError(t, err)
	g.Assert(t, "not_elements", []byte(out))

	principals := New(testService, WithSid("Principals")).
		AddAction("GetThing").
		ForFederated("cognito-identity.amazonaws.com").
		ForPublic().
		NotOn("type", []string{"x"}, InAccount("123456789012"))
	out, err = principals.JSON()
	require.NoError(t, err)
	g.Assert(t, "principals", []byte(out))
}
