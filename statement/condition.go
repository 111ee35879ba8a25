package statement

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operator is an IAM condition operator such as StringEquals.
type Operator string

const (
	StringEquals              Operator = "StringEquals"
	StringNotEquals           Operator = "StringNotEquals"
	StringEqualsIgnoreCase    Operator = "StringEqualsIgnoreCase"
	StringNotEqualsIgnoreCase Operator = "StringNotEqualsIgnoreCase"
	StringLike                Operator = "StringLike"
	StringNotLike             Operator = "StringNotLike"

	NumericEquals            Operator = "NumericEquals"
	NumericNotEquals         Operator = "NumericNotEquals"
	NumericLessThan          Operator = "NumericLessThan"
	NumericLessThanEquals    Operator = "NumericLessThanEquals"
	NumericGreaterThan       Operator = "NumericGreaterThan"
	NumericGreaterThanEquals Operator = "NumericGreaterThanEquals"

	DateEquals            Operator = "DateEquals"
	DateNotEquals         Operator = "DateNotEquals"
	DateLessThan          Operator = "DateLessThan"
	DateLessThanEquals    Operator = "DateLessThanEquals"
	DateGreaterThan       Operator = "DateGreaterThan"
	DateGreaterThanEquals Operator = "DateGreaterThanEquals"

	Bool         Operator = "Bool"
	BinaryEquals Operator = "BinaryEquals"

	IpAddress    Operator = "IpAddress"
	NotIpAddress Operator = "NotIpAddress"

	ArnEquals    Operator = "ArnEquals"
	ArnNotEquals Operator = "ArnNotEquals"
	ArnLike      Operator = "ArnLike"
	ArnNotLike   Operator = "ArnNotLike"

	Null Operator = "Null"

	DefaultOperator = StringLike
)

func ForAnyValue(op Operator) Operator { return "ForAnyValue:" + op }

func ForAllValues(op Operator) Operator { return "ForAllValues:" + op }

func IfExists(op Operator) Operator {
	if strings.HasSuffix(string(op), "IfExists") {
		return op
	}
	return op + "IfExists"
}

type condition struct {
	operator Operator
	values   []string
}

// conditions maps a condition key to its single operator and value set.
type conditions struct {
	keys    []string
	entries map[string]*condition
}

func (c *conditions) add(key string, op Operator, values []string) {
	if op == "" {
		op = DefaultOperator
	}
	if c.entries == nil {
		c.entries = map[string]*condition{}
	}
	entry, ok := c.entries[key]
	if !ok {
		c.keys = append(c.keys, key)
	}
	if !ok || entry.operator != op {
		entry = &condition{operator: op}
		c.entries[key] = entry
	}
	for _, v := range values {
		entry.values = appendUnique(entry.values, v)
	}
}

func (c *conditions) empty() bool { return len(c.keys) == 0 }

// block renders the IAM shape {Operator: {Key: [Values]}}.
func (c *conditions) block() map[Operator]map[string][]string {
	if c.empty() {
		return nil
	}
	block := map[Operator]map[string][]string{}
	for _, key := range c.keys {
		entry := c.entries[key]
		if block[entry.operator] == nil {
			block[entry.operator] = map[string][]string{}
		}
		block[entry.operator][key] = entry.values
	}
	return block
}

// AddCondition restricts the statement with key. A key without a colon is
// taken to belong to the statement's service and gets its prefix. An empty op
// means StringLike. Adding to a key that already has the same operator unions
// the values; a different operator replaces the key's entry. A call without
// values leaves the statement's conditions untouched and is reported by
// Validate.
func (s *Statement) AddCondition(key string, op Operator, values ...string) *Statement {
	key = s.conditionKey(key)
	if len(values) == 0 {
		s.errs = append(s.errs, fmt.Errorf("%w %s", ErrEmptyCondition, key))
		return s
	}
	s.conditions.add(key, op, values)
	return s
}

func (s *Statement) conditionKey(key string) string {
	if s.service.Prefix == "" || strings.Contains(key, ":") {
		return key
	}
	return s.service.Prefix + ":" + key
}

// Condition returns the operator and values currently held for key. Keys are
// looked up the way AddCondition stores them.
func (s *Statement) Condition(key string) (Operator, []string, bool) {
	entry, ok := s.conditions.entries[s.conditionKey(key)]
	if !ok {
		return "", nil, false
	}
	return entry.operator, slices.Clone(entry.values), true
}

func (s *Statement) IfBool(key string, value bool) *Statement {
	return s.AddCondition(key, Bool, strconv.FormatBool(value))
}

func (s *Statement) IfArn(key string, arns ...string) *Statement {
	return s.AddCondition(key, ArnLike, arns...)
}

func withDefault(op, def Operator) Operator {
	if op == "" {
		return def
	}
	return op
}

// IfAwsCalledVia filters by the services that made requests on the
// principal's behalf. It defaults to ForAnyValue:StringEquals.
func (s *Statement) IfAwsCalledVia(op Operator, services ...string) *Statement {
	return s.AddCondition("aws:CalledVia", withDefault(op, ForAnyValue(StringEquals)), services...)
}

func (s *Statement) IfAwsCalledViaFirst(op Operator, services ...string) *Statement {
	return s.AddCondition("aws:CalledViaFirst", op, services...)
}

func (s *Statement) IfAwsCalledViaLast(op Operator, services ...string) *Statement {
	return s.AddCondition("aws:CalledViaLast", op, services...)
}

// IfAwsCurrentTime defaults to DateLessThanEquals.
func (s *Statement) IfAwsCurrentTime(op Operator, times ...string) *Statement {
	return s.AddCondition("aws:CurrentTime", withDefault(op, DateLessThanEquals), times...)
}

// IfAwsEpochTime defaults to DateLessThanEquals.
func (s *Statement) IfAwsEpochTime(op Operator, times ...string) *Statement {
	return s.AddCondition("aws:EpochTime", withDefault(op, DateLessThanEquals), times...)
}

// IfAwsMultiFactorAuthAge compares seconds since MFA and defaults to
// NumericLessThan.
func (s *Statement) IfAwsMultiFactorAuthAge(op Operator, seconds ...string) *Statement {
	return s.AddCondition("aws:MultiFactorAuthAge", withDefault(op, NumericLessThan), seconds...)
}

func (s *Statement) IfAwsMultiFactorAuthPresent(value bool) *Statement {
	return s.IfBool("aws:MultiFactorAuthPresent", value)
}

func (s *Statement) IfAwsPrincipalAccount(op Operator, accounts ...string) *Statement {
	return s.AddCondition("aws:PrincipalAccount", op, accounts...)
}

// IfAwsPrincipalArn defaults to ArnLike.
func (s *Statement) IfAwsPrincipalArn(op Operator, arns ...string) *Statement {
	return s.AddCondition("aws:PrincipalArn", withDefault(op, ArnLike), arns...)
}

func (s *Statement) IfAwsPrincipalOrgID(op Operator, orgIDs ...string) *Statement {
	return s.AddCondition("aws:PrincipalOrgID", op, orgIDs...)
}

func (s *Statement) IfAwsPrincipalOrgPaths(op Operator, paths ...string) *Statement {
	return s.AddCondition("aws:PrincipalOrgPaths", op, paths...)
}

// IfAwsPrincipalTag filters by the tags attached to the calling principal.
func (s *Statement) IfAwsPrincipalTag(tagKey string, op Operator, values ...string) *Statement {
	return s.AddCondition("aws:PrincipalTag/"+tagKey, op, values...)
}

func (s *Statement) IfAwsPrincipalType(op Operator, types ...string) *Statement {
	return s.AddCondition("aws:PrincipalType", op, types...)
}

func (s *Statement) IfAwsReferer(op Operator, referers ...string) *Statement {
	return s.AddCondition("aws:Referer", op, referers...)
}

func (s *Statement) IfAwsRequestedRegion(op Operator, regions ...string) *Statement {
	return s.AddCondition("aws:RequestedRegion", op, regions...)
}

// IfAwsRequestTag filters by the tags passed in the request.
func (s *Statement) IfAwsRequestTag(tagKey string, op Operator, values ...string) *Statement {
	return s.AddCondition("aws:RequestTag/"+tagKey, op, values...)
}

// IfAwsResourceTag filters by the tags attached to the resource.
func (s *Statement) IfAwsResourceTag(tagKey string, op Operator, values ...string) *Statement {
	return s.AddCondition("aws:ResourceTag/"+tagKey, op, values...)
}

func (s *Statement) IfAwsSecureTransport(value bool) *Statement {
	return s.IfBool("aws:SecureTransport", value)
}

func (s *Statement) IfAwsSourceAccount(op Operator, accounts ...string) *Statement {
	return s.AddCondition("aws:SourceAccount", op, accounts...)
}

// IfAwsSourceArn defaults to ArnLike rather than StringLike.
func (s *Statement) IfAwsSourceArn(op Operator, arns ...string) *Statement {
	return s.AddCondition("aws:SourceArn", withDefault(op, ArnLike), arns...)
}

// IfAwsSourceIp defaults to IpAddress rather than StringLike.
func (s *Statement) IfAwsSourceIp(op Operator, cidrs ...string) *Statement {
	return s.AddCondition("aws:SourceIp", withDefault(op, IpAddress), cidrs...)
}

func (s *Statement) IfAwsSourceVpc(op Operator, vpcIDs ...string) *Statement {
	return s.AddCondition("aws:SourceVpc", op, vpcIDs...)
}

func (s *Statement) IfAwsSourceVpce(op Operator, endpointIDs ...string) *Statement {
	return s.AddCondition("aws:SourceVpce", op, endpointIDs...)
}

// IfAwsTagKeys filters by the tag keys present in the request.
func (s *Statement) IfAwsTagKeys(op Operator, keys ...string) *Statement {
	return s.AddCondition("aws:TagKeys", op, keys...)
}

// IfAwsTokenIssueTime defaults to DateGreaterThanEquals.
func (s *Statement) IfAwsTokenIssueTime(op Operator, times ...string) *Statement {
	return s.AddCondition("aws:TokenIssueTime", withDefault(op, DateGreaterThanEquals), times...)
}

func (s *Statement) IfAwsUserAgent(op Operator, agents ...string) *Statement {
	return s.AddCondition("aws:UserAgent", op, agents...)
}

func (s *Statement) IfAwsUserid(op Operator, ids ...string) *Statement {
	return s.AddCondition("aws:userid", op, ids...)
}

func (s *Statement) IfAwsUsername(op Operator, names ...string) *Statement {
	return s.AddCondition("aws:username", op, names...)
}

// IfAwsViaAWSService checks whether a service made the request on the
// principal's behalf.
func (s *Statement) IfAwsViaAWSService(value bool) *Statement {
	return s.IfBool("aws:ViaAWSService", value)
}

// IfAwsVpcSourceIp defaults to IpAddress.
func (s *Statement) IfAwsVpcSourceIp(op Operator, cidrs ...string) *Statement {
	return s.AddCondition("aws:VpcSourceIp", withDefault(op, IpAddress), cidrs...)
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
