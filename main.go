package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/a-pavithraa/iam-statements/common"
	"github.com/a-pavithraa/iam-statements/iam"
	"github.com/a-pavithraa/iam-statements/lambda"
	"github.com/a-pavithraa/iam-statements/policy"
	"github.com/a-pavithraa/iam-statements/services"
	"github.com/a-pavithraa/iam-statements/statement"
	"github.com/a-pavithraa/iam-statements/sts"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

func statementFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "yaml config file name",
		},
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "service",
				Aliases: []string{"s"},
				Usage:   "Service prefix of the statement, e.g. logs",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "sid",
				Usage: "Statement identifier",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "effect",
				Aliases: []string{"e"},
				Value:   "Allow",
				Usage:   "Allow or Deny",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "action",
				Aliases: []string{"a"},
				Usage:   "Action name, bare or service qualified",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "not_action",
				Aliases: []string{"na"},
				Usage:   "Action name for NotAction",
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:  "all_actions",
				Usage: "Add <service>:*",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "access_level",
				Aliases: []string{"al"},
				Usage:   "Add every action of this access level (List, Read, Write, Tagging, Permissions management)",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "resource",
				Aliases: []string{"r"},
				Usage:   "Resource as type=id1,id2 resolved from the service's ARN template",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "resource_arn",
				Aliases: []string{"ra"},
				Usage:   "Resource ARN, or *, used as is",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "not_resource_arn",
				Aliases: []string{"nra"},
				Usage:   "ARN for NotResource",
			},
		),
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "condition",
				Aliases: []string{"c"},
				Usage:   "Condition as key=v1,v2 or key[Operator]=v1,v2",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "partition",
				Usage: "Default ARN partition",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "region",
				Usage: "Default ARN region, also used for AWS clients",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "account",
				Usage: "Default ARN account",
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:  "resolve_account",
				Usage: "Fill the default account, partition and region from the AWS session",
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on unresolved ARN tokens, unknown actions and conflicting elements",
			},
		),
	}
}

func publishFlags() []cli.Flag {
	return append(statementFlags(),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "policy_name",
				Aliases: []string{"pn"},
				Usage:   "Name of the managed policy to create",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "role_name",
				Aliases: []string{"rn"},
				Usage:   "Role to attach the policy to",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "function_name",
				Aliases: []string{"fn"},
				Usage:   "Lambda function whose execution role gets the policy",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "service_principal",
				Aliases: []string{"sp"},
				Usage:   "Create role_name first, trusting this service principal, if it does not exist",
			},
		),
	)
}

func deleteRoleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "yaml config file name",
		},
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:    "role_name",
				Aliases: []string{"rn"},
				Usage:   "Role to delete after detaching its managed policies",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "region",
				Usage: "Region for the AWS client",
			},
		),
	}
}

// Client factories, replaced in tests.
var (
	newIAMApi = func(ctx context.Context, region string) (iam.Api, error) {
		client, err := iam.Client(ctx, region)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	newFunctionApi = func(ctx context.Context, region string) (lambda.FunctionApi, error) {
		client, err := lambda.Client(ctx, region)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
)

func newApp() *cli.App {
	statementCommandFlags := statementFlags()
	publishCommandFlags := publishFlags()
	deleteRoleCommandFlags := deleteRoleFlags()
	commands := []*cli.Command{
		{
			Name:    "statement",
			Before:  altsrc.InitInputSourceWithContext(statementCommandFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
			Aliases: []string{"st"},
			Flags:   statementCommandFlags,
			Usage:   "Prints a policy document holding one statement",

			Action: PrintStatement,
		},
		{
			Name:    "publish",
			Before:  altsrc.InitInputSourceWithContext(publishCommandFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
			Aliases: []string{"pub"},
			Flags:   publishCommandFlags,
			Usage:   "Creates a managed policy from one statement and attaches it",

			Action: PublishStatement,
		},
		{
			Name:    "delete_role",
			Before:  altsrc.InitInputSourceWithContext(deleteRoleCommandFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
			Aliases: []string{"dr"},
			Flags:   deleteRoleCommandFlags,
			Usage:   "Detaches every managed policy from a role and deletes it",

			Action: DeleteRole,
		},
		{
			Name:      "services",
			Aliases:   []string{"svc"},
			ArgsUsage: "[prefix]",
			Usage:     "Lists known services, or the actions and resources of one",

			Action: ListServices,
		},
	}

	return &cli.App{
		Name:  "iam-statements",
		Usage: "Build AWS IAM policy statements",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging",
			},
		},
		Before: func(cCtx *cli.Context) error {
			level := slog.LevelInfo
			if cCtx.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Not able to run the command", "error", err)
		os.Exit(1)
	}
}

func SetStatementParams(cCtx *cli.Context) common.StatementParams {
	return common.StatementParams{
		Service:         cCtx.String("service"),
		Sid:             cCtx.String("sid"),
		Effect:          cCtx.String("effect"),
		Actions:         cCtx.StringSlice("action"),
		NotActions:      cCtx.StringSlice("not_action"),
		AllActions:      cCtx.Bool("all_actions"),
		AccessLevels:    cCtx.StringSlice("access_level"),
		Resources:       cCtx.StringSlice("resource"),
		ResourceArns:    cCtx.StringSlice("resource_arn"),
		NotResourceArns: cCtx.StringSlice("not_resource_arn"),
		Conditions:      cCtx.StringSlice("condition"),
		Partition:       cCtx.String("partition"),
		Region:          cCtx.String("region"),
		Account:         cCtx.String("account"),
		ResolveAccount:  cCtx.Bool("resolve_account"),
		Strict:          cCtx.Bool("strict"),
		PolicyName:      cCtx.String("policy_name"),
		RoleName:        cCtx.String("role_name"),
		FunctionName:    cCtx.String("function_name"),

		ServicePrincipal: cCtx.String("service_principal"),
	}
}

func buildDocument(ctx context.Context, params common.StatementParams) (*policy.Document, error) {
	if params.ResolveAccount {
		client, region, err := sts.Client(ctx, params.Region)
		if err != nil {
			return nil, err
		}
		wrapper := sts.ServiceWrapper{Client: client, Region: region}
		defaults, err := wrapper.Defaults(ctx, params.Defaults())
		if err != nil {
			return nil, err
		}
		params.Partition, params.Region, params.Account = defaults.Partition, defaults.Region, defaults.Account
		slog.Debug("Resolved ARN defaults", "partition", defaults.Partition, "region", defaults.Region, "account", defaults.Account)
	}
	s, err := common.BuildStatement(params)
	if err != nil {
		return nil, err
	}
	return policy.New(s), nil
}

func PrintStatement(cCtx *cli.Context) error {
	doc, err := buildDocument(cCtx.Context, SetStatementParams(cCtx))
	if err != nil {
		return err
	}
	out, err := doc.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, out)
	return nil
}

func PublishStatement(cCtx *cli.Context) error {
	ctx := cCtx.Context
	params := SetStatementParams(cCtx)
	if err := common.ValidateStatementParams(params, true); err != nil {
		return err
	}
	doc, err := buildDocument(ctx, params)
	if err != nil {
		return err
	}

	roleName := params.RoleName
	if !common.TrimAndCheckEmptyString(&params.FunctionName) {
		lambdaClient, err := newFunctionApi(ctx, params.Region)
		if err != nil {
			return err
		}
		lambdaWrapper := lambda.ServiceWrapper{Client: lambdaClient, Logger: slog.Default()}
		role, err := lambdaWrapper.ExecutionRole(ctx, params.FunctionName)
		if err != nil {
			return err
		}
		roleName = role.Name
	}

	iamClient, err := newIAMApi(ctx, params.Region)
	if err != nil {
		return err
	}
	iamWrapper := iam.ServiceWrapper{Client: iamClient, Logger: slog.Default()}
	if !common.TrimAndCheckEmptyString(&params.ServicePrincipal) {
		if _, err := iamWrapper.EnsureRole(ctx, roleName, params.ServicePrincipal); err != nil {
			return err
		}
	}
	policyArn, err := iamWrapper.Publish(ctx, doc, params.PolicyName, roleName)
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, *policyArn)
	return nil
}

func DeleteRole(cCtx *cli.Context) error {
	ctx := cCtx.Context
	roleName := cCtx.String("role_name")
	if common.TrimAndCheckEmptyString(&roleName) {
		return &common.InputError{Message: "Role name must be specified."}
	}
	iamClient, err := newIAMApi(ctx, cCtx.String("region"))
	if err != nil {
		return err
	}
	iamWrapper := iam.ServiceWrapper{Client: iamClient, Logger: slog.Default()}
	roleArn, err := iamWrapper.CheckRoleExists(ctx, roleName)
	if err != nil {
		return err
	}
	if roleArn == nil {
		return &common.InputError{Message: fmt.Sprintf("role %q does not exist", roleName)}
	}
	if err := iamWrapper.DeleteRole(ctx, roleName); err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, *roleArn)
	return nil
}

var accessLevels = []statement.AccessLevel{
	statement.List,
	statement.Read,
	statement.Write,
	statement.Tagging,
	statement.PermissionsManagement,
}

func ListServices(cCtx *cli.Context) error {
	w := cCtx.App.Writer
	prefix := cCtx.Args().First()
	if prefix == "" {
		fmt.Fprintln(w, strings.Join(services.Prefixes(), "\n"))
		return nil
	}
	svc, ok := services.Lookup(prefix)
	if !ok {
		return &common.InputError{Message: fmt.Sprintf("unknown service %q", prefix)}
	}
	for _, level := range accessLevels {
		names := svc.ActionsWithAccessLevel(level)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", level)
		for _, name := range names {
			fmt.Fprintf(w, "  %s:%s\n", svc.Prefix, name)
		}
	}
	fmt.Fprintln(w, "Resources:")
	for _, name := range services.ResourceTypes(svc) {
		fmt.Fprintf(w, "  %s  %s\n", name, svc.Resources[name].ARN)
	}
	return nil
}
