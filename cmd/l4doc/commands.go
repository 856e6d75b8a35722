package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goliatone/go-l4doc/pkg/client"
	"github.com/goliatone/go-l4doc/pkg/doctype"
)

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		common commonFlags
		opts   client.ListOptions
	)
	common.register(fs)
	fs.IntVar(&opts.Limit, "limit", 50, "maximum number of entries")
	fs.IntVar(&opts.Offset, "offset", 0, "entries to skip")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	docs, err := a.api.ListDocuments(ctx, opts)
	if err != nil {
		return fail(stderr, err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIPO\tNOME\tCRIADO EM")
	for _, d := range docs {
		created := ""
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.Local().Format("02/01/2006 15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Type, d.PrincipalName, created)
	}
	if err := tw.Flush(); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

func runPing(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	msg, err := a.api.Ping(ctx)
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "%s: %s\n", a.api.BaseURL(), msg)
	return exitOK
}

func runForms(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("forms", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	models, err := a.loadForms(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, b := range doctype.Bindings() {
		fmt.Fprintf(tw, "%s (%s)\n", b.Title, b.Type)
		for _, field := range models[b.Type].Fields {
			required := ""
			if field.Required {
				required = "obrigatório"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", field.Name, field.Type, field.Label, required)
		}
	}
	if err := tw.Flush(); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}
