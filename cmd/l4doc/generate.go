package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/goliatone/go-l4doc/pkg/controller"
	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/download"
	"github.com/goliatone/go-l4doc/pkg/form"
	"github.com/goliatone/go-l4doc/pkg/prompt"
	"github.com/goliatone/go-l4doc/pkg/status"
)

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		common      commonFlags
		typeName    string
		valuesPath  string
		outputDir   string
		interactive bool
	)
	common.register(fs)
	fs.StringVar(&typeName, "type", "", "document type: contrato, procuracao, ciencia, declaracao")
	fs.StringVar(&valuesPath, "values", "", "YAML or JSON file with field values")
	fs.StringVar(&outputDir, "output", "", "directory for the generated document (overrides config)")
	fs.BoolVar(&interactive, "interactive", false, "prompt for every field even when -values is given")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	if outputDir != "" {
		a.cfg.Output.Dir = outputDir
	}

	models, err := a.loadForms(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	collector := prompt.New(prompt.WithPromptDriver(prompt.NewSurveyDriver(stdout)))
	board := status.NewBoard(
		status.WithRevertAfter(a.cfg.Status.RevertAfter),
		status.WithListener(func(msg status.Message) {
			// reverts only restyle; the text was already printed
			if msg.Severity == status.SeverityNeutral {
				return
			}
			fmt.Fprintln(stdout, msg.Text)
		}),
	)
	defer board.Close()

	ctrl, err := controller.New(a.api, models,
		controller.WithBoard(board),
		controller.WithLogger(a.logger),
		controller.WithReporter(collector),
		controller.WithSink(download.NewDirSink(a.cfg.Output.Dir, download.WithLogger(a.logger))),
	)
	if err != nil {
		return fail(stderr, err)
	}

	var t doctype.Type
	if typeName != "" {
		t, err = doctype.Parse(typeName)
	} else {
		t, err = collector.ChooseType(ctx)
	}
	if err != nil {
		return fail(stderr, err)
	}
	binding, err := t.Binding()
	if err != nil {
		return fail(stderr, err)
	}
	if err := ctrl.SwitchTab(t, binding.ButtonID); err != nil {
		return fail(stderr, err)
	}

	f, err := ctrl.Form(t)
	if err != nil {
		return fail(stderr, err)
	}
	if valuesPath != "" {
		values, err := readValues(valuesPath)
		if err != nil {
			return fail(stderr, err)
		}
		if err := f.Fill(values); err != nil {
			return fail(stderr, err)
		}
	}
	if valuesPath == "" || interactive {
		fmt.Fprintf(stdout, "%s\n", binding.Title)
		if err := collector.Fill(ctx, f); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return exitFailure
			}
			return fail(stderr, err)
		}
	}

	path, err := ctrl.Generate(ctx, t)
	if err != nil {
		var valErr *form.ValidationError
		if errors.As(err, &valErr) {
			return exitInvalid
		}
		return exitFailure
	}
	fmt.Fprintln(stdout, path)
	return exitOK
}
