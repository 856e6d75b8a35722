package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	l4doc "github.com/goliatone/go-l4doc"
	"github.com/goliatone/go-l4doc/api"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

func main() {
	checkForms := flag.Bool("forms", true, "also build every document form from each contract")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [-forms=false] [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(out, "\nLint API contracts for unsupported x-formgen extensions. Without paths the bundled contract is checked.\n")
	}
	flag.Parse()

	ctx := context.Background()
	parser := l4doc.NewParser(
		pkgopenapi.WithPartialDocuments(true),
		pkgopenapi.WithReferenceResolution(false),
	)

	docs, err := documents(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "l4doc-lint: %v\n", err)
		os.Exit(1)
	}

	var violations []violation
	for _, doc := range docs {
		linted, err := lintDocument(ctx, parser, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", doc.Location(), err)
			os.Exit(1)
		}
		violations = append(violations, linted...)

		if *checkForms {
			if _, err := l4doc.LoadForms(ctx, formsSource(doc)...); err != nil {
				violations = append(violations, violation{file: doc.Location(), location: "forms", message: err.Error()})
			}
		}
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func documents(paths []string) ([]pkgopenapi.Document, error) {
	if len(paths) == 0 {
		raw, err := fs.ReadFile(api.Contracts(), api.ContractPath)
		if err != nil {
			return nil, err
		}
		doc, err := pkgopenapi.NewDocument(pkgopenapi.BundledSource(), raw)
		if err != nil {
			return nil, err
		}
		return []pkgopenapi.Document{doc}, nil
	}

	docs := make([]pkgopenapi.Document, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
		if err != nil {
			return nil, fmt.Errorf("construct document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func formsSource(doc pkgopenapi.Document) []l4doc.FormsOption {
	if doc.Source().Kind() == pkgopenapi.SourceKindFS {
		return nil
	}
	return []l4doc.FormsOption{l4doc.WithSource(doc.Source())}
}

func sortViolations(violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
}
