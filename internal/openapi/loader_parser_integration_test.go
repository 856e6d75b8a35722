package openapi_test

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	l4doc "github.com/goliatone/go-l4doc"
	"github.com/goliatone/go-l4doc/api"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	data, err := fs.ReadFile(api.Contracts(), api.ContractPath)
	if err != nil {
		t.Fatalf("read bundled contract: %v", err)
	}

	want := []string{"gerarContrato", "gerarProcuracao", "gerarCiencia", "gerarDeclaracao", "listarDocumentos", "root"}
	parser := l4doc.NewParser()

	check := func(t *testing.T, doc pkgopenapi.Document) {
		t.Helper()
		ops, err := parser.Operations(ctx, doc)
		if err != nil {
			t.Fatalf("parse %s: %v", doc.Location(), err)
		}
		for _, id := range want {
			if _, ok := ops[id]; !ok {
				t.Errorf("%s: operation %q missing", doc.Location(), id)
			}
		}
	}

	t.Run("bundled", func(t *testing.T) {
		doc, err := l4doc.NewLoader().Load(ctx, pkgopenapi.BundledSource())
		if err != nil {
			t.Fatalf("load fs: %v", err)
		}
		check(t, doc)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "openapi.yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write temp contract: %v", err)
		}
		doc, err := l4doc.NewLoader().Load(ctx, pkgopenapi.SourceFromFile(path))
		if err != nil {
			t.Fatalf("load file: %v", err)
		}
		check(t, doc)
	})

	t.Run("http", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(data)
		}))
		defer server.Close()

		loader := l4doc.NewLoader(pkgopenapi.WithRemoteContracts(0))
		doc, err := loader.Load(ctx, pkgopenapi.SourceFromURL(server.URL+"/openapi.yaml"))
		if err != nil {
			t.Fatalf("load http: %v", err)
		}
		check(t, doc)
	})
}
