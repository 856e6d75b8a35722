package loader

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
)

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("no contract set configured")
	}
	name = strings.TrimPrefix(path.Clean(name), "/")
	if name == "" || name == "." {
		return nil, errors.New("contract name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(filesystem, name)
}
