package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return fmt.Errorf("model builder: %s: request body must be an object, got %q", op.ID, body.Type)
	}
	for name, prop := range body.Properties {
		switch prop.Type {
		case "object", "array":
			return fmt.Errorf("model builder: %s: field %q must be a scalar, got %q", op.ID, name, prop.Type)
		}
	}
	return nil
}
