// Package model exposes the flat form model built from the document API's
// OpenAPI description. Field order in a FormModel is the submission order.
package model
