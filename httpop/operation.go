// Package httpop derives the HTTP shape of an operation (parameters, request body and responses)
// from the HTTP metadata carried by the operation's properties.
package httpop

import (
	"github.com/speakeasy-api/schemagraph/sequencedmap"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

// DefaultStatusCode is used for responses that do not declare a status code property.
const (
	DefaultStatusCode   = "200"
	NoContentStatusCode = "204"
)

// Operation is the HTTP view of a typegraph operation.
type Operation struct {
	Operation  *typegraph.Operation
	Parameters Parameters
	Responses  []*Response
}

// Parameters holds the request side of an operation.
type Parameters struct {
	// Body is nil when the operation sends no request body.
	Body       *Body
	Parameters []*Parameter
}

// Body is a request or response payload.
type Body struct {
	Type typegraph.Type
	// Property is the explicit body property, nil when the body is implicit.
	Property *typegraph.ModelProperty
	// Spread reports that the body was assembled from the un-annotated parameters of the operation.
	Spread bool
}

// Parameter is a path, query, header or cookie parameter.
type Parameter struct {
	Name     string
	Kind     typegraph.HTTPKind
	Property *typegraph.ModelProperty
}

// Response groups the status responses produced by one return type.
type Response struct {
	Type      typegraph.Type
	Responses []*StatusResponse
}

// StatusResponse is the content returned with a single status code.
type StatusResponse struct {
	StatusCode string
	// Body is nil when the response carries no payload.
	Body    *Body
	Headers *sequencedmap.Map[string, *typegraph.ModelProperty]
}

// Resolver resolves the HTTP shape of an operation.
type Resolver interface {
	Resolve(op *typegraph.Operation) (*Operation, error)
}

// SpreadModel returns the named model a spread body was assembled from, following the source
// properties of the body back to their declarations. Explicit bodies and bodies that do not
// match a single named model are returned unchanged.
func SpreadModel(body *Body) typegraph.Type {
	if body == nil {
		return nil
	}
	m, ok := body.Type.(*typegraph.Model)
	if !ok || !body.Spread || body.Property != nil {
		return body.Type
	}
	return typegraph.EffectiveModelType(m, nil)
}
