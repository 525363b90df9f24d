package httpop

import (
	"fmt"
	"strconv"

	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/sequencedmap"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

const (
	ErrNilOperation  errors.Error = "operation is nil"
	ErrDuplicateBody errors.Error = "operation declares more than one body"
)

// DefaultResolver derives operation shapes from the HTTP kind of each property.
type DefaultResolver struct{}

var _ Resolver = DefaultResolver{}

// Resolve implements Resolver.
func (DefaultResolver) Resolve(op *typegraph.Operation) (*Operation, error) {
	if op == nil {
		return nil, ErrNilOperation
	}

	params, err := resolveParameters(op)
	if err != nil {
		return nil, fmt.Errorf("resolving parameters of %s: %w", typegraph.FullName(op), err)
	}

	responses, err := resolveResponses(op.ReturnType)
	if err != nil {
		return nil, fmt.Errorf("resolving responses of %s: %w", typegraph.FullName(op), err)
	}

	return &Operation{
		Operation:  op,
		Parameters: params,
		Responses:  responses,
	}, nil
}

func resolveParameters(op *typegraph.Operation) (Parameters, error) {
	var params Parameters
	if op.Parameters == nil {
		return params, nil
	}

	var unannotated []*typegraph.ModelProperty
	for _, prop := range op.Parameters.Properties.All() {
		switch prop.HTTP {
		case typegraph.HTTPBody, typegraph.HTTPBodyRoot, typegraph.HTTPMultipartBody:
			if params.Body != nil {
				return params, ErrDuplicateBody.Wrap(fmt.Errorf("property %q", prop.Name))
			}
			params.Body = &Body{Type: prop.Type, Property: prop}
		case typegraph.HTTPPath, typegraph.HTTPQuery, typegraph.HTTPHeader, typegraph.HTTPCookie:
			params.Parameters = append(params.Parameters, &Parameter{
				Name:     prop.Name,
				Kind:     prop.HTTP,
				Property: prop,
			})
		case typegraph.HTTPStatusCode:
		default:
			unannotated = append(unannotated, prop)
		}
	}

	if len(unannotated) == 0 {
		return params, nil
	}
	if params.Body != nil {
		return params, ErrDuplicateBody.Wrap(fmt.Errorf("property %q is not annotated while %q is the body", unannotated[0].Name, params.Body.Property.Name))
	}

	spread := typegraph.NewModel("", op.Namespace)
	spread.Origin = op.Origin
	for _, prop := range unannotated {
		spread.AddProperty(&typegraph.ModelProperty{
			Node:           typegraph.Node{Origin: prop.Origin, Decorators: prop.Decorators, Source: prop.Source},
			Name:           prop.Name,
			Type:           prop.Type,
			Optional:       prop.Optional,
			DefaultValue:   prop.DefaultValue,
			Visibility:     prop.Visibility,
			SourceProperty: prop,
		})
	}
	params.Body = &Body{Type: spread, Spread: true}

	return params, nil
}

func resolveResponses(returnType typegraph.Type) ([]*Response, error) {
	if returnType == nil {
		return nil, nil
	}

	if u, ok := returnType.(*typegraph.Union); ok {
		responses := make([]*Response, 0, len(u.Variants))
		for _, v := range u.Variants {
			resp, err := resolveResponse(v.Type)
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			responses = append(responses, resp)
		}
		return responses, nil
	}

	resp, err := resolveResponse(returnType)
	if err != nil {
		return nil, err
	}
	return []*Response{resp}, nil
}

func resolveResponse(t typegraph.Type) (*Response, error) {
	status := &StatusResponse{
		StatusCode: DefaultStatusCode,
		Headers:    sequencedmap.New[string, *typegraph.ModelProperty](),
	}
	resp := &Response{Type: t, Responses: []*StatusResponse{status}}

	switch t := t.(type) {
	case *typegraph.Intrinsic:
		if t.Name == "void" {
			status.StatusCode = NoContentStatusCode
			return resp, nil
		}
		status.Body = &Body{Type: t}
	case *typegraph.Model:
		hasPayload := t.Indexer != nil
		for _, prop := range t.Properties.All() {
			switch prop.HTTP {
			case typegraph.HTTPHeader:
				status.Headers.Set(prop.Name, prop)
			case typegraph.HTTPStatusCode:
				status.StatusCode = statusCodeOf(prop.Type)
			case typegraph.HTTPBody, typegraph.HTTPBodyRoot, typegraph.HTTPMultipartBody:
				if status.Body != nil {
					return nil, ErrDuplicateBody.Wrap(fmt.Errorf("property %q", prop.Name))
				}
				status.Body = &Body{Type: prop.Type, Property: prop}
			default:
				if !typegraph.IsMetadata(prop) {
					hasPayload = true
				}
			}
		}
		if status.Body == nil && hasPayload {
			status.Body = &Body{Type: t}
		}
	default:
		status.Body = &Body{Type: t}
	}

	return resp, nil
}

func statusCodeOf(t typegraph.Type) string {
	switch t := t.(type) {
	case *typegraph.NumericLiteral:
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	case *typegraph.Union:
		for _, v := range t.Variants {
			if lit, ok := v.Type.(*typegraph.NumericLiteral); ok {
				return strconv.FormatFloat(lit.Value, 'f', -1, 64)
			}
		}
	}
	return DefaultStatusCode
}
