package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas by Schema.Name. Names must be unique per definition;
// roadmap schemas for non-default level counts carry the count in the name.
var compiledSchemas sync.Map

// checkContent validates provider output against the request schema.
// When validation fails on output that stopped at the token limit the
// error is *ErrMaxTokensExceeded: the retry layer gives up on it instead of
// asking again with the same budget.
func checkContent(req Request, content json.RawMessage, stopReason string) error {
	if req.Schema == nil {
		return nil
	}
	err := req.Schema.validate(content)
	if err != nil && stopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return err
}

// validate reports *ErrInvalidResponse when raw is not JSON or does not
// match the schema.
func (s *Schema) validate(raw json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	sch, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: %w", s.Name, err)}
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if v, ok := compiledSchemas.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps of arbitrary types.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", s.Name, err)
	}

	url := "mem://pathwise/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	v, _ := compiledSchemas.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}
