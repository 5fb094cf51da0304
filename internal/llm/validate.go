package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docstream-pl/bailiff-extract/internal/common"
)

// Schema pairs the map form sent to the model with its compiled validator.
// Both extraction schemas are static, so each compiles exactly once at
// package init rather than per document.
type Schema struct {
	Name     string
	Document map[string]any
	compiled *jsonschema.Schema
}

var (
	GeneralInfoSchema = mustCompile("general_information", BuildGeneralInfoSchema())
	CostInfoSchema    = mustCompile("costs_information", BuildCostInfoSchema())
)

func mustCompile(name string, doc map[string]any) *Schema {
	b, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("marshal %s schema: %v", name, err))
	}
	return &Schema{
		Name:     name,
		Document: doc,
		compiled: jsonschema.MustCompileString(name+".json", string(b)),
	}
}

// Validate checks data against the compiled schema. A payload that does not
// decode or does not conform is classified as malformed extraction output.
func (s *Schema) Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.NewAppError("LLM_DECODE",
			fmt.Sprintf("decode %s payload: %v", s.Name, err), common.ErrExtractionMalformed)
	}
	if err := s.compiled.Validate(v); err != nil {
		return common.NewAppError("LLM_SCHEMA", err.Error(), common.ErrExtractionMalformed)
	}
	return nil
}
