package llm

import "github.com/docstream-pl/bailiff-extract/constants"

// BuildGeneralInfoSchema returns the JSON-Schema (draft 2020-12 subset) for
// the personal/case extraction call, as a generic map. We pass it to the
// model as a structured output constraint and also use it locally to
// validate the response.
func BuildGeneralInfoSchema() map[string]any {
	distrainee := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"lastName":    map[string]any{"type": "string", "minLength": 1},
			"peselNumber": map[string]any{"type": "string"},
			"nipNumber":   map[string]any{"type": "string"},
		},
		"required": []string{"name", "lastName"},
	}
	bailiff := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"lastName":    map[string]any{"type": "string", "minLength": 1},
			"phoneNumber": map[string]any{"type": "string"},
			"mail":        map[string]any{"type": "string"},
		},
		"required": []string{"name", "lastName"},
	}
	caseDetails := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"kmNumber":              map[string]any{"type": "string", "minLength": 1},
			"bankAccountNumber":     map[string]any{"type": "string"},
			"companyIdentification": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"kmNumber", "companyIdentification"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"personalInfo": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"distrainee": distrainee,
					"bailiff":    bailiff,
				},
				"required": []string{"distrainee", "bailiff"},
			},
			"caseDetails": caseDetails,
		},
		"required": []string{"personalInfo", "caseDetails"},
	}
}

// BuildCostInfoSchema returns the JSON-Schema for the cost extraction call.
// Every category is optional and numeric; the derived sum is deliberately
// NOT part of the schema, so the model can never supply it.
func BuildCostInfoSchema() map[string]any {
	props := make(map[string]any, len(constants.CostFields))
	for _, f := range constants.CostFields {
		props[f] = amountProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{},
	}
}

func amountProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0}
}
