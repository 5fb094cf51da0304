// Package record assembles the final structured output of one document run
// and hands it to the output sinks as an immutable value.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docstream-pl/bailiff-extract/constants"
	"github.com/docstream-pl/bailiff-extract/internal/common"
	"github.com/docstream-pl/bailiff-extract/internal/llm"
	"github.com/docstream-pl/bailiff-extract/internal/reconcile"
)

// Financials carries the indicated amounts plus the derived total. The sum is
// always computed by reconciliation, never supplied by extraction.
type Financials struct {
	llm.CostInfo
	SumOfAllCosts float64 `json:"sumOfAllCosts"`
}

// ExtractedRecord is the final structured output per document.
type ExtractedRecord struct {
	PersonalInfo llm.PersonalInfo `json:"personalInfo"`
	CaseDetails  llm.CaseDetails  `json:"caseDetails"`
	Financials   Financials       `json:"financials"`
}

// Merge combines the two extraction halves into one record, normalizes the
// name fields and derives the cost total.
func Merge(general llm.GeneralInfo, costs llm.CostInfo) ExtractedRecord {
	general.PersonalInfo.Distrainee.Name = CapitalizeName(general.PersonalInfo.Distrainee.Name)
	general.PersonalInfo.Distrainee.LastName = CapitalizeName(general.PersonalInfo.Distrainee.LastName)
	general.PersonalInfo.Bailiff.Name = CapitalizeName(general.PersonalInfo.Bailiff.Name)
	general.PersonalInfo.Bailiff.LastName = CapitalizeName(general.PersonalInfo.Bailiff.LastName)

	return ExtractedRecord{
		PersonalInfo: general.PersonalInfo,
		CaseDetails:  general.CaseDetails,
		Financials: Financials{
			CostInfo:      costs,
			SumOfAllCosts: reconcile.SumOfAllCosts(costs.Amounts()),
		},
	}
}

// WriteJSON persists the record as <dir>/<docName>.json with 2-space
// indentation and returns the written path.
func (r ExtractedRecord) WriteJSON(dir, docName string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create json dir: %w", err)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	path := filepath.Join(dir, common.SafeFileName(docName)+".json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return path, nil
}

// Row flattens the record into the fixed spreadsheet column order
// (constants.SheetColumns). Identifier fields that fail their length checks
// are replaced with a manual-review annotation; absent cost fields become
// empty cells, distinguishing "unknown" from an indicated zero.
func (r ExtractedRecord) Row(fileLink string) []any {
	d := r.PersonalInfo.Distrainee
	b := r.PersonalInfo.Bailiff

	row := []any{
		fileLink,
		r.CaseDetails.CompanyIdentification,
		FullName(d.Name, d.LastName),
		identifierCell(d.PESELNumber, constants.PESELLength),
		identifierCell(d.NIPNumber, constants.NIPLength),
		FullName(b.Name, b.LastName),
		b.PhoneNumber,
		r.CaseDetails.KMNumber,
		identifierCell(r.CaseDetails.BankAccountNumber, constants.BankAccountLength),
		r.Financials.SumOfAllCosts,
	}

	amounts := r.Financials.Amounts()
	for _, field := range constants.CostFields {
		if v, ok := amounts[field]; ok {
			row = append(row, v)
		} else {
			row = append(row, "")
		}
	}
	return row
}
