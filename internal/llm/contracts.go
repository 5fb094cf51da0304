package llm

import (
	"context"

	"github.com/docstream-pl/bailiff-extract/constants"
)

// Distrainee is the debtor subject to enforcement. Identification numbers are
// free-form strings so leading zeros survive extraction.
type Distrainee struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	PESELNumber string `json:"peselNumber,omitempty"`
	NIPNumber   string `json:"nipNumber,omitempty"`
}

// Bailiff is the enforcement officer issuing the document.
type Bailiff struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Mail        string `json:"mail,omitempty"`
}

type PersonalInfo struct {
	Distrainee Distrainee `json:"distrainee"`
	Bailiff    Bailiff    `json:"bailiff"`
}

type CaseDetails struct {
	KMNumber              string `json:"kmNumber"`
	BankAccountNumber     string `json:"bankAccountNumber,omitempty"`
	CompanyIdentification string `json:"companyIdentification"`
}

// GeneralInfo is the result of the first extraction call: personal and case
// fields, no financials.
type GeneralInfo struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	CaseDetails  CaseDetails  `json:"caseDetails"`
}

// CostInfo is the result of the second extraction call. Every field is
// optional; a nil pointer means the category was not indicated in the
// document, which is distinct from an indicated zero amount.
type CostInfo struct {
	Principal                  *float64 `json:"principal,omitempty"`
	Interest                   *float64 `json:"interest,omitempty"`
	CourtCosts                 *float64 `json:"courtCosts,omitempty"`
	ClauseCosts                *float64 `json:"clauseCosts,omitempty"`
	CostsOfPreviousEnforcement *float64 `json:"costsOfPreviousEnforcement,omitempty"`
	ExecutionFee               *float64 `json:"executionFee,omitempty"`
	CashExpenses               *float64 `json:"cashExpenses,omitempty"`
	EnforcementCosts           *float64 `json:"enforcementCosts,omitempty"`
	AlimonyArrears             *float64 `json:"alimonyArrears,omitempty"`
	Deposit                    *float64 `json:"deposit,omitempty"`
	Other                      *float64 `json:"other,omitempty"`
	TransferFee                *float64 `json:"transferFee,omitempty"`
}

// Amounts returns the indicated cost categories as a map keyed by schema
// field name, containing only fields that are present.
func (c CostInfo) Amounts() map[string]float64 {
	out := make(map[string]float64, 12)
	put := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}
	put(constants.FieldPrincipal, c.Principal)
	put(constants.FieldInterest, c.Interest)
	put(constants.FieldCourtCosts, c.CourtCosts)
	put(constants.FieldClauseCosts, c.ClauseCosts)
	put(constants.FieldCostsOfPreviousEnforcement, c.CostsOfPreviousEnforcement)
	put(constants.FieldExecutionFee, c.ExecutionFee)
	put(constants.FieldCashExpenses, c.CashExpenses)
	put(constants.FieldEnforcementCosts, c.EnforcementCosts)
	put(constants.FieldAlimonyArrears, c.AlimonyArrears)
	put(constants.FieldDeposit, c.Deposit)
	put(constants.FieldOther, c.Other)
	put(constants.FieldTransferFee, c.TransferFee)
	return out
}

// Get returns the amount for a schema field name, if present.
func (c CostInfo) Get(key string) (float64, bool) {
	v, ok := c.Amounts()[key]
	return v, ok
}

// FieldExtractor is the interface the pipeline depends on. The two calls run
// independently; a failure in either fails the whole document's extraction.
// Implementations return the raw JSON payload alongside the parsed value for
// audit logging.
type FieldExtractor interface {
	ExtractGeneralInfo(ctx context.Context, ocrText string) (GeneralInfo, []byte, error)
	ExtractCostInfo(ctx context.Context, ocrText string) (CostInfo, []byte, error)
}
