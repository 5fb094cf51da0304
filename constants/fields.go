package constants

// Cost field keys as they appear in the extraction schema and the stored JSON.
const (
	FieldPrincipal                  = "principal"
	FieldInterest                   = "interest"
	FieldCourtCosts                 = "courtCosts"
	FieldClauseCosts                = "clauseCosts"
	FieldCostsOfPreviousEnforcement = "costsOfPreviousEnforcement"
	FieldExecutionFee               = "executionFee"
	FieldCashExpenses               = "cashExpenses"
	FieldEnforcementCosts           = "enforcementCosts"
	FieldAlimonyArrears             = "alimonyArrears"
	FieldDeposit                    = "deposit"
	FieldOther                      = "other"
	FieldTransferFee                = "transferFee"
)

// CostFields lists the cost categories in schema declaration order.
// The transfer fee stays last: it is the per-transaction charge and is
// never part of the base sum.
var CostFields = []string{
	FieldPrincipal,
	FieldInterest,
	FieldCourtCosts,
	FieldClauseCosts,
	FieldCostsOfPreviousEnforcement,
	FieldExecutionFee,
	FieldCashExpenses,
	FieldEnforcementCosts,
	FieldAlimonyArrears,
	FieldDeposit,
	FieldOther,
	FieldTransferFee,
}

// Identifier lengths after whitespace stripping.
const (
	BankAccountLength = 26 // NRB account number
	PESELLength       = 11
	NIPLength         = 10
)

// SheetColumns is the fixed column order for spreadsheet rows. The order is a
// configuration contract with downstream consumers; change it only together
// with the deployed workbook.
var SheetColumns = []string{
	"File link",
	"Company",
	"Distrainee",
	"PESEL",
	"NIP",
	"Bailiff",
	"Bailiff phone",
	"KM number",
	"Bank account",
	"Sum of all costs",
	"Principal",
	"Interest",
	"Court costs",
	"Clause costs",
	"Costs of previous enforcement",
	"Execution fee",
	"Cash expenses",
	"Enforcement costs",
	"Alimony arrears",
	"Deposit",
	"Other",
	"Transfer fee",
}
