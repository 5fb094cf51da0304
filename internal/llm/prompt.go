package llm

import "strings"

// TransferFeeTriggerPhrase marks a per-transaction transfer fee in the
// source documents; the amount that follows it must land in transferFee.
const TransferFeeTriggerPhrase = "Do każdej przekazywanej kwoty należy doliczyć opłatę za przelew"

// BuildGeneralInfoPrompt composes the system message for the personal/case
// extraction call. The rules encode how Polish enforcement notices phrase
// things, so the wording here is part of the extraction contract.
func BuildGeneralInfoPrompt() string {
	parts := []string{
		"You are an expert in parsing bailiff enforcement data from OCR text.",
		"Extract the relevant information and structure it according to the provided schema. Return ONLY JSON that matches the schema.",
		"peselNumber and nipNumber may be missing from the document; when not present, omit the key entirely and never invent a value.",
		"companyIdentification is always a company name as a string. It mostly begins with names like 'Ever', 'Rotero', 'Universal', 'Proscan' or other companies ending with 'z o.o.'. Never treat entities with 'Fundusz' in their name as the proper company.",
		"In kmNumber do not write the letters 'Km' as a prefix. Rarely the number is provided as 'Numer zawiadomienia'.",
		"Write name and lastName capitalized: first letter upper case, the rest lower case, e.g. 'Jan', 'Kowalski'.",
		"Format bankAccountNumber as '00 0000 0000 0000 0000 0000 0000', remember to place the spaces.",
		"Format phoneNumber as '000 000 000' (three space-separated triplets); strip a leading zero before grouping.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildCostInfoPrompt composes the system message for the cost extraction
// call.
func BuildCostInfoPrompt() string {
	parts := []string{
		"You are an expert in parsing bailiff enforcement cost data from OCR text.",
		"Extract the indicated amounts and structure them according to the provided schema. Return ONLY JSON that matches the schema.",
		"Ensure all amounts are numbers, not strings.",
		"Some terms vary in Polish: 'Koszty procesu' and 'Koszty sądowe' refer to the same costs but are written differently; both belong in courtCosts.",
		"'Koszty klauzuli' are rare, expect them to be mostly absent; they are always written literally as 'Koszty klauzuli' and belong in clauseCosts.",
		"Map 'Należność główna' to principal, 'Odsetki ...' to interest, 'Koszty poprzedniej egzekucji' to costsOfPreviousEnforcement, 'Opłata egzekucyjna' to executionFee, 'Wydatki gotówkowe' to cashExpenses, 'Koszty egzekucyjne' to enforcementCosts, 'Zaległość alimentacyjna' to alimonyArrears, 'Depozyt' to deposit.",
		"Only when a cost line fits none of the schema categories, add it to 'other'; if several such lines appear, sum them all into 'other'. Use 'other' strictly as a last resort.",
		"Detect whether the phrase '" + TransferFeeTriggerPhrase + " ...' appears in the OCR text. If it does, extract the fee amount mentioned after this phrase into transferFee.",
		"Never compute totals yourself; report only the amounts as indicated.",
		"Never output null. If a category is not indicated, omit the key.",
	}
	return strings.Join(parts, " ")
}
