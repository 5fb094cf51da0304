package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstream-pl/bailiff-extract/internal/llm"
)

func ptr(v float64) *float64 { return &v }

func sampleGeneral() llm.GeneralInfo {
	return llm.GeneralInfo{
		PersonalInfo: llm.PersonalInfo{
			Distrainee: llm.Distrainee{
				Name:        "jan",
				LastName:    "KOWALSKI",
				PESELNumber: "02070803628",
			},
			Bailiff: llm.Bailiff{
				Name:        "adam",
				LastName:    "nowak",
				PhoneNumber: "601 202 303",
			},
		},
		CaseDetails: llm.CaseDetails{
			KMNumber:              "1234/24",
			BankAccountNumber:     "12 3456 7890 1234 5678 9012 3456",
			CompanyIdentification: "Ever Sp. z o.o.",
		},
	}
}

func TestMergeDerivesSumAndNormalizesNames(t *testing.T) {
	costs := llm.CostInfo{
		Principal:   ptr(100),
		Interest:    ptr(50),
		TransferFee: ptr(5),
	}

	rec := Merge(sampleGeneral(), costs)

	assert.Equal(t, "Jan", rec.PersonalInfo.Distrainee.Name)
	assert.Equal(t, "Kowalski", rec.PersonalInfo.Distrainee.LastName)
	assert.Equal(t, "Adam", rec.PersonalInfo.Bailiff.Name)
	assert.InDelta(t, 160.00, rec.Financials.SumOfAllCosts, 1e-9)
}

func TestJSONOmitsAbsentFields(t *testing.T) {
	general := sampleGeneral()
	general.PersonalInfo.Distrainee.NIPNumber = "" // not detected
	rec := Merge(general, llm.CostInfo{Principal: ptr(250)})

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	distrainee := m["personalInfo"].(map[string]any)["distrainee"].(map[string]any)
	_, hasNIP := distrainee["nipNumber"]
	assert.False(t, hasNIP, "absent identifier must be omitted, not empty")

	financials := m["financials"].(map[string]any)
	assert.Contains(t, financials, "principal")
	assert.NotContains(t, financials, "interest")
	assert.Contains(t, financials, "sumOfAllCosts")
}

func TestWriteJSONUsesTwoSpaceIndent(t *testing.T) {
	dir := t.TempDir()
	rec := Merge(sampleGeneral(), llm.CostInfo{Principal: ptr(10)})

	path, err := rec.WriteJSON(dir, "Zawiadomienie Kowalski")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Zawiadomienie Kowalski.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "{\n  \"personalInfo\"")

	var back ExtractedRecord
	require.NoError(t, json.Unmarshal(b, &back))
	assert.InDelta(t, rec.Financials.SumOfAllCosts, back.Financials.SumOfAllCosts, 1e-9)
}

func TestRowColumnOrder(t *testing.T) {
	costs := llm.CostInfo{
		Principal:   ptr(100),
		Interest:    ptr(50),
		TransferFee: ptr(5),
	}
	rec := Merge(sampleGeneral(), costs)

	row := rec.Row("/data/zawiadomienie.pdf")

	assert.Equal(t, "/data/zawiadomienie.pdf", row[0])
	assert.Equal(t, "Ever Sp. z o.o.", row[1])
	assert.Equal(t, "Jan Kowalski", row[2])
	assert.Equal(t, "02070803628", row[3])
	assert.Equal(t, "", row[4]) // NIP absent
	assert.Equal(t, "Adam Nowak", row[5])
	assert.Equal(t, "601 202 303", row[6])
	assert.Equal(t, "1234/24", row[7])
	assert.Equal(t, "12 3456 7890 1234 5678 9012 3456", row[8])
	assert.InDelta(t, 160.00, row[9].(float64), 1e-9)
	assert.InDelta(t, 100.0, row[10].(float64), 1e-9) // principal
	assert.InDelta(t, 50.0, row[11].(float64), 1e-9)  // interest
	assert.Equal(t, "", row[12])                      // courtCosts absent -> empty cell
	assert.InDelta(t, 5.0, row[len(row)-1].(float64), 1e-9)
	assert.Len(t, row, 22)
}

func TestRowAnnotatesInvalidIdentifiers(t *testing.T) {
	general := sampleGeneral()
	general.PersonalInfo.Distrainee.PESELNumber = "123"
	general.CaseDetails.BankAccountNumber = "12 3456"
	rec := Merge(general, llm.CostInfo{})

	row := rec.Row("link")
	assert.Contains(t, row[3].(string), "NEEDS MANUAL REVIEW: 123")
	assert.Contains(t, row[8].(string), "NEEDS MANUAL REVIEW: 12 3456")
}
