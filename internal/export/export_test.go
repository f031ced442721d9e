package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/models"
)

func TestWriteCSV_QuotesEverything(t *testing.T) {
	var sb strings.Builder
	err := WriteCSV(&sb, [][]string{
		{"Name", "Note"},
		{`The "Grand" Lofts`, "a,b"},
		{"", "plain"},
	})
	require.NoError(t, err)

	want := "\"Name\",\"Note\"\n" +
		"\"The \"\"Grand\"\" Lofts\",\"a,b\"\n" +
		"\"\",\"plain\"\n"
	assert.Equal(t, want, sb.String())
}

func TestRows_FixedColumnOrder(t *testing.T) {
	s := &models.Snapshot{
		Tenants: []models.Tenant{{
			ID:       "t1",
			Name:     "Jane",
			Property: "Maple Court",
			Unit:     "2A",
			Rent:     1250.5,
			LeaseEnd: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			Balance:  -100,
			Status:   models.TenantStatusCurrent,
		}},
	}

	rows, err := Rows(s, models.CollectionTenants)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lease End", rows[0][8])
	assert.Equal(t, []string{"t1", "Jane", "", "", "Maple Court", "2A", "1250.50", "", "2026-12-31", "-100.00", "Current"}, rows[1])
}

func TestCollection(t *testing.T) {
	s := &models.Snapshot{
		Properties: []models.Property{{ID: "p1", Name: "Maple Court", Type: models.PropertyTypeResidential, Units: 4, Occupied: 3, MonthlyRevenue: 4800}},
	}

	csvData, err := Collection(s, models.CollectionProperties, FormatCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"p1","Maple Court","","residential","4","3","4800.00","0.00"`, lines[1])

	jsonData, err := Collection(s, models.CollectionProperties, FormatJSON)
	require.NoError(t, err)
	var decoded []models.Property
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, s.Properties, decoded)

	_, err = Collection(s, "owners", FormatCSV)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = Collection(s, "owners", FormatJSON)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, "application/json", f.ContentType())

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEveryCollectionHasColumns(t *testing.T) {
	for _, c := range models.Collections {
		cols, err := Columns(c)
		require.NoError(t, err, c)
		assert.Equal(t, "ID", cols[0])
	}
}
