// Package export flattens entity collections into CSV or JSON documents.
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesseract-hub/property-service/internal/models"
)

// Format is an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts csv or json, defaulting to csv
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", models.ErrValidation, raw)
}

// ContentType returns the MIME type of f
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

const dateLayout = "2006-01-02"

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// columns holds the fixed column order per collection
var columns = map[string][]string{
	models.CollectionProperties:   {"ID", "Name", "Address", "Type", "Units", "Occupied", "Monthly Revenue", "Purchase Price"},
	models.CollectionTenants:      {"ID", "Name", "Email", "Phone", "Property", "Unit", "Rent", "Lease Start", "Lease End", "Balance", "Status"},
	models.CollectionWorkOrders:   {"ID", "Issue", "Property", "Unit", "Tenant", "Priority", "Status", "Date Submitted", "Date Completed", "Assigned To", "Estimated Cost"},
	models.CollectionTransactions: {"ID", "Date", "Description", "Type", "Amount", "Category", "Status", "Property", "Unit", "Tenant"},
	models.CollectionDocuments:    {"ID", "Name", "Category", "Property", "Date Added", "Content Type", "Size"},
	models.CollectionApplications: {"ID", "First Name", "Last Name", "Email", "Phone", "Property", "Desired Unit", "Desired Move-In", "Monthly Income", "Status", "Submitted Date", "Tenant ID"},
}

// Columns returns the header row of collection
func Columns(collection string) ([]string, error) {
	cols, ok := columns[collection]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", models.ErrNotFound, collection)
	}
	return append([]string{}, cols...), nil
}

// Rows flattens one collection of the snapshot, header first
func Rows(s *models.Snapshot, collection string) ([][]string, error) {
	header, err := Columns(collection)
	if err != nil {
		return nil, err
	}
	out := [][]string{header}

	switch collection {
	case models.CollectionProperties:
		for _, p := range s.Properties {
			out = append(out, []string{p.ID, p.Name, p.Address, string(p.Type), strconv.Itoa(p.Units),
				strconv.Itoa(p.Occupied), money(p.MonthlyRevenue), money(p.PurchasePrice)})
		}
	case models.CollectionTenants:
		for _, t := range s.Tenants {
			out = append(out, []string{t.ID, t.Name, t.Email, t.Phone, t.Property, t.Unit, money(t.Rent),
				date(t.LeaseStart), date(t.LeaseEnd), money(t.Balance), string(t.Status)})
		}
	case models.CollectionWorkOrders:
		for _, w := range s.WorkOrders {
			completed := ""
			if w.DateCompleted != nil {
				completed = date(*w.DateCompleted)
			}
			out = append(out, []string{w.ID, w.Issue, w.Property, w.Unit, w.Tenant, string(w.Priority),
				string(w.Status), date(w.DateSubmitted), completed, w.AssignedTo, money(w.EstimatedCost)})
		}
	case models.CollectionTransactions:
		for _, t := range s.Transactions {
			out = append(out, []string{t.ID, date(t.Date), t.Description, string(t.Type), money(t.Amount),
				t.Category, string(t.Status), t.Property, t.Unit, t.Tenant})
		}
	case models.CollectionDocuments:
		for _, d := range s.Documents {
			out = append(out, []string{d.ID, d.Name, string(d.Category), d.Property, date(d.DateAdded),
				d.ContentType, strconv.FormatInt(d.Size, 10)})
		}
	case models.CollectionApplications:
		for _, a := range s.Applications {
			out = append(out, []string{a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.PropertyName,
				a.DesiredUnit, date(a.DesiredMoveInDate), money(a.MonthlyIncome), string(a.Status),
				date(a.SubmittedDate), a.TenantID})
		}
	}
	return out, nil
}

// WriteCSV writes records with every field double-quoted and embedded quotes doubled
func WriteCSV(w io.Writer, records [][]string) error {
	bw := bufio.NewWriter(w)
	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Collection encodes one collection of the snapshot in the requested format
func Collection(s *models.Snapshot, collection string, format Format) ([]byte, error) {
	if format == FormatJSON {
		if _, err := Columns(collection); err != nil {
			return nil, err
		}
		return JSON(collectionValue(s, collection))
	}

	rows, err := Rows(s, collection)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON encodes any value as an indented document
func JSON(data interface{}) ([]byte, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return jsonData, nil
}

func collectionValue(s *models.Snapshot, collection string) interface{} {
	switch collection {
	case models.CollectionProperties:
		return s.Properties
	case models.CollectionTenants:
		return s.Tenants
	case models.CollectionWorkOrders:
		return s.WorkOrders
	case models.CollectionTransactions:
		return s.Transactions
	case models.CollectionDocuments:
		return s.Documents
	case models.CollectionApplications:
		return s.Applications
	}
	return nil
}

// Filename returns the download name of an export
func Filename(collection string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", collection, now.Format(dateLayout), format)
}
