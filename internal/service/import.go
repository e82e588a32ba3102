package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

var requiredCSVHeaders = []string{"name"}

// ImportCSV reads companies from a CSV export and saves them through the same
// upsert path as discovered leads. Blank names are skipped; malformed numbers
// reject the whole file.
func (s *LeadsService) ImportCSV(ctx context.Context, r io.Reader, userID *uuid.UUID) (dto.ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ImportSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return dto.ImportSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	index, err := buildHeaderIndex(header)
	if err != nil {
		return dto.ImportSummary{}, err
	}

	var (
		leads  []dto.Lead
		rowNum = 1
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dto.ImportSummary{}, fmt.Errorf("read csv row: %w", err)
		}
		rowNum++

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := cell("name")
		if name == "" {
			continue
		}
		employees, err := parseOptionalInt(cell("employee_count"))
		if err != nil {
			return dto.ImportSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid employee_count value on row %d", rowNum)}
		}
		funding, err := parseAmount(cell("total_funding"))
		if err != nil {
			return dto.ImportSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid total_funding value on row %d", rowNum)}
		}

		leads = append(leads, dto.Lead{
			Company:       name,
			Website:       cell("website"),
			Domain:        cell("domain"),
			Industry:      cell("industry"),
			FundingStage:  cell("funding_stage"),
			Location:      cell("location"),
			EmployeeCount: employees,
			TotalFunding:  funding,
			Description:   cell("description"),
			Phone:         cell("phone"),
			LinkedInURL:   cell("linkedin_url"),
			Source:        "csv_import",
		})
	}

	summary := s.saveBatch(ctx, leads, userID, "csv_import")
	return dto.ImportSummary{Rows: rowNum - 1, Results: summary}, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		key = strings.ReplaceAll(key, " ", "_")
		if key == "company" || key == "company_name" {
			key = "name"
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func parseOptionalInt(value string) (int, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// parseAmount accepts plain integers plus "$", "," and K/M/B suffixes.
func parseAmount(value string) (int64, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0, nil
	}
	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "B"):
		multiplier = 1e9
	case strings.HasSuffix(value, "M"):
		multiplier = 1e6
	case strings.HasSuffix(value, "K"):
		multiplier = 1e3
	}
	if multiplier != 1 {
		value = value[:len(value)-1]
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	return int64(f * multiplier), nil
}
