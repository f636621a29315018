package parser

import (
	"bytes"
	"strconv"
	"strings"

	"go-candidates-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads candidate fields out of an uploaded workbook. The
// contract is strictly positional: row 1 is assumed to be a header and is
// never inspected, row 2 is the data row, columns A/B/C are seniority,
// years of experience and availability in that order.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(data []byte) (*domain.SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewParseError("Error parsing Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewParseError("Excel file must contain at least one sheet", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.NewParseError("Error parsing Excel file", err)
	}
	if len(rows) < 2 {
		return nil, domain.NewParseError("Excel file must contain at least one data row", nil)
	}

	row := rows[1]
	if len(row) < 3 {
		return nil, domain.NewParseError("Excel row must contain 3 columns: Seniority, Years of Experience, Availability", nil)
	}

	seniority, err := parseSeniority(row[0])
	if err != nil {
		return nil, err
	}
	years, err := parseYearsOfExperience(row[1])
	if err != nil {
		return nil, err
	}
	availability, err := parseAvailability(row[2])
	if err != nil {
		return nil, err
	}

	return &domain.SheetData{
		Seniority:         seniority,
		YearsOfExperience: years,
		Availability:      availability,
	}, nil
}

func parseSeniority(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "junior", "senior":
		return trimmed, nil
	default:
		return "", domain.NewParseError(`Seniority must be "Junior" or "Senior"`, nil)
	}
}

func parseYearsOfExperience(value string) (float64, error) {
	years, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || years < 0 {
		return 0, domain.NewParseError("Years of experience must be a non-negative number", nil)
	}
	return years, nil
}

func parseAvailability(value string) (bool, error) {
	// Boolean cells come back from excelize as "TRUE"/"FALSE" strings.
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, domain.NewParseError("Availability must be true or false", nil)
	}
}
