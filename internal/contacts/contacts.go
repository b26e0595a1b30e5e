package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/logger"
	"github.com/ryan-gang/outreach-send/internal/util"
	"github.com/xuri/excelize/v2"
)

// Column positions in the contact sheet. The first row is a header.
const (
	NameColumn    = 0
	MarkerColumn  = 2
	AddressColumn = 3

	Marker = "email"
)

// Contact is one organization to reach out to
type Contact struct {
	Name    string
	Address string
}

// ContactSource yields the contacts for a campaign run
type ContactSource interface {
	Extract(ctx context.Context) []Contact
}

// Extractor reads contacts from a spreadsheet workbook
type Extractor struct {
	path   string
	sheet  string
	logger logger.LoggerInterface
}

func NewExtractor(cfg config.ConfigProvider, log logger.LoggerInterface) *Extractor {
	return &Extractor{
		path:   cfg.GetFilePath(),
		sheet:  cfg.GetSheetName(),
		logger: log,
	}
}

// Extract returns the eligible contacts in sheet order. Read failures are
// logged and produce an empty result.
func (e *Extractor) Extract(ctx context.Context) []Contact {
	rows, err := e.readRows(ctx)
	if err != nil {
		e.logger.Error(util.FormatError(util.ContactsError, "reading "+e.path, err))
		return []Contact{}
	}
	if len(rows) == 0 {
		return []Contact{}
	}

	contacts := Select(rows[1:])
	e.logger.Infof("Found %d valid contacts in %s (sheet %q)", len(contacts), e.path, e.sheet)
	return contacts
}

func (e *Extractor) readRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(e.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", e.sheet, err)
	}
	return rows, nil
}

// Select keeps rows whose marker column equals "email" in any letter case and
// whose name column is set, projecting them to contacts in their original
// order. Rows must not include the header.
func Select(rows [][]string) []Contact {
	contacts := make([]Contact, 0)
	for _, row := range rows {
		name := cell(row, NameColumn)
		if name == "" {
			continue
		}
		if !strings.EqualFold(cell(row, MarkerColumn), Marker) {
			continue
		}
		contacts = append(contacts, Contact{
			Name:    name,
			Address: cell(row, AddressColumn),
		})
	}
	return contacts
}

// excelize drops trailing empty cells, so short rows are expected.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
