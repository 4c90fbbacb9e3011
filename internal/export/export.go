package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/pkg/constants"
)

// ContentType is the MIME type of every workbook produced here.
const ContentType = constants.MIMEXLSX

const (
	DefaultLedgerSheet = "Rekap"
	DefaultItemsSheet  = "Item_Terakhir"
	DefaultFilePrefix  = "Rekap_Angket_PDBK"
)

type Config struct {
	LedgerSheet string
	ItemsSheet  string
	FilePrefix  string
	// IndonesianLabels writes categories as printed on the paper instrument.
	IndonesianLabels bool
}

// Workbook is the data serialized into one file. Items is optional audit data;
// when empty no item sheet is written.
type Workbook struct {
	Constructs []instrument.Construct
	Rows       []ledger.Row
	Items      []instrument.Item
}

type Exporter struct {
	cfg Config
}

func New(cfg Config) *Exporter {
	if cfg.LedgerSheet == "" {
		cfg.LedgerSheet = DefaultLedgerSheet
	}
	if cfg.ItemsSheet == "" {
		cfg.ItemsSheet = DefaultItemsSheet
	}
	if cfg.FilePrefix == "" {
		cfg.FilePrefix = DefaultFilePrefix
	}
	return &Exporter{cfg: cfg}
}

func (e *Exporter) LedgerSheet() string { return e.cfg.LedgerSheet }
func (e *Exporter) ItemsSheet() string  { return e.cfg.ItemsSheet }

// FileName encodes the export date, e.g. Rekap_Angket_PDBK_2026-10-16.xlsx.
func (e *Exporter) FileName(at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", e.cfg.FilePrefix, at.Format(ledger.DateLayout))
}

// LedgerHeader is the column order of the ledger sheet.
func LedgerHeader(constructs []instrument.Construct) []string {
	h := []string{"Date", "Institution", "Subject Name", "Class", "Assessor"}
	for _, k := range constructs {
		h = append(h, "Score "+string(k))
	}
	return append(h, "Total Score", "Max Score", "Percentage", "Category")
}

// ItemsHeader is the column order of the audit sheet.
func ItemsHeader() []string {
	return []string{"ID", "Construct", "Subdimension", "Statement", "Score"}
}

func (e *Exporter) Bytes(wb Workbook) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, wb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) Write(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), e.cfg.LedgerSheet); err != nil {
		return fmt.Errorf("rename ledger sheet: %w", err)
	}
	if err := e.writeLedger(f, wb); err != nil {
		return err
	}
	if len(wb.Items) > 0 {
		if err := e.writeItems(f, wb.Items); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeLedger(f *excelize.File, wb Workbook) error {
	sheet := e.cfg.LedgerSheet
	header := LedgerHeader(wb.Constructs)
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return err
	}

	for i, r := range wb.Rows {
		cells := []any{r.Date, r.Institution, r.SubjectName, r.ClassLabel, r.AssessorName}
		for _, k := range wb.Constructs {
			v, _ := r.ScoreFor(k)
			cells = append(cells, v)
		}
		cells = append(cells, r.TotalScore, r.MaxScore, r.Percentage, e.category(r))
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeItems(f *excelize.File, items []instrument.Item) error {
	sheet := e.cfg.ItemsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}
	header := ItemsHeader()
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return err
	}
	for i, it := range items {
		if err := writeRow(f, sheet, i+2, []any{it.ID, string(it.Construct), it.Subdimension, it.Statement, it.Score}); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "D", "D", 80)
}

func (e *Exporter) category(r ledger.Row) string {
	if e.cfg.IndonesianLabels {
		return r.Category.Indonesian()
	}
	return string(r.Category)
}

func writeRow[T any](f *excelize.File, sheet string, row int, cells []T) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	if err := f.SetSheetRow(sheet, start, &vals); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, style)
}
