package rest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

const exportSheet = "Заявки"

var exportHeader = []any{
	"Тег", "Создана (МСК)", "Телефон", "Автомобиль клиента", "Интересует", "Цена",
	"Оценка клиента", "Разница", "Тип", "Комментарий", "Статус", "В архиве с (МСК)",
}

// buildTradeInWorkbook renders requests as a single-sheet XLSX workbook.
// Money columns are numeric so the sheet can be summed.
func buildTradeInWorkbook(reqs []*domain.TradeInRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range reqs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(r)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "L", 18); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func exportRow(r *domain.TradeInRequest) []any {
	row := []any{
		domain.RequestTagFor(r.ID),
		r.CreatedAt.In(domain.Moscow).Format("02.01.2006 15:04"),
		r.Phone,
		r.UserCar,
		"", "", "", "", "", "",
		r.Status.String(),
		"",
	}
	if r.TargetCar != nil {
		row[4] = r.TargetCar.Title()
		row[5] = r.TargetCar.Price
	}
	if r.TradeInAmount != nil {
		row[6] = *r.TradeInAmount
	}
	if d := r.Delta(); d != nil {
		row[7] = *d
		row[8] = domain.ClassifyDelta(*d).Label()
	}
	if r.Comment != nil {
		row[9] = *r.Comment
	}
	if r.ArchivedAt != nil {
		row[11] = r.ArchivedAt.In(domain.Moscow).Format("02.01.2006 15:04")
	}
	return row
}
