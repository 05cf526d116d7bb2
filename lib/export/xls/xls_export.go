package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	ExportHistoryList(list []dbmodels.RequestHistory) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var historyHeaders = []string{"Тип заявки", "Автор", "ТС", "Подразделение", "Статус", "Дата подачи", "Дата завершения", "Итоговая стоимость", "Комментарии"}

func (i impl) ExportHistoryList(list []dbmodels.RequestHistory) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, historyHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeHistoryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Архив заявок")
	return f.WriteToBuffer()
}

func writeHistoryData(f *excelize.File, sheet string, list []dbmodels.RequestHistory, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(historyHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Тип заявки"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Kind.ToHuman()); err != nil {
			return row, err
		}

		// "Автор"
		col++
		if item.RequestedBy != nil {
			if err := writeColumn(f, sheet, col, row, item.RequestedBy.GetFullName()); err != nil {
				return row, err
			}
		}

		// "ТС"
		col++
		if item.Vehicle != nil {
			if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%v %v (%v)", item.Vehicle.Make, item.Vehicle.Model, item.Vehicle.RegNumber)); err != nil {
				return row, err
			}
		}

		// "Подразделение"
		col++
		if err := writeColumn(f, sheet, col, row, item.Department.ToHuman()); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if !item.RequestDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.RequestDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Дата завершения"
		col++
		if !item.CompletionDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CompletionDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Итоговая стоимость"
		col++
		if item.FinalCost != nil {
			if err := writeColumn(f, sheet, col, row, *item.FinalCost); err != nil {
				return row, err
			}
		}

		// "Комментарии"
		col++
		if err := writeColumn(f, sheet, col, row, item.ApprovalComments); err != nil {
			return row, err
		}
	}
	return row, nil
}
