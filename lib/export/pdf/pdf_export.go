package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dbmodels "fleet-tools-backend/models/db"
)

// GenerateRequestCard формирует печатную карточку архивной заявки
func GenerateRequestCard(rec dbmodels.RequestHistory) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRequestCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, fmt.Sprintf("%s № %s", rec.Kind.ToHuman(), rec.OriginalRequestID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	_, lineHt := pdf.GetFontSize()
	html := pdf.HTMLBasicNew()

	requestedBy := rec.RequestedByID
	if rec.RequestedBy != nil {
		requestedBy = rec.RequestedBy.GetFullName()
	}
	vehicle := rec.VehicleID
	if rec.Vehicle != nil {
		vehicle = fmt.Sprintf("%s %s (%s)", rec.Vehicle.Make, rec.Vehicle.Model, rec.Vehicle.RegNumber)
	}
	htmlStr := fmt.Sprintf("<b>Автор:</b> %s<br>", requestedBy) +
		fmt.Sprintf("<b>Транспортное средство:</b> %s<br>", vehicle) +
		fmt.Sprintf("<b>Подразделение:</b> %s<br>", rec.Department.ToHuman()) +
		fmt.Sprintf("<b>Статус:</b> %s<br>", rec.Status.ToHuman()) +
		fmt.Sprintf("<b>Дата подачи:</b> %s<br>", rec.RequestDate.Format("02.01.2006")) +
		fmt.Sprintf("<b>Дата завершения:</b> %s<br>", rec.CompletionDate.Format("02.01.2006"))
	if rec.Description != "" {
		htmlStr += fmt.Sprintf("<b>Описание работ:</b> %s<br>", rec.Description)
	}
	if rec.Reason != "" {
		htmlStr += fmt.Sprintf("<b>Обоснование:</b> %s<br>", rec.Reason)
	}
	if rec.FinalCost != nil {
		htmlStr += fmt.Sprintf("<b>Итоговая стоимость:</b> %.2f<br>", *rec.FinalCost)
	}
	if rec.ApprovalComments != "" {
		htmlStr += fmt.Sprintf("<br><b>Комментарии согласования:</b><br>%s<br>", rec.ApprovalComments)
	}
	html.Write(lineHt*1.6, htmlStr)

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
