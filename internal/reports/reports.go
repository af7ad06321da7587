// Package reports renders trip sheet views as Excel workbooks.
package reports

import (
	"fmt"
	"io"

	"github.com/ukydev/tripsheet/internal/models"
	"github.com/ukydev/tripsheet/internal/service"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names.
const (
	TripSheetName    = "Trips"
	PendingSheetName = "Pending Payments"
	TyreRegisterName = "Tyres"
)

const (
	defaultSheet       = "Sheet1"
	headerRow          = 1
	firstDataRow       = 2
	defaultColumnWidth = 16
)

var (
	tripHeaders = []string{
		"Truck No", "Driver", "Start Date", "End Date", "Status",
		"Start KM", "End KM", "Distance", "Diesel (L)", "Mileage",
		"Freight", "Expenses", "Net Profit", "Pending",
	}
	pendingHeaders = []string{
		"Truck No", "Driver", "Trip Start", "Trip End", "Loading Date",
		"From", "To", "Transporter", "Freight", "Advance", "Balance", "Priority", "Courier Vendor",
	}
	tyreHeaders = []string{
		"Truck No", "Make", "Price", "Fitment Date", "Fitting KM",
		"Removal Date", "Removal KM", "Running KM", "Cost per KM", "Remarks",
	}
)

// TripSheet lists every trip with its distance, mileage and money totals, followed by a totals row.
func TripSheet(trips []service.TripDetail) (*excelize.File, error) {
	f, err := newWorkbook(TripSheetName, tripHeaders)
	if err != nil {
		return nil, err
	}
	var freight, expenses, profit, pending float64
	row := firstDataRow
	for _, t := range trips {
		values := []interface{}{
			truckNo(t.Truck), driverName(t.Driver1),
			models.FormatDate(t.StartDate), models.FormatOptionalDate(t.EndDate), string(t.Status),
			t.StartKM, t.EndKM, t.Distance(), t.DieselLiters, round2(t.Mileage),
			t.Totals.TotalFreight, t.Totals.TotalExpenses, t.Totals.NetProfit, t.Totals.PendingBalance,
		}
		if err := setRow(f, TripSheetName, row, values); err != nil {
			return nil, err
		}
		freight += t.Totals.TotalFreight
		expenses += t.Totals.TotalExpenses
		profit += t.Totals.NetProfit
		pending += t.Totals.PendingBalance
		row++
	}
	totals := []interface{}{"Total", "", "", "", "", "", "", "", "", "", freight, expenses, profit, pending}
	if err := setRow(f, TripSheetName, row, totals); err != nil {
		return nil, err
	}
	return f, nil
}

// PendingPayments lists the outstanding loads in the order given.
func PendingPayments(p *service.PendingPayments) (*excelize.File, error) {
	f, err := newWorkbook(PendingSheetName, pendingHeaders)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return f, nil
	}
	row := firstDataRow
	for _, item := range p.Items {
		vendor := ""
		if item.Courier != nil {
			vendor = item.Courier.Vendor
		}
		values := []interface{}{
			item.TruckNo, item.DriverName,
			models.FormatOptionalDate(item.TripStartDate), models.FormatOptionalDate(item.TripEndDate),
			models.FormatOptionalDate(item.LoadingDate),
			item.FromLocation, item.ToLocation, item.Transporter,
			item.FreightAmount, item.AdvanceAmount, item.BalanceAmount, item.Priority, vendor,
		}
		if err := setRow(f, PendingSheetName, row, values); err != nil {
			return nil, err
		}
		row++
	}
	summary := []interface{}{"Total", fmt.Sprintf("%d loads", p.Summary.Count), "", "", "", "", "", "", "", "", p.Summary.TotalBalance}
	if err := setRow(f, PendingSheetName, row, summary); err != nil {
		return nil, err
	}
	return f, nil
}

// TyreRegister lists tyres with their running km and cost per km.
func TyreRegister(tyres []service.TyreView) (*excelize.File, error) {
	f, err := newWorkbook(TyreRegisterName, tyreHeaders)
	if err != nil {
		return nil, err
	}
	for i, t := range tyres {
		values := []interface{}{
			t.TruckNo, t.Make, t.Price,
			models.FormatOptionalDate(t.FitmentDate), t.FittingKM,
			models.FormatOptionalDate(t.RemovalDate), t.RemovalKM,
			t.RunningKM, round2(t.CostPerKM), t.Remarks,
		}
		if err := setRow(f, TyreRegisterName, firstDataRow+i, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write streams the workbook and closes it.
func Write(w io.Writer, f *excelize.File) error {
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// newWorkbook creates a file holding one named sheet with a bold, frozen header row.
func newWorkbook(sheet string, headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet(defaultSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", lastCol, defaultColumnWidth)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func truckNo(t *models.Truck) string {
	if t == nil {
		return ""
	}
	return t.TruckNo
}

func driverName(d *models.Driver) string {
	if d == nil {
		return ""
	}
	return d.Name
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
