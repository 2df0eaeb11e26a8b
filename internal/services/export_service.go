package services

import (
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"carshop/internal/format"
	"carshop/internal/repos"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportService struct {
	Cars   *repos.CarRepo
	Orders *repos.OrderRepo
}

func NewExportService(cars *repos.CarRepo, orders *repos.OrderRepo) *ExportService {
	return &ExportService{Cars: cars, Orders: orders}
}

func (s *ExportService) CarsXLSX(w io.Writer) error {
	cars, err := s.Cars.List()
	if err != nil {
		return err
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Cars")
	if err != nil {
		return err
	}
	header(sheet, "ID", "Name", "Brand", "Model", "Year", "Price", "Category", "Fuel",
		"Transmission", "Mileage", "Color", "Status", "Features", "CreatedAt", "UpdatedAt")
	for _, c := range cars {
		row := sheet.AddRow()
		row.AddCell().SetValue(c.ID)
		row.AddCell().SetValue(c.Name)
		row.AddCell().SetValue(c.Brand)
		row.AddCell().SetValue(c.Model)
		row.AddCell().SetValue(c.Year)
		row.AddCell().SetValue(c.Price.IntPart())
		row.AddCell().SetValue(c.Category)
		row.AddCell().SetValue(string(c.Fuel))
		row.AddCell().SetValue(string(c.Transmission))
		row.AddCell().SetValue(c.Mileage)
		row.AddCell().SetValue(c.Color)
		row.AddCell().SetValue(string(c.Status))
		row.AddCell().SetValue(strings.Join(c.Features, ", "))
		row.AddCell().SetValue(format.Date(c.CreatedAt))
		row.AddCell().SetValue(format.Date(c.UpdatedAt))
	}
	return file.Write(w)
}

func (s *ExportService) OrdersXLSX(w io.Writer) error {
	orders, err := s.Orders.List()
	if err != nil {
		return err
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	header(sheet, "ID", "UserID", "CarID", "Customer", "Email", "Phone", "Address",
		"Status", "Total", "Notes", "CreatedAt")
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(o.CarID)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerEmail)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(o.CustomerAddress)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(format.Price(o.TotalAmount))
		row.AddCell().SetValue(o.Notes)
		row.AddCell().SetValue(format.Date(o.CreatedAt))
	}
	return file.Write(w)
}

func header(sheet *xlsx.Sheet, names ...string) {
	row := sheet.AddRow()
	for _, n := range names {
		row.AddCell().SetValue(n)
	}
}
