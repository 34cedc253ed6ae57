package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// ExportService renders purchase orders to Excel workbooks.
type ExportService struct {
	poRepo *repository.PORepository
}

func NewExportService(poRepo *repository.PORepository) *ExportService {
	return &ExportService{poRepo: poRepo}
}

var poExportHeaders = []string{
	"PO Number", "Status", "Vendor", "Order Date", "Part Number", "Part Name",
	"Manufacturer", "Qty Ordered", "Qty Received", "Qty Backordered",
	"Qty Cancelled", "Qty Remaining", "Unit Price", "Amount",
}

// ExportPOs flattens orders and their line items into one sheet, one row per
// line item. Returns the workbook and a suggested file name.
func (s *ExportService) ExportPOs(ctx context.Context, params repository.POListParams) (*excelize.File, string, error) {
	if params.PageSize == 0 {
		params.Page = 1
		params.PageSize = 1000
	}
	orders, _, err := s.poRepo.FindAll(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("list orders: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Purchase Orders"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range poExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	row := 2
	for oi := range orders {
		po := &orders[oi]
		if len(po.Items) == 0 {
			writePORow(f, sheet, row, po, nil)
			row++
			continue
		}
		for ii := range po.Items {
			writePORow(f, sheet, row, po, &po.Items[ii])
			row++
		}
	}

	name := fmt.Sprintf("purchase-orders-%s.xlsx", time.Now().Format("20060102"))
	return f, name, nil
}

func writePORow(f *excelize.File, sheet string, row int, po *entity.PurchaseOrder, item *entity.Item) {
	set := func(colIdx int, v interface{}) {
		col, _ := excelize.ColumnNumberToName(colIdx)
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}
	set(1, po.PONumber)
	set(2, po.Status)
	set(3, po.VendorName)
	set(4, po.OrderDate.Format("2006-01-02"))
	if item == nil {
		return
	}
	set(5, item.PartNumber)
	set(6, item.PartName)
	set(7, item.Manufacturer)
	set(8, item.QuantityOrdered.String())
	set(9, item.QuantityReceived.String())
	set(10, item.QuantityBackordered.String())
	set(11, item.QuantityCancelled.String())
	set(12, item.QuantityRemaining().String())
	set(13, item.UnitPrice.String())
	set(14, item.Amount.String())
}
