package service

import (
	"fmt"

	"github.com/roastline/roastline-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the order book as an XLSX workbook for back-office
// use, one row per order line.
type ExportService interface {
	ExportOrders() ([]byte, error)
}

type exportService struct {
	orderService OrderService
}

func NewExportService(orderService OrderService) ExportService {
	return &exportService{orderService: orderService}
}

func (s *exportService) ExportOrders() ([]byte, error) {
	logger.Info("Exporting orders to XLSX", nil)

	orders, err := s.orderService.ListOrders()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Order ID", "Status", "Customer", "Email", "Phone",
		"Shipping Address", "Product", "Quantity", "Unit Price",
		"Line Total", "Order Total", "Placed At", "Customizations",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, order := range orders {
		for _, item := range order.OrderItems {
			values := []interface{}{
				order.ID,
				string(order.Status),
				order.CustomerName,
				order.CustomerEmail,
				order.CustomerPhone,
				order.ShippingAddress,
				item.Product.Name,
				item.Quantity,
				item.Price.StringFixed(2),
				item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2),
				order.TotalAmount.StringFixed(2),
				order.CreatedAt.Format("2006-01-02 15:04:05"),
				item.Customizations,
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render XLSX", err, nil)
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	logger.Info("Orders exported", map[string]interface{}{
		"order_count": len(orders),
		"row_count":   row - 2,
	})
	return buf.Bytes(), nil
}
