package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportOrders(t *testing.T) {
	orderService, _, product, _ := setupOrderServiceTest(t)
	exportService := NewExportService(orderService)

	_, err := orderService.PlaceOrder("s1", testCustomer(), []LineItemInput{
		{ProductID: product.ID, Quantity: 3},
	})
	require.NoError(t, err)

	data, err := exportService.ExportOrders()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one line

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "Jamie Doe", rows[1][2])
	assert.Equal(t, "Yirgacheffe Washed", rows[1][6])
	assert.Equal(t, "24.99", rows[1][8])
	assert.Equal(t, "74.97", rows[1][9])
}

func TestExportService_ExportOrders_Empty(t *testing.T) {
	orderService, _, _, _ := setupOrderServiceTest(t)
	exportService := NewExportService(orderService)

	data, err := exportService.ExportOrders()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
