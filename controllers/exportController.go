package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func writeWorkbook(ctx *gin.Context, file *xlsx.File, name string) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Type", xlsxContentType)
	ctx.Header("Content-Transfer-Encoding", "binary")
	ctx.Header("Expires", "0")
	if err := file.Write(ctx.Writer); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to write Excel file", err)
	}
}

func (h *Handler) ExportProducts(ctx *gin.Context) {
	products, err := h.Store.Catalog.AllProducts()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgUnableToFetchItems, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create Excel sheet", err)
		return
	}
	addHeaderRow(sheet, "ID", "Name", "Category", "Price", "Stock", "Active", "Flash Sale", "Favorite", "Buy 1 Get 1", "Created At")

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		row.AddCell().SetValue(category)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.IsFlashSale)
		row.AddCell().SetValue(p.IsFavorite)
		row.AddCell().SetValue(p.IsBuy1Get1)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	writeWorkbook(ctx, file, "products")
}

func (h *Handler) ExportOrders(ctx *gin.Context) {
	orders, err := h.Store.Orders.AllOrders()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgUnableToFetchOrders, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create Excel sheet", err)
		return
	}
	addHeaderRow(sheet, "ID", "Order Number", "Customer Email", "Customer Name", "Status", "Delivery Method",
		"Payment Method", "Address", "Subtotal", "Delivery Fee", "Tax", "Total", "Order Date")

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.OrderNumber)
		row.AddCell().SetValue(o.ContactEmail)
		row.AddCell().SetValue(o.ContactName)
		status, delivery, payment := "", "", ""
		if o.Status != nil {
			status = o.Status.DisplayName
		}
		if o.DeliveryMethod != nil {
			delivery = o.DeliveryMethod.Name
		}
		if o.PaymentMethod != nil {
			payment = o.PaymentMethod.Name
		}
		row.AddCell().SetValue(status)
		row.AddCell().SetValue(delivery)
		row.AddCell().SetValue(payment)
		row.AddCell().SetValue(o.DeliveryAddress)
		row.AddCell().SetValue(o.Subtotal)
		row.AddCell().SetValue(o.DeliveryFee)
		row.AddCell().SetValue(o.TaxAmount)
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
	}
	writeWorkbook(ctx, file, "orders")
}
