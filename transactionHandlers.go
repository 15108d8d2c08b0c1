package main

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/models/reports"
	"github.com/mmdatafocus/storefront_backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (api *API) createTransaction(c *gin.Context) {
	var input models.NewTransaction
	if !bindJSON(c, &input) {
		return
	}
	transaction, err := api.Transactions.CreateTransaction(c.Request.Context(), input.Title, input.Value, input.Type, input.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (api *API) listTransactions(c *gin.Context) {
	list, err := api.Transactions.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// importTransactions reads a CSV from the multipart "file" field.
func (api *API) importTransactions(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	rows, err := reports.ParseTransactionsCSV(file)
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := api.Transactions.ImportTransactions(c.Request.Context(), rows)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			respondError(c, err)
			return
		}
		c.JSON(status, gin.H{"error": err.Error(), "imported": len(created)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": len(created), "transactions": created})
}

// exportTransactions downloads an xlsx workbook, or with ?upload=true stores it
// in REPORTS_BUCKET and returns its URL.
func (api *API) exportTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := api.Transactions.ListTransactions(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.ExportTransactions(&buf, list.Transactions, list.Balance, reports.SummarizeByCategory(list.Transactions)); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	if c.Query("upload") != "true" {
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
		return
	}

	bucket := config.StringFromEnv("REPORTS_BUCKET", "")
	if bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "REPORTS_BUCKET is required"})
		return
	}
	objectName := "reports/" + filename
	if err := utils.UploadBytesToGCS(ctx, bucket, objectName, buf.Bytes(), xlsxContentType); err != nil {
		logUploadError(api, err, objectName)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": utils.PublicObjectURL(bucket, objectName)})
}

func (api *API) categoryReport(c *gin.Context) {
	summaries, err := reports.GetCategorySummaryReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
