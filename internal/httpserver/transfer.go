package httpserver

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"soldout-pos/internal/backup"
	"soldout-pos/internal/export"
)

func exportOrdersCSVHandler(orders orderService, channels channelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderList, err := orders.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		channelList, err := channels.List(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteOrdersCSV(&buf, orderList, channelList); err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

func exportBackupHandler(src backup.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := backup.Export(c.Request.Context(), src)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="soldout-backup.json"`)
		c.JSON(http.StatusOK, doc)
	}
}

func importBackupHandler(dst backup.Restorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc backup.Backup
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := backup.Import(c.Request.Context(), dst, &doc); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
