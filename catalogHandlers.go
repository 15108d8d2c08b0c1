package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/sirupsen/logrus"
)

const (
	maxUploadSizeBytes = 5 << 20
	thumbnailWidth     = 200
)

func (api *API) createCustomer(c *gin.Context) {
	var input models.NewCustomer
	if !bindJSON(c, &input) {
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (api *API) getCustomer(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (api *API) createProduct(c *gin.Context) {
	var input models.NewProduct
	if !bindJSON(c, &input) {
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (api *API) listProducts(c *gin.Context) {
	products, err := models.GetProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// uploadProductImage stores the multipart "file" and a 200px wide JPEG thumbnail in GCS_BUCKET.
func (api *API) uploadProductImage(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	bucket := config.StringFromEnv("GCS_BUCKET", "")
	if bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GCS_BUCKET is required"})
		return
	}
	if _, err := models.GetProduct(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxUploadSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	thumbnail, err := createThumbnail(data)
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := http.DetectContentType(data)
	objectKey := fmt.Sprintf("products/%d/%s%s", id, uuid.NewString(), extensionFromMimeType(contentType))
	thumbnailKey := thumbnailObjectKey(objectKey)
	if err := utils.UploadBytesToGCS(ctx, bucket, objectKey, data, contentType); err != nil {
		logUploadError(api, err, objectKey)
		respondError(c, err)
		return
	}
	if err := utils.UploadBytesToGCS(ctx, bucket, thumbnailKey, thumbnail, "image/jpeg"); err != nil {
		logUploadError(api, err, thumbnailKey)
		respondError(c, err)
		return
	}

	product, err := models.UpdateProductImage(ctx, id, utils.PublicObjectURL(bucket, objectKey), utils.PublicObjectURL(bucket, thumbnailKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func createThumbnail(data []byte) ([]byte, error) {
	if int64(len(data)) > maxUploadSizeBytes {
		return nil, utils.InvalidArgument("file size exceeds 5MB limit")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, utils.InvalidArgument("file is not a supported image")
	}
	thumbnail := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := path.Base(objectKey)
	ext := path.Ext(filename)
	return path.Join(dir, "thumbnails", strings.TrimSuffix(filename, ext)+".jpg")
}

func extensionFromMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}

func logUploadError(api *API, err error, objectKey string) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return
	}
	api.logger().WithFields(logrus.Fields{
		"error":      err.Error(),
		"object_key": objectKey,
	}).Error("[upload.error]")
}
