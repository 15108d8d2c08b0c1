package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/mmdatafocus/storefront_backend/workflow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubOrders struct {
	customerId int
	items      []workflow.OrderItem
	err        error
}

func (s *stubOrders) CreateOrder(ctx context.Context, customerId int, items []workflow.OrderItem) (*models.Order, error) {
	s.customerId = customerId
	s.items = items
	if s.err != nil {
		return nil, s.err
	}
	lines := make([]models.OrderProduct, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderProduct{ProductId: item.ProductId, Quantity: item.Quantity, Price: decimal.NewFromInt(10)})
	}
	return &models.Order{ID: 1, CustomerId: customerId, Customer: &models.Customer{ID: customerId, Name: "Ana"}, OrderProducts: lines}, nil
}

type stubTransactions struct {
	created  []string
	imported []*models.TransactionImportRow
	err      error
	list     *workflow.TransactionList
}

func (s *stubTransactions) CreateTransaction(ctx context.Context, title string, value decimal.Decimal, transactionType string, categoryTitle string) (*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, title)
	return &models.Transaction{ID: len(s.created), Title: title, Value: value, Type: models.TransactionType(transactionType)}, nil
}

func (s *stubTransactions) ListTransactions(ctx context.Context) (*workflow.TransactionList, error) {
	if s.list == nil {
		return &workflow.TransactionList{Balance: models.NewBalance(decimal.Zero, decimal.Zero)}, nil
	}
	return s.list, nil
}

func (s *stubTransactions) ImportTransactions(ctx context.Context, rows []*models.TransactionImportRow) ([]*models.Transaction, error) {
	s.imported = rows
	if s.err != nil {
		return []*models.Transaction{{ID: 1}}, fmt.Errorf("line 3: %w", s.err)
	}
	return make([]*models.Transaction, len(rows)), nil
}

func newTestServer(t *testing.T, ready bool) (*gin.Engine, *stubOrders, *stubTransactions) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	orders := &stubOrders{}
	transactions := &stubTransactions{}
	api := &API{Orders: orders, Transactions: transactions, Logger: logger}
	return newRouter(api, func() bool { return ready }, logger), orders, transactions
}

func doJSON(r http.Handler, method string, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartFile(t *testing.T, field string, filename string, content []byte) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestErrorStatus(t *testing.T) {
	require.Equal(t, http.StatusNotFound, errorStatus(utils.NotFound("Could not find any customer with the given id")))
	require.Equal(t, http.StatusBadRequest, errorStatus(utils.InvalidArgument("Invalid type transaction")))
	require.Equal(t, http.StatusUnprocessableEntity, errorStatus(fmt.Errorf("line 2: %w", utils.InvalidState("You do not have enough balance"))))
	require.Equal(t, http.StatusInternalServerError, errorStatus(fmt.Errorf("boom")))
}

func TestReadinessGate(t *testing.T) {
	r, _, _ := newTestServer(t, false)

	w := doJSON(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNotFoundRoute(t *testing.T) {
	r, _, _ := newTestServer(t, true)
	w := doJSON(r, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Correlation-Id"))
}

func TestCreateOrderHandler(t *testing.T) {
	r, orders, _ := newTestServer(t, true)

	w := doJSON(r, http.MethodPost, "/orders", gin.H{
		"customer_id": 4,
		"products":    []gin.H{{"product_id": 1, "quantity": 2}, {"product_id": 2, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, 4, orders.customerId)
	require.Equal(t, []workflow.OrderItem{{ProductId: 1, Quantity: 2}, {ProductId: 2, Quantity: 1}}, orders.items)
	require.Contains(t, w.Body.String(), `"total":"30"`)
}

func TestCreateOrderHandler_Validation(t *testing.T) {
	r, orders, _ := newTestServer(t, true)

	cases := map[string]gin.H{
		"missing customer": {"products": []gin.H{{"product_id": 1, "quantity": 1}}},
		"no products":      {"customer_id": 1, "products": []gin.H{}},
		"zero quantity":    {"customer_id": 1, "products": []gin.H{{"product_id": 1, "quantity": 0}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/orders", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	require.Zero(t, orders.customerId)
}

func TestCreateOrderHandler_ServiceErrors(t *testing.T) {
	r, orders, _ := newTestServer(t, true)

	orders.err = utils.NotFound("Could not find any customer with the given id")
	w := doJSON(r, http.MethodPost, "/orders", gin.H{"customer_id": 9, "products": []gin.H{{"product_id": 1, "quantity": 1}}})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Could not find any customer with the given id"}`, w.Body.String())

	orders.err = utils.InvalidState("The quantity 5 is not available for 1")
	w = doJSON(r, http.MethodPost, "/orders", gin.H{"customer_id": 9, "products": []gin.H{{"product_id": 1, "quantity": 5}}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.JSONEq(t, `{"error":"The quantity 5 is not available for 1"}`, w.Body.String())

	orders.err = fmt.Errorf("connection reset")
	w = doJSON(r, http.MethodPost, "/orders", gin.H{"customer_id": 9, "products": []gin.H{{"product_id": 1, "quantity": 5}}})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection reset")
}

func TestCreateTransactionHandler(t *testing.T) {
	r, _, transactions := newTestServer(t, true)

	w := doJSON(r, http.MethodPost, "/transactions", gin.H{"title": "Salary", "value": 1000, "type": "income", "category": "Work"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, []string{"Salary"}, transactions.created)

	transactions.err = utils.InvalidState("You do not have enough balance")
	w = doJSON(r, http.MethodPost, "/transactions", gin.H{"title": "Rent", "value": "50.5", "type": "outcome", "category": "Home"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.JSONEq(t, `{"error":"You do not have enough balance"}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/transactions", gin.H{"value": 1, "type": "income", "category": "Work"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportTransactionsHandler(t *testing.T) {
	r, _, transactions := newTestServer(t, true)

	body, contentType := multipartFile(t, "file", "tx.csv", []byte("title,type,value,category\nSalary,income,100,Work\nLunch,outcome,5,Food\n"))
	req := httptest.NewRequest(http.MethodPost, "/transactions/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, transactions.imported, 2)
	require.Equal(t, "Lunch", transactions.imported[1].Title)

	transactions.err = utils.InvalidState("You do not have enough balance")
	body, contentType = multipartFile(t, "file", "tx.csv", []byte("title,type,value,category\nSalary,income,100,Work\nRent,outcome,500,Home\n"))
	req = httptest.NewRequest(http.MethodPost, "/transactions/import", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.JSONEq(t, `{"error":"line 3: You do not have enough balance","imported":1}`, w.Body.String())
}

func TestExportTransactionsHandler(t *testing.T) {
	r, _, transactions := newTestServer(t, true)
	transactions.list = &workflow.TransactionList{
		Transactions: []*models.Transaction{
			{ID: 1, Title: "Salary", Value: decimal.NewFromInt(100), Type: models.TransactionTypeIncome, CategoryId: 1, Category: &models.Category{ID: 1, Title: "Work"}},
		},
		Balance: models.NewBalance(decimal.NewFromInt(100), decimal.Zero),
	}

	w := doJSON(r, http.MethodGet, "/transactions/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Transactions", "B2")
	require.NoError(t, err)
	require.Equal(t, "Salary", title)
}

func TestCreateThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for x := 0; x < 400; x++ {
		img.Set(x, 50, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	thumb, err := createThumbnail(buf.Bytes())
	require.NoError(t, err)
	decoded, format, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 200, decoded.Bounds().Dx())
	require.Equal(t, 50, decoded.Bounds().Dy())

	_, err = createThumbnail([]byte("not an image"))
	require.ErrorIs(t, err, utils.ErrorInvalidArgument)
}

func TestThumbnailObjectKey(t *testing.T) {
	require.Equal(t, "products/3/thumbnails/abc.jpg", thumbnailObjectKey("products/3/abc.png"))
}
