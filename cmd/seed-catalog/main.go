// seed-catalog loads customers and products from CSV files.
//
// customers.csv: name,email,phone
// products.csv:  name,price,quantity
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_NAME=... go run ./cmd/seed-catalog --customers customers.csv --products products.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/sirupsen/logrus"
)

type customerRow struct {
	Name  string `csv:"name" validate:"required,max=100"`
	Email string `csv:"email" validate:"omitempty,email,max=100"`
	Phone string `csv:"phone"`
}

type productRow struct {
	Name     string `csv:"name" validate:"required,max=100"`
	Price    string `csv:"price" validate:"required"`
	Quantity int    `csv:"quantity" validate:"gte=0"`
}

func readRows[T any](r io.Reader) ([]*T, error) {
	var rows []*T
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := utils.ValidateStruct(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
	}
	return rows, nil
}

func (row *productRow) toNewProduct() (*models.NewProduct, error) {
	price, err := utils.ParseDecimal(row.Price)
	if err != nil {
		return nil, utils.InvalidArgument("invalid price %q", row.Price)
	}
	return &models.NewProduct{Name: row.Name, Price: price, Quantity: row.Quantity}, nil
}

func readFile[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRows[T](f)
}

func main() {
	customersPath := flag.String("customers", "", "Optional: customers CSV file")
	productsPath := flag.String("products", "", "Optional: products CSV file")
	dryRun := flag.Bool("dry-run", false, "If true, only parse and validate the files")
	flag.Parse()

	if *customersPath == "" && *productsPath == "" {
		fmt.Fprintln(os.Stderr, "--customers or --products is required")
		os.Exit(1)
	}

	var (
		customers []*customerRow
		products  []*productRow
		err       error
	)
	if *customersPath != "" {
		if customers, err = readFile[customerRow](*customersPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *customersPath, err)
			os.Exit(1)
		}
	}
	if *productsPath != "" {
		if products, err = readFile[productRow](*productsPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *productsPath, err)
			os.Exit(1)
		}
	}
	if *dryRun {
		fmt.Printf("[dry-run] %d customers, %d products\n", len(customers), len(products))
		return
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	logger := config.GetLogger()
	ctx := context.Background()

	for _, row := range customers {
		customer, err := models.CreateCustomer(ctx, &models.NewCustomer{Name: row.Name, Email: row.Email, Phone: row.Phone})
		if err != nil {
			config.LogError(logger, "seed-catalog", "main", "CreateCustomer", row, err)
			os.Exit(1)
		}
		logger.WithFields(logrus.Fields{"customer_id": customer.ID}).Info("customer created")
	}

	for _, row := range products {
		input, err := row.toNewProduct()
		if err == nil {
			var product *models.Product
			product, err = models.CreateProduct(ctx, input)
			if err == nil {
				logger.WithFields(logrus.Fields{"product_id": product.ID}).Info("product created")
				continue
			}
		}
		if errors.Is(err, utils.ErrorInvalidArgument) {
			// existing products are left untouched
			logger.WithFields(logrus.Fields{"product": row.Name}).Warn(err.Error())
			continue
		}
		config.LogError(logger, "seed-catalog", "main", "CreateProduct", row, err)
		os.Exit(1)
	}
}
