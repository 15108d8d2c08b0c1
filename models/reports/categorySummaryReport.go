package reports

import (
	"cmp"
	"context"
	"slices"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/shopspring/decimal"
)

type CategorySummary struct {
	CategoryId       int             `json:"category_id"`
	CategoryTitle    string          `json:"category_title"`
	Income           decimal.Decimal `json:"income"`
	Outcome          decimal.Decimal `json:"outcome"`
	TransactionCount int             `json:"transaction_count"`
}

func GetCategorySummaryReport(ctx context.Context) ([]*CategorySummary, error) {
	sql := `
SELECT
    categories.id AS category_id,
    categories.title AS category_title,
    COALESCE(SUM(CASE WHEN transactions.type = @income THEN transactions.value ELSE 0 END), 0) AS income,
    COALESCE(SUM(CASE WHEN transactions.type = @outcome THEN transactions.value ELSE 0 END), 0) AS outcome,
    COUNT(transactions.id) AS transaction_count
FROM
    categories
    JOIN transactions ON transactions.category_id = categories.id
GROUP BY
    categories.id, categories.title
ORDER BY
    categories.title;
`

	var records []*CategorySummary
	db := config.GetDB()
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"income":  string(models.TransactionTypeIncome),
		"outcome": string(models.TransactionTypeOutcome),
	}).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SummarizeByCategory computes the same rows as GetCategorySummaryReport from
// loaded transactions, ordered by title in byte order like the binary
// collated title column.
func SummarizeByCategory(transactions []*models.Transaction) []*CategorySummary {
	byId := make(map[int]*CategorySummary)
	for _, t := range transactions {
		summary, ok := byId[t.CategoryId]
		if !ok {
			summary = &CategorySummary{CategoryId: t.CategoryId}
			if t.Category != nil {
				summary.CategoryTitle = t.Category.Title
			}
			byId[t.CategoryId] = summary
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.Income = summary.Income.Add(t.Value)
		case models.TransactionTypeOutcome:
			summary.Outcome = summary.Outcome.Add(t.Value)
		}
		summary.TransactionCount++
	}

	results := make([]*CategorySummary, 0, len(byId))
	for _, summary := range byId {
		results = append(results, summary)
	}
	slices.SortFunc(results, func(a, b *CategorySummary) int {
		if c := cmp.Compare(a.CategoryTitle, b.CategoryTitle); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryId, b.CategoryId)
	})
	return results
}
