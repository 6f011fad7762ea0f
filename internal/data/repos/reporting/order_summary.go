package reporting

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/reporting-service/internal/db"
	types "github.com/yungbote/reporting-service/internal/domain"
	apperrors "github.com/yungbote/reporting-service/internal/pkg/errors"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

const DefaultOrdersTable = "orders"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var tracer = otel.Tracer("github.com/yungbote/reporting-service/internal/data/repos/reporting")

// OrderSummaryRepo aggregates the orders table per region. The session is
// owned by the caller; the repo neither opens nor closes it.
type OrderSummaryRepo interface {
	Summary(ctx context.Context, conn *gorm.DB) ([]types.OrderSummary, error)
}

type orderSummaryRepo struct {
	table string
	query string
	log   *logger.Logger
}

// NewOrderSummaryRepo builds the repo for table (schema-qualified names such
// as "dbo.orders" are allowed). An empty table means DefaultOrdersTable.
func NewOrderSummaryRepo(table string, baseLog *logger.Logger) (OrderSummaryRepo, error) {
	table, err := ValidateTable(table)
	if err != nil {
		return nil, err
	}
	return &orderSummaryRepo{
		table: table,
		query: summaryQuery(table),
		log:   baseLog.With("repo", "OrderSummaryRepo"),
	}, nil
}

// ValidateTable normalizes an orders table name and rejects anything that
// is not a plain or schema-qualified identifier. The name is spliced into
// the SQL text.
func ValidateTable(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultOrdersTable
	}
	if !tableNamePattern.MatchString(table) {
		return "", fmt.Errorf("%w: orders table %q", apperrors.ErrInvalidArgument, table)
	}
	return table, nil
}

func summaryQuery(table string) string {
	return `SELECT region, SUM(amount) AS total_amount, COUNT(*) AS order_count
FROM ` + table + `
GROUP BY region
ORDER BY region`
}

type summaryRow struct {
	Region      sql.NullString
	TotalAmount decimal.NullDecimal
	OrderCount  int64
}

func (r *orderSummaryRepo) Summary(ctx context.Context, conn *gorm.DB) ([]types.OrderSummary, error) {
	ctx, span := tracer.Start(ctx, "reporting.order_summary")
	defer span.End()
	span.SetAttributes(attribute.String("db.table", r.table))

	if conn == nil {
		err := apperrors.DataAccess("order_summary", fmt.Errorf("nil connection"))
		span.RecordError(err)
		span.SetStatus(codes.Error, "nil connection")
		return nil, err
	}

	var rows []summaryRow
	if err := conn.WithContext(ctx).Raw(r.query).Scan(&rows).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		r.log.Debug("order summary query failed", "table", r.table, "db_error_code", db.ErrorCode(err), "error", err)
		return nil, apperrors.DataAccess("order_summary", err)
	}

	// SQLite sums NUMERIC columns as REAL.
	floatSums := conn.Dialector != nil && conn.Dialector.Name() == "sqlite"

	out := make([]types.OrderSummary, 0, len(rows))
	for _, row := range rows {
		total := decimal.Zero
		if row.TotalAmount.Valid {
			total = row.TotalAmount.Decimal
		}
		if floatSums {
			total = total.Round(types.AmountScale)
		}
		out = append(out, types.OrderSummary{
			Region:      row.Region.String,
			TotalAmount: total,
			Count:       row.OrderCount,
		})
	}
	span.SetAttributes(attribute.Int("reporting.regions", len(out)))
	return out, nil
}
