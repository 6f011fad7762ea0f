package domain

import "github.com/yungbote/reporting-service/internal/domain/reporting"

type OrderSummary = reporting.OrderSummary

type Order = reporting.Order

const AmountScale = reporting.AmountScale
