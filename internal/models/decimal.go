package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers; quoted strings are still accepted on input.
	decimal.MarshalJSONWithoutQuotes = true
}
