package expense

import (
	"github.com/Rhymond/go-money"
)

// amountFormatter displays whole units with a dollar sign and no separators.
var amountFormatter = money.NewFormatter(0, ".", "", "$", "$1")

// FormatAmount returns the display form of an amount, like "$25".
func FormatAmount(amount int) string {
	return amountFormatter.Format(int64(amount))
}
