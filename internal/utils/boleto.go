package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	boletoBankCode = "001" // simulated Banco do Brasil
	boletoCurrency = "9"
	boletoFiller   = "001"
	barcodeLength  = 44
)

// dueDateFactorEpoch is the fixed base date for the 4-digit due factor.
var dueDateFactorEpoch = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

// GenerateNossoNumero generates a best-effort unique tracking number from the
// current unix-millis timestamp plus a 5-digit random suffix.
func GenerateNossoNumero() string {
	b := make([]byte, 5)
	rand.Read(b)
	var suffix strings.Builder
	for _, c := range b {
		suffix.WriteByte(c%10 + '0')
	}
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), suffix.String())
}

// DueDateFactor returns the number of days between dueDate and the fixed
// 1997-10-07 epoch, zero-padded to 4 digits.
func DueDateFactor(dueDate time.Time) string {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(dueDateFactorEpoch).Hours() / 24)
	return fmt.Sprintf("%04d", days)
}

// checkDigit computes the modulo-11 verification digit over code using the
// cyclic weight sequence 2..9 applied from the rightmost digit leftward.
// 11 - (sum mod 11); results above 9 collapse to 1.
func checkDigit(code string) string {
	weight := 2
	sum := 0
	for i := len(code) - 1; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	digit := 11 - sum%11
	if digit > 9 {
		digit = 1
	}
	return fmt.Sprintf("%d", digit)
}

// GenerateBarcode builds the 44-digit boleto barcode for the given amount,
// due date and tracking number. Layout: bank code, currency, check digit,
// due-date factor, amount in cents, tracking number, filler, zero padding.
// Deterministic for fixed inputs.
func GenerateBarcode(amount float64, dueDate time.Time, nossoNumero string) string {
	factor := DueDateFactor(dueDate)
	value := fmt.Sprintf("%010d", int64(math.Round(amount*100)))

	// The barcode carries the rightmost 10 digits of the tracking number,
	// zero-padded when shorter.
	tracking := nossoNumero
	if len(tracking) > 10 {
		tracking = tracking[len(tracking)-10:]
	}
	tracking = fmt.Sprintf("%010s", tracking)

	body := boletoBankCode + boletoCurrency + factor + value + tracking + boletoFiller
	body += strings.Repeat("0", barcodeLength-1-len(body))

	return body[:4] + checkDigit(body) + body[4:]
}

// BarcodeToDigitableLine regroups a 44-digit barcode into the five
// human-readable fields. Offsets are fixed for compatibility with stored
// instruments.
func BarcodeToDigitableLine(barcode string) string {
	field1 := barcode[0:4] + barcode[19:24]
	field2 := barcode[24:34]
	field3 := barcode[34:44]
	field4 := barcode[4:5]
	field5 := barcode[5:19]
	return fmt.Sprintf("%s %s %s %s %s", field1, field2, field3, field4, field5)
}
