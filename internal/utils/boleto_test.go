package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateNossoNumero(t *testing.T) {
	n := GenerateNossoNumero()
	if len(n) < 15 {
		t.Errorf("tracking number %q too short", n)
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			t.Fatalf("tracking number %q has non-digit %q", n, r)
		}
	}
}

func TestDueDateFactor(t *testing.T) {
	epoch := time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"epoch itself", epoch, "0000"},
		{"one day after", epoch.AddDate(0, 0, 1), "0001"},
		{"a thousand days", epoch.AddDate(0, 0, 1000), "1000"},
		{"time of day ignored", epoch.AddDate(0, 0, 5).Add(23 * time.Hour), "0005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueDateFactor(tt.due); got != tt.want {
				t.Errorf("DueDateFactor(%v) = %q, want %q", tt.due, got, tt.want)
			}
		})
	}
}

func TestGenerateBarcode(t *testing.T) {
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	nossoNumero := "17052643821904512345"

	barcode := GenerateBarcode(1500.00, due, nossoNumero)

	if len(barcode) != 44 {
		t.Fatalf("barcode length = %d, want 44", len(barcode))
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			t.Fatalf("barcode %q has non-digit %q", barcode, r)
		}
	}

	if barcode[0:3] != "001" {
		t.Errorf("bank code = %q, want 001", barcode[0:3])
	}
	if barcode[3:4] != "9" {
		t.Errorf("currency = %q, want 9", barcode[3:4])
	}
	if barcode[5:9] != DueDateFactor(due) {
		t.Errorf("due factor = %q, want %q", barcode[5:9], DueDateFactor(due))
	}
	if barcode[9:19] != "0000150000" {
		t.Errorf("amount field = %q, want 0000150000", barcode[9:19])
	}
	// Rightmost 10 digits of the tracking number.
	if barcode[19:29] != "1904512345" {
		t.Errorf("tracking field = %q, want 1904512345", barcode[19:29])
	}
	if barcode[29:32] != "001" {
		t.Errorf("filler = %q, want 001", barcode[29:32])
	}
}

func TestGenerateBarcodeDeterministic(t *testing.T) {
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	first := GenerateBarcode(1500.00, due, "12345")
	second := GenerateBarcode(1500.00, due, "12345")
	if first != second {
		t.Errorf("barcode not deterministic: %q vs %q", first, second)
	}
}

// The digit at position 4 must satisfy the modulo-11 check over the other 43
// digits, with cyclic weights 2..9 applied from the rightmost digit leftward.
func TestGenerateBarcodeCheckDigit(t *testing.T) {
	tests := []struct {
		amount float64
		due    time.Time
		nosso  string
	}{
		{1500.00, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), "12345"},
		{0.01, time.Date(1997, time.October, 8, 0, 0, 0, 0, time.UTC), "1"},
		{999999.99, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "17052643821904512345"},
		{430.20, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), "9876543210"},
	}

	for _, tt := range tests {
		barcode := GenerateBarcode(tt.amount, tt.due, tt.nosso)
		rest := barcode[:4] + barcode[5:]

		weight := 2
		sum := 0
		for i := len(rest) - 1; i >= 0; i-- {
			sum += int(rest[i]-'0') * weight
			weight++
			if weight > 9 {
				weight = 2
			}
		}
		want := 11 - sum%11
		if want > 9 {
			want = 1
		}
		if got := int(barcode[4] - '0'); got != want {
			t.Errorf("barcode %q check digit = %d, want %d", barcode, got, want)
		}
	}
}

func TestBarcodeToDigitableLine(t *testing.T) {
	barcode := "00192964100001500001904512345001000000000000"
	line := BarcodeToDigitableLine(barcode)

	fields := strings.Split(line, " ")
	if len(fields) != 5 {
		t.Fatalf("digitable line %q has %d fields, want 5", line, len(fields))
	}
	if fields[0] != barcode[0:4]+barcode[19:24] {
		t.Errorf("field1 = %q", fields[0])
	}
	if fields[1] != barcode[24:34] {
		t.Errorf("field2 = %q", fields[1])
	}
	if fields[2] != barcode[34:44] {
		t.Errorf("field3 = %q", fields[2])
	}
	if fields[3] != barcode[4:5] {
		t.Errorf("field4 = %q", fields[3])
	}
	if fields[4] != barcode[5:19] {
		t.Errorf("field5 = %q", fields[4])
	}
}
