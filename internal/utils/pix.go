package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// EMV-style payload fragments. Display/scan payload only, no signature.
const (
	pixHeader       = "00020126"
	pixCategory     = "52040000"
	pixCurrency     = "5303986"
	pixCountry      = "5802BR"
	pixMerchant     = "5925Bull Finance Pagamento"
	pixMerchantCopy = "5925Bull Finance"
	pixCity         = "6014BELO HORIZONTE"
	pixTxField      = "62070503***"
	pixCRCTrailer   = "6304"

	txidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GeneratePixTxID issues a random transaction id: fixed PIX tag, unix-millis
// timestamp, 9 random base-36 characters.
func GeneratePixTxID() string {
	b := make([]byte, 9)
	rand.Read(b)
	var suffix strings.Builder
	for _, c := range b {
		suffix.WriteByte(txidAlphabet[int(c)%len(txidAlphabet)])
	}
	return fmt.Sprintf("PIX%d%s", time.Now().UnixMilli(), suffix.String())
}

// GeneratePixPayload builds the flat key-ordered payload for a PIX key and
// returns it base64-encoded for QR rendering.
func GeneratePixPayload(pixKey string) string {
	payload := pixHeader + fmt.Sprintf("%02d", len(pixKey)) + pixKey +
		pixCategory + pixCurrency + pixCountry + pixMerchant + pixCity +
		pixTxField + pixCRCTrailer
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// PixCopyPaste builds the human-copyable payload variant carrying the
// transaction id.
func PixCopyPaste(pixKey, txid string) string {
	return pixHeader + fmt.Sprintf("%02d", len(pixKey)) + pixKey +
		pixCategory + pixCurrency + pixCountry + pixMerchantCopy + pixCity +
		pixTxField + pixCRCTrailer + txid
}

// PixExpiry returns the expiry timestamp for a charge created at now.
func PixExpiry(now time.Time) time.Time {
	return now.Add(24 * time.Hour)
}
