// Package export renders transaction log records as CSV or XML documents
// for download.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

const dateTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"from_customer", "from_amount", "from_currency", "to_customer", "to_amount", "to_currency", "date_time"}

// TransactionsToCSV renders transactions as a CSV document with a header
// row. An empty input produces an empty document.
func TransactionsToCSV(transactions []domain.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range transactions {
		record := []string{
			txn.SourceName(),
			txn.FromAmount.String(),
			txn.FromCurrencyCode,
			txn.ToWalletName,
			txn.ToAmount.String(),
			txn.ToCurrencyCode,
			txn.DateTime.Format(dateTimeLayout),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return buf.String(), nil
}

type xmlTransaction struct {
	FromCustomer string `xml:"from_customer"`
	FromAmount   string `xml:"from_amount"`
	FromCurrency string `xml:"from_currency"`
	ToCustomer   string `xml:"to_customer"`
	ToAmount     string `xml:"to_amount"`
	ToCurrency   string `xml:"to_currency"`
	DateTime     string `xml:"date_time"`
}

type xmlRoot struct {
	XMLName      xml.Name         `xml:"root"`
	Transactions []xmlTransaction `xml:"transaction"`
}

// TransactionsToXML renders transactions as an XML document with one
// <transaction> element per record under a <root> element.
func TransactionsToXML(transactions []domain.Transaction) (string, error) {
	root := xmlRoot{Transactions: make([]xmlTransaction, 0, len(transactions))}
	for _, txn := range transactions {
		root.Transactions = append(root.Transactions, xmlTransaction{
			FromCustomer: txn.SourceName(),
			FromAmount:   txn.FromAmount.String(),
			FromCurrency: txn.FromCurrencyCode,
			ToCustomer:   txn.ToWalletName,
			ToAmount:     txn.ToAmount.String(),
			ToCurrency:   txn.ToCurrencyCode,
			DateTime:     txn.DateTime.Format(dateTimeLayout),
		})
	}

	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal transactions to XML: %w", err)
	}
	return xml.Header + string(out), nil
}
