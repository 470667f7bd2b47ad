// Package csvcodec serializa artículos y movimientos al formato tabular CSV y lee artículos de vuelta.
//
// Formato de artículos:   Id,Name,Quantity,Unit,ExpiryDate,CreatedAtUtc,UpdatedAtUtc
// Formato de movimientos: Id,ItemId,ItemName,Type,Quantity,Reason,User,TimestampUtc
//
// Decimales invariantes (punto, sin separador de miles), fechas yyyy-MM-dd y marcas de tiempo UTC
// con 7 dígitos fraccionarios. Los campos con coma, comillas o saltos de línea van entre comillas
// con las comillas internas duplicadas.
package csvcodec

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Layouts de fecha y marca de tiempo.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05.0000000Z"
)

var (
	itemsHeader     = []string{"Id", "Name", "Quantity", "Unit", "ExpiryDate", "CreatedAtUtc", "UpdatedAtUtc"}
	movementsHeader = []string{"Id", "ItemId", "ItemName", "Type", "Quantity", "Reason", "User", "TimestampUtc"}
)

const bom = "\ufeff"

// DecodeText convierte el contenido de un archivo en texto: quita el BOM UTF-8 y, si los bytes
// no son UTF-8 válido, los interpreta como Windows-1252 (hojas de cálculo antiguas).
func DecodeText(b []byte) string {
	b = bytes.TrimPrefix(b, []byte(bom))
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\ufffd")
	}
	return string(out)
}

// writeAll escribe cabecera + filas con encoding/csv y separador de línea \n.
func writeAll(header []string, rows [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(header)
	for _, r := range rows {
		_ = w.Write(r)
	}
	w.Flush()
	return sb.String()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

func formatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
