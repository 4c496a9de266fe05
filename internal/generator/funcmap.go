package generator

import (
	"fmt"
	"strings"
	"text/template"
)

// bytesPerRow is the number of hex literals emitted per line of a byte array.
const bytesPerRow = 16

// cEscaper escapes newline, carriage return, tab and double quote.
// Backslashes are left as they are.
var cEscaper = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	`"`, `\"`,
)

// cString returns data as the body of a C string literal.
func cString(data []byte) string {
	return cEscaper.Replace(string(data))
}

// hexRows formats data as rows of "0x%02x," literals, at most bytesPerRow per row.
func hexRows(data []byte) []string {
	rows := make([]string, 0, (len(data)+bytesPerRow-1)/bytesPerRow)
	var sb strings.Builder
	for i, b := range data {
		if i%bytesPerRow != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%02x,", b)
		if (i+1)%bytesPerRow == 0 {
			rows = append(rows, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		rows = append(rows, sb.String())
	}
	return rows
}

// GetCommonFuncMap returns the template functions shared by the header and implementation templates.
func GetCommonFuncMap() template.FuncMap {
	return template.FuncMap{
		"Upper":   strings.ToUpper,
		"cstring": cString,
		"hexRows": hexRows,
	}
}
