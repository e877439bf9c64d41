// Package bytesize converts between byte counts and the human readable sizes
// shown to users and used in configuration.
package bytesize

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	KB int64 = 1 << 10
	MB int64 = 1 << 20
	GB int64 = 1 << 30
)

const decimalFormat = "#,###.##"

// FormatHuman renders size with binary prefixes. unit forces "GB", "MB" or "KB";
// an empty unit picks the largest one that fits.
func FormatHuman(size int64, unit string) string {
	switch {
	case (unit == "" && size >= GB) || unit == "GB":
		return humanize.FormatFloat(decimalFormat, float64(size)/float64(GB)) + " GB"
	case (unit == "" && size >= MB) || unit == "MB":
		return humanize.FormatFloat(decimalFormat, float64(size)/float64(MB)) + " MB"
	case (unit == "" && size >= KB) || unit == "KB":
		return humanize.FormatFloat(decimalFormat, float64(size)/float64(KB)) + " KB"
	}
	return humanize.Comma(size) + " bytes"
}

// ParseSize reads a php.ini style size ("6M", "512k", "0x400", "+2g").
// An empty string means unlimited.
func ParseSize(s string) int64 {
	if s == "" {
		return math.MaxInt64
	}

	raw := strings.TrimLeft(s, "+")
	var n int64
	switch {
	case strings.HasPrefix(raw, "0x"):
		n = leadingInt(raw[2:], 16)
	case strings.HasPrefix(raw, "0"):
		n = leadingInt(raw, 8)
	default:
		n = leadingInt(raw, 10)
	}

	// each suffix multiplies through the smaller ones
	switch strings.ToLower(s[len(s)-1:]) {
	case "t":
		n *= 1024
		fallthrough
	case "g":
		n *= 1024
		fallthrough
	case "m":
		n *= 1024
		fallthrough
	case "k":
		n *= 1024
	}
	return n
}

func leadingInt(s string, base int) int64 {
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0
	}
	return n
}

func isDigit(c byte, base int) bool {
	switch base {
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}
