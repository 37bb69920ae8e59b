package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	repo "refurbstore/internal/repository"
)

// Brand keyword table for the serial prefix. Matched case-insensitively as
// a substring of the laptop name; unknown brands get the generic "GN".
var brandPrefixes = []struct {
	keyword string
	prefix  string
}{
	{"dell", "DL"},
	{"latitude", "DL"},
	{"hp", "HP"},
	{"elitebook", "HP"},
	{"lenovo", "LN"},
	{"thinkpad", "LN"},
	{"asus", "AS"},
	{"acer", "AC"},
	{"apple", "AP"},
	{"macbook", "AP"},
	{"msi", "MS"},
	{"toshiba", "TS"},
	{"samsung", "SG"},
	{"microsoft", "MF"},
	{"surface", "MF"},
}

func brandPrefix(name string) string {
	lower := strings.ToLower(name)
	for _, b := range brandPrefixes {
		if strings.Contains(lower, b.keyword) {
			return b.prefix
		}
	}
	return "GN"
}

// generateSerial builds prefix + MMYY + zero-padded sequence (two digits,
// three once the count passes 99) and retries upward until the serial is
// free. Uniqueness ultimately rests on the unique index on serial_number;
// this loop is read-then-write and not safe under concurrent creators.
func generateSerial(ctx context.Context, laptops repo.LaptopRepository, name string, now time.Time) (string, error) {
	stamp := brandPrefix(name) + now.Format("0106")

	count, err := laptops.CountBySerialPrefix(ctx, stamp)
	if err != nil {
		return "", err
	}

	seq := count + 1
	for {
		var serial string
		if seq > 99 {
			serial = fmt.Sprintf("%s%03d", stamp, seq)
		} else {
			serial = fmt.Sprintf("%s%02d", stamp, seq)
		}

		exists, err := laptops.SerialExists(ctx, serial)
		if err != nil {
			return "", err
		}
		if !exists {
			return serial, nil
		}
		seq++
	}
}
