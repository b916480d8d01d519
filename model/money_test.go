package model

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"500", Naira(500)},
		{" 4000 ", Naira(4000)},
		{"12.5", 1250},
		{"0.01", 1},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-5", "1.001", "1e20"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q): expected invalid amount, got %v", in, err)
		}
	}
}

func TestAmountString(t *testing.T) {
	if got := Naira(4500).String(); got != "₦4500.00" {
		t.Fatalf("expected ₦4500.00, got %q", got)
	}
	if got := Amount(1250).String(); got != "₦12.50" {
		t.Fatalf("expected ₦12.50, got %q", got)
	}
	if got := Amount(0).String(); got != "₦0.00" {
		t.Fatalf("expected ₦0.00, got %q", got)
	}
}
