// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool // Whether the input should be valid
	}{
		// Valid formats - minutes:seconds (returns fractional minutes)
		{"1:30", "1.5", true},    // 1 + 30/60 = 1.5 minutes
		{"0:45", "0.75", true},   // 0 + 45/60 = 0.75 minutes
		{"2:15", "2.25", true},   // 2 + 15/60 = 2.25 minutes
		{"30:45", "30.75", true}, // 30 + 45/60 = 30.75 minutes
		{"5:30.5", "5.508333333333333", true},

		// Valid formats - hours:minutes:seconds (returns fractional hours)
		{"1:30:45", "1.5125", true},              // 1 + 30/60 + 45/3600 = 1.5125 hours
		{"0:0:30", "0.008333333333333333", true}, // 0 + 0/60 + 30/3600 = 0.008333... hours
		{"2:15:30", "2.258333333333333", true},   // 2 + 15/60 + 30/3600 = 2.258333... hours

		// Invalid formats - fractional hours
		{"1.5:30:45", "", false},
		{"0.5:0:0", "", false},

		// Invalid formats - fractional minutes
		{"1:30.5:45", "", false},
		{"0:15.25:30", "", false},

		// Invalid formats - too many parts
		{"1:2:3:4", "", false},

		// Invalid formats - non-numeric parts
		{"abc:30:45", "", false},
		{"1:abc:45", "", false},
		{"1:30:abc", "", false},
		{"", "", false},

		// Invalid formats - negative values
		{"-1:30:45", "", false},
		{"1:-30:45", "", false},
		{"1:30:-45", "", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, valid := parseBase60(test.input)

			if valid != test.valid {
				t.Errorf("parseBase60(%q) validity = %v, want %v", test.input, valid, test.valid)
				return
			}

			if test.valid {
				if result == nil {
					t.Errorf("parseBase60(%q) returned nil result for valid input", test.input)
					return
				}
				if result.String() != test.expected {
					t.Errorf("parseBase60(%q) = %v, want %v", test.input, result.String(), test.expected)
				}
			} else if result != nil {
				t.Errorf("parseBase60(%q) returned non-nil result for invalid input: %v", test.input, result.String())
			}
		})
	}
}

// Test edge cases for integral validation
func TestParseTimeIntegralValidation(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		// These should be valid (integral hours/minutes)
		{"1:30:45", true},
		{"0:0:45.5", true},
		{"10:59:0", true},

		// These should be invalid (fractional hours/minutes)
		{"1.0:30:45", false}, // Even 1.0 is considered fractional
		{"1:30.0:45", false}, // Even 30.0 is considered fractional
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, valid := parseBase60(test.input)
			if valid != test.valid {
				t.Errorf("parseBase60(%q) validity = %v, want %v", test.input, valid, test.valid)
			}
		})
	}
}

func TestIsNonNegativeInteger(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"00", true},
		{"1.0", false},
		{"1.5", false},
		{"-1", false},
		{"abc", false},
		{"", false},
		{"12a", false},
		{"a12", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result := isNonNegativeInteger(test.input)
			if result != test.expected {
				t.Errorf("isNonNegativeInteger(%q) = %v, want %v", test.input, result, test.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{"42", "42", true},
		{"-3.5", "-3.5", true},
		{".25", "0.25", true},
		{"1e3", "1000", true},
		{"0x1f", "31", true},
		{"-0b101", "-5", true},
		{"0o17", "15", true},
		{"4K", "4096", true},
		{"1:15", "1.25", true},

		// Units and operators are not numbers
		{"1m", "", false},
		{"km", "", false},
		{"-", "", false},
		{"+", "", false},
		{"1:x", "", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, valid := parseNumber(test.input)
			if valid != test.valid {
				t.Fatalf("parseNumber(%q) validity = %v, want %v", test.input, valid, test.valid)
			}
			if valid && result.String() != test.expected {
				t.Errorf("parseNumber(%q) = %v, want %v", test.input, result.String(), test.expected)
			}
		})
	}
}

// Test binary magnitude parsing functionality
func TestBinaryMagnitudeParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic magnitude tests
		{"1K", "1024"},
		{"1M", "1048576"},
		{"1G", "1073741824"},
		{"1T", "1099511627776"},
		{"1P", "1125899906842624"},
		{"1E", "1152921504606846976"},
		{"1Z", "1180591620717411303424"},
		{"1Y", "1208925819614629174706176"},

		// Multiple factors
		{"2K", "2048"},
		{"3M", "3145728"},
		{"10G", "10737418240"},

		// Fractional base numbers
		{"1.5K", "1536"},
		{"2.5M", "2621440"},
		{"0.5G", "536870912"},

		// Negative numbers
		{"-1K", "-1024"},
		{"-2M", "-2097152"},

		// Numbers without magnitude
		{"1024", "1024"},
		{"42.5", "42.5"},

		// Edge cases
		{"0K", "0"},
		{"0M", "0"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, remainder := NewFromString(test.input)
			if result == nil {
				t.Fatalf("NewFromString(%q) returned nil for valid input", test.input)
			}
			if result.String() != test.expected {
				t.Errorf("NewFromString(%q) = %v, want %v", test.input, result.String(), test.expected)
			}
			if remainder != "" {
				t.Errorf("NewFromString(%q) remainder = %q, want empty", test.input, remainder)
			}
		})
	}
}

// Test binary magnitude edge cases and error conditions
func TestBinaryMagnitudeEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		remainder string
	}{
		// Test that invalid suffixes don't interfere
		{"Invalid suffix X", "100X", "100", "X"},
		{"Invalid suffix A", "50A", "50", "A"},
		{"Invalid suffix lowercase k", "1k", "1", "k"}, // lowercase not supported

		// Magnitudes apply to other bases too
		{"Hex with K", "0x10K", "16384", ""},
		{"Binary with M", "0b1010M", "10485760", ""},

		// Test multiple magnitude letters (only first one should be used)
		{"Multiple K", "1KK", "1024", "K"},

		// A number followed by units
		{"Units", "3km", "3", "km"},

		// Test magnitude at beginning (invalid)
		{"K at start", "K100", "", "K100"},

		{"Empty string", "", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, remainder := NewFromString(test.input)

			if test.expected == "" {
				if result != nil {
					t.Errorf("NewFromString(%q) = %v, want nil", test.input, result.String())
				}
			} else {
				if result == nil {
					t.Fatalf("NewFromString(%q) returned nil, want %v", test.input, test.expected)
				}
				if result.String() != test.expected {
					t.Errorf("NewFromString(%q) = %v, want %v", test.input, result.String(), test.expected)
				}
			}

			if remainder != test.remainder {
				t.Errorf("NewFromString(%q) remainder = %q, want %q", test.input, remainder, test.remainder)
			}
		})
	}
}

// Test negative number formatting in different bases
func TestNegativeNumberFormatting(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		base     int
		expected string
	}{
		// Hexadecimal
		{"Negative hex -16", "-16", 16, "-0x10"},
		{"Negative hex -255", "-255", 16, "-0xff"},
		{"Negative hex -10", "-10", 16, "-0xa"},
		{"Positive hex 16", "16", 16, "0x10"},

		// Binary
		{"Negative binary -8", "-8", 2, "-0b1000"},
		{"Negative binary -15", "-15", 2, "-0b1111"},
		{"Negative binary -1", "-1", 2, "-0b1"},
		{"Positive binary 8", "8", 2, "0b1000"},

		// Octal
		{"Negative octal -8", "-8", 8, "-0o10"},
		{"Negative octal -64", "-64", 8, "-0o100"},
		{"Negative octal -7", "-7", 8, "-0o7"},
		{"Positive octal 8", "8", 8, "0o10"},

		// Edge cases
		{"Zero hex", "0", 16, "0x0"},
		{"Zero binary", "0", 2, "0b0"},
		{"Zero octal", "0", 8, "0o0"},

		// Fractional numbers fall back to decimal
		{"Negative fractional hex", "-16.5", 16, "-16.5"},
		{"Negative fractional binary", "-8.25", 2, "-8.25"},
		{"Positive fractional hex", "16.5", 16, "16.5"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := toString(decimal.RequireFromString(test.number), test.base)
			if result != test.expected {
				t.Errorf("toString(%s, %d) = %s, want %s", test.number, test.base, result, test.expected)
			}
		})
	}
}

func TestFormatGrouping(t *testing.T) {
	tests := []struct {
		number    string
		base      int
		precision int
		group     bool
		expected  string
	}{
		{"1234567.891", 10, 2, false, "1234567.89"},
		{"1234567.891", 10, 2, true, "1,234,567.89"},
		{"-1234567", 10, 4, true, "-1,234,567"},
		{"-0.5", 10, 4, true, "-0.5"},
		{"999", 10, 4, true, "999"},
		{"123456789012345678901234", 10, 0, true, "123,456,789,012,345,678,901,234"},
		{"65535", 16, 4, true, "0xffff"},
		{"1048575", 16, 4, true, "0xf_ffff"},
		{"-255", 2, 4, true, "-0b1111_1111"},
		{"2", 10, 4, false, "2"},
		{"0.33333333", 10, 4, false, "0.3333"},
	}

	for _, test := range tests {
		t.Run(test.number, func(t *testing.T) {
			result := format(decimal.RequireFromString(test.number), test.base, test.precision, test.group)
			if result != test.expected {
				t.Errorf("format(%s, %d, %d, %v) = %s, want %s",
					test.number, test.base, test.precision, test.group, result, test.expected)
			}
		})
	}
}
