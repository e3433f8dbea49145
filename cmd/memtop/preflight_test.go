//go:build linux

package main

import "testing"

func TestKernelTooOld(t *testing.T) {
	cases := []struct {
		name    string
		version string
		old     bool
	}{
		{"modern", "6.8.0-41-generic", false},
		{"exactMinimum", "4.14.0", false},
		{"tooOld", "4.13.16", true},
		{"ancient", "3.10.0-1160.el7.x86_64", true},
		{"unparseable", "mystery-kernel", false},
		{"missingMinor", "5", false},
	}
	for _, tc := range cases {
		old, _, _ := kernelTooOld(tc.version)
		if old != tc.old {
			t.Fatalf("%s: kernelTooOld(%q) = %t, want %t", tc.name, tc.version, old, tc.old)
		}
	}
}

func TestLeadingDigits(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"14", "14"},
		{"8-generic", "8"},
		{"x", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := leadingDigits(tc.input); got != tc.expected {
			t.Fatalf("leadingDigits(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
