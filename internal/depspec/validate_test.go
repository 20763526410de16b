package depspec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"create-package-json", false},
		{"@pkgjs/create-package-json", false},
		{"@pkgjs/create@^1.0.0", false},
		{"./local", true},
		{"github:pkgjs/create", true},
		{"UPPER", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidatePackageName(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePackageName(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "naming rules") {
				t.Errorf("error %q missing naming rules hint", err)
			}
		})
	}
}

func TestValidatePackageName_Unwraps(t *testing.T) {
	err := ValidatePackageName("mocha@a.b.c")
	var semErr *InvalidSemverError
	if !errors.As(err, &semErr) {
		t.Fatalf("error = %v, want wrapped *InvalidSemverError", err)
	}
}

func TestValidatePackageSpec_FirstError(t *testing.T) {
	if err := ValidatePackageSpec([]string{"mocha", "eslint@^7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidatePackageSpec([]string{"mocha", "Bad", "./dir"})
	var nameErr *InvalidNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("error = %v, want *InvalidNameError", err)
	}
	if nameErr.Raw != "Bad" {
		t.Errorf("Raw = %q, want Bad", nameErr.Raw)
	}
}

func TestToVersionStrings(t *testing.T) {
	deps := map[string]string{"mocha": "~8.0.0", "eslint": "*", "a": ""}

	got := ToVersionStrings(deps, true)
	want := []string{"a", "eslint", "mocha@~8.0.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToVersionStrings(true) = %v, want %v", got, want)
	}

	got = ToVersionStrings(deps, false)
	want = []string{"a", "eslint", "mocha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToVersionStrings(false) = %v, want %v", got, want)
	}
}

func TestPeerRange(t *testing.T) {
	got := map[string]string{}
	for _, raw := range []string{"mocha@~8.0.0", "eslint", "chai@4.3.0", "x@github:a/x"} {
		s, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", raw, err)
		}
		got[s.Name] = PeerRange(s)
	}
	want := map[string]string{"mocha": "~8.0.0", "eslint": "*", "chai": "4.3.0", "x": "*"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("peer ranges = %v, want %v", got, want)
	}
}
