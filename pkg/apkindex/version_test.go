package apkindex

import (
	"slices"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.10", "1.9", 1},
		{"1.2", "1.2.1", -1},
		{"1.2.3-r0", "1.2.3-r1", -1},
		{"1.2.3-r10", "1.2.3-r9", 1},
		{"1.2.3", "1.2.3-r0", 0},
		{"1.2a", "1.2", 1},
		{"1.2a", "1.2b", -1},
		{"1.0_alpha1", "1.0_beta1", -1},
		{"1.0_rc2", "1.0", -1},
		{"1.0_rc1", "1.0_rc2", -1},
		{"1.0_p1", "1.0", 1},
		{"1.0_git20240101", "1.0_p1", -1},
		{"2.0~abc123", "2.0", 0},
		{"garbage", "1.0", -1},
		{"1.0", "garbage", 1},
		{"abc", "abd", -1},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.want != 0 {
			if got := CompareVersions(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d (antisymmetry)", tt.b, tt.a, got, -tt.want)
			}
		}
	}
}

func TestCompareVersionsSort(t *testing.T) {
	versions := []string{"1.36.1-r29", "1.36.1-r2", "1.35.0-r5", "1.36.1_rc1-r0", "1.36.10-r0"}
	slices.SortFunc(versions, CompareVersions)
	want := []string{"1.35.0-r5", "1.36.1_rc1-r0", "1.36.1-r2", "1.36.1-r29", "1.36.10-r0"}
	if !slices.Equal(versions, want) {
		t.Errorf("sorted = %v, want %v", versions, want)
	}
}
