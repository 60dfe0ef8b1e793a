package quantity

import "testing"

func TestFromContext_Table(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		pattern string
		want    float64
	}{
		{
			name:    "explicit meters",
			segment: "dra 12 meter rör",
			pattern: "rör",
			want:    12,
		},
		{
			name:    "meters with decimal comma",
			segment: "dra 3,60 meter kabel i rör",
			pattern: "kabel i rör",
			want:    3.6,
		},
		{
			name:    "short meter unit",
			segment: "dra 8 m rör i källaren",
			pattern: "rör",
			want:    8,
		},
		{
			name:    "meter after pattern still used when none before",
			segment: "dra rör längs väggen 15 meter",
			pattern: "rör",
			want:    15,
		},
		{
			name:    "mm is not a meter unit, digit rule applies instead",
			segment: "byta 2 st kabel 16 mm utanpå vägguttag",
			pattern: "vägguttag",
			want:    16,
		},
		{
			name:    "digit run in lookback window",
			segment: "byta 3 vägguttag i hallen",
			pattern: "vägguttag",
			want:    3,
		},
		{
			name:    "number word",
			segment: "byta tre vägguttag",
			pattern: "vägguttag",
			want:    3,
		},
		{
			name:    "number word with diacritic",
			segment: "montera åtta uttag",
			pattern: "uttag",
			want:    8,
		},
		{
			name:    "higher number word",
			segment: "byta femton strömbrytare",
			pattern: "strömbrytare",
			want:    15,
		},
		{
			name:    "approx ett par",
			segment: "byta ett par vägguttag",
			pattern: "vägguttag",
			want:    2,
		},
		{
			name:    "approx några",
			segment: "montera några uttag i köket",
			pattern: "uttag",
			want:    3,
		},
		{
			name:    "default when nothing found",
			segment: "byta vägguttag",
			pattern: "vägguttag",
			want:    1,
		},
		{
			name:    "pattern word missing from segment",
			segment: "byta tre saker",
			pattern: "vägguttag",
			want:    1,
		},
		{
			name:    "zero word falls through to default",
			segment: "byta noll vägguttag",
			pattern: "vägguttag",
			want:    1,
		},
		{
			name:    "meter outranks digit",
			segment: "dra 2 nya ledningar 12 meter rör",
			pattern: "rör",
			want:    12,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromContext(tc.segment, tc.pattern)
			if got != tc.want {
				t.Fatalf("FromContext(%q, %q) = %v, want %v", tc.segment, tc.pattern, got, tc.want)
			}
		})
	}
}
