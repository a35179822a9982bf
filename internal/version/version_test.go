package version

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: "(devel)"},
		{in: "(devel)", want: "(devel)"},
		{in: "v0.3.1", want: "v0.3.1"},
		{in: "v0.3.1+dirty", want: "(devel)"},
		{in: "v0.0.0-20250716020515-7a30fe114040", want: "(devel)"},
		{in: "v0.3.2-0.20250716020515-7a30fe114040", want: "(devel)"},
		{in: "v1.0.0-rc.1", want: "v1.0.0-rc.1"},
	}

	for _, tc := range cases {
		if got := normalize(tc.in); got != tc.want {
			t.Fatalf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOverrideWins(t *testing.T) {
	old := Override
	t.Cleanup(func() { Override = old })

	Override = "v9.9.9"
	if got := String(); got != "v9.9.9" {
		t.Fatalf("String() = %q, want v9.9.9", got)
	}
}
