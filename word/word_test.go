package word

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"camel case", "helloWorld", []string{"hello", "World"}},
		{"pascal case", "HelloWorld", []string{"Hello", "World"}},
		{"snake case", "hello_world", []string{"hello", "world"}},
		{"upper case", "HELLO_WORLD", []string{"HELLO", "WORLD"}},
		{"label", "hello world", []string{"hello", "world"}},
		{"kebab case", "hello-world", []string{"hello", "world"}},
		{"dot case", "hello.world", []string{"hello", "world"}},
		{"title case", "Hello World", []string{"Hello", "World"}},
		{"empty", "", nil},
		{"numbers do not split", "hello123World", []string{"hello123", "World"}},
		{"trim", "\t Hello __  World \t ", []string{"Hello", "World"}},
		{"acronym", "XMLParser", []string{"XML", "Parser"}},
		{
			"mixed",
			"CaMel&_kd-fdéÀàf aa1 Ds.totoAAA",
			[]string{"Ca", "Mel&", "kd", "fdé", "Ààf", "aa1", "Ds", "totoAAA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// anyCase holds one phrase written in every supported convention.
var anyCase = []string{
	"HelloWorld",
	"hello_world",
	"hello-world",
	"HELLO_WORLD",
	"hello world",
	"hello.world",
	"Hello World",
	"\t Hello _ World \t ",
}

func TestConvert_AnyCase(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"label", Label, "hello world"},
		{"capitalized label", CapitalizedLabel, "Hello world"},
		{"upper", Upper, "HELLO_WORLD"},
		{"camel", Camel, "helloWorld"},
		{"pascal", Pascal, "HelloWorld"},
		{"snake", Snake, "hello_world"},
		{"kebab", Kebab, "hello-world"},
		{"dot", Dot, "hello.world"},
		{"title", Title, "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range anyCase {
				if got := tt.fn(in); got != tt.want {
					t.Errorf("%s(%q) = %q, want %q", tt.name, in, got, tt.want)
				}
			}

			if got := tt.fn(""); got != "" {
				t.Errorf("%s(\"\") = %q, want empty", tt.name, got)
			}
		})
	}
}

func TestConvert_Unicode(t *testing.T) {
	const in = "CaMel&_kd-fdéÀàf aa1 Ds.totoAAA"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"lower", Lower, "camel&_kd-fdéààf aa1 ds.totoaaa"},
		{"upper", Upper, "CA_MEL&_KD_FDÉ_ÀÀF_AA1_DS_TOTOAAA"},
		{"label", Label, "ca mel& kd fdé ààf aa1 ds totoaaa"},
		{"capitalized label", CapitalizedLabel, "Ca mel& kd fdé ààf aa1 ds totoaaa"},
		{"camel", Camel, "caMel&KdFdéÀàfAa1DsTotoaaa"},
		{"kebab", Kebab, "ca-mel&-kd-fdé-ààf-aa1-ds-totoaaa"},
		{"pascal", Pascal, "CaMel&KdFdéÀàfAa1DsTotoaaa"},
		{"snake", Snake, "ca_mel&_kd_fdé_ààf_aa1_ds_totoaaa"},
		{"dot", Dot, "ca.mel&.kd.fdé.ààf.aa1.ds.totoaaa"},
		{"title", Title, "Ca Mel& Kd Fdé Ààf Aa1 Ds Totoaaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(in); got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, in, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"a":     "A",
		"éa":    "Éa",
		"hello": "Hello",
		"Hello": "Hello",
		"1abc":  "1abc",
	}

	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkSplit(b *testing.B) {
	for b.Loop() {
		_ = Split("CaMel&_kd-fdéÀàf aa1 Ds.totoAAA")
	}
}
