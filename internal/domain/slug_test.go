package domain

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "diacritics folded", input: "Café Déjà Vu!", want: "cafe-deja-vu"},
		{name: "lowercase", input: "Blue T-Shirt", want: "blue-t-shirt"},
		{name: "runs collapse", input: "a  --  b__c", want: "a-b-c"},
		{name: "digits kept", input: "iPhone 15 Pro", want: "iphone-15-pro"},
		{name: "leading and trailing separators", input: "  (hello)  ", want: "hello"},
		{name: "eszett", input: "Straße", want: "strasse"},
		{name: "ligature", input: "Œuvre", want: "oeuvre"},
		{name: "nordic", input: "Smørrebrød", want: "smorrebrod"},
		{name: "polish", input: "Łódź", want: "lodz"},
		{name: "compatibility ligature", input: "ﬁne", want: "fine"},
		{name: "fullwidth", input: "ＡＢＣ", want: "abc"},
		{name: "unmappable dropped", input: "日本 shoes", want: "shoes"},
		{name: "only unmappable", input: "日本語", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "already a slug", input: "red-dress-42", want: "red-dress-42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify_Properties(t *testing.T) {
	t.Parallel()

	safe := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		"", " ", "-", "--a--", "Ünïcödé Ñame", "100% Cotton / Linen",
		"ÀÉÎÕÜ àéîõü", "€ 20,00", "tab\tnew\nline", "Ça va? Très bien!",
		"ǅemal", "Ⅻ roman", "emoji 🙂 shirt", "日本語のテキスト", "___",
	}

	for _, in := range inputs {
		once := Slugify(in)
		if !safe.MatchString(once) {
			t.Errorf("Slugify(%q) = %q, not URL-safe", in, once)
		}
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
