package anonymizer

import (
	"fmt"
	"strings"
	"testing"
)

func TestMaskUnmaskRoundTrip(t *testing.T) {
	engine := New()

	tests := []struct {
		name string
		in   string
	}{
		{name: "email", in: "Пишите на ivanov@example.com по любым вопросам"},
		{name: "phone with separators", in: "Звоните +7 (999) 123-45-67 в рабочее время"},
		{name: "bare phone", in: "Телефон 89991234567, спрашивать Ивана"},
		{name: "link tag", in: "Профиль: [URL=https://example.com/u/1]Иван Иванов[/URL]"},
		{
			name: "mixed",
			in:   "Контакты: ivanov@example.com, +7 999 123 45 67 и [URL=https://t.me/ivanov]телеграм[/URL]",
		},
		{name: "nothing to mask", in: "Отпуск оформляется через портал"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping := NewMapping()
			masked := engine.Mask(tt.in, mapping)

			if got := Unmask(masked, mapping); got != tt.in {
				t.Errorf("round trip changed text:\n in: %q\nout: %q", tt.in, got)
			}
		})
	}
}

func TestMaskReplacesPersonalData(t *testing.T) {
	engine := New()
	mapping := NewMapping()

	masked := engine.Mask("Пишите на ivanov@example.com или звоните +7 (999) 123-45-67", mapping)

	if strings.Contains(masked, "ivanov@example.com") {
		t.Error("email leaked into masked text")
	}
	if strings.Contains(masked, "123-45-67") {
		t.Error("phone leaked into masked text")
	}
	if !strings.Contains(masked, "[EMAIL_1]") {
		t.Errorf("masked text %q missing email placeholder", masked)
	}
	if !strings.Contains(masked, "[PHONE_1]") {
		t.Errorf("masked text %q missing phone placeholder", masked)
	}
	if mapping.Len() != 2 {
		t.Errorf("mapping.Len() = %d, want 2", mapping.Len())
	}
}

func TestMaskDeduplicatesIdenticalValues(t *testing.T) {
	engine := New()
	mapping := NewMapping()

	masked := engine.Mask("Основной адрес ivanov@example.com, дублировать на ivanov@example.com", mapping)

	if mapping.Len() != 1 {
		t.Fatalf("mapping.Len() = %d, want 1 for repeated value", mapping.Len())
	}
	if strings.Count(masked, "[EMAIL_1]") != 2 {
		t.Errorf("masked text %q should use the same placeholder twice", masked)
	}
}

func TestMaskSharedMappingAcrossTexts(t *testing.T) {
	// One request masks context and question with a single mapping: the same
	// value must get the same placeholder in both.
	engine := New()
	mapping := NewMapping()

	first := engine.Mask("Ответственный: ivanov@example.com", mapping)
	second := engine.Mask("Как написать на ivanov@example.com?", mapping)

	if mapping.Len() != 1 {
		t.Fatalf("mapping.Len() = %d, want 1", mapping.Len())
	}
	if !strings.Contains(first, "[EMAIL_1]") || !strings.Contains(second, "[EMAIL_1]") {
		t.Errorf("placeholder not shared: %q / %q", first, second)
	}
}

func TestMaskLinkTagBeforeEmail(t *testing.T) {
	// The email inside a link tag must be swallowed by the URL pass,
	// not split into a separate email placeholder.
	engine := New()
	mapping := NewMapping()

	masked := engine.Mask("[URL=mailto:ivanov@example.com]написать[/URL]", mapping)

	if masked != "[URL_1]" {
		t.Errorf("masked = %q, want single [URL_1] placeholder", masked)
	}
	if mapping.Len() != 1 {
		t.Errorf("mapping.Len() = %d, want 1", mapping.Len())
	}
}

func TestUnmaskLongestKeyFirst(t *testing.T) {
	mapping := NewMapping()
	for i := 1; i <= 12; i++ {
		mapping.placeholderFor(TypePhone, fmt.Sprintf("+7999123450%d", i))
	}

	// [PHONE_1] is a prefix of [PHONE_12]; replacing short keys first
	// would corrupt the longer placeholder.
	text := "первый [PHONE_1], двенадцатый [PHONE_12]"
	got := Unmask(text, mapping)

	if strings.Contains(got, "[PHONE") {
		t.Errorf("Unmask left placeholders behind: %q", got)
	}
	if !strings.Contains(got, "+79991234501,") {
		t.Errorf("short placeholder resolved wrong: %q", got)
	}
}

func TestUnmaskEmptyMappingIsNoop(t *testing.T) {
	text := "текст с [PHONE_1] похожим на плейсхолдер"
	if got := Unmask(text, NewMapping()); got != text {
		t.Errorf("Unmask with empty mapping changed text: %q", got)
	}
}

type fakeTagger struct {
	spans []Span
}

func (f fakeTagger) Tag(string) []Span { return f.spans }

func TestMaskWithEntityTagger(t *testing.T) {
	text := "Обратитесь к Иванову"
	idx := strings.Index(text, "Иванову")
	engine := New(WithEntityTagger(fakeTagger{spans: []Span{
		{Start: idx, End: idx + len("Иванову"), Type: TypePer},
	}}))

	mapping := NewMapping()
	masked := engine.Mask(text, mapping)

	if masked != "Обратитесь к [PER_1]" {
		t.Errorf("masked = %q, want person placeholder", masked)
	}
	if got := Unmask(masked, mapping); got != text {
		t.Errorf("round trip changed text: %q", got)
	}
}
