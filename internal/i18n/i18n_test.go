package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr fallback")
	}
	if DetectLanguage("de-DE,en;q=0.5") != "fr" {
		t.Fatalf("expected fr when the first tag is not supported")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
}

func TestStatusLabels(t *testing.T) {
	if T("en", "partiellement payée") != "Partially paid" {
		t.Fatalf("expected English invoice status label")
	}
	if T("fr", "validé") != "Validé" {
		t.Fatalf("expected French quotation status label")
	}
}

func TestTranslateAll(t *testing.T) {
	got := TranslateAll("en", map[string]string{"name": "required", "email": "invalid_email"})
	if got["name"] != "Required" || got["email"] != "Invalid email address" {
		t.Fatalf("unexpected translations: %v", got)
	}
}

func TestEveryCodeHasBothLanguages(t *testing.T) {
	for code := range messages[FR] {
		if _, ok := messages[EN][code]; !ok {
			t.Errorf("missing English message for %q", code)
		}
	}
	for code := range messages[EN] {
		if _, ok := messages[FR][code]; !ok {
			t.Errorf("missing French message for %q", code)
		}
	}
}

func TestLangContext(t *testing.T) {
	if FromContext(context.Background()) != "fr" {
		t.Fatalf("expected fr without a language")
	}
	if FromContext(WithLang(context.Background(), "en")) != "en" {
		t.Fatalf("expected en from context")
	}
}
