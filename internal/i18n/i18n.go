// Package i18n translates message codes and status labels to French or
// English. French is the default language.
package i18n

import (
	"context"
	"strings"
)

const (
	FR = "fr"
	EN = "en"
)

var messages = map[string]map[string]string{
	FR: {
		"required":                "Requis",
		"must_be_positive":        "Doit être positif",
		"must_not_be_negative":    "Ne peut pas être négatif",
		"invalid_email":           "Adresse e-mail invalide",
		"invalid_date":            "Date invalide (AAAA-MM-JJ)",
		"at_least_one_item":       "Au moins un article est requis",
		"unknown_client":          "Client inconnu",
		"unknown_material":        "Matériau inconnu",
		"invalid_status":          "Statut invalide",
		"invalid_transition":      "Changement de statut non autorisé",
		"invalid_theme":           "Thème invalide",
		"invalid_rule":            "Filtre invalide",
		"invalid_json":            "Corps JSON invalide",
		"invalid_file":            "Fichier invalide",
		"invalid_language":        "Langue non prise en charge",
		"empty_file":              "Le fichier ne contient aucune ligne",
		"not_found":               "Introuvable",
		"quotation_not_validated": "Le devis doit être validé",
		"validation_failed":       "Formulaire invalide",
		"internal_error":          "Erreur interne",

		"col_id":         "N°",
		"col_client":     "Client",
		"col_date":       "Date",
		"col_items":      "Articles",
		"col_total":      "Total",
		"col_status":     "Statut",
		"col_quotation":  "Devis",
		"col_name":       "Nom",
		"col_unit":       "Unité",
		"col_unit_price": "Prix unitaire",

		"notify_invoice_generated": "Facture %s émise pour %s : %s €",
		"notify_invoice_status":    "Facture %s : %s",

		"brouillon":           "Brouillon",
		"en cours":            "En cours",
		"validé":              "Validé",
		"facturé":             "Facturé",
		"émise":               "Émise",
		"payée":               "Payée",
		"partiellement payée": "Partiellement payée",
		"annulée":             "Annulée",
		"en retard":           "En retard",
	},
	EN: {
		"required":                "Required",
		"must_be_positive":        "Must be positive",
		"must_not_be_negative":    "Must not be negative",
		"invalid_email":           "Invalid email address",
		"invalid_date":            "Invalid date (YYYY-MM-DD)",
		"at_least_one_item":       "At least one item is required",
		"unknown_client":          "Unknown client",
		"unknown_material":        "Unknown material",
		"invalid_status":          "Invalid status",
		"invalid_transition":      "Status change not allowed",
		"invalid_theme":           "Invalid theme",
		"invalid_rule":            "Invalid filter",
		"invalid_json":            "Invalid JSON body",
		"invalid_file":            "Invalid file",
		"invalid_language":        "Unsupported language",
		"empty_file":              "The file has no rows",
		"not_found":               "Not found",
		"quotation_not_validated": "The quotation must be validated",
		"validation_failed":       "Invalid form",
		"internal_error":          "Internal error",

		"col_id":         "No.",
		"col_client":     "Client",
		"col_date":       "Date",
		"col_items":      "Items",
		"col_total":      "Total",
		"col_status":     "Status",
		"col_quotation":  "Quotation",
		"col_name":       "Name",
		"col_unit":       "Unit",
		"col_unit_price": "Unit price",

		"notify_invoice_generated": "Invoice %s issued to %s: €%s",
		"notify_invoice_status":    "Invoice %s: %s",

		"brouillon":           "Draft",
		"en cours":            "In progress",
		"validé":              "Validated",
		"facturé":             "Invoiced",
		"émise":               "Issued",
		"payée":               "Paid",
		"partiellement payée": "Partially paid",
		"annulée":             "Cancelled",
		"en retard":           "Overdue",
	},
}

// DetectLanguage picks the language from an Accept-Language header. Only the
// first tag is considered; anything but English falls back to French.
func DetectLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	primary, _, _ := strings.Cut(strings.TrimSpace(first), "-")
	if strings.EqualFold(primary, EN) {
		return EN
	}
	return FR
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// T translates code. Unknown languages use French; unknown codes are
// returned unchanged.
func T(lang, code string) string {
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	if msg, ok := messages[FR][code]; ok {
		return msg
	}
	return code
}

// TranslateAll translates every value of a field -> code map.
func TranslateAll(lang string, codes map[string]string) map[string]string {
	out := make(map[string]string, len(codes))
	for field, code := range codes {
		out[field] = T(lang, code)
	}
	return out
}

type ctxKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the language stored by WithLang, or French.
func FromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return FR
}
