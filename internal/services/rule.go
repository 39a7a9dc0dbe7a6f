package services

import (
	"errors"
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/diewo77/go-devis/internal/models"
)

// ErrInvalidRule is returned for a quotation rule that does not compile or
// does not evaluate to a boolean.
var ErrInvalidRule = errors.New("invalid_rule")

// QuotationRule is a compiled boolean expression over a quotation, such as
// `total > 500 && status == "validé"`. Variables: id, client_id, client,
// date, total, status and items (the item count).
type QuotationRule struct {
	source  string
	program *exprvm.Program
}

func ruleEnv(q models.Quotation, client string) map[string]any {
	return map[string]any{
		"id":        q.ID,
		"client_id": q.ClientID,
		"client":    client,
		"date":      q.Date,
		"total":     q.Total,
		"status":    string(q.Status),
		"items":     len(q.Items),
	}
}

// CompileQuotationRule parses src once; the rule can then be matched against
// any number of quotations.
func CompileQuotationRule(src string) (*QuotationRule, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRule)
	}
	program, err := exprlang.Compile(src,
		exprlang.Env(ruleEnv(models.Quotation{}, "")),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return &QuotationRule{source: src, program: program}, nil
}

func (r *QuotationRule) String() string { return r.source }

// Match evaluates the rule for q, whose client resolves to client ("" when
// dangling).
func (r *QuotationRule) Match(q models.Quotation, client string) (bool, error) {
	out, err := exprlang.Run(r.program, ruleEnv(q, client))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
