// Package importer turns raw bank-statement exports (CSV, OFX/QFX)
// into transaction batches with heuristic auto-tagging.
package importer

import "strings"

// keywordRule maps a category tag to the description keywords that
// select it.
type keywordRule struct {
	Tag      string
	Keywords []string
}

// keywordRules is the auto-tagging table. Rules are tried in order and
// the first match wins; descriptions that match nothing stay untagged.
// Keywords cover common Brazilian and English merchant terms.
var keywordRules = []keywordRule{
	{Tag: "Transporte", Keywords: []string{"uber", "99", "gas", "parking", "estacionamento", "combustivel", "posto"}},
	{Tag: "Alimentação", Keywords: []string{"ifood", "rappi", "market", "restaurant", "burger", "mcdonalds", "kfc", "padaria", "supermercado"}},
	{Tag: "Lazer", Keywords: []string{"netflix", "steam", "spotify", "cinema", "hbomax", "amazon prime", "disney"}},
	{Tag: "Investimentos", Keywords: []string{"brokerage", "b3", "treasury", "corretora", "nubank", "inter", "nuinvest"}},
	{Tag: "Salario", Keywords: []string{"salary", "payment", "remuneration", "pagamento", "salário"}},
}

// autoTag picks a category tag for a statement description, or empty
// if no rule matches.
func autoTag(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Tag
			}
		}
	}
	return ""
}
