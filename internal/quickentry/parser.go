// Package quickentry parses a single free-text line into a draft
// transaction: amount, direction, at most one known tag, and a
// description from whatever text remains.
package quickentry

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/cinenz0/finance-tracker/internal/model"
)

// DefaultDescription is used when nothing usable remains in the input.
const DefaultDescription = "Quick Transaction"

// amountPattern matches the first integer or decimal number; the
// decimal separator may be a period or a comma with 1-2 fraction
// digits.
var amountPattern = regexp.MustCompile(`\d+([.,]\d{1,2})?`)

// incomeKeywords flip the draft to income when present anywhere in the
// text, case-insensitive. English and Portuguese synonyms plus a bare
// plus sign.
var incomeKeywords = []string{"income", "deposit", "salary", "receita", "deposito", "+"}

// Draft is the parsed shape of a quick-entry line. A zero Amount means
// the line had no number and must not be submitted.
type Draft struct {
	Amount      float64
	Type        model.TransactionType
	Tag         *model.Tag
	Description string
	Date        model.Date
}

// Parse extracts a draft from a free-text line against the known tags.
// Empty input yields nil.
func Parse(input string, tags []model.Tag) *Draft {
	if input == "" {
		return nil
	}

	text := input
	draft := &Draft{
		Type: model.TypeExpense,
		Date: model.Today(),
	}

	// 1. Amount: first numeric substring, comma normalized to period.
	if match := amountPattern.FindString(text); match != "" {
		value, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
		if err == nil {
			draft.Amount = value
		}
		text = strings.TrimSpace(strings.Replace(text, match, "", 1))
	}

	// 2. Type: any income keyword anywhere in the remaining text.
	lower := strings.ToLower(text)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			draft.Type = model.TypeIncome
			break
		}
	}
	text = strings.TrimPrefix(text, "+ ")
	text = strings.TrimSpace(strings.TrimPrefix(text, "+"))

	// 3. Tag: longest names first so multi-word tags win over their
	// single-word substrings; whole-word, case-insensitive; one tag max.
	sorted := append([]model.Tag(nil), tags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})
	for i := range sorted {
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(sorted[i].Name) + `\b`)
		if err != nil {
			continue
		}
		if pattern.MatchString(text) {
			tag := sorted[i]
			draft.Tag = &tag
			text = pattern.ReplaceAllString(text, "")
			text = strings.Join(strings.Fields(text), " ")
			break
		}
	}

	// 4. Description: the remainder, capitalized; tag name if empty;
	// fixed placeholder as a last resort.
	draft.Description = capitalize(strings.TrimSpace(text))
	if draft.Description == "" && draft.Tag != nil {
		draft.Description = draft.Tag.Name
	}
	if draft.Description == "" {
		draft.Description = DefaultDescription
	}

	return draft
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
