package catalog

import (
	"strings"

	"soldout-pos/internal/domain"
)

// VariantSeparator joins the "key:value" parts of a composite variant
// name. The parts appear in attribute-definition order, so the same
// attribute set always produces the same names.
const VariantSeparator = "/"

// GenerateVariants expands attribute dimensions into the full cartesian
// product of variants. Attribute keys must be distinct and every
// dimension needs at least one value. A generated name that matches an
// existing variant keeps that variant's stock; new names start at zero.
// The function is pure: it never touches storage.
func GenerateVariants(attrs []domain.Attribute, existing []domain.Variant) ([]domain.Variant, error) {
	if len(attrs) == 0 {
		return nil, &domain.ValidationError{Field: "attributes", Reason: "at least one attribute required"}
	}
	seen := make(map[string]struct{}, len(attrs))
	for _, attr := range attrs {
		if strings.TrimSpace(attr.Key) == "" {
			return nil, &domain.ValidationError{Field: "attributes", Reason: "attribute key required"}
		}
		if _, dup := seen[attr.Key]; dup {
			return nil, &domain.ValidationError{Field: "attributes", Reason: "duplicate attribute key " + attr.Key}
		}
		seen[attr.Key] = struct{}{}
		if len(attr.Values) == 0 {
			return nil, &domain.ValidationError{Field: "attributes", Reason: "attribute " + attr.Key + " has no values"}
		}
	}

	stockByName := make(map[string]int, len(existing))
	for _, v := range existing {
		stockByName[v.Name] = v.Stock
	}

	combos := cartesian(attrs)
	variants := make([]domain.Variant, 0, len(combos))
	for _, combo := range combos {
		parts := make([]string, len(combo))
		assignment := make(map[string]string, len(combo))
		for i, pair := range combo {
			parts[i] = pair.key + ":" + pair.value
			assignment[pair.key] = pair.value
		}
		name := strings.Join(parts, VariantSeparator)
		variants = append(variants, domain.Variant{
			Name:       name,
			Attributes: assignment,
			Stock:      stockByName[name],
		})
	}
	return variants, nil
}

type attrPair struct {
	key   string
	value string
}

func cartesian(attrs []domain.Attribute) [][]attrPair {
	combos := [][]attrPair{{}}
	for _, attr := range attrs {
		next := make([][]attrPair, 0, len(combos)*len(attr.Values))
		for _, combo := range combos {
			for _, value := range attr.Values {
				extended := make([]attrPair, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, attrPair{key: attr.Key, value: value}))
			}
		}
		combos = next
	}
	return combos
}

// ParseAttributes turns raw attribute inputs (value sets as space
// delimited text, the way the operator types them) into ordered attribute
// definitions. Duplicate values within one set are malformed rather than
// silently collapsed.
func ParseAttributes(inputs []AttributeInput) ([]domain.Attribute, error) {
	attrs := make([]domain.Attribute, 0, len(inputs))
	for _, in := range inputs {
		key := strings.TrimSpace(in.Key)
		values := strings.Fields(in.Values)
		if key == "" && len(values) == 0 {
			// Blank rows from the form are skipped, as the dialog does.
			continue
		}
		if key == "" {
			return nil, &domain.ValidationError{Field: "attributes", Reason: "attribute key required"}
		}
		if len(values) == 0 {
			return nil, &domain.ValidationError{Field: "attributes", Reason: "attribute " + key + " has no values"}
		}
		seen := make(map[string]struct{}, len(values))
		for _, v := range values {
			if _, dup := seen[v]; dup {
				return nil, &domain.ValidationError{Field: "attributes", Reason: "attribute " + key + " repeats value " + v}
			}
			seen[v] = struct{}{}
		}
		attrs = append(attrs, domain.Attribute{Key: key, Values: values})
	}
	return attrs, nil
}
