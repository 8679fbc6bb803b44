package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"soldout-pos/internal/domain"
)

func TestGenerateVariantsDeterministicNames(t *testing.T) {
	attrs := []domain.Attribute{
		{Key: "颜色", Values: []string{"红", "蓝"}},
		{Key: "尺码", Values: []string{"S", "M"}},
	}

	variants, err := GenerateVariants(attrs, nil)
	require.NoError(t, err)

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	require.Equal(t, []string{
		"颜色:红/尺码:S",
		"颜色:红/尺码:M",
		"颜色:蓝/尺码:S",
		"颜色:蓝/尺码:M",
	}, names)

	for _, v := range variants {
		require.Zero(t, v.Stock)
	}
}

func TestGenerateVariantsSingleDimension(t *testing.T) {
	variants, err := GenerateVariants([]domain.Attribute{{Key: "尺码", Values: []string{"S", "M", "L"}}}, nil)
	require.NoError(t, err)
	require.Len(t, variants, 3)
	require.Equal(t, "尺码:S", variants[0].Name)
	require.Equal(t, map[string]string{"尺码": "S"}, variants[0].Attributes)
}

func TestGenerateVariantsMergesStockByName(t *testing.T) {
	attrs := []domain.Attribute{
		{Key: "颜色", Values: []string{"红", "蓝"}},
	}
	existing := []domain.Variant{
		{Name: "颜色:红", Stock: 7},
		{Name: "颜色:绿", Stock: 4}, // dropped dimension value, stock not carried
	}

	variants, err := GenerateVariants(attrs, existing)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	require.Equal(t, 7, variants[0].Stock)
	require.Equal(t, 0, variants[1].Stock)
}

func TestGenerateVariantsRejectsDuplicateKeys(t *testing.T) {
	attrs := []domain.Attribute{
		{Key: "颜色", Values: []string{"红"}},
		{Key: "颜色", Values: []string{"蓝"}},
	}
	_, err := GenerateVariants(attrs, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGenerateVariantsRejectsEmptyValues(t *testing.T) {
	_, err := GenerateVariants([]domain.Attribute{{Key: "颜色", Values: nil}}, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseAttributes(t *testing.T) {
	attrs, err := ParseAttributes([]AttributeInput{
		{Key: "颜色", Values: "红 蓝"},
		{Key: "", Values: ""}, // blank form row
		{Key: "尺码", Values: " S  M "},
	})
	require.NoError(t, err)
	require.Equal(t, []domain.Attribute{
		{Key: "颜色", Values: []string{"红", "蓝"}},
		{Key: "尺码", Values: []string{"S", "M"}},
	}, attrs)
}

func TestParseAttributesRejectsDuplicateValues(t *testing.T) {
	_, err := ParseAttributes([]AttributeInput{{Key: "颜色", Values: "红 红"}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseAttributesRejectsKeyWithoutValues(t *testing.T) {
	_, err := ParseAttributes([]AttributeInput{{Key: "颜色", Values: "   "}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
