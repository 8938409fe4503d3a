package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsQuantityToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"15g", true},
		{"3滴", true},
		{"0.5ml", true},
		{"2千克", true},
		{".5G", true},
		{"钛白", false},
		{"g15", false},
		{"15", false},
		{"15g!", false},
		{"15 g", false},
		{"", false},
		{"5g蓝", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuantityToken(tt.token))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "well formed",
			input: "钛白 15g 天蓝 3g",
			want: []Entry{
				{Name: "钛白", Amount: 15, Unit: "g"},
				{Name: "天蓝", Amount: 3, Unit: "g"},
			},
		},
		{
			name:  "irregular whitespace",
			input: "  钛白\t15g\n\n天蓝   3克 ",
			want: []Entry{
				{Name: "钛白", Amount: 15, Unit: "g"},
				{Name: "天蓝", Amount: 3, Unit: "克"},
			},
		},
		{
			name:  "trailing orphan name dropped",
			input: "钛白 15g 天蓝",
			want:  []Entry{{Name: "钛白", Amount: 15, Unit: "g"}},
		},
		{
			name:  "leading quantity dropped",
			input: "15g 天蓝 3g",
			want:  []Entry{{Name: "天蓝", Amount: 3, Unit: "g"}},
		},
		{
			name:  "two names in a row keep the second",
			input: "钛白 天蓝 3g",
			want:  []Entry{{Name: "天蓝", Amount: 3, Unit: "g"}},
		},
		{
			name:  "empty",
			input: "",
			want:  []Entry{},
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  []Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_UnparsableNumber(t *testing.T) {
	entries := Tokenize("钛白 1.2.3g")
	require.Len(t, entries, 1)
	assert.True(t, math.IsNaN(entries[0].Amount))

	_, ok := BuildSignature(entries)
	assert.False(t, ok, "NaN amount must not produce a signature")
}

func TestSplitQuantity(t *testing.T) {
	amount, unit, ok := SplitQuantity("12.5毫升")
	require.True(t, ok)
	assert.Equal(t, 12.5, amount)
	assert.Equal(t, "毫升", unit)

	_, _, ok = SplitQuantity("钛白")
	assert.False(t, ok)
}

func TestBuildSignature_Scenario(t *testing.T) {
	a, ok := Signature("钛白 15g 天蓝 3g")
	require.True(t, ok)
	b, ok := Signature("钛白 5g 天蓝 1g")
	require.True(t, ok)

	assert.Equal(t, "天蓝:1.0000|钛白:5.0000", a)
	assert.Equal(t, a, b)
}

func TestBuildSignature_ScaleAndOrderInvariant(t *testing.T) {
	formulas := []string{
		"A 5g B 1g C 2.5g",
		"A 10g B 2g C 5g",
		"C 0.5g A 1g B 0.2g",
		"B 200mg A 1g C 0.5克",
		"A 0.01kg C 5g B 2g",
	}

	want, ok := Signature(formulas[0])
	require.True(t, ok)
	assert.Equal(t, "A:5.0000|B:1.0000|C:2.5000", want)

	for _, f := range formulas[1:] {
		got, ok := Signature(f)
		require.True(t, ok, f)
		assert.Equal(t, want, got, f)
	}
}

func TestBuildSignature_Undefined(t *testing.T) {
	tests := []struct {
		name    string
		formula string
	}{
		{"empty", ""},
		{"only orphans", "钛白 天蓝"},
		{"zero amount", "钛白 0g"},
		{"zero among others", "钛白 5g 天蓝 0g"},
		{"unknown unit", "钛白 5oz"},
		{"mixed families", "钛白 5g 天蓝 3ml"},
		{"grams and drops", "钛白 5g 天蓝 3滴"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Signature(tt.formula)
			assert.False(t, ok)
		})
	}
}

func TestBuildSignature_Rounding(t *testing.T) {
	sig, ok := Signature("A 3g B 1g C 7g")
	require.True(t, ok)
	assert.Equal(t, "A:3.0000|B:1.0000|C:7.0000", sig)

	sig, ok = Signature("A 1g B 3g")
	require.True(t, ok)
	assert.Equal(t, "A:1.0000|B:3.0000", sig)

	sig, ok = Signature("A 3g B 1g B 2g")
	require.True(t, ok)
	assert.Equal(t, "A:3.0000|B:1.0000|B:2.0000", sig)

	sig, ok = Signature("A 3滴 B 2滴")
	require.True(t, ok)
	assert.Equal(t, "A:1.5000|B:1.0000", sig)
}

func TestBuildSignature_SingleIngredient(t *testing.T) {
	sig, ok := Signature("钛白 15g")
	require.True(t, ok)
	assert.Equal(t, "钛白:1.0000", sig)
}

func TestCompareNames(t *testing.T) {
	assert.Negative(t, CompareNames("天蓝", "钛白"))
	assert.Positive(t, CompareNames("钛白", "天蓝"))
	assert.Zero(t, CompareNames("钛白", "钛白"))
	assert.Negative(t, CompareNames("Blue", "天蓝"), "latin sorts before han")
}

func TestTotalAmount(t *testing.T) {
	total, ok := TotalAmount(Tokenize("钛白 1kg 天蓝 500克 深绿 250mg"))
	require.True(t, ok)
	assert.Equal(t, FamilyMass, total.Family)
	assert.Equal(t, "g", total.Unit)
	assert.InDelta(t, 1500.25, total.Amount, 1e-9)

	total, ok = TotalAmount(Tokenize("A 1l B 250ml"))
	require.True(t, ok)
	assert.Equal(t, FamilyVolume, total.Family)
	assert.InDelta(t, 1250, total.Amount, 1e-9)

	_, ok = TotalAmount(Tokenize("A 1g B 1ml"))
	assert.False(t, ok)

	_, ok = TotalAmount(nil)
	assert.False(t, ok)
}

func TestLookupUnit_CaseInsensitiveASCII(t *testing.T) {
	u, ok := LookupUnit("KG")
	require.True(t, ok)
	assert.Equal(t, GramsPerKilogram, u.Factor)

	_, ok = LookupUnit("oz")
	assert.False(t, ok)
}
