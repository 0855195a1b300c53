package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

func TestParse_FirstMatchWins(t *testing.T) {
	spec := []domain.FieldSpec{
		{
			Name: domain.FieldCode,
			Kind: domain.KindInt,
			Paths: [][]string{
				{"code"},
				{"data", "message", "code"},
			},
		},
	}

	// Field present under both the shallow and the deep candidate path with
	// conflicting values: the earlier-declared path must win.
	raw := map[string]any{
		"code": float64(100),
		"data": map[string]any{
			"message": map[string]any{"code": float64(118)},
		},
	}

	p := domain.Parse(raw, spec)
	assert.Equal(t, 100, p.GetInt(domain.FieldCode))
}

func TestParse_AllNestingShapesNormalizeIdentically(t *testing.T) {
	shapes := map[string]map[string]any{
		"flat at root": {
			"code":    float64(117),
			"message": "Valid Pin",
		},
		"nested under data": {
			"data": map[string]any{
				"code":    float64(117),
				"message": "Valid Pin",
			},
		},
		"nested under data.message": {
			"data": map[string]any{
				"message": map[string]any{
					"code":    float64(117),
					"message": "Valid Pin",
				},
			},
		},
	}

	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			p := domain.Parse(raw, domain.ResponseFields())
			assert.Equal(t, 117, p.GetInt(domain.FieldCode))
			assert.Equal(t, "Valid Pin", p.GetString(domain.FieldMessage))
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	raw := map[string]any{
		"data": map[string]any{
			"message": map[string]any{"code": float64(118), "message": "Invalid Pin"},
		},
	}

	first := domain.Parse(raw, domain.ResponseFields())
	second := domain.Parse(raw, domain.ResponseFields())
	assert.Equal(t, first, second)
}

func TestParse_LenientCoercion(t *testing.T) {
	spec := []domain.FieldSpec{
		{Name: "count", Kind: domain.KindInt, Paths: [][]string{{"count"}}},
		{Name: "amount", Kind: domain.KindFloat, Paths: [][]string{{"amount"}}},
		{Name: "id", Kind: domain.KindString, Paths: [][]string{{"id"}}},
		{Name: "flag", Kind: domain.KindBool, Paths: [][]string{{"flag"}}},
	}

	t.Run("numeric strings coerce", func(t *testing.T) {
		p := domain.Parse(map[string]any{
			"count":  "42",
			"amount": "1500.50",
			"id":     float64(4574),
			"flag":   "true",
		}, spec)
		assert.Equal(t, 42, p.GetInt("count"))
		assert.Equal(t, 1500.50, p.GetFloat("amount"))
		assert.Equal(t, "4574", p.GetString("id"))
		assert.True(t, p.GetBool("flag"))
	})

	t.Run("garbage falls back to zero values", func(t *testing.T) {
		p := domain.Parse(map[string]any{
			"count":  "not-a-number",
			"amount": "n/a",
			"id":     map[string]any{"unexpected": "object"},
			"flag":   "nope",
		}, spec)
		assert.Equal(t, 0, p.GetInt("count"))
		assert.Equal(t, 0.0, p.GetFloat("amount"))
		assert.Equal(t, "", p.GetString("id"))
		assert.False(t, p.GetBool("flag"))
	})

	t.Run("absent fields use declared defaults", func(t *testing.T) {
		withDefault := []domain.FieldSpec{
			{Name: "status", Kind: domain.KindString, Paths: [][]string{{"status"}}, Default: "unknown"},
		}
		p := domain.Parse(map[string]any{}, withDefault)
		assert.Equal(t, "unknown", p.GetString("status"))
	})

	t.Run("null values are treated as absent", func(t *testing.T) {
		p := domain.Parse(map[string]any{"count": nil}, spec)
		assert.Equal(t, 0, p.GetInt("count"))
	})
}

func TestParse_ScalarWrappedInSlice(t *testing.T) {
	spec := []domain.FieldSpec{
		{Name: "recipients", Kind: domain.KindStringSlice, Paths: [][]string{{"recipients"}}},
	}

	t.Run("bare string becomes single-element list", func(t *testing.T) {
		p := domain.Parse(map[string]any{"recipients": "255712345678"}, spec)
		assert.Equal(t, []string{"255712345678"}, p.GetStrings("recipients"))
	})

	t.Run("array passes through", func(t *testing.T) {
		p := domain.Parse(map[string]any{
			"recipients": []any{"255712345678", float64(255687654321)},
		}, spec)
		assert.Equal(t, []string{"255712345678", "255687654321"}, p.GetStrings("recipients"))
	})

	t.Run("absent yields empty list", func(t *testing.T) {
		p := domain.Parse(map[string]any{}, spec)
		assert.Empty(t, p.GetStrings("recipients"))
	})
}

func TestParseBytes_NonJSONBody(t *testing.T) {
	p := domain.ParseBytes([]byte("<html><body>502 Bad Gateway</body></html>"), domain.ResponseFields())
	require.NotNil(t, p)
	assert.Equal(t, 0, p.GetInt(domain.FieldCode))
	assert.Equal(t, "", p.GetString(domain.FieldMessage))
}

func TestParseBytes_AlternateKeyNames(t *testing.T) {
	t.Run("payment transaction id variants", func(t *testing.T) {
		for _, key := range []string{"transactionID", "transactionId", "transaction_id"} {
			p := domain.ParseBytes([]byte(`{"`+key+`":"TX123"}`), domain.PaymentFields())
			assert.Equal(t, "TX123", p.GetString(domain.FieldTransactionID), "key %s", key)
		}
	})

	t.Run("airtime dest_addr variants", func(t *testing.T) {
		for _, body := range []string{`{"dest_addr":"255712345678"}`, `{"destAddr":"255712345678"}`} {
			p := domain.ParseBytes([]byte(body), domain.AirtimeFields())
			assert.Equal(t, "255712345678", p.GetString(domain.FieldDestAddr))
		}
	})
}
