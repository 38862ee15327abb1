package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
)

func TestParsePrice(t *testing.T) {
	t.Run("under", func(t *testing.T) {
		p := vocab.ParsePrice("anything in red for a wedding under $150?")
		require.NotNil(t, p.Under)
		assert.Equal(t, 150.0, *p.Under)
		assert.Nil(t, p.Over)
		assert.Nil(t, p.Between)
	})

	t.Run("over", func(t *testing.T) {
		p := vocab.ParsePrice("gowns above 200")
		require.NotNil(t, p.Over)
		assert.Equal(t, 200.0, *p.Over)
	})

	t.Run("between is sorted", func(t *testing.T) {
		p := vocab.ParsePrice("between $120 and $80")
		require.NotNil(t, p.Between)
		assert.Equal(t, [2]float64{80, 120}, *p.Between)
		assert.Nil(t, p.Under)
	})

	t.Run("between wins over under", func(t *testing.T) {
		p := vocab.ParsePrice("under budget, between 50 and 90")
		require.NotNil(t, p.Between)
		assert.Nil(t, p.Under)
	})

	t.Run("dollar range", func(t *testing.T) {
		p := vocab.ParsePrice("$40-$60 please")
		require.NotNil(t, p.Between)
		assert.Equal(t, [2]float64{40, 60}, *p.Between)
	})

	t.Run("arabic under", func(t *testing.T) {
		p := vocab.ParsePrice("فستان أقل من 300")
		require.NotNil(t, p.Under)
		assert.Equal(t, 300.0, *p.Under)
	})

	t.Run("none", func(t *testing.T) {
		assert.True(t, vocab.ParsePrice("a red dress").IsZero())
	})
}
