package idgen_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("ci")
	assert.Equal(t, "ci_000001", gen.Generate())
	assert.Equal(t, "ci_000002", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "000001", bare.Generate())
}

func TestOrderedGeneratorSortsInCreationOrder(t *testing.T) {
	gen := idgen.NewOrdered("ci")

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = gen.Generate()
		require.True(t, strings.HasPrefix(ids[i], "ci_"))
	}

	assert.True(t, sort.StringsAreSorted(ids))
}

func TestUUIDGeneratorIsUnique(t *testing.T) {
	gen := idgen.NewUUID("char")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		require.False(t, seen[id])
		seen[id] = true
	}
}
