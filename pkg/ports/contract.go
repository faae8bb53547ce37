package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore
// implementation adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func() *definition.Definition {
		return &definition.Definition{
			Name:        name,
			Description: "walks right over a",
			Alphabet:    []string{"a"},
			Memory:      []string{"a", "a", `\`},
			Rules: map[string]map[string]string{
				"a": {"1": "Ra1"},
				`\`: {"1": `S\0`},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		def := sample()
		require.NoError(t, store.Save(ctx, name, def), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def, loaded)

		_, err = loaded.Compile()
		assert.NoError(t, err, "loaded definition should compile")
	})

	t.Run("Save Replaces", func(t *testing.T) {
		def := sample()
		def.Description = "replaced"
		require.NoError(t, store.Save(ctx, name, def))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "replaced", loaded.Description)
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		def := sample()
		require.NoError(t, store.Save(ctx, name, def))
		def.Memory[0] = "b"

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "a", loaded.Memory[0])

		loaded.Rules["a"]["1"] = "La0"
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "Ra1", again.Rules["a"]["1"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id2, sample()))
		require.NoError(t, store.Save(ctx, id1, sample()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample()))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "Load after Delete should return ErrDefinitionNotFound")

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, name)

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name should succeed")
	})
}
