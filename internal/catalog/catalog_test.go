package catalog

import (
	"testing"

	"github.com/habitquest/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	ctx := testutil.MockContext(t)

	c, err := Load(ctx, "testdata")
	require.NoError(t, err)

	require.Len(t, c.Templates(), 3)
	require.Len(t, c.Packs(), 2)
	require.Equal(t, []string{"fitness", "mindfulness"}, c.CategoryIDs())

	run, ok := c.Template("morning-run")
	require.True(t, ok)
	require.Equal(t, "Morning run", run.Title)
	require.Equal(t, 50, run.BaseXP)

	_, ok = c.Template("nope")
	require.False(t, ok)
}

func TestStartersFollowPackOrder(t *testing.T) {
	ctx := testutil.MockContext(t)

	c, err := Load(ctx, "testdata")
	require.NoError(t, err)

	starters := c.Starters()
	require.Len(t, starters, 2)
	require.Equal(t, "morning-run", starters[0].ID)
	require.Equal(t, "breathing-break", starters[1].ID)
}

func TestLoadRejectsBrokenReferences(t *testing.T) {
	ctx := testutil.MockContext(t)

	_, err := Load(ctx, "testdata/broken")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown category")
}

func TestSearchMatchesTitleAndTags(t *testing.T) {
	ctx := testutil.MockContext(t)

	c, err := Load(ctx, "testdata")
	require.NoError(t, err)

	results, err := c.Search(ctx, "run", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "morning-run", results[0].ID)

	results, err = c.Search(ctx, "strength", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "pushup-ladder", results[0].ID)

	_, err = c.Search(ctx, "   ", 10)
	require.Error(t, err)
}
