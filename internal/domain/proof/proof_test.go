package proof

import (
	"context"
	"testing"

	"github.com/habitquest/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestCheckProof(t *testing.T) {
	ctx := context.Background()

	got, err := Canonicalize(ctx, entity.ProofCheck, entity.Map{"checked": true})
	require.NoError(t, err)
	require.Equal(t, entity.Map{"checked": true}, got)

	_, err = Canonicalize(ctx, entity.ProofCheck, entity.Map{"checked": false})
	require.Error(t, err)
}

func TestTimerProofRejectsNonPositive(t *testing.T) {
	ctx := context.Background()

	got, err := Canonicalize(ctx, entity.ProofTimer, entity.Map{"seconds": 600})
	require.NoError(t, err)
	require.Equal(t, entity.Map{"seconds": 600}, got)

	_, err = Canonicalize(ctx, entity.ProofTimer, entity.Map{"seconds": 0})
	require.Error(t, err)
}

func TestCounterProof(t *testing.T) {
	ctx := context.Background()

	_, err := Canonicalize(ctx, entity.ProofCounter, entity.Map{"count": 12})
	require.NoError(t, err)

	_, err = Canonicalize(ctx, entity.ProofCounter, entity.Map{"count": -1})
	require.Error(t, err)
}

func TestPhotoProofNeedsURL(t *testing.T) {
	ctx := context.Background()

	_, err := Canonicalize(ctx, entity.ProofPhoto, entity.Map{"url": "https://cdn.example.com/p.jpg"})
	require.NoError(t, err)

	_, err = Canonicalize(ctx, entity.ProofPhoto, entity.Map{"url": "not a url"})
	require.Error(t, err)
}

func TestTextProofTrimsWhitespace(t *testing.T) {
	ctx := context.Background()

	_, err := Canonicalize(ctx, entity.ProofText, entity.Map{"text": "did it"})
	require.NoError(t, err)

	_, err = Canonicalize(ctx, entity.ProofText, entity.Map{"text": "   "})
	require.Error(t, err)
}

func TestUnknownProofType(t *testing.T) {
	_, err := Canonicalize(context.Background(), entity.ProofType("hologram"), entity.Map{})
	require.Error(t, err)
}

func TestCanonicalizeDropsUnknownFields(t *testing.T) {
	got, err := Canonicalize(context.Background(), entity.ProofCheck, entity.Map{
		"checked": true,
		"junk":    "ignored",
	})
	require.NoError(t, err)
	require.NotContains(t, got, "junk")
}
