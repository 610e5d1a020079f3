package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

func newExplanation(id string, at time.Time) domain.Explanation {
	return domain.Explanation{
		ID:                id,
		Language:          domain.LanguagePython,
		Code:              "print('hi')",
		SimpleExplanation: "It says hi.",
		WhatItDoes:        "Prints a greeting.",
		RealWorldAnalogy:  "Like waving at a friend.",
		Model:             "test-model",
		CreatedAt:         at,
	}
}

func TestExplanationStore_SaveAndGet(t *testing.T) {
	store := NewExplanationStore()
	ctx := context.Background()
	exp := newExplanation("exp-1", time.Now())

	require.NoError(t, store.Save(ctx, exp))

	got, err := store.Get(ctx, "exp-1")
	require.NoError(t, err)
	assert.Equal(t, exp, *got)
}

func TestExplanationStore_Save_RequiresID(t *testing.T) {
	store := NewExplanationStore()

	err := store.Save(context.Background(), newExplanation("", time.Now()))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExplanationStore_Get_NotFound(t *testing.T) {
	store := NewExplanationStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExplanationStore_List_NewestFirst(t *testing.T) {
	store := NewExplanationStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, newExplanation("old", base)))
	require.NoError(t, store.Save(ctx, newExplanation("new", base.Add(2*time.Minute))))
	require.NoError(t, store.Save(ctx, newExplanation("mid", base.Add(time.Minute))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestExplanationStore_Clear(t *testing.T) {
	store := NewExplanationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newExplanation("exp-1", time.Now())))

	require.NoError(t, store.Clear(ctx))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
