package data

import (
	"context"
	"testing"

	"github.com/robbyt/go-bindexpr/platform/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextProvider_GetData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     constants.ContextKey
		stored  any
		want    map[string]any
		wantErr error
	}{
		{
			name: "nothing stored",
			key:  constants.EvalData,
			want: map[string]any{},
		},
		{
			name:   "stored map",
			key:    constants.EvalData,
			stored: simpleData,
			want:   simpleData,
		},
		{
			name:    "wrong type stored",
			key:     constants.EvalData,
			stored:  "not a map",
			wantErr: ErrInvalidData,
		},
		{
			name:    "empty key",
			key:     "",
			wantErr: ErrEmptyContextKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			if tt.stored != nil {
				ctx = context.WithValue(ctx, tt.key, tt.stored)
			}

			got, err := NewContextProvider(tt.key).GetData(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextProvider_AddDataToContext(t *testing.T) {
	t.Parallel()

	t.Run("stores and merges", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(constants.EvalData)

		ctx, err := p.AddDataToContext(t.Context(), map[string]any{
			"user": map[string]any{"name": "ada", "role": "admin"},
			"n":    1,
		})
		require.NoError(t, err)

		ctx, err = p.AddDataToContext(ctx,
			map[string]any{"user": map[string]any{"role": "owner"}},
			map[string]any{"n": 2},
		)
		require.NoError(t, err)

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"user": map[string]any{"name": "ada", "role": "owner"},
			"n":    2,
		}, got)
	})

	t.Run("earlier contexts are unchanged", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(constants.EvalData)

		first, err := p.AddDataToContext(t.Context(), map[string]any{"m": map[string]any{"a": 1}})
		require.NoError(t, err)
		_, err = p.AddDataToContext(first, map[string]any{"m": map[string]any{"b": 2}})
		require.NoError(t, err)

		got, err := p.GetData(first)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"m": map[string]any{"a": 1}}, got)
	})

	t.Run("caller maps are copied", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(constants.EvalData)
		nested := map[string]any{"a": 1}

		ctx, err := p.AddDataToContext(t.Context(), map[string]any{"m": nested})
		require.NoError(t, err)
		nested["a"] = 99

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, got["m"].(map[string]any)["a"])
	})

	t.Run("empty keys are reported", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(constants.EvalData)

		ctx, err := p.AddDataToContext(t.Context(), map[string]any{"": 1, "ok": 2})
		require.ErrorIs(t, err, ErrEmptyKey)

		got, getErr := p.GetData(ctx)
		require.NoError(t, getErr)
		assert.Equal(t, map[string]any{"ok": 2}, got)

		_, err = p.AddDataToContext(t.Context(), map[string]any{"m": map[string]any{"": 1}})
		require.ErrorIs(t, err, ErrEmptyKey)
	})

	t.Run("nil maps are ignored", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(constants.EvalData)
		ctx, err := p.AddDataToContext(t.Context(), nil, complexData)
		require.NoError(t, err)
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, complexData, got)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()
		got, err := NewContextProvider("").AddDataToContext(ctx, simpleData)
		require.ErrorIs(t, err, ErrEmptyContextKey)
		assert.Equal(t, ctx, got)
	})
}
