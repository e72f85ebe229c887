package evaluator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/robbyt/go-bindexpr/ast"
	"github.com/robbyt/go-bindexpr/hosts/native"
	"github.com/robbyt/go-bindexpr/platform/constants"
	"github.com/robbyt/go-bindexpr/platform/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetData(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(map[string]any)
	return d, args.Error(1)
}

func (m *mockProvider) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	args := m.Called(ctx, d)
	newCtx, _ := args.Get(0).(context.Context)
	return newCtx, args.Error(1)
}

func ident(name string) *ast.MemberAccess {
	return ast.NewMemberAccess(ast.NewImplicitReceiver(), name, native.Property(name))
}

func wrap(e ast.Expression, source string) *ast.SourceWrapped {
	return ast.NewSourceWrapped(e, source, "test")
}

func quietHandler() slog.Handler {
	var buf bytes.Buffer
	return slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil expression", func(t *testing.T) {
		t.Parallel()
		_, err := New(nil)
		require.ErrorIs(t, err, ErrNilExpression)
		_, err = New(wrap(nil, ""))
		require.ErrorIs(t, err, ErrNilExpression)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ident("a"), "a"))
		require.NoError(t, err)
		assert.Len(t, e.ID(), idLength)
		assert.IsType(t, &data.ContextProvider{}, e.provider)
		assert.NotNil(t, e.logger)
		assert.NotNil(t, e.logHandler)
		assert.Contains(t, e.String(), "a in test")
	})

	t.Run("id depends on the source", func(t *testing.T) {
		t.Parallel()
		a, err := New(wrap(ident("a"), "a"))
		require.NoError(t, err)
		a2, err := New(wrap(ident("a"), "a"))
		require.NoError(t, err)
		b, err := New(wrap(ident("b"), "b"))
		require.NoError(t, err)
		assert.Equal(t, a.ID(), a2.ID())
		assert.NotEqual(t, a.ID(), b.ID())
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		provider := data.NewStaticProvider(nil)
		logger := slog.New(quietHandler())
		e, err := New(wrap(ident("a"), "a"),
			WithID("custom"),
			WithDataProvider(provider),
			WithLogger(logger),
		)
		require.NoError(t, err)
		assert.Equal(t, "custom", e.ID())
		assert.Same(t, provider, e.provider)
		assert.Equal(t, logger.Handler(), e.logHandler)
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()
		tests := map[string]Option{
			"empty id":     WithID(""),
			"nil provider": WithDataProvider(nil),
			"nil handler":  WithLogHandler(nil),
			"nil logger":   WithLogger(nil),
		}
		for name, opt := range tests {
			_, err := New(wrap(ident("a"), "a"), opt)
			assert.Error(t, err, name)
		}
	})
}

func TestEval(t *testing.T) {
	t.Parallel()

	sum := wrap(ast.NewBinaryOp("+", ident("a"), ident("b")), "a+b")

	t.Run("context data", func(t *testing.T) {
		t.Parallel()
		e, err := New(sum, WithLogHandler(quietHandler()))
		require.NoError(t, err)

		ctx, err := e.AddDataToContext(t.Context(), map[string]any{"a": int64(1), "b": int64(2)})
		require.NoError(t, err)

		resp, err := e.Eval(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Interface())
		assert.Equal(t, data.INT, resp.Type())
		assert.Equal(t, "3", resp.Inspect())
		assert.Equal(t, e.ID(), resp.GetExpressionID())
		assert.NotEmpty(t, resp.GetExecTime())
	})

	t.Run("static data under context data", func(t *testing.T) {
		t.Parallel()
		e, err := New(sum,
			WithLogHandler(quietHandler()),
			WithStaticData(map[string]any{"a": "x", "b": "y"}),
		)
		require.NoError(t, err)

		resp, err := e.Eval(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "xy", resp.Interface())

		ctx, err := e.AddDataToContext(t.Context(), map[string]any{"b": "z"})
		require.NoError(t, err)
		resp, err = e.Eval(ctx)
		require.NoError(t, err)
		assert.Equal(t, "xz", resp.Interface())
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		p := &mockProvider{}
		p.On("GetData", mock.Anything).Return(nil, boom)

		e, err := New(sum, WithLogHandler(quietHandler()), WithDataProvider(p))
		require.NoError(t, err)

		_, err = e.Eval(t.Context())
		require.ErrorIs(t, err, boom)
		p.AssertExpectations(t)
	})

	t.Run("evaluation error carries the source", func(t *testing.T) {
		t.Parallel()
		e, err := New(sum, WithLogHandler(quietHandler()))
		require.NoError(t, err)

		ctx, err := e.AddDataToContext(t.Context(), map[string]any{"a": true, "b": int64(1)})
		require.NoError(t, err)

		_, err = e.Eval(ctx)
		require.ErrorIs(t, err, ast.ErrInvalidOperand)
		var evalErr *EvalError
		require.ErrorAs(t, err, &evalErr)
		assert.Same(t, sum, evalErr.Expression)
		assert.Contains(t, err.Error(), "a+b in test")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		e, err := New(sum, WithLogHandler(quietHandler()))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err = e.Eval(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invariant panics are not recovered", func(t *testing.T) {
		t.Parallel()
		bad := wrap(ast.NewBinaryOp("**", ast.NewLiteralPrimitive(int64(1)), ast.NewLiteralPrimitive(int64(2))), "1**2")
		e, err := New(bad, WithLogHandler(quietHandler()))
		require.NoError(t, err)
		assert.Panics(t, func() { _, _ = e.Eval(t.Context()) })
	})
}

func TestEvalScope(t *testing.T) {
	t.Parallel()

	e, err := New(wrap(ident("item"), "item"), WithLogHandler(quietHandler()))
	require.NoError(t, err)

	ctx := map[string]any{"item": "from context"}
	resp, err := e.EvalScope(t.Context(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "from context", resp.Interface())

	resp, err = e.EvalScope(t.Context(), ast.NewLocals(ctx, map[string]any{"item": int64(5)}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Interface())
}

func TestAssign(t *testing.T) {
	t.Parallel()

	t.Run("writes to the context", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ident("title"), "title"), WithLogHandler(quietHandler()))
		require.NoError(t, err)

		scope := map[string]any{}
		got, err := e.Assign(t.Context(), scope, "new")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
		assert.Equal(t, "new", scope["title"])
	})

	t.Run("binding cannot be reassigned", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ident("item"), "item"), WithLogHandler(quietHandler()))
		require.NoError(t, err)

		scope := ast.NewLocals(map[string]any{}, map[string]any{"item": 5})
		_, err = e.Assign(t.Context(), scope, 9)
		require.ErrorIs(t, err, ast.ErrCannotReassignBinding)
		assert.Contains(t, err.Error(), "item in test")
	})

	t.Run("not assignable", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ast.NewLiteralPrimitive(int64(1)), "1"), WithLogHandler(quietHandler()))
		require.NoError(t, err)
		_, err = e.Assign(t.Context(), map[string]any{}, 2)
		require.ErrorIs(t, err, ErrNotAssignable)
	})
}

func TestAddDataToContext(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the provider", func(t *testing.T) {
		t.Parallel()
		payload := map[string]any{"k": "v"}
		type key struct{}
		next := context.WithValue(t.Context(), key{}, 1)

		p := &mockProvider{}
		p.On("AddDataToContext", mock.Anything, []map[string]any{payload}).Return(next, nil)

		e, err := New(wrap(ident("k"), "k"), WithLogHandler(quietHandler()), WithDataProvider(p))
		require.NoError(t, err)

		got, err := e.AddDataToContext(t.Context(), payload)
		require.NoError(t, err)
		assert.Equal(t, next, got)
		p.AssertExpectations(t)
	})

	t.Run("static only provider rejects data", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ident("k"), "k"),
			WithLogHandler(quietHandler()),
			WithDataProvider(data.NewStaticProvider(nil)),
		)
		require.NoError(t, err)
		_, err = e.AddDataToContext(t.Context(), map[string]any{"k": 1})
		require.ErrorIs(t, err, data.ErrStaticProviderNoRuntimeUpdates)
	})

	t.Run("context provider is the default", func(t *testing.T) {
		t.Parallel()
		e, err := New(wrap(ident("k"), "k"), WithLogHandler(quietHandler()))
		require.NoError(t, err)
		ctx, err := e.AddDataToContext(t.Context(), map[string]any{"k": 1})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"k": 1}, ctx.Value(constants.EvalData))
	})
}

func TestBindings(t *testing.T) {
	t.Parallel()

	e, err := New(wrap(ident("item"), "item"), WithLogHandler(quietHandler()))
	require.NoError(t, err)

	ctx := map[string]any{"items": []any{"a", "b"}}

	t.Run("declares variables and evaluates expressions", func(t *testing.T) {
		t.Parallel()
		frame, err := e.Bindings(t.Context(), ctx, []*ast.TemplateBinding{
			ast.NewVariableBinding("$implicit", "item"),
			ast.NewExpressionBinding("ngForOf", wrap(ident("items"), "items")),
			nil,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"item", "ngForOf"}, frame.Names())
		assert.Nil(t, frame.Get("item"))
		assert.Equal(t, []any{"a", "b"}, frame.Get("ngForOf"))
		assert.Equal(t, ctx, frame.Parent())

		frame.Set("item", "a")
		resp, err := e.EvalScope(t.Context(), frame)
		require.NoError(t, err)
		assert.Equal(t, "a", resp.Interface())

		_, err = e.Assign(t.Context(), frame, "z")
		require.ErrorIs(t, err, ast.ErrCannotReassignBinding)
	})

	t.Run("variable without a name", func(t *testing.T) {
		t.Parallel()
		_, err := e.Bindings(t.Context(), ctx, []*ast.TemplateBinding{{Key: "k", KeyIsVar: true}})
		require.ErrorIs(t, err, ErrBindingName)
	})

	t.Run("expression without a tree", func(t *testing.T) {
		t.Parallel()
		_, err := e.Bindings(t.Context(), ctx, []*ast.TemplateBinding{{Key: "k"}})
		require.ErrorIs(t, err, ErrNilExpression)
	})

	t.Run("failing expression", func(t *testing.T) {
		t.Parallel()
		bad := wrap(ast.NewFunctionCall(ast.NewLiteralPrimitive(int64(1))), "1()")
		_, err := e.Bindings(t.Context(), ctx, []*ast.TemplateBinding{
			ast.NewExpressionBinding("k", bad),
		})
		require.ErrorIs(t, err, ast.ErrNotAFunction)
		var evalErr *EvalError
		require.ErrorAs(t, err, &evalErr)
		assert.Same(t, bad, evalErr.Expression)
	})
}
