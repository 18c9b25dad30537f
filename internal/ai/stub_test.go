package ai

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubClient(t *testing.T) {
	boom := stderrors.New("boom")
	stub := NewStubClient(
		StubRule{Match: "full name", Response: "John Doe"},
		StubRule{Match: "email", Response: "john@example.com"},
		StubRule{Match: "explode", Err: boom},
	)

	ctx := context.Background()

	got, err := stub.Generate(ctx, "Return the full name")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got)

	got, err = stub.Generate(ctx, "Return the email address")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", got)

	got, err = stub.Generate(ctx, "Return the phone number")
	require.NoError(t, err)
	assert.Equal(t, "not found", got)

	_, err = stub.Generate(ctx, "explode please")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 4, stub.Calls())
	assert.Equal(t, "Return the full name", stub.Prompts()[0])
}

func TestStubClientFirstRuleWins(t *testing.T) {
	stub := NewStubClient(
		StubRule{Match: "skills", Response: "Go"},
		StubRule{Match: "skills", Response: "Rust"},
	).WithDefault("")

	got, err := stub.Generate(context.Background(), "list skills")
	require.NoError(t, err)
	assert.Equal(t, "Go", got)

	got, err = stub.Generate(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStubClientRejectsInvalidInput(t *testing.T) {
	stub := NewStubClient()

	_, err := stub.Generate(context.Background(), " ")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = stub.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)

	assert.Zero(t, stub.Calls())
}
