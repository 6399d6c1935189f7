package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tycoon/collector"
)

func TestOwnerAction(t *testing.T) {
	accept := OwnerAction(111, "confirm", "cancel")

	assert.True(t, accept(ComponentResponse{UserID: 111, Action: "confirm"}))
	assert.True(t, accept(ComponentResponse{UserID: 111, Action: "cancel"}))
	assert.False(t, accept(ComponentResponse{UserID: 222, Action: "confirm"}), "another user's press must not qualify")
	assert.False(t, accept(ComponentResponse{UserID: 111, Action: "hit"}), "unlisted actions must not qualify")
	assert.False(t, accept(ComponentResponse{Action: "confirm"}), "a zero user ID never matches an owner")
}

func TestComponentIDRoundTrip(t *testing.T) {
	id := ComponentID("rob", 42, "confirm")
	assert.Equal(t, "rob:42:confirm", id)

	prefix, ownerID, action, ok := ParseComponentID(id)
	assert.True(t, ok)
	assert.Equal(t, "rob", prefix)
	assert.Equal(t, "42", ownerID)
	assert.Equal(t, "confirm", action)

	_, _, _, ok = ParseComponentID("not-ours")
	assert.False(t, ok)
}

// Mirrors the two-step command flows (pick from a select menu, then
// confirm): each step arms a fresh collector and the selection travels
// in Values.
func TestChainedSelectThenConfirm(t *testing.T) {
	ctx := context.Background()
	registry := collector.NewRegistry[ComponentResponse]()
	key := CollectorKey("jobpick", 111)

	selectStep := collector.New(time.Second, OwnerAction(111, "select"))
	registry.Register(key, selectStep)

	assert.False(t, registry.Dispatch(key, ComponentResponse{UserID: 222, Action: "select", Values: []string{"7"}}),
		"a stranger's selection must not resolve the prompt")
	assert.True(t, registry.Dispatch(key, ComponentResponse{UserID: 111, Action: "select", Values: []string{"3"}}))

	picked := selectStep.Await(ctx)
	registry.Unregister(key)
	require.Equal(t, collector.Resolved, picked.Outcome)
	require.Equal(t, []string{"3"}, picked.Response.Values)

	confirmStep := collector.New(time.Second, OwnerAction(111, "confirm", "cancel"))
	registry.Register(key, confirmStep)
	assert.True(t, registry.Dispatch(key, ComponentResponse{UserID: 111, Action: "confirm"}))

	confirmed := confirmStep.Await(ctx)
	registry.Unregister(key)
	require.Equal(t, collector.Resolved, confirmed.Outcome)
	assert.Equal(t, "confirm", confirmed.Response.Action)
}
