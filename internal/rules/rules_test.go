package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mars-wm/marswm/internal/client"
)

func TestRuleMatchesOnBothFields(t *testing.T) {
	r := Rule{Application: "firefox", Title: "Mozilla Firefox"}
	assert.True(t, r.Matches(&client.Client{Class: "firefox", Name: "Mozilla Firefox"}))
	assert.False(t, r.Matches(&client.Client{Class: "firefox", Name: "something else"}))
	assert.False(t, r.Matches(&client.Client{Class: "other", Name: "Mozilla Firefox"}))
}

func TestRuleEmptyFieldMeansDontCare(t *testing.T) {
	r := Rule{Application: "firefox"}
	assert.True(t, r.Matches(&client.Client{Class: "firefox", Name: "anything"}))
}

func TestSetFirstMatchWins(t *testing.T) {
	set := Set{
		{Application: "firefox", Action: Action{Floating: true}},
		{Application: "firefox", Action: Action{Pinned: true}},
	}
	action, ok := set.FirstMatch(&client.Client{Class: "firefox"})
	assert.True(t, ok)
	assert.True(t, action.Floating)
	assert.False(t, action.Pinned)
}

func TestSetNoMatch(t *testing.T) {
	set := Set{{Application: "firefox"}}
	_, ok := set.FirstMatch(&client.Client{Class: "xterm"})
	assert.False(t, ok)
}
