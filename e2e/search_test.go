//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWelcomeShowsTags(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.True(t, tf.SeePlain("Welcome to MusicStream"))
	require.True(t, tf.SeePlain("Yoga Music"))
	require.True(t, tf.SeePlain("Meditation"))
}

func TestTypingShowsResults(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Type("raga"))
	require.True(t, tf.SeePlain("Found 2 results"), "Results heading should show")
	require.True(t, tf.SeePlain("raga morning"))
	require.True(t, tf.SeePlain("Second Artist"))
}

func TestTagShortcutSearches(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Tab())
	require.NoError(t, tf.SendKeys("2"))
	require.True(t, tf.SeePlain("Classical morning"), "Tag should run its search")
}

func TestNoResults(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Type(queryNoSongs))
	require.True(t, tf.SeePlain("No results found"))
}

func TestRejectedQueryShowsAPIMessage(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Type(queryRejected))
	require.True(t, tf.SeePlain("Query not allowed"))
}

func TestBrokenAPIShowsConnectivityError(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Type(queryBroken))
	require.True(t, tf.SeePlain("Failed to connect to server"), "Transport failure should be reported")
}

func TestClearingQueryReturnsToWelcome(t *testing.T) {
	t.Parallel()
	tf := startReadyApp(t, "-no-bridge")

	require.NoError(t, tf.Type("raga"))
	require.True(t, tf.SeePlain("raga morning"))

	tf.mu.Lock()
	tf.head, tf.full = 0, false
	tf.mu.Unlock()

	require.NoError(t, tf.SendKeys(KeyCtrlU))
	require.True(t, tf.SeePlain("Welcome to MusicStream"))
}
