// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slices.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ch := make(chan struct{}, 1)
	w, err := Watch(path, 20*time.Millisecond, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(sampleFeed), 0o644))
	waitForChange(t, ch)
}

func TestWatch_NotifiesOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slices.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ch := make(chan struct{}, 1)
	w, err := Watch(path, 20*time.Millisecond, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	// Write-to-temp-then-rename, the usual atomic feed update.
	tmp := filepath.Join(dir, "slices.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(sampleFeed), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	waitForChange(t, ch)
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slices.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ch := make(chan struct{}, 1)
	w, err := Watch(path, 20*time.Millisecond, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-ch:
		t.Fatal("sibling file change produced a notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nodir", "slices.json"), 0, func() {})
	require.Error(t, err)
}
