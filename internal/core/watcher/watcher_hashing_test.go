package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ContentHashing(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 10)
	w, err := NewWatcher(50*time.Millisecond, nil, nil, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(tmpDir, "hash_target.spl")
	content := []byte("main num V_x , begin V_x = 1 ; end")
	if err := os.WriteFile(testFile, content, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changedFiles:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for create event")
	}
	// Let trailing events from the create settle.
	time.Sleep(150 * time.Millisecond)
	drain(changedFiles)

	if err := os.WriteFile(testFile, content, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		t.Errorf("received unexpected event for identical content: %v", paths)
	case <-time.After(200 * time.Millisecond):
	}

	newContent := []byte("main num V_x , begin V_x = 2 ; end")
	if err := os.WriteFile(testFile, newContent, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		if !contains(paths, testFile) {
			t.Errorf("expected event for %s, got %v", testFile, paths)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for content change")
	}
}

func drain(ch chan []string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
