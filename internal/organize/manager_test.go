package organize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tunesort/tunesort/internal/config"
	"github.com/tunesort/tunesort/internal/model"
)

func testSettings(dest string) *config.Settings {
	settings := config.DefaultSettings()
	settings.DestinationPath = dest
	settings.Template = "%artist/%album/%track %title"
	settings.ReplaceSpaces = false
	settings.MaxWorkers = 2
	return settings
}

func testSong(artist, album, title string, track int, path string) *model.Song {
	return &model.Song{
		Artist:   artist,
		Album:    album,
		Title:    title,
		Track:    track,
		FilePath: path,
	}
}

func TestManager_Plan(t *testing.T) {
	m := NewManager(testSettings("/library"), nil)
	m.songs = []*model.Song{
		testSong("Motörhead", "Ace of Spades", "Ace of Spades", 1, "/incoming/a.mp3"),
		testSong("Motörhead", "Ace of Spades", "Love Me Like a Reptile", 2, "/incoming/b.mp3"),
	}

	entries := m.Plan()

	if len(entries) != 2 {
		t.Fatalf("Plan returned %d entries, want 2", len(entries))
	}
	want := filepath.Join("/library", "Motörhead", "Ace of Spades", "01 Ace of Spades.mp3")
	if entries[0].Destination != want {
		t.Errorf("Destination = %q, want %q", entries[0].Destination, want)
	}
	if entries[0].Source != "/incoming/a.mp3" {
		t.Errorf("Source = %q, want %q", entries[0].Source, "/incoming/a.mp3")
	}
}

func TestManager_PlanCollision(t *testing.T) {
	m := NewManager(testSettings("/library"), nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, "/incoming/a.mp3"),
		testSong("Artist", "Album", "Song", 1, "/incoming/b.mp3"),
		testSong("Artist", "Album", "Song", 1, "/incoming/c.mp3"),
	}

	entries := m.Plan()

	if len(entries) != 3 {
		t.Fatalf("Plan returned %d entries, want 3", len(entries))
	}
	base := filepath.Join("/library", "Artist", "Album")
	wants := []string{
		filepath.Join(base, "01 Song.mp3"),
		filepath.Join(base, "01 Song (1).mp3"),
		filepath.Join(base, "01 Song (2).mp3"),
	}
	for i, want := range wants {
		if entries[i].Destination != want {
			t.Errorf("entries[%d].Destination = %q, want %q", i, entries[i].Destination, want)
		}
	}
}

func TestManager_PlanExistingFile(t *testing.T) {
	dest := t.TempDir()
	taken := filepath.Join(dest, "Artist", "Album", "01 Song.mp3")
	if err := os.MkdirAll(filepath.Dir(taken), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(taken, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(testSettings(dest), nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, "/incoming/a.mp3"),
	}

	entries := m.Plan()

	want := filepath.Join(dest, "Artist", "Album", "01 Song (1).mp3")
	if len(entries) != 1 || entries[0].Destination != want {
		t.Fatalf("Plan = %v, want single entry with destination %q", entries, want)
	}
}

func TestManager_PlanOverwrite(t *testing.T) {
	dest := t.TempDir()
	taken := filepath.Join(dest, "Artist", "Album", "01 Song.mp3")
	if err := os.MkdirAll(filepath.Dir(taken), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(taken, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := testSettings(dest)
	settings.Overwrite = true
	m := NewManager(settings, nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, "/incoming/a.mp3"),
	}

	entries := m.Plan()

	if len(entries) != 1 || entries[0].Destination != taken {
		t.Fatalf("Plan = %v, want single entry overwriting %q", entries, taken)
	}
}

func TestManager_PlanSkipsUnusable(t *testing.T) {
	var events []ProgressEvent
	settings := testSettings("/library")
	settings.Template = "{%artist/%album/%track %title}"
	m := NewManager(settings, func(e ProgressEvent) {
		events = append(events, e)
	})
	m.songs = []*model.Song{
		{}, // no tags, no source path
		testSong("Artist", "Album", "Song", 1, "/incoming/a.mp3"),
	}

	entries := m.Plan()

	if len(entries) != 1 {
		t.Fatalf("Plan returned %d entries, want 1", len(entries))
	}

	found := false
	for _, e := range events {
		if e.Level == LevelError && strings.Contains(e.Message, "no usable destination") {
			found = true
		}
	}
	if !found {
		t.Error("expected an error event for the unusable song")
	}
}

func TestManager_PlanWarnsNonUniqueTemplate(t *testing.T) {
	var events []ProgressEvent
	settings := testSettings("/library")
	settings.Template = "%artist/%album"
	m := NewManager(settings, func(e ProgressEvent) {
		events = append(events, e)
	})
	m.songs = []*model.Song{
		testSong("Artist", "Album", "One", 1, "/incoming/a.mp3"),
		testSong("Artist", "Album", "Two", 2, "/incoming/b.mp3"),
	}

	entries := m.Plan()

	if len(entries) != 2 {
		t.Fatalf("Plan returned %d entries, want 2", len(entries))
	}
	if entries[0].Destination == entries[1].Destination {
		t.Error("colliding destinations were not deconflicted")
	}

	warnings := 0
	for _, e := range events {
		if e.Level == LevelWarning && strings.Contains(e.Message, "unique") {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("got %d non-unique warnings, want exactly 1", warnings)
	}
}

func TestManager_PlanSkipsAlreadyOrganized(t *testing.T) {
	m := NewManager(testSettings("/library"), nil)
	inPlace := filepath.Join("/library", "Artist", "Album", "01 Song.mp3")
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, inPlace),
	}

	if entries := m.Plan(); len(entries) != 0 {
		t.Fatalf("Plan returned %d entries for an already organized song, want 0", len(entries))
	}
}

func TestManager_Apply(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	source := filepath.Join(src, "a.mp3")
	if err := os.WriteFile(source, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(testSettings(dest), nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, source),
	}

	entries := m.Plan()
	if len(entries) != 1 {
		t.Fatalf("Plan returned %d entries, want 1", len(entries))
	}

	if err := m.Apply(context.Background()); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if _, err := os.Stat(entries[0].Destination); err != nil {
		t.Errorf("destination missing after Apply: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Errorf("source still present after move, stat err = %v", err)
	}

	processed, total := m.GetProgress()
	if processed != 1 || total != 1 {
		t.Errorf("GetProgress = (%d, %d), want (1, 1)", processed, total)
	}
}

func TestManager_ApplyCopy(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	source := filepath.Join(src, "a.mp3")
	if err := os.WriteFile(source, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := testSettings(dest)
	settings.CopyInsteadOfMove = true
	m := NewManager(settings, nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, source),
	}
	entries := m.Plan()

	if err := m.Apply(context.Background()); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if _, err := os.Stat(entries[0].Destination); err != nil {
		t.Errorf("destination missing after Apply: %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}
}

func TestManager_ApplyWritesPlaylist(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	source := filepath.Join(src, "a.mp3")
	if err := os.WriteFile(source, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := testSettings(dest)
	settings.CreatePlaylists = true
	m := NewManager(settings, nil)
	m.songs = []*model.Song{
		testSong("Artist", "Album", "Song", 1, source),
	}
	m.Plan()

	if err := m.Apply(context.Background()); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	playlist := filepath.Join(dest, "Artist", "Album", "Album.m3u")
	data, err := os.ReadFile(playlist)
	if err != nil {
		t.Fatalf("playlist missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "#EXTM3U") {
		t.Errorf("playlist content = %q, want extended M3U", string(data))
	}
	if !strings.Contains(string(data), "01 Song.mp3") {
		t.Errorf("playlist content = %q, should list the organized song", string(data))
	}
}
