package organize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tunesort/tunesort/internal/audio"
	"github.com/tunesort/tunesort/internal/config"
	"github.com/tunesort/tunesort/internal/format"
	ioutils "github.com/tunesort/tunesort/internal/io"
	"github.com/tunesort/tunesort/internal/model"
	"github.com/tunesort/tunesort/internal/tags"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an organizing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Entry is one planned file operation: a song and where it will go.
type Entry struct {
	Song        *model.Song
	Source      string
	Destination string
}

// Manager coordinates scanning a library, planning destinations and
// applying the plan.
type Manager struct {
	settings     *config.Settings
	scanner      *Scanner
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	songs   []*model.Song
	entries []Entry

	totalFiles     int32
	processedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new organize Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	var playlistFormat audio.PlaylistFormat
	switch settings.PlaylistFormat {
	case "pls":
		playlistFormat = audio.FormatPLS
	default:
		playlistFormat = audio.FormatM3U
	}

	return &Manager{
		settings:     settings,
		scanner:      NewScanner(settings.IncludeGlobs, settings.ExcludeGlobs),
		playlist:     audio.NewPlaylistCreator(playlistFormat, settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Scan walks the library path and reads the tags of every matching
// audio file. Files whose tags cannot be read are reported and skipped.
func (m *Manager) Scan(ctx context.Context) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", m.settings.LibraryPath), Level: LevelInfo})

	paths, err := m.scanner.Scan(m.settings.LibraryPath)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		song, err := tags.Read(path)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", path, err), Level: LevelWarning})
			continue
		}

		m.songs = append(m.songs, song)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Read: %s", filepath.Base(path)), Level: LevelVerbose})
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d songs", len(m.songs)), Level: LevelInfo})
	return nil
}

// Plan renders a destination path for every scanned song.
//
// Songs whose rendered path is unusable are reported and dropped from
// the plan. When two songs render to the same path, or the path is
// already taken on disk, a numeric suffix is inserted before the
// extension.
func (m *Manager) Plan() []Entry {
	f := m.settings.Format()
	opts := m.settings.RenderOptions()

	warnedNonUnique := false
	claimed := make(map[string]bool)
	entries := make([]Entry, 0, len(m.songs))

	for _, song := range m.songs {
		result, err := f.Render(song, "", opts)
		if errors.Is(err, format.ErrUnusablePath) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: no usable destination", song.FilePath), Level: LevelError})
			continue
		}

		if !result.IsUnique && !warnedNonUnique {
			m.progress(ProgressEvent{Message: "Template has no unique tag, songs may collide", Level: LevelWarning})
			warnedNonUnique = true
		}

		dest := filepath.Join(m.settings.DestinationPath, filepath.FromSlash(result.Path))
		if dest == song.FilePath {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Already organized: %s", dest), Level: LevelVerbose})
			continue
		}
		dest = m.deconflict(dest, claimed)

		claimed[dest] = true
		entries = append(entries, Entry{Song: song, Source: song.FilePath, Destination: dest})
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	atomic.StoreInt32(&m.totalFiles, int32(len(entries)))
	atomic.StoreInt32(&m.processedFiles, 0)

	return entries
}

// deconflict returns dest, or dest with " (N)" inserted before the
// extension when dest is already planned or present on disk.
func (m *Manager) deconflict(dest string, claimed map[string]bool) string {
	taken := func(path string) bool {
		if claimed[path] {
			return true
		}
		return !m.settings.Overwrite && ioutils.FileExists(path)
	}

	if !taken(dest) {
		return dest
	}

	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Apply executes the current plan, moving or copying each song to its
// destination. Afterwards cover art and playlists are written per album
// directory when configured.
func (m *Manager) Apply(ctx context.Context) error {
	m.mu.RLock()
	entries := m.entries
	m.mu.RUnlock()

	workers := m.settings.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	// The errgroup context is cancelled once Wait returns; the post-apply
	// phase below must keep using the caller's context.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, entry := range entries {
		entry := entry // capture
		g.Go(func() error {
			if err := m.applyEntry(gctx, entry); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error organizing %s: %v", entry.Source, err), Level: LevelError})
				return nil // Continue with other songs
			}
			atomic.AddInt32(&m.processedFiles, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	m.finishDirectories(ctx, entries)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Organized %d of %d songs", atomic.LoadInt32(&m.processedFiles), len(entries)), Level: LevelSuccess})
	return nil
}

func (m *Manager) applyEntry(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ioutils.EnsureDir(filepath.Dir(entry.Destination)); err != nil {
		return err
	}

	if m.settings.CopyInsteadOfMove {
		if err := ioutils.CopyFile(ctx, entry.Source, entry.Destination); err != nil {
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Copied: %s", filepath.Base(entry.Destination)), Level: LevelVerbose})
		return nil
	}

	if err := ioutils.MoveFile(ctx, entry.Source, entry.Destination); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Moved: %s", filepath.Base(entry.Destination)), Level: LevelVerbose})
	return nil
}

// finishDirectories writes cover art and playlists into each directory
// the plan populated.
func (m *Manager) finishDirectories(ctx context.Context, entries []Entry) {
	if !m.settings.SaveCoverArtInFolder && !m.settings.CreatePlaylists {
		return
	}

	byDir := make(map[string][]audio.Entry)
	var dirs []string
	for _, entry := range entries {
		dir := filepath.Dir(entry.Destination)
		if _, seen := byDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], audio.Entry{Path: entry.Destination, Song: entry.Song})
	}

	for _, dir := range dirs {
		if ctx.Err() != nil {
			return
		}
		dirEntries := byDir[dir]

		if m.settings.SaveCoverArtInFolder {
			m.saveCoverArt(ctx, dir, dirEntries)
		}

		if m.settings.CreatePlaylists {
			m.savePlaylist(ctx, dir, dirEntries)
		}
	}
}

// saveCoverArt writes the first embedded artwork found among the
// directory's songs to a cover file.
func (m *Manager) saveCoverArt(ctx context.Context, dir string, entries []audio.Entry) {
	var art *model.Artwork
	for _, entry := range entries {
		if entry.Song.HasArt() {
			art = entry.Song.Art
			break
		}
	}
	if art == nil {
		return
	}

	data := art.Data
	if m.settings.CoverArtResize {
		if resized, err := m.imageService.ResizeImage(ctx, data, m.settings.CoverArtMaxSize, m.settings.CoverArtMaxSize); err == nil {
			data = resized
		}
	}
	if m.settings.ConvertCoverArtToJPG {
		if converted, err := m.imageService.ConvertToJPEG(ctx, data); err == nil {
			data = converted
		}
	}

	path := filepath.Join(dir, m.settings.CoverArtFileName+".jpg")
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover art: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved cover art in %s", dir), Level: LevelVerbose})
}

// savePlaylist writes a playlist named after the directory's album.
func (m *Manager) savePlaylist(ctx context.Context, dir string, entries []audio.Entry) {
	name := entries[0].Song.Album
	if name == "" {
		name = filepath.Base(dir)
	}

	content := m.playlist.CreatePlaylist(entries)
	path := filepath.Join(dir, name+"."+m.playlist.Format().Extension())
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(path)), Level: LevelSuccess})
}

// GetProgress returns how many planned songs have been organized.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Songs returns the songs found by Scan.
func (m *Manager) Songs() []*model.Song {
	return m.songs
}

// Entries returns the plan produced by the last Plan call.
func (m *Manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
