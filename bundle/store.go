package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"baseball-preview-go/logcolors"

	log "github.com/sirupsen/logrus"
)

// Store persists one JSON file per assembled bundle, keyed by
// (away team, home team, game date). There is no TTL at this tier:
// bundles are replaced or invalidated explicitly.
type Store struct {
	dir string

	// now stamps FetchedAt metadata; overridable in tests.
	now func() time.Time
}

// Summary describes one stored bundle without loading its full contents.
type Summary struct {
	AwayTeam  string    `json:"awayTeam"`
	HomeTeam  string    `json:"homeTeam"`
	GameDate  string    `json:"gameDate"`
	FetchedAt time.Time `json:"fetchedAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

// NewStore creates a bundle store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bundle directory: %v", err)
	}
	log.Infof("%s Bundle store initialized at %s", logcolors.LogBundle, dir)
	return &Store{dir: dir, now: time.Now}, nil
}

// Key returns the cache key for a game.
func Key(awayTeam, homeTeam, gameDate string) string {
	return fmt.Sprintf("%s_%s_%s", awayTeam, homeTeam, gameDate)
}

func (s *Store) path(awayTeam, homeTeam, gameDate string) string {
	return filepath.Join(s.dir, Key(awayTeam, homeTeam, gameDate)+".json")
}

// Has reports whether a bundle exists for the game.
func (s *Store) Has(awayTeam, homeTeam, gameDate string) bool {
	_, err := os.Stat(s.path(awayTeam, homeTeam, gameDate))
	return err == nil
}

// Get loads the bundle for a game. A missing or unreadable file is a miss.
func (s *Store) Get(awayTeam, homeTeam, gameDate string) (*Bundle, bool) {
	path := s.path(awayTeam, homeTeam, gameDate)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Infof("%s Cache miss: %s", logcolors.LogBundle, filepath.Base(path))
		return nil, false
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		log.Warnf("%s Error reading bundle %s: %v", logcolors.LogBundle, filepath.Base(path), err)
		return nil, false
	}

	log.Infof("%s Cache hit: %s (fetched at %s)", logcolors.LogBundle,
		filepath.Base(path), b.Metadata.FetchedAt.Format(time.RFC3339))
	return &b, true
}

// Set saves a bundle, stamping its metadata, via a temp-file write and an
// atomic rename so readers never observe a partial bundle.
func (s *Store) Set(awayTeam, homeTeam, gameDate string, b *Bundle) (string, error) {
	b.Metadata.AwayTeam = awayTeam
	b.Metadata.HomeTeam = homeTeam
	b.Metadata.GameDate = gameDate
	b.Metadata.FetchedAt = s.now()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal bundle: %w", err)
	}

	path := s.path(awayTeam, homeTeam, gameDate)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write bundle: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize bundle: %w", err)
	}

	log.Infof("%s Cached bundle: %s (%.1f KB)", logcolors.LogBundle,
		filepath.Base(path), float64(len(data))/1024)
	return path, nil
}

// Invalidate deletes the bundle for a game; reports whether anything was removed.
func (s *Store) Invalidate(awayTeam, homeTeam, gameDate string) bool {
	path := s.path(awayTeam, homeTeam, gameDate)
	if err := os.Remove(path); err != nil {
		return false
	}
	log.Infof("%s Invalidated bundle: %s", logcolors.LogBundle, filepath.Base(path))
	return true
}

// List returns summaries for every stored bundle, sorted by game date
// descending. Unreadable files are skipped with a warning.
func (s *Store) List() []Summary {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warnf("%s Error listing bundles: %v", logcolors.LogBundle, err)
		return nil
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Warnf("%s Error reading %s: %v", logcolors.LogBundle, entry.Name(), err)
			continue
		}
		var b Bundle
		if err := json.Unmarshal(data, &b); err != nil {
			log.Warnf("%s Error parsing %s: %v", logcolors.LogBundle, entry.Name(), err)
			continue
		}

		summaries = append(summaries, Summary{
			AwayTeam:  b.Metadata.AwayTeam,
			HomeTeam:  b.Metadata.HomeTeam,
			GameDate:  b.Metadata.GameDate,
			FetchedAt: b.Metadata.FetchedAt,
			SizeBytes: int64(len(data)),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GameDate > summaries[j].GameDate
	})
	return summaries
}
