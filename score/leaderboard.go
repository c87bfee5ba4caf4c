package score

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one stored session result.
type Entry struct {
	Name     string    `yaml:"name"`
	Result   Result    `yaml:",inline"`
	PlayedAt time.Time `yaml:"played_at"`
}

type leaderboardFile struct {
	Entries []Entry `yaml:"entries"`
}

// Leaderboard keeps the best results in a yaml file, highest score first and
// the most recent session first among equal scores.
type Leaderboard struct {
	mu      sync.Mutex
	path    string
	name    string
	limit   int
	entries []Entry
	now     func() time.Time
}

// OpenLeaderboard loads path if it exists. Results submitted later are
// recorded under name.
func OpenLeaderboard(path, name string, limit int) (*Leaderboard, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("score: leaderboard limit must be positive, got %d", limit)
	}
	if name == "" {
		name = "Anonymous"
	}
	l := &Leaderboard{path: path, name: name, limit: limit, now: time.Now}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("score: read leaderboard %s: %w", path, err)
	}
	var file leaderboardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("score: unmarshal leaderboard %s: %w", path, err)
	}
	l.entries = file.Entries
	l.sortAndTrim()
	return l, nil
}

// Submit records r and rewrites the file. Write failures are logged; the
// in-memory board still has the entry.
func (l *Leaderboard) Submit(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Name: l.name, Result: r, PlayedAt: l.now().UTC()})
	l.sortAndTrim()
	if err := l.save(); err != nil {
		log.Printf("score: save leaderboard: %v", err)
	}
}

// Entries returns a copy of the board.
func (l *Leaderboard) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Best returns the top score on the board.
func (l *Leaderboard) Best() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return 0, false
	}
	return l.entries[0].Result.Score, true
}

func (l *Leaderboard) sortAndTrim() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		a, b := l.entries[i], l.entries[j]
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		return a.PlayedAt.After(b.PlayedAt)
	})
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

func (l *Leaderboard) save() error {
	data, err := yaml.Marshal(leaderboardFile{Entries: l.entries})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.path)
}
