// Package casefile resolves the game's static data files: suspect profiles,
// day-scoped clues, and the interrogation prompt template.
package casefile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/models"
)

const (
	promptsDir  = "prompts"
	suspectsDir = "suspects"
	cluesDir    = "clues"

	templateFileName = "interrogation_prompt.txt"
)

// Store reads game data from a directory tree. Everything is resolved fresh
// per request and never cached, so edits to the data files show up on the next
// question without a restart.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

func NewStore(dataDir string, logger *slog.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  logger,
	}
}

// LoadTemplate reads the interrogation prompt template. Unlike per-suspect
// data, a missing template is a surfaced error since no prompt can be composed
// without it.
func (s *Store) LoadTemplate() (string, error) {
	path := filepath.Join(s.dataDir, promptsDir, templateFileName)
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "prompt template file not found", slog.String("path", path))
	}
	return string(contents), nil
}

// LoadProfile resolves the profile for the named suspect. A missing or
// malformed data file yields an empty profile, not an error, because missing
// game content should not break gameplay.
func (s *Store) LoadProfile(ctx context.Context, name string) models.SuspectProfile {
	var profile models.SuspectProfile
	path := filepath.Join(s.dataDir, suspectsDir, strings.ToLower(name)+".json")

	contents, err := os.ReadFile(path)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "suspect data not found",
			slog.String("suspect", name), slog.String("path", path))
		return profile
	}

	if err = json.Unmarshal(contents, &profile); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "error parsing suspect data",
			slog.String("suspect", name), errors.SlogError(err))
		return models.SuspectProfile{}
	}

	return profile
}

// clueFile is the structured form of a .json clue. The first present of the
// three fields wins.
type clueFile struct {
	Clue    string `json:"clue"`
	Text    string `json:"text"`
	Content string `json:"content"`
}

// LoadClue resolves the clue text for a given day and suspect. Both day
// directory variants (`day1` and `day 1`) are tried in order. Within a
// directory the first file whose lowercased name starts with the lowercased
// suspect name and ends in .json or .txt wins, in whatever order the directory
// listing yields. Every failure mode collapses to a default message.
func (s *Store) LoadClue(ctx context.Context, day int, suspect string) string {
	dayVariants := []string{
		fmt.Sprintf("day%d", day),
		fmt.Sprintf("day %d", day),
	}

	for _, variant := range dayVariants {
		dir := filepath.Join(s.dataDir, cluesDir, variant)
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelDebug, "clue directory not found", slog.String("dir", dir))
			continue
		}

		match := firstMatch(entries, suspect)
		if match == "" {
			continue
		}

		path := filepath.Join(dir, match)
		clue, err := readClueFile(path)
		if err != nil {
			// Degrade to the default message instead of surfacing a broken data file.
			s.logger.LogAttrs(ctx, slog.LevelError, "error reading clue file",
				slog.String("path", path), errors.SlogError(err))
			continue
		}

		s.logger.LogAttrs(ctx, slog.LevelDebug, "loaded clue",
			slog.String("suspect", suspect), slog.String("path", path))
		return fmt.Sprintf("🧩 Clue about %s: %s", Capitalize(suspect), clue)
	}

	s.logger.LogAttrs(ctx, slog.LevelWarn, "no clue files found",
		slog.String("suspect", suspect), slog.Int("day", day))
	return fmt.Sprintf("No new clues for %s today.", Capitalize(suspect))
}

// firstMatch returns the name of the first regular file matching the suspect,
// or "" when there is none.
func firstMatch(entries []os.DirEntry, suspect string) string {
	prefix := strings.ToLower(suspect)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".txt") {
			return entry.Name()
		}
	}
	return ""
}

func readClueFile(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read clue file")
	}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		var clue clueFile
		if err = json.Unmarshal(contents, &clue); err != nil {
			return "", errors.Wrap(err, "parse clue file")
		}
		switch {
		case clue.Clue != "":
			return clue.Clue, nil
		case clue.Text != "":
			return clue.Text, nil
		case clue.Content != "":
			return clue.Content, nil
		default:
			return "No clue text found in JSON", nil
		}
	}

	return strings.TrimSpace(string(contents)), nil
}

// Capitalize upper-cases the first rune of s, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
