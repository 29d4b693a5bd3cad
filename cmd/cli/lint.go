package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/models"
	"github.com/spf13/cobra"
)

// templatePlaceholders are the markers the prompt composer substitutes. A
// template missing one of them produces prompts with silent gaps.
var templatePlaceholders = []string{
	"{name}", "{question}", "{tone}", "{backstory}",
	"{time_range}", "{location}", "{relationship_to_victim}",
}

var dayDirPattern = regexp.MustCompile(`^day ?[1-9][0-9]*$`)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the game data directory",
	Long: `Checks that the prompt template carries every placeholder, that suspect
profiles parse, and that clue files are named and shaped so the server can
find them.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		findings := lintDataDir(dataDir)
		for _, finding := range findings {
			fmt.Println(finding)
		}
		if len(findings) > 0 {
			return errors.New(fmt.Sprintf("%d problem(s) found", len(findings)))
		}
		fmt.Println("data directory is clean")
		return nil
	},
}

func lintDataDir(dir string) []string {
	var findings []string
	findings = append(findings, lintTemplate(dir)...)
	findings = append(findings, lintSuspects(dir)...)
	findings = append(findings, lintClues(dir)...)
	return findings
}

func lintTemplate(dir string) []string {
	path := filepath.Join(dir, "prompts", "interrogation_prompt.txt")
	contents, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("%s: prompt template missing", path)}
	}
	var findings []string
	for _, placeholder := range templatePlaceholders {
		if !strings.Contains(string(contents), placeholder) {
			findings = append(findings, fmt.Sprintf("%s: missing placeholder %s", path, placeholder))
		}
	}
	return findings
}

func lintSuspects(dir string) []string {
	suspectsDir := filepath.Join(dir, "suspects")
	entries, err := os.ReadDir(suspectsDir)
	if err != nil {
		return []string{fmt.Sprintf("%s: suspects directory missing", suspectsDir)}
	}
	var findings []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(suspectsDir, entry.Name())
		if !strings.HasSuffix(entry.Name(), ".json") {
			findings = append(findings, fmt.Sprintf("%s: suspect files must be .json", path))
			continue
		}
		if entry.Name() != strings.ToLower(entry.Name()) {
			// The server lowercases the suspect name before building the path.
			findings = append(findings, fmt.Sprintf("%s: file name must be lowercase", path))
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			findings = append(findings, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		var profile models.SuspectProfile
		if err = json.Unmarshal(contents, &profile); err != nil {
			findings = append(findings, fmt.Sprintf("%s: invalid JSON: %v", path, err))
		}
	}
	return findings
}

func lintClues(dir string) []string {
	cluesDir := filepath.Join(dir, "clues")
	entries, err := os.ReadDir(cluesDir)
	if err != nil {
		return []string{fmt.Sprintf("%s: clues directory missing", cluesDir)}
	}
	var findings []string
	for _, entry := range entries {
		path := filepath.Join(cluesDir, entry.Name())
		if !entry.IsDir() {
			findings = append(findings, fmt.Sprintf("%s: expected a day directory", path))
			continue
		}
		if !dayDirPattern.MatchString(entry.Name()) {
			findings = append(findings, fmt.Sprintf("%s: directory name must look like day1 or day 1", path))
			continue
		}
		findings = append(findings, lintClueDir(path)...)
	}
	return findings
}

func lintClueDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", dir, err)}
	}
	var findings []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		name := strings.ToLower(entry.Name())
		switch {
		case entry.IsDir():
			findings = append(findings, fmt.Sprintf("%s: unexpected directory", path))
		case strings.HasSuffix(name, ".txt"):
			// Any readable text is a valid clue.
		case strings.HasSuffix(name, ".json"):
			findings = append(findings, lintClueJSON(path)...)
		default:
			findings = append(findings, fmt.Sprintf("%s: clue files must be .json or .txt", path))
		}
	}
	return findings
}

func lintClueJSON(path string) []string {
	contents, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", path, err)}
	}
	var clue struct {
		Clue    string `json:"clue"`
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err = json.Unmarshal(contents, &clue); err != nil {
		return []string{fmt.Sprintf("%s: invalid JSON: %v", path, err)}
	}
	if clue.Clue == "" && clue.Text == "" && clue.Content == "" {
		return []string{fmt.Sprintf("%s: none of clue/text/content present", path)}
	}
	return nil
}
