// Command tabulate runs the ranking engine over a scraped results file
// and prints the recomputed scorecards and majority placements. It is
// the I/O adapter around the engine: file reading and JSON decoding
// happen here, never inside the engine packages.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ahrav/go-podium/internal/application"
	"github.com/ahrav/go-podium/internal/domain"
)

// resultsFile mirrors the JSON layout produced by the results scraper.
type resultsFile struct {
	CompetitionInfo struct {
		Title    string `json:"title"`
		Location string `json:"location"`
		Date     string `json:"date"`
		Round    string `json:"round"`
		Dance    string `json:"dance"`
		Class    string `json:"class"`
	} `json:"competition_info"`
	Judges []struct {
		Letter  string `json:"letter"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"judges"`
	Couples []struct {
		StartNumber     string `json:"start_number"`
		Position        string `json:"position"`
		CompetitorNames string `json:"competitor_names"`
		Total           string `json:"total"`
		Categories      map[string]struct {
			Aggregated  string   `json:"aggregated"`
			JudgeScores []string `json:"judge_scores"`
		} `json:"categories"`
	} `json:"couples"`
}

func main() {
	var (
		inputPath  = flag.String("input", "", "Path to a scraped results JSON file (required)")
		otherPath  = flag.String("other", "", "Optional second-round results file to combine")
		policy     = flag.String("policy", string(domain.PolicyScaledMedian), "Aggregation policy: scaled_median, simple_average, or trimmed_mean")
		configPath = flag.String("config", "", "Optional YAML scenario config overriding the defaults")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	config := application.DefaultScenarioConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}
		loaded, err := application.LoadScenarioConfig(data)
		if err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
		config = *loaded
	}
	config.Policy = domain.AggregationPolicy(*policy)
	config.CombineRounds = *otherPath != ""

	round, title, err := loadRound(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *inputPath, err)
	}
	var other *application.Round
	if *otherPath != "" {
		loaded, _, err := loadRound(*otherPath)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *otherPath, err)
		}
		other = &loaded
	}

	engine, err := application.NewEngine(config, nil)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	result, err := engine.Tabulate(context.Background(), round, other)
	if err != nil {
		log.Fatalf("Tabulation failed: %v", err)
	}

	if title != "" {
		fmt.Println(title)
	}
	printScorecards(result, config.Categories)
	printPlacements(result)
	for _, note := range result.CombineNotes {
		fmt.Printf("warning: %s\n", note)
	}
}

// loadRound decodes a scraped results file into engine input.
func loadRound(path string) (application.Round, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return application.Round{}, "", err
	}
	var file resultsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return application.Round{}, "", fmt.Errorf("decode results: %w", err)
	}

	round := application.Round{}
	for _, j := range file.Judges {
		round.Judges = append(round.Judges, domain.Judge{Letter: j.Letter, Name: j.Name, Country: j.Country})
	}
	for _, c := range file.Couples {
		position, _ := strconv.Atoi(c.Position)
		competitor := domain.Competitor{
			ID:         c.StartNumber,
			Position:   position,
			Name:       c.CompetitorNames,
			Categories: make(map[domain.CategoryCode]domain.CategoryRecord, len(c.Categories)),
			Total:      domain.ParseScore(c.Total),
		}
		for code, record := range c.Categories {
			competitor.Categories[code] = domain.CategoryRecord{
				Aggregated:  domain.ParseScore(record.Aggregated),
				JudgeScores: domain.ParseScores(record.JudgeScores),
			}
		}
		round.Competitors = append(round.Competitors, competitor)
	}

	info := file.CompetitionInfo
	title := strings.TrimSpace(strings.Join([]string{info.Dance, info.Class, info.Round, info.Location, info.Date}, " "))
	return round, title, nil
}

func printScorecards(result *application.TabulationResult, codes []domain.CategoryCode) {
	fmt.Printf("\nScorecards (%s)\n", result.Policy)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Start\tName\t%s\tTotal\n", strings.Join(codes, "\t"))
	names := make(map[string]string, len(result.Competitors))
	for _, c := range result.Competitors {
		names[c.ID] = c.Name
	}
	for _, card := range result.Scorecards {
		cells := make([]string, 0, len(codes))
		for _, code := range codes {
			cells = append(cells, formatScore(card.Categories[code]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", card.CompetitorID, names[card.CompetitorID],
			strings.Join(cells, "\t"), formatScore(card.Total))
	}
	w.Flush()
}

func printPlacements(result *application.TabulationResult) {
	fmt.Println("\nMajority placements")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Place\tStart\tName\t%s\tNotes\n", strings.Join(result.JudgeLabels, "\t"))
	for _, row := range application.PlacementRows(result) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.PlaceLabel, row.CompetitorID, row.Name,
			strings.Join(row.JudgeRanks, "\t"), row.Notes)
	}
	w.Flush()
}

func formatScore(s domain.Score) string {
	if !s.Present {
		return "N/A"
	}
	return strconv.FormatFloat(s.Value, 'f', 3, 64)
}
