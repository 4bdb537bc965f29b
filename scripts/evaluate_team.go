// evaluate_team.go posts a payroll CSV to the Valumetric team endpoint and
// prints each member's HCROI and zone.
//
// The CSV needs a header row naming subject, annual_salary and revenue; other
// columns are ignored. Lines starting with # are comments.
//
// Usage:
//
//	go run scripts/evaluate_team.go -csv team.csv -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type member struct {
	Subject      string `json:"subject"`
	AnnualSalary string `json:"annual_salary,omitempty"`
	Revenue      string `json:"revenue,omitempty"`
}

type teamSummary struct {
	Members []struct {
		Subject string `json:"subject"`
		Zone    string `json:"zone"`
		Result  struct {
			HcroiIndex            string `json:"hcroi_index"`
			TargetAchievementRate string `json:"target_achievement_rate"`
		} `json:"result"`
	} `json:"members"`
	Failed       []string       `json:"failed"`
	AverageIndex string         `json:"average_hcroi_index"`
	Zones        map[string]int `json:"zones"`
	BEPRevenue   string         `json:"break_even_revenue"`
	BEPRate      string         `json:"bep_achievement_rate"`
	BEPAchieved  bool           `json:"bep_achieved"`
}

func main() {
	csvPath := flag.String("csv", "team.csv", "path to payroll CSV")
	apiURL := flag.String("api", "http://localhost:8700", "Valumetric API base URL")
	clientID := flag.String("client", "evaluate-team", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print parsed members without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	members, err := parseMembers(f)
	if err != nil {
		log.Fatalf("parse %s: %v", *csvPath, err)
	}
	log.Printf("parsed %d members from %s", len(members), *csvPath)

	if *dryRun {
		for i, m := range members {
			fmt.Printf("[%d] %s (annual_salary=%s, revenue=%s)\n", i+1, m.Subject, m.AnnualSalary, m.Revenue)
		}
		return
	}

	body, _ := json.Marshal(map[string]interface{}{"members": members})
	req, err := http.NewRequest("POST", *apiURL+"/api/v1/hcroi/team", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", *clientID)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("post team: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var summary teamSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		log.Fatalf("decode response: %v", err)
	}

	for _, m := range summary.Members {
		fmt.Printf("%-24s hcroi=%s achievement=%s%% zone=%s\n",
			m.Subject, m.Result.HcroiIndex, m.Result.TargetAchievementRate, m.Zone)
	}
	for _, s := range summary.Failed {
		fmt.Printf("%-24s failed\n", s)
	}
	log.Printf("done: %d evaluated, %d failed, average hcroi %s", len(summary.Members), len(summary.Failed), summary.AverageIndex)
	log.Printf("team break-even %s, achieved %s%% (reached=%t)", summary.BEPRevenue, summary.BEPRate, summary.BEPAchieved)
}

func parseMembers(r io.Reader) ([]member, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"subject", "annual_salary", "revenue"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}

	var members []member
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			if i := col[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		members = append(members, member{
			Subject:      field("subject"),
			AnnualSalary: strings.ReplaceAll(field("annual_salary"), ",", ""),
			Revenue:      strings.ReplaceAll(field("revenue"), ",", ""),
		})
	}
	return members, nil
}
