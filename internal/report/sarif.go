package report

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// ToolVersion is reported in SARIF output; set by the CLI at startup.
var ToolVersion = "dev"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Results     []sarifResult     `json:"results"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int           `json:"startLine"`
	Snippet   *sarifMessage `json:"snippet,omitempty"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations,omitempty"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes results as SARIF 2.1.0. Every known kind is listed as a
// rule; unreadable files become tool execution notifications.
func WriteSARIF(w io.Writer, results []verifier.Result, opts Options) error {
	snip := orNone(opts.Snippets)
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "cmake-checker", Version: ToolVersion}},
		// results must serialize as [] rather than null
		Results: []sarifResult{},
	}
	index := map[types.ViolationKind]int{}
	for i, r := range types.Rules() {
		index[r.Kind] = i
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:                   string(r.Kind),
			ShortDescription:     sarifMessage{Text: r.Summary},
			DefaultConfiguration: sarifConfig{Level: sevToLevel(r.Severity)},
		})
	}

	inv := sarifInvocation{ExecutionSuccessful: true}
	for _, r := range results {
		uri := filepath.ToSlash(r.ID)
		if r.Err != nil {
			inv.ExecutionSuccessful = false
			inv.Notifications = append(inv.Notifications, sarifNotification{
				Level:     "error",
				Message:   sarifMessage{Text: cause(r.Err)},
				Locations: []sarifLoc{{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: uri}}}},
			})
			continue
		}
		for _, v := range r.Violations {
			rule, _ := types.LookupRule(v.Kind)
			region := sarifRegion{StartLine: v.Line}
			if text := snip.Line(r.ID, v.Line); text != "" {
				region.Snippet = &sarifMessage{Text: text}
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:    string(v.Kind),
				RuleIndex: index[v.Kind],
				Level:     sevToLevel(types.SeverityOf(v.Kind)),
				Message:   sarifMessage{Text: rule.Summary},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhys{
						ArtifactLocation: sarifArt{URI: uri},
						Region:           region,
					},
				}},
			})
		}
	}
	run.Invocations = []sarifInvocation{inv}

	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
