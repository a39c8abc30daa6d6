package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

func TestWriteSARIF_Golden(t *testing.T) {
	results, snip := sampleResults()
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, results, Options{Snippets: snip}); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
							Snippet   *struct {
								Text string `json:"text"`
							} `json:"snippet"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" {
		t.Fatalf("expected SARIF 2.1.0, got %v", doc.Version)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(doc.Runs))
	}
	run := doc.Runs[0]
	if len(run.Tool.Driver.Rules) != len(types.Rules()) {
		t.Fatalf("expected a rule per kind, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	res := run.Results[0]
	if run.Tool.Driver.Rules[res.RuleIndex].ID != res.RuleID {
		t.Fatalf("ruleIndex %d does not point at %s", res.RuleIndex, res.RuleID)
	}
	if res.Level != "warning" {
		t.Fatalf("expected medium severity to map to warning, got %s", res.Level)
	}
	loc := res.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "CMakeLists.txt" || loc.Region.StartLine != 2 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if loc.Region.Snippet == nil || loc.Region.Snippet.Text == "" {
		t.Fatalf("expected snippet present")
	}
}

func TestWriteSARIF_EmptyResultsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, nil, Options{}); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	run := doc["runs"].([]any)[0].(map[string]any)
	if rs, ok := run["results"].([]any); !ok || len(rs) != 0 {
		t.Fatalf("expected empty results array, got %#v", run["results"])
	}
}

func TestWriteSARIF_ReadErrorNotification(t *testing.T) {
	results := []verifier.Result{{ID: "bad.cmake", Err: &verifier.ReadError{ID: "bad.cmake", Err: errors.New("denied")}}}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, results, Options{}); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Runs []struct {
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
				Notifications       []struct {
					Message struct {
						Text string `json:"text"`
					} `json:"message"`
				} `json:"toolExecutionNotifications"`
			} `json:"invocations"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	inv := doc.Runs[0].Invocations[0]
	if inv.ExecutionSuccessful || len(inv.Notifications) != 1 || inv.Notifications[0].Message.Text != "denied" {
		t.Fatalf("unexpected invocation %+v", inv)
	}
}
