package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/driver"
	"convdup/internal/group"
	"convdup/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
	DefaultConfig    sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLocation   `json:"locations,omitempty"`
	RelatedLocations    []sarifLocation   `json:"relatedLocations,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifLocation struct {
	ID               *int          `json:"id,omitempty"`
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// duplicationRuleID names the rule reported for an actionable group of kind k.
func duplicationRuleID(k decl.Kind) string {
	return "convention-duplication/" + k.String()
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocationFor(span source.Span, fs *source.FileSet, mode PathMode) sarifLocation {
	start, end := fs.Resolve(span)
	return sarifLocation{
		PhysicalLocation: sarifPhysical{
			ArtifactLocation: sarifArtifact{URI: formatPath(fs.Get(span.File), fs, mode)},
			Region: sarifRegion{
				StartLine:   start.Line,
				StartColumn: start.Col,
				EndLine:     end.Line,
				EndColumn:   end.Col,
			},
		},
	}
}

// groupFingerprint stays stable while the group's kind, scope and key do,
// whatever the member order or positions.
func groupFingerprint(g *group.Group) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(g.Kind.String()+"\x00"+g.Scope+"\x00"+g.CanonicalKey))
}

// buildSarif assembles a SARIF 2.1.0 log: one result per actionable group
// plus one per diagnostic.
func buildSarif(batch *driver.Batch, meta SarifRunMeta) sarifLog {
	fs := batch.FileSet
	rules := make([]sarifRule, 0, len(decl.Kinds()))
	for _, k := range decl.Kinds() {
		rules = append(rules, sarifRule{
			ID:               duplicationRuleID(k),
			Name:             "NamingConventionDuplication",
			ShortDescription: sarifMessage{Text: fmt.Sprintf("The same %s name is spelled in several naming conventions", k)},
			DefaultConfig:    sarifConfig{Level: "warning"},
		})
	}

	results := []sarifResult{}
	for _, g := range flatten(visible(batchGroups(batch), false)) {
		if !g.Actionable {
			continue
		}
		names := make([]string, len(g.Members))
		for i, m := range g.Members {
			names[i] = fmt.Sprintf("%s (%s)", m.Name, m.Tag)
		}
		res := sarifResult{
			RuleID: duplicationRuleID(g.Kind),
			Level:  "warning",
			Message: sarifMessage{Text: fmt.Sprintf("%s is spelled in %d conventions: %s",
				describeGroup(&g), len(g.Conventions), strings.Join(names, ", "))},
			Locations:           []sarifLocation{sarifLocationFor(g.Members[0].Span, fs, meta.PathMode)},
			PartialFingerprints: map[string]string{"convdupGroup/v1": groupFingerprint(&g)},
		}
		for i, m := range g.Members[1:] {
			loc := sarifLocationFor(m.Span, fs, meta.PathMode)
			id := i + 1
			loc.ID = &id
			loc.Message = &sarifMessage{Text: fmt.Sprintf("%s (%s)", m.Name, m.Tag)}
			res.RelatedLocations = append(res.RelatedLocations, loc)
		}
		results = append(results, res)
	}

	seen := make(map[diag.Code]bool)
	bag := batch.Diagnostics()
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		if !seen[d.Code] {
			seen[d.Code] = true
			rules = append(rules, sarifRule{
				ID:               d.Code.ID(),
				Name:             strings.ReplaceAll(d.Code.Title(), " ", ""),
				ShortDescription: sarifMessage{Text: d.Code.Title()},
				DefaultConfig:    sarifConfig{Level: sarifLevel(d.Severity)},
			})
		}
		res := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
		}
		if locatable(d, fs) {
			res.Locations = []sarifLocation{sarifLocationFor(d.Primary, fs, meta.PathMode)}
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}}
	}
	return sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}}
}

// Sarif форматирует результат сканирования в SARIF формат (v2.1.0)
func Sarif(w io.Writer, batch *driver.Batch, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildSarif(batch, meta))
}
