package driver

import (
	"encoding/json"
	"fmt"

	"convdup/internal/diag"
	"convdup/internal/observ"
	"convdup/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func timingDiagnostic(report observ.Report, files int) (diag.Diagnostic, bool) {
	payload := timingPayload{
		Kind:    "scan",
		Files:   files,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, false
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms, %d file(s)", payload.Kind, payload.TotalMS, files)
	return diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}, true
}
