package convexify

import (
	"fmt"

	"convexify/internal/analysis"
	"convexify/internal/curvature"
	"convexify/internal/egraph"
	"convexify/internal/extract"
	"convexify/internal/rewrite"
	"convexify/internal/term"
)

// Result is the outcome of one Convexify call, independent of any wire
// encoding. ProcessRequest converts it to a Response for the JSON-facing
// server/CLI binaries.
type Result struct {
	Status    Status
	Cost      curvature.Curvature
	Extracted *term.Term
	Steps     []egraph.Step
}

// Convexify runs one full rewrite-and-extract pass over src (spec §2, §4):
// parse, seed any variable-domain hints, saturate the e-graph under the
// fixed rule set, pick the least-cost representative reachable from the
// root, and — only if that representative reached an acceptable DCP
// curvature — reconstruct the sequence of rewrites that produced it.
func Convexify(src string, domains map[string]analysis.Sign, caps rewrite.Caps) (Result, error) {
	input, err := term.ParseTerm(src)
	if err != nil {
		return Result{}, fmt.Errorf("convexify: %w", err)
	}

	g := egraph.New()
	root := g.AddTerm(input)
	seedDomains(g, input, domains)

	if _, err := rewrite.Run(g, rewrite.Rules(), caps); err != nil {
		return Result{}, fmt.Errorf("convexify: saturation: %w", err)
	}

	extraction := extract.Extract(g, root)
	if !curvature.Acceptable(extraction.Cost) {
		return Result{Status: StatusNoDCPForm, Cost: extraction.Cost}, nil
	}

	explanation, err := g.ExplainEquivalence(input, extraction.Term)
	if err != nil {
		// extraction.Cost was judged Acceptable from a class reachable from
		// root, so input and the extracted term must already share a class —
		// anything else is an invariant violation, not a bad request
		// (spec §7 item 6).
		panic(fmt.Sprintf("convexify: extracted term not explainable: %v", err))
	}

	status := StatusRewritten
	if len(explanation.Steps) == 0 {
		status = StatusAlreadyDCP
	}
	return Result{
		Status:    status,
		Cost:      extraction.Cost,
		Extracted: extraction.Term,
		Steps:     explanation.Flatten(),
	}, nil
}

// seedDomains installs each named domain hint onto the e-class of every
// var/vecVar/matVar node in t that wraps a matching symbol (spec §6).
func seedDomains(g *egraph.EGraph, t *term.Term, domains map[string]analysis.Sign) {
	if len(domains) == 0 {
		return
	}
	if (t.Kind == term.Var || t.Kind == term.VecVar || t.Kind == term.MatVar) &&
		len(t.Args) == 1 && t.Args[0].Kind == term.Symbol {
		if sign, ok := domains[t.Args[0].Sym]; ok {
			g.SetSign(g.AddTerm(t), sign)
		}
	}
	for _, a := range t.Args {
		seedDomains(g, a, domains)
	}
}

// ProcessRequest adapts one wire Request through Convexify (spec §6). It
// never surfaces a malformed or unsolvable request as a Go error — those
// are reported via Response.Error / Response.Status instead, so a
// long-lived server loop keeps answering later requests regardless.
func ProcessRequest(req Request, caps rewrite.Caps) Response {
	domains := make(map[string]analysis.Sign, len(req.Domains))
	for name, hint := range req.Domains {
		sign, err := ParseSign(hint)
		if err != nil {
			return Response{ID: req.ID, Status: StatusNoDCPForm, Error: err.Error()}
		}
		domains[name] = sign
	}

	result, err := Convexify(req.Target, domains, caps)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}

	resp := Response{ID: req.ID, Status: result.Status, Curvature: result.Cost.String()}
	if result.Extracted != nil {
		resp.Result = result.Extracted.String()
	}
	for _, s := range result.Steps {
		resp.Steps = append(resp.Steps, StepMsg{
			Rule:         s.Rule,
			Direction:    s.Direction.String(),
			ExpectedTerm: s.Term.String(),
		})
	}
	return resp
}
