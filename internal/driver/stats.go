package driver

import (
	"convdup/internal/decl"
	"convdup/internal/group"
)

// Stats summarises one file, or a whole batch once summed with Add.
type Stats struct {
	Files       int
	LOC         int
	Identifiers int
	Variables   int
	Functions   int
	Macros      int
	Types       int
	Fields      int
	Constants   int

	Findings         int
	VariableFindings int
	FunctionFindings int
}

func computeStats(loc int, ids []decl.Identifier, groups []group.Group) Stats {
	s := Stats{Files: 1, LOC: loc, Identifiers: len(ids)}
	for i := range ids {
		switch ids[i].Kind {
		case decl.Variable:
			s.Variables++
		case decl.FunctionName:
			s.Functions++
		case decl.MacroObject, decl.MacroFunction:
			s.Macros++
		case decl.TypedefName, decl.StructTypeName, decl.EnumTypeName:
			s.Types++
		case decl.StructFieldName:
			s.Fields++
		case decl.EnumConstant:
			s.Constants++
		}
	}
	s.countFindings(groups)
	return s
}

func (s *Stats) countFindings(groups []group.Group) {
	for i := range groups {
		if groups[i].Actionable {
			s.Findings++
			switch groups[i].Kind {
			case decl.Variable:
				s.VariableFindings++
			case decl.FunctionName:
				s.FunctionFindings++
			}
		}
		s.countFindings(groups[i].Nested)
	}
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.LOC += other.LOC
	s.Identifiers += other.Identifiers
	s.Variables += other.Variables
	s.Functions += other.Functions
	s.Macros += other.Macros
	s.Types += other.Types
	s.Fields += other.Fields
	s.Constants += other.Constants
	s.Findings += other.Findings
	s.VariableFindings += other.VariableFindings
	s.FunctionFindings += other.FunctionFindings
}

// FindingsPer100LOC is the finding density; zero for an empty file.
func (s Stats) FindingsPer100LOC() float64 {
	return ratio(s.Findings*100, s.LOC)
}

// FindingsPerDecl is findings over declared identifiers.
func (s Stats) FindingsPerDecl() float64 {
	return ratio(s.Findings, s.Identifiers)
}

// VariableFindingRate is variable findings over declared variables.
func (s Stats) VariableFindingRate() float64 {
	return ratio(s.VariableFindings, s.Variables)
}

// FunctionFindingRate is function findings over declared functions.
func (s Stats) FunctionFindingRate() float64 {
	return ratio(s.FunctionFindings, s.Functions)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
