package scale

import "Premiacao/internal/model"

const (
	// MinAttaining is the lowest achievement that pays a bonus.
	MinAttaining = 90
	// MaxAttaining is the ceiling; higher achievements pay the same as this bracket.
	MaxAttaining = 120
)

// Scale is an ordered bracket table covering every integer point in [MinAttaining, MaxAttaining].
type Scale struct {
	Name     string
	Brackets []model.PrizeBracket
}

// Lookup returns the base percentage for an exact attaining point.
func (s *Scale) Lookup(attaining int) (float64, bool) {
	i := attaining - MinAttaining
	if i >= 0 && i < len(s.Brackets) && s.Brackets[i].Attaining == attaining {
		return s.Brackets[i].BasePercentage, true
	}
	for _, b := range s.Brackets {
		if b.Attaining == attaining {
			return b.BasePercentage, true
		}
	}
	return 0, false
}

// build fills one bracket per integer point using f.
func build(name string, f func(attaining int) float64) *Scale {
	brackets := make([]model.PrizeBracket, 0, MaxAttaining-MinAttaining+1)
	for a := MinAttaining; a <= MaxAttaining; a++ {
		brackets = append(brackets, model.PrizeBracket{Attaining: a, BasePercentage: f(a)})
	}
	return &Scale{Name: name, Brackets: brackets}
}

// ForKPI returns the manager-level scale for a KPI.
func ForKPI(kpi model.KPIType) (*Scale, bool) {
	switch kpi {
	case model.KPIMonthlyBSC, model.KPIMonthlyMAT:
		return MonthlyManager, true
	case model.KPIQuarterlyGerencial:
		return QuarterlyManager, true
	case model.KPIAnnualEBITDA:
		return AnnualEBITDA, true
	default:
		return nil, false
	}
}

// All returns every defined scale.
func All() []*Scale {
	return []*Scale{MonthlyManager, QuarterlyManager, AnnualEBITDA}
}
