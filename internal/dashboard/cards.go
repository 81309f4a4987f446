package dashboard

import (
	"html/template"

	"github.com/mallops/mallops/internal/dashboard/svg"
	"github.com/mallops/mallops/internal/i18n"
	"github.com/mallops/mallops/internal/kpi"
)

const missingValue = "—"

// KPICard is one headline figure with its severity colour.
type KPICard struct {
	Type  kpi.Type
	Label string
	Value string
	Tier  kpi.Tier
	Color string
}

// kpiValues returns the four KPI readings in dashboard order, nil when the
// record is absent.
func kpiValues(fin *FinanceKPI, ops *OpsKPI) map[kpi.Type]*float64 {
	values := make(map[kpi.Type]*float64, len(kpi.Types))
	if fin != nil {
		values[kpi.RentCollection] = &fin.CollectionPct
		values[kpi.Overdue] = &fin.OverdueSAR
	}
	if ops != nil {
		values[kpi.SLACompliance] = &ops.SLACompliancePct
		values[kpi.Resolution] = &ops.AvgResolutionHours
	}
	return values
}

// Reading is a classified KPI value. Value is nil when the record is absent.
type Reading struct {
	Type  kpi.Type
	Value *float64
	Tier  kpi.Tier
}

// Readings classifies the four KPIs of one mall in dashboard order.
func Readings(fin *FinanceKPI, ops *OpsKPI) []Reading {
	values := kpiValues(fin, ops)
	out := make([]Reading, 0, len(kpi.Types))
	for _, t := range kpi.Types {
		out = append(out, Reading{Type: t, Value: values[t], Tier: kpi.Classify(values[t], t)})
	}
	return out
}

var cardLabels = map[kpi.Type]string{
	kpi.RentCollection: i18n.KeyRentCollection,
	kpi.Overdue:        i18n.KeyOverdueSAR,
	kpi.SLACompliance:  i18n.KeySLACompliance,
	kpi.Resolution:     i18n.KeyAvgResolution,
}

// BuildKPICards formats the headline cards. Absent records render a dash
// and the unknown tier.
func BuildKPICards(fin *FinanceKPI, ops *OpsKPI, tr *i18n.Translator) []KPICard {
	values := kpiValues(fin, ops)
	cards := make([]KPICard, 0, len(kpi.Types))
	for _, t := range kpi.Types {
		v := values[t]
		tier := kpi.Classify(v, t)
		card := KPICard{Type: t, Label: tr.T(cardLabels[t]), Value: missingValue, Tier: tier, Color: tier.Color()}
		if v != nil {
			switch t {
			case kpi.RentCollection, kpi.SLACompliance:
				card.Value = tr.Number(*v, 1) + "%"
			case kpi.Overdue:
				card.Value = tr.Number(*v, 0)
			default:
				card.Value = tr.Number(*v, 1)
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// KPIChart renders the KPI bars. Overdue is plotted in thousands and its
// colour is derived from the plotted value.
func KPIChart(fin *FinanceKPI, ops *OpsKPI, tr *i18n.Translator) (template.HTML, error) {
	values := kpiValues(fin, ops)
	bars := make([]svg.Bar, 0, len(kpi.Types))
	for _, t := range kpi.Types {
		label := tr.T(cardLabels[t])
		if t == kpi.Overdue {
			label = tr.T(i18n.KeyOverdueK)
		}
		bar := svg.Bar{Label: label, Color: kpi.Unknown.Color()}
		if v := values[t]; v != nil {
			bar.Value = kpi.ToDisplay(*v, t)
			bar.Color = kpi.ClassifyDisplay(bar.Value, t).Color()
			bar.Text = tr.Number(bar.Value, 1)
		}
		bars = append(bars, bar)
	}
	return svg.HorizontalBars(svg.DefaultWidth, svg.DefaultHeight, bars, svg.BarOpts{
		Title: tr.T(i18n.KeyTitle),
		RTL:   tr.Dir() == "rtl",
	})
}
