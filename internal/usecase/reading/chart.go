package reading

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
)

const (
	TimeSeriesTitle   = "Temperaturas por Localização"
	DistributionTitle = "Distribuição de Temperaturas por Tipo de Sensor"
)

// Series is the line of one sensor position at one location.
type Series struct {
	Location   string
	Position   string
	Timestamps []time.Time
	Values     []float64
}

// Distribution holds every value seen for one sensor position.
type Distribution struct {
	Position string
	Values   []float64
}

type ChartData struct {
	Series        []Series
	Distributions []Distribution
}

func (c *ChartData) Empty() bool {
	return c == nil || len(c.Series) == 0
}

type seriesKey struct {
	location string
	position string
}

// BuildChartData groups ascending readings by (location, position) and by
// position. Groups are sorted by key so output is stable.
func BuildChartData(readings []*domainSensor.Reading) *ChartData {
	bySeries := make(map[seriesKey]*Series)
	byPosition := make(map[string]*Distribution)

	for _, r := range readings {
		key := seriesKey{location: r.Location, position: r.Position}
		s, ok := bySeries[key]
		if !ok {
			s = &Series{Location: r.Location, Position: r.Position}
			bySeries[key] = s
		}
		s.Timestamps = append(s.Timestamps, r.Timestamp)
		s.Values = append(s.Values, r.Value)

		d, ok := byPosition[r.Position]
		if !ok {
			d = &Distribution{Position: r.Position}
			byPosition[r.Position] = d
		}
		d.Values = append(d.Values, r.Value)
	}

	data := &ChartData{
		Series:        make([]Series, 0, len(bySeries)),
		Distributions: make([]Distribution, 0, len(byPosition)),
	}
	for _, s := range bySeries {
		data.Series = append(data.Series, *s)
	}
	for _, d := range byPosition {
		data.Distributions = append(data.Distributions, *d)
	}

	sort.Slice(data.Series, func(i, j int) bool {
		if data.Series[i].Location != data.Series[j].Location {
			return data.Series[i].Location < data.Series[j].Location
		}
		return data.Series[i].Position < data.Series[j].Position
	})
	sort.Slice(data.Distributions, func(i, j int) bool {
		return data.Distributions[i].Position < data.Distributions[j].Position
	})
	return data
}

// Plotly figure documents, serialized as-is into the page.
type figure struct {
	Data   []trace `json:"data"`
	Layout layout  `json:"layout"`
}

type trace struct {
	Type        string    `json:"type"`
	Mode        string    `json:"mode,omitempty"`
	Name        string    `json:"name"`
	LegendGroup string    `json:"legendgroup,omitempty"`
	X           []string  `json:"x,omitempty"`
	Y           []float64 `json:"y"`
	BoxPoints   string    `json:"boxpoints,omitempty"`
}

type layout struct {
	Title axisTitle `json:"title"`
	XAxis axis      `json:"xaxis"`
	YAxis axis      `json:"yaxis"`
}

type axis struct {
	Title axisTitle `json:"title"`
}

type axisTitle struct {
	Text string `json:"text"`
}

// Figures returns the line and box chart documents. An empty data set has no charts.
func (c *ChartData) Figures() ([]string, error) {
	if c.Empty() {
		return nil, nil
	}

	lines := figure{Layout: layout{
		Title: axisTitle{Text: TimeSeriesTitle},
		XAxis: axis{Title: axisTitle{Text: "timestamp"}},
		YAxis: axis{Title: axisTitle{Text: "valor"}},
	}}
	for _, s := range c.Series {
		x := make([]string, len(s.Timestamps))
		for i, ts := range s.Timestamps {
			x[i] = ts.Format(time.RFC3339)
		}
		lines.Data = append(lines.Data, trace{
			Type:        "scatter",
			Mode:        "lines",
			Name:        fmt.Sprintf("%s - %s", s.Location, s.Position),
			LegendGroup: s.Location,
			X:           x,
			Y:           s.Values,
		})
	}

	boxes := figure{Layout: layout{
		Title: axisTitle{Text: DistributionTitle},
		XAxis: axis{Title: axisTitle{Text: "tipo_sensor"}},
		YAxis: axis{Title: axisTitle{Text: "valor"}},
	}}
	for _, d := range c.Distributions {
		boxes.Data = append(boxes.Data, trace{
			Type:      "box",
			Name:      d.Position,
			Y:         d.Values,
			BoxPoints: "outliers",
		})
	}

	out := make([]string, 0, 2)
	for _, f := range []figure{lines, boxes} {
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to encode chart: %w", err)
		}
		out = append(out, string(raw))
	}
	return out, nil
}
