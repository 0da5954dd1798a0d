package intake

import (
	"strings"
	"time"
)

// Period maps a named part of the day ("morning") to a clock time.
type Period struct {
	Name   string
	Hour   int
	Minute int
}

// Config holds the parser settings that users may tune.
type Config struct {
	Periods []Period
}

// DefaultConfig returns the built-in named periods.
func DefaultConfig() Config {
	return Config{
		Periods: []Period{
			{Name: "morning", Hour: 9},
			{Name: "noon", Hour: 12},
			{Name: "afternoon", Hour: 14},
			{Name: "evening", Hour: 18},
			{Name: "night", Hour: 20},
			{Name: "tonight", Hour: 20},
		},
	}
}

func (c Config) period(name string) (Period, bool) {
	if i := c.index(name); i >= 0 {
		return c.Periods[i], true
	}
	return Period{}, false
}

// WithPeriods returns a copy of c with the given "HH:MM" period times applied.
// Unknown names are added, malformed times are ignored.
func (c Config) WithPeriods(times map[string]string) Config {
	out := Config{Periods: append([]Period(nil), c.Periods...)}
	for name, hm := range times {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			continue
		}
		p := Period{Name: strings.ToLower(name), Hour: t.Hour(), Minute: t.Minute()}
		if i := out.index(p.Name); i >= 0 {
			out.Periods[i] = p
		} else {
			out.Periods = append(out.Periods, p)
		}
	}
	return out
}

func (c Config) index(name string) int {
	for i, p := range c.Periods {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}
