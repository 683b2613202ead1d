package plot

import (
	"strconv"
)

// Axis holds the settings of one named axis ("x", "y", "z", "x2", ...).
// Unset fields emit nothing.
type Axis struct {
	name     string
	label    string
	min, max *float64
	log      bool
	format   string
}

// NewAxis returns an unconfigured axis.
func NewAxis(name string) *Axis { return &Axis{name: name} }

// Name returns the axis name.
func (a *Axis) Name() string { return a.name }

// SetLabel sets the axis label.
func (a *Axis) SetLabel(label string) *Axis {
	a.label = label
	return a
}

// SetRange bounds the axis on both ends.
func (a *Axis) SetRange(lo, hi float64) *Axis {
	a.min, a.max = &lo, &hi
	return a
}

// SetMin bounds the lower end only.
func (a *Axis) SetMin(lo float64) *Axis {
	a.min = &lo
	return a
}

// SetMax bounds the upper end only.
func (a *Axis) SetMax(hi float64) *Axis {
	a.max = &hi
	return a
}

// SetLogScale toggles logarithmic scaling.
func (a *Axis) SetLogScale(log bool) *Axis {
	a.log = log
	return a
}

// SetFormat sets the tic label format, e.g. "%.1f".
func (a *Axis) SetFormat(format string) *Axis {
	a.format = format
	return a
}

// Commands renders the axis settings.
func (a *Axis) Commands() []string {
	var cmds []string
	if a.label != "" {
		cmds = append(cmds, "set "+a.name+"label "+Quote(a.label))
	}
	if a.min != nil || a.max != nil {
		cmds = append(cmds, "set "+a.name+"range ["+bound(a.min)+":"+bound(a.max)+"]")
	}
	if a.log {
		cmds = append(cmds, "set logscale "+a.name)
	}
	if a.format != "" {
		cmds = append(cmds, "set format "+a.name+" "+Quote(a.format))
	}
	return cmds
}

func bound(v *float64) string {
	if v == nil {
		return "*"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
