package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// TextOptions controls WriteText.
type TextOptions struct {
	// AlertLevel is the hazard level from which sensors are highlighted.
	AlertLevel int
	// Color forces ANSI colors on or off regardless of the terminal.
	Color bool
}

// palette holds the printers used by WriteText.
type palette struct {
	title *color.Color
	alert *color.Color
	drill *color.Color
	calm  *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		title: color.New(color.Bold),
		alert: color.New(color.FgRed, color.Bold),
		drill: color.New(color.FgYellow),
		calm:  color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{p.title, p.alert, p.drill, p.calm} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// hazard picks the printer for a hazard level.
func (p *palette) hazard(level, alertLevel int) *color.Color {
	if level >= alertLevel {
		return p.alert
	}

	return p.calm
}

// WriteText renders the snapshot as an indented tree.
func WriteText(w io.Writer, snap *Snapshot, opts TextOptions) error {
	p := newPalette(opts.Color)

	if _, err := p.title.Fprintf(w, "%s (elapsed=%d, max hazard=%d)\n",
		snap.Summary, snap.Elapsed, snap.MaxHazardLevel); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, f := range snap.Floors {
		if _, err := fmt.Fprintf(w, "  %s, available=%.2fm^2\n", f.Summary, f.AvailableArea); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		for _, r := range f.Rooms {
			if err := writeRoom(w, p, &r, opts.AlertLevel); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeRoom(w io.Writer, p *palette, r *RoomSnapshot, alertLevel int) error {
	if _, err := fmt.Fprintf(w, "    %s, hazard=%s", r.Summary,
		p.hazard(r.MaxHazardLevel, alertLevel).Sprint(r.MaxHazardLevel)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if r.FireDrill {
		if _, err := p.drill.Fprint(w, " [FIRE DRILL]"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, s := range r.Sensors {
		if _, err := fmt.Fprintf(w, "      %s, hazard=%s\n", s.Summary,
			p.hazard(s.HazardLevel, alertLevel).Sprint(s.HazardLevel)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}
