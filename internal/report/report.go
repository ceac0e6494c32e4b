// Package report renders generated systems for people and for other tools.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"accrete-server/internal/accrete"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json and yaml (or yml), case-insensitively. An
// empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders sys to w in format f. Text reports use English number
// formatting.
func Write(w io.Writer, sys *accrete.System, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, sys)
	case FormatYAML:
		return WriteYAML(w, sys)
	case FormatText:
		return WriteText(w, sys, language.English)
	}
	return fmt.Errorf("unknown report format %q", f)
}

func WriteJSON(w io.Writer, sys *accrete.System) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sys); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, sys *accrete.System) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sys); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return nil
}

// WriteText writes the system characteristics report, formatting numbers
// for tag.
func WriteText(w io.Writer, sys *accrete.System, tag language.Tag) error {
	var buf bytes.Buffer
	t := textReport{p: message.NewPrinter(tag), buf: &buf}

	t.star(sys)
	for i, b := range sys.Bodies {
		t.body(fmt.Sprintf("Planet #%d", i+1), "", b)
		for j, m := range b.Moons {
			t.body(fmt.Sprintf("Moon #%d.%d", i+1, j+1), "   ", m)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

type textReport struct {
	p   *message.Printer
	buf *bytes.Buffer
}

func (t textReport) line(indent, label, format string, args ...any) {
	t.buf.WriteString(indent)
	fmt.Fprintf(t.buf, "   %-38s ", label+":")
	t.p.Fprintf(t.buf, format, args...)
	t.buf.WriteByte('\n')
}

func (t textReport) star(sys *accrete.System) {
	s := sys.Star
	t.buf.WriteString("                         SYSTEM  CHARACTERISTICS\n")
	t.p.Fprintf(t.buf, "Seed:                          %d\n", sys.Seed)
	t.p.Fprintf(t.buf, "Spectral class:                %s\n", s.SpectralClass)
	t.p.Fprintf(t.buf, "Mass of central star:          %.3f solar masses\n", s.MassRatio)
	t.p.Fprintf(t.buf, "Luminosity of central star:    %.3f (relative to the sun)\n", s.LuminosityRatio)
	t.p.Fprintf(t.buf, "Total main sequence lifetime:  %.0f million years\n", s.MainSequenceLifetime/1e6)
	t.p.Fprintf(t.buf, "Current age of stellar system: %.0f million years\n", s.Age/1e6)
	t.p.Fprintf(t.buf, "Radius of habitable ecosphere: %.3f AU\n\n", s.EcosphereRadius)
}

func (t textReport) body(title, indent string, b accrete.Body) {
	t.buf.WriteString(indent + title + ":\n")
	if b.GasGiant {
		t.buf.WriteString(indent + "Gas giant...\n")
	}
	if b.ResonantPeriod {
		t.buf.WriteString(indent + "In resonant period with primary.\n")
	}

	t.line(indent, "Distance from primary star (in A.U.)", "%.3f", b.A)
	t.line(indent, "Eccentricity of orbit", "%.3f", b.E)
	t.line(indent, "Mass (in Earth masses)", "%.3f", b.EarthMasses())
	t.line(indent, "Equatorial radius (in Km)", "%.1f", b.Radius)
	t.line(indent, "Density (in g/cc)", "%.3f", b.Density)
	t.line(indent, "Escape Velocity (in km/sec)", "%.2f", b.EscapeVelocity/accrete.CMPerKM)
	if gas := b.RetainedGas(); gas != "" {
		t.line(indent, "Smallest molecular weight retained", "%.2f   (%s)", b.MoleculeWeight, gas)
	} else {
		t.line(indent, "Smallest molecular weight retained", "%.2f", b.MoleculeWeight)
	}
	t.line(indent, "Surface acceleration (in cm/sec2)", "%.2f", b.SurfaceAccel)

	if !b.GasGiant {
		t.line(indent, "Surface Gravity (in Earth gees)", "%.2f", b.SurfaceGravity)
		if b.BoilPoint > 0.1 {
			t.line(indent, "Boiling point of water (celsius)", "%.1f", b.BoilPoint-accrete.KelvinCelsiusDifference)
		}
		if b.SurfacePressure > 0.00001 {
			runaway := ""
			if b.GreenhouseEffect {
				runaway = "     RUNAWAY GREENHOUSE EFFECT"
			}
			t.line(indent, "Surface Pressure (in atmospheres)", "%.3f%s", b.SurfacePressure/1000.0, runaway)
		}
		t.line(indent, "Surface temperature (Celsius)", "%.2f", b.SurfaceTemp-accrete.KelvinCelsiusDifference)
		if b.Hydrosphere > 0.01 {
			t.line(indent, "Hydrosphere percentage", "%.2f", b.Hydrosphere*100)
		}
		if b.CloudCover > 0.01 {
			t.line(indent, "Cloud cover percentage", "%.2f", b.CloudCover*100)
		}
		if b.IceCover > 0.01 {
			t.line(indent, "Ice cover percentage", "%.2f", b.IceCover*100)
		}
	}

	t.line(indent, "Axial tilt (in degrees)", "%d", b.AxialTilt)
	t.line(indent, "Planetary albedo", "%.3f", b.Albedo)
	t.line(indent, "Length of year (in years)", "%.2f", b.OrbitalPeriod/accrete.DaysInAYear)
	t.line(indent, "Length of day (in hours)", "%.2f", b.DayLength)
	t.buf.WriteByte('\n')
}
