package accrete

// DustBand is a radial interval of the protoplanetary disk, in AU.
type DustBand struct {
	Inner float64 `json:"inner_edge"`
	Outer float64 `json:"outer_edge"`
	Dust  bool    `json:"dust_present"`
	Gas   bool    `json:"gas_present"`
}

// DustLanes is the ordered, gap-free sequence of bands covering the disk.
// Bands are kept sorted by Inner and no two neighbours share the same
// (Dust, Gas) state once Update returns.
type DustLanes struct {
	bands []DustBand
}

// NewDustLanes returns a single band from inner to outer holding both dust
// and gas.
func NewDustLanes(inner, outer float64) *DustLanes {
	return &DustLanes{
		bands: []DustBand{{Inner: inner, Outer: outer, Dust: true, Gas: true}},
	}
}

// Bands returns a copy of the current band sequence.
func (d *DustLanes) Bands() []DustBand {
	out := make([]DustBand, len(d.bands))
	copy(out, d.bands)
	return out
}

func (d *DustLanes) Len() int {
	return len(d.bands)
}

// Available reports whether any band overlapping [inner, outer] still holds
// dust.
func (d *DustLanes) Available(inner, outer float64) bool {
	i := 0
	for i < len(d.bands) && d.bands[i].Outer < inner {
		i++
	}
	if i == len(d.bands) {
		return false
	}
	present := d.bands[i].Dust
	for ; i < len(d.bands) && d.bands[i].Inner < outer; i++ {
		present = present || d.bands[i].Dust
	}
	return present
}

// Update sweeps [min, max] clear of dust. Gas in the swept range survives
// only while mass has not passed critMass. Bands straddling either boundary
// are split so the depleted range is tracked exactly, then neighbours with
// matching state are merged back together. The return value reports whether
// any dust is left in bands touching [bodyInner, bodyOuter].
func (d *DustLanes) Update(min, max, mass, critMass, bodyInner, bodyOuter float64) bool {
	gas := !(mass > critMass)
	swept := func(b DustBand, inner, outer float64) DustBand {
		return DustBand{Inner: inner, Outer: outer, Dust: false, Gas: b.Gas && gas}
	}

	next := make([]DustBand, 0, len(d.bands)+2)
	for _, b := range d.bands {
		switch {
		case b.Inner < min && b.Outer > max:
			// swept range strictly inside the band
			next = append(next,
				DustBand{Inner: b.Inner, Outer: min, Dust: b.Dust, Gas: b.Gas},
				swept(b, min, max),
				DustBand{Inner: max, Outer: b.Outer, Dust: b.Dust, Gas: b.Gas},
			)
		case b.Inner < max && b.Outer > max:
			// band's left part swept
			next = append(next,
				swept(b, b.Inner, max),
				DustBand{Inner: max, Outer: b.Outer, Dust: b.Dust, Gas: b.Gas},
			)
		case b.Inner < min && b.Outer > min:
			// band's right part swept
			next = append(next,
				DustBand{Inner: b.Inner, Outer: min, Dust: b.Dust, Gas: b.Gas},
				swept(b, min, b.Outer),
			)
		case b.Inner >= min && b.Outer <= max:
			next = append(next, swept(b, b.Inner, b.Outer))
		default:
			next = append(next, b)
		}
	}

	left := false
	for _, b := range next {
		if b.Dust && b.Outer >= bodyInner && b.Inner <= bodyOuter {
			left = true
			break
		}
	}

	d.bands = coalesceBands(next)
	return left
}

func coalesceBands(bands []DustBand) []DustBand {
	if len(bands) == 0 {
		return bands
	}
	out := bands[:1]
	for _, b := range bands[1:] {
		last := &out[len(out)-1]
		if last.Dust == b.Dust && last.Gas == b.Gas {
			last.Outer = b.Outer
			continue
		}
		out = append(out, b)
	}
	return out
}
