package bench

import (
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/vortex"
)

// WriteReport writes one line per sample, e.g.
//
//	Interpreted execution time: 12.34 ms
//
// Numbers are formatted for the given language tag; language.Und falls back
// to English.
func WriteReport(w io.Writer, tag language.Tag, samples ...vortex.TimingSample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	title := cases.Title(tag)
	for _, s := range samples {
		if _, err := p.Fprintf(w, "%s execution time: %.2f ms\n", title.String(s.Backend.String()), s.ElapsedMillis()); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparison writes both samples of c followed by the speedup and
// whether the outputs matched.
func WriteComparison(w io.Writer, tag language.Tag, c Comparison) error {
	if err := WriteReport(w, tag, c.A, c.B); err != nil {
		return err
	}
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	if sp := c.Speedup(); sp > 0 {
		if _, err := p.Fprintf(w, "Speedup (%s vs %s): %.2fx\n", c.B.Backend, c.A.Backend, sp); err != nil {
			return err
		}
	}
	match := "identical"
	if !c.Identical {
		match = "different"
	}
	_, err := p.Fprintf(w, "Outputs: %s\n", match)
	return err
}
