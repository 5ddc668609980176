package summary

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Render writes a plain-text report of the summary, formatting numbers for lang.
func Render(w io.Writer, s Summary, lang language.Tag) error {
	p := message.NewPrinter(lang)
	o := s.Overview

	lines := []string{
		"Bill Summary",
		"",
		p.Sprintf("Items total:          %.2f", o.Totals.ItemsTotal),
		p.Sprintf("Service charge (%v%%): %.2f", o.ServiceRate, o.Totals.ServiceChargeAmount),
		p.Sprintf("VAT (%v%%):            %.2f", o.VATRate, o.Totals.VATAmount),
		p.Sprintf("Total:                %.2f", o.Totals.Total),
		"",
		"Per person:",
	}
	for _, person := range o.People {
		lines = append(lines, p.Sprintf("  %-20s %.2f", person.Name, person.Amount))
	}

	for _, split := range s.PerPerson {
		lines = append(lines, "", split.Name)
		if len(split.Items) == 0 {
			lines = append(lines, "  (no items)")
		}
		for _, item := range split.Items {
			name := item.Name
			if name == "" {
				name = "(unnamed item)"
			}
			lines = append(lines, p.Sprintf("  %-20s %.2f", name, item.Amount))
		}
		lines = append(lines,
			p.Sprintf("  Subtotal             %.2f", split.Subtotal),
			p.Sprintf("  Service charge       %.2f", split.ServiceCharge),
			p.Sprintf("  VAT                  %.2f", split.VAT),
			p.Sprintf("  Total                %.2f", split.Total),
		)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
