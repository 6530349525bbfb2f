package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/kwcargobay/fairing-go/pkg/persistence"
)

// PrintStatus writes the fairing controller table of a report.
func PrintStatus(w io.Writer, r *persistence.RunReport) {
	fmt.Fprintf(w, "Vessel %s (%s): %d parts, %d shielded\n",
		r.VesselName, r.VesselID, len(r.Parts), r.ShieldedCount())
	if len(r.Fairings) == 0 {
		fmt.Fprintln(w, "  no fairings")
		return
	}
	for _, f := range r.Fairings {
		episode := f.EpisodeID
		if len(episode) > 8 {
			episode = episode[:8]
		}
		if episode == "" {
			episode = "-"
		}
		fmt.Fprintf(w, "  %-16s %-10s ep:%-8s %d shielded", f.PartID, f.State, episode, len(f.Shielded))
		if f.RadialPasses > 0 {
			fmt.Fprintf(w, ", radial passes %d", f.RadialPasses)
			if !f.RadialConverged {
				fmt.Fprint(w, " (not converged)")
			}
		}
		fmt.Fprintln(w)
	}
}

// PrintParts writes one line per part of a report.
func PrintParts(w io.Writer, r *persistence.RunReport) {
	for _, p := range r.Parts {
		var flags []string
		if p.Shielded {
			flags = append(flags, "shielded")
		}
		if p.Decoupled {
			flags = append(flags, "decoupled")
		}
		fmt.Fprintf(w, "  %-16s %-20s %s\n", p.ID, p.Name, strings.Join(flags, ","))
	}
}

// PrintChanges writes the shielding changes between a saved report and the
// current one.
func PrintChanges(w io.Writer, changes []persistence.PartChange) {
	if len(changes) == 0 {
		fmt.Fprintln(w, "  no shielding changes")
		return
	}
	for _, c := range changes {
		fmt.Fprintf(w, "  %-16s %-20s %s -> %s\n", c.ID, c.Name, c.Before, c.After)
	}
}
