// Package render prints simulation results as plain-text tables.
package render

import (
	"fmt"
	"io"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/demo"
)

// BarWidth is the length of the bar drawn for an outcome seen on every shot.
const BarWidth = 40

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

/*
Histogram renders counts as a table sorted by descending count, with the
observed percentage and a bar scaled to the total number of shots.
*/
func Histogram(w io.Writer, counts qsim.Counts) {
	table := newTable(w, "Outcome", "Count", "Percent", "")
	total := counts.Total()

	for _, outcome := range counts.Sorted() {
		table.Append([]string{
			outcome.Basis,
			strconv.Itoa(outcome.Count),
			fmt.Sprintf("%.1f%%", 100*counts.Probability(outcome.Basis)),
			Bar(outcome.Count, total, BarWidth),
		})
	}

	table.SetFooter([]string{"total", strconv.Itoa(total), "", ""})
	table.Render()
}

// Bar draws count/total of width as '#' characters.
func Bar(count, total, width int) string {
	if total <= 0 || count <= 0 {
		return ""
	}
	n := count * width / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

// Statevector lists every basis state with a non-negligible amplitude.
func Statevector(w io.Writer, state *qsim.QuantumState, tolerance float64) {
	table := newTable(w, "Basis", "Amplitude", "Probability", "Phase")

	for i, amp := range state.Amplitudes() {
		probability := real(amp)*real(amp) + imag(amp)*imag(amp)
		if probability <= tolerance {
			continue
		}
		table.Append([]string{
			"|" + qsim.FormatBasis(i, state.Qubits()) + "⟩",
			Complex(amp),
			fmt.Sprintf("%.4f", probability),
			fmt.Sprintf("%.4f", cmplx.Phase(amp)),
		})
	}

	table.Render()
}

// Complex formats an amplitude as "a+bi" with four decimals.
func Complex(c complex128) string {
	return fmt.Sprintf("%.4f%+.4fi", real(c), imag(c))
}

// Density formats a 2x2 density matrix on one line.
func Density(rho [2][2]complex128) string {
	return fmt.Sprintf("[[%s, %s], [%s, %s]]",
		Complex(rho[0][0]), Complex(rho[0][1]),
		Complex(rho[1][0]), Complex(rho[1][1]),
	)
}

// Bloch renders one row per qubit with its Bloch vector and purity.
func Bloch(w io.Writer, qubits []demo.QubitBloch) {
	table := newTable(w, "Qubit", "x", "y", "z", "|r|", "Density")

	for _, qb := range qubits {
		table.Append([]string{
			strconv.Itoa(qb.Qubit),
			fmt.Sprintf("%.4f", qb.Vector.X),
			fmt.Sprintf("%.4f", qb.Vector.Y),
			fmt.Sprintf("%.4f", qb.Vector.Z),
			fmt.Sprintf("%.4f", qb.Vector.Length()),
			Density(qb.Density),
		})
	}

	table.Render()
}

// Teleport renders each of Alice's outcomes next to Bob's state before and after correction.
func Teleport(w io.Writer, t *demo.Teleportation) {
	fmt.Fprintf(w, "input: %s\n", Density(t.Input))

	table := newTable(w, "Alice", "Probability", "Bob", "Corrected")
	for _, branch := range t.Outcomes {
		table.Append([]string{
			branch.Outcome,
			fmt.Sprintf("%.4f", branch.Probability),
			Density(branch.Bob),
			Density(branch.Corrected),
		})
	}
	table.Render()
}
