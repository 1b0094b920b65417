// Package summary renders the closing block of a successful run.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/imamik/ocpctl/internal/provisioning"
)

// Install writes the cluster access details. The password is printed once here
// and nowhere else.
func Install(w io.Writer, cluster string, a *provisioning.AccessConfig, color bool) error {
	if a == nil {
		return fmt.Errorf("no access configuration to summarize")
	}
	p := newPalette(color)

	var b strings.Builder
	b.WriteString(p.title(fmt.Sprintf("Cluster %s is ready", cluster)))
	b.WriteString("\n\n")
	rows := [][2]string{
		{"API server", a.APIServerURL},
		{"Console", a.ConsoleURL},
		{"Kubeconfig", a.KubeconfigPath},
		{"Username", a.Username},
		{"Password", a.Password},
	}
	writeRows(&b, p, rows)
	if a.PreviousConfig != "" {
		b.WriteString("\n")
		b.WriteString(p.warning(fmt.Sprintf("%s previous kube config kept at %s", warnMark, a.PreviousConfig)))
		b.WriteString("\n")
	}
	return write(w, p, b.String())
}

// DNS writes the delegation instructions and the propagation outcome.
func DNS(w io.Writer, domain string, nameServers []string, results []provisioning.ProbeResult, color bool) error {
	p := newPalette(color)

	var b strings.Builder
	b.WriteString(p.title(fmt.Sprintf("Hosted zone for %s", strings.TrimSuffix(domain, "."))))
	b.WriteString("\n\n")
	b.WriteString(p.section("Delegate at your registrar to:"))
	b.WriteString("\n")
	for _, ns := range nameServers {
		b.WriteString("  " + ns + "\n")
	}

	if len(results) > 0 {
		b.WriteString("\n")
		b.WriteString(p.section("Propagation"))
		b.WriteString("\n")
		for _, r := range results {
			if r.Err != nil {
				b.WriteString(p.warning(fmt.Sprintf("%s %s: %v", warnMark, r.NameServer, r.Err)))
			} else {
				b.WriteString(p.ready(fmt.Sprintf("%s %s", checkMark, r.NameServer)))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(p.label("Run `ocpctl install` once delegation has propagated."))
	b.WriteString("\n")
	return write(w, p, b.String())
}

func writeRows(b *strings.Builder, p palette, rows [][2]string) {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		b.WriteString(p.label(fmt.Sprintf("%-*s", width, r[0])))
		b.WriteString("  ")
		b.WriteString(r[1])
		b.WriteString("\n")
	}
}

func write(w io.Writer, p palette, body string) error {
	if p.color {
		body = boxStyle.Render(strings.TrimRight(body, "\n")) + "\n"
	}
	_, err := io.WriteString(w, body)
	return err
}
