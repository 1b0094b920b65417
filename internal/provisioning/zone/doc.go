// Package zone establishes the authoritative Route 53 hosted zone for the base domain.
//
// The DNS run creates or discovers the zone, hands its delegation
// nameservers to the operator through a durable file, waits for the operator
// to confirm the registrar change, then probes each nameserver. The install
// run only looks the zone up and refuses to continue without it.
package zone
