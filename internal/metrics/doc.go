// Package metrics records counters and a duration histogram for one
// publish run and, when asked, writes them to disk in Prometheus text
// exposition format. GitLive is a one-shot CLI invocation, not a
// long-lived service, so there is no /metrics HTTP listener here: the
// registry is written once via --metrics-file, the same pattern
// node_exporter's textfile collector uses for batch jobs feeding a
// scrape-less Prometheus pull.
package metrics
