// Package fetch implements the HTTP collaborator for remote RDF sources.
//
// Client performs content-negotiated GETs: it sends the format registry's
// Accept header, reports the observed Content-Type back for resolution,
// and keeps an in-memory cache of responses for as long as their
// Cache-Control headers allow. Failures (transport errors, non-2xx
// statuses) surface as network-failure errors; no retries happen here.
package fetch
