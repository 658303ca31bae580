// Package edinet implements the source adapter for Japan's EDINET
// system. EDINET publishes no per-issuer endpoint; enumeration is
// day-indexed through the daily manifest, the issuer directory is
// bootstrapped from the FSA's static CSV, and payloads are fetched
// per docID with a type parameter selecting the artifact kind.
package edinet
