// Package report summarizes a cleaning run.
//
// Summaries and log digests are serialized with canonical JSON: object keys
// sorted by UTF-16 code units, strings NFC-normalized, no HTML escaping, no
// floats and no null. Two logs with the same records always produce the same
// digest, so a second cleaning pass that removes nothing keeps the digest.
package report
