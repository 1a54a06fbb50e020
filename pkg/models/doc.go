// Package models defines the invoicing data set: invoices and their line
// items, clients, business settings and the snapshot that holds them all.
//
// The JSON shape matches the stored document exactly, so a snapshot written by
// one version can be read back by another. Decoding is forgiving: amounts that
// are not numbers become zero and malformed dates become the zero date.
package models
