// Package internaldefs holds the shared metric definitions consumed by the
// exporter packages. It exists so exporters agree on names, help text, and
// bucket layout without duplicating tables.
package internaldefs
