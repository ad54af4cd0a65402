// Package schema reflects JSON schemas from Go document types.
package schema
