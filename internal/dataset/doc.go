// Package dataset reads and writes the catalog tables, fuses the text fields
// and produces the deterministic train/test split.
//
// Features files carry the row index in their first column followed by
// named columns (designation, description, productid, imageid, or descriptif
// once fused). Labels files carry the index and prdtypecode. Tables are
// aligned by index, never by position.
package dataset
