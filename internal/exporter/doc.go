// Package exporter writes job market aggregation tables to files.
//
// Tables are built from query results with the Table constructors and then
// written as CSV or as an Excel workbook:
//
//	table := exporter.RolesTable(roles)
//	err := exporter.Write(w, exporter.FormatXLSX, table)
//
// CSV output starts with a UTF-8 BOM so spreadsheet applications detect the
// encoding. Workbooks hold one sheet per table.
package exporter
