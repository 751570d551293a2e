package source

import "strings"

// LineSpec carries the values a Line is built from
type LineSpec struct {
	Content        string
	FormattedLines []string
	OriginalIndex  int
	FullWrapCount  int
	IsStackFrame   bool
	IsVendorFrame  bool
	VendorGroupID  int // 0 means not in a group
}

// Line is one raw log line together with its rendered rows. It is never
// modified after NewLine returns.
type Line struct {
	content        string
	formattedLines []string
	originalIndex  int
	fullWrapCount  int
	isStackFrame   bool
	isVendorFrame  bool
	vendorGroupID  int
}

// NewLine builds a Line, guaranteeing at least one row and a full wrap count
// no smaller than the row count.
func NewLine(spec LineSpec) *Line {
	rows := make([]string, len(spec.FormattedLines))
	copy(rows, spec.FormattedLines)
	if len(rows) == 0 {
		rows = []string{""}
	}

	full := spec.FullWrapCount
	if full < len(rows) {
		full = len(rows)
	}

	return &Line{
		content:        spec.Content,
		formattedLines: rows,
		originalIndex:  spec.OriginalIndex,
		fullWrapCount:  full,
		isStackFrame:   spec.IsStackFrame,
		isVendorFrame:  spec.IsVendorFrame,
		vendorGroupID:  spec.VendorGroupID,
	}
}

// Content returns the raw text
func (l *Line) Content() string { return l.content }

// FormattedLines returns a copy of the rendered rows
func (l *Line) FormattedLines() []string {
	rows := make([]string, len(l.formattedLines))
	copy(rows, l.formattedLines)
	return rows
}

// FormattedContent returns the rendered rows joined by newlines
func (l *Line) FormattedContent() string {
	return strings.Join(l.formattedLines, "\n")
}

// OriginalIndex returns the position in the raw stream
func (l *Line) OriginalIndex() int { return l.originalIndex }

// WrapCount returns the number of rows currently rendered
func (l *Line) WrapCount() int { return len(l.formattedLines) }

// FullWrapCount returns the number of rows with wrapping forced on
func (l *Line) FullWrapCount() int { return l.fullWrapCount }

// IsStackFrame reports whether the line belongs to a trace box
func (l *Line) IsStackFrame() bool { return l.isStackFrame }

// IsVendorFrame reports whether the line is a library frame
func (l *Line) IsVendorFrame() bool { return l.isVendorFrame }

// VendorGroupID returns the vendor group, 0 when ungrouped
func (l *Line) VendorGroupID() int { return l.vendorGroupID }

// IsCollapsibleVendor reports whether the line can fold into a marker
func (l *Line) IsCollapsibleVendor() bool {
	return l.isVendorFrame && l.vendorGroupID != 0
}
